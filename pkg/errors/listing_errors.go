package errors

var (
	ErrListingNotFound = NotFound("listing not found")
	ErrNotListingOwner = Forbidden("only the listing owner may modify it")
	ErrInvalidListing  = InvalidArg("listing requires a title and a non-negative rent")
)
