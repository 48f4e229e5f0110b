package errors

var (
	ErrEmptyParticipant   = InvalidArg("both participant ids are required")
	ErrSelfMessage        = InvalidArg("cannot send a message to yourself")
	ErrSelfThread         = InvalidArg("cannot open a thread with yourself")
	ErrEmptyBody          = InvalidArg("message body cannot be empty")
	ErrBodyTooLong        = InvalidArg("message body exceeds 4000 characters")
	ErrThreadNotFound     = NotFound("thread not found")
	ErrNotParticipant     = Forbidden("not a participant of this thread")
	ErrThreadsUnsupported = FailedPrecondition("threads require the relational store")
)

func ErrStoreUnavailable(cause error) error {
	return Wrap(CodeUnavailable, "message store unavailable", cause)
}
