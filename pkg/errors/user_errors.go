package errors

var (
	// Domain errors — used in usecase/repository
	ErrEmailTaken         = AlreadyExists("an account with this email already exists")
	ErrUserNotFound       = NotFound("user not found")
	ErrInvalidEmail       = InvalidArg("a valid email address is required")
	ErrNotCampusEmail     = InvalidArg("must use a @ufl.edu email")
	ErrPasswordTooShort   = InvalidArg("password must be at least 8 characters")
	ErrInvalidCredentials = Unauthorized("invalid credentials")
	ErrEmailNotVerified   = Forbidden("please verify your UF email")
	ErrInvalidToken       = Unauthorized("invalid or expired token")
	ErrMissingToken       = Unauthorized("missing bearer token")
)

func ErrRegistrationFailed(cause error) error {
	return Wrap(CodeInternal, "registration failed", cause)
}

func ErrLoginFailed(cause error) error {
	return Wrap(CodeUnauthenticated, "login failed", cause)
}
