package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services return these (usually wrapped with fmt.Errorf and %w) and the API
// layer maps them to HTTP responses with errors.Is.

var (
	// ErrNotFound signifies that a requested session, message or avatar could not be located.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data failed business rule validation
	// (empty message, empty name at sign-in, malformed import).
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with the current state of a resource.
	ErrConflict = errors.New("resource conflict")

	// ErrBusy signifies that the target session already has a turn in flight.
	// Only one AI message per session may be open for streaming at a time.
	ErrBusy = errors.New("a response is already being generated for this chat")

	// ErrPermission signifies that the caller may not perform the requested action,
	// e.g. editing a predefined avatar.
	ErrPermission = errors.New("permission denied")

	// ErrUnauthenticated signifies that no user is signed in.
	ErrUnauthenticated = errors.New("not signed in")

	// ErrConfirmationRequired signifies that a destructive operation was not confirmed by the user.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrUnavailable signifies that the configured provider cannot perform the request
	// (for example image generation without a Gemini API key).
	ErrUnavailable = errors.New("capability unavailable")

	// ErrInternal signifies an unexpected error. It is used to avoid leaking
	// implementation details to the client.
	ErrInternal = errors.New("internal server error")
)
