package commerce

import (
	"fmt"

	"google.golang.org/grpc/codes"
)

// Error represents a failed RPC against the commerce or profile
// service. Code is the canonical code the Connect protocol carried;
// Message is the server's human-readable message and is what the
// widget surfaces to the visitor.
type Error struct {
	Code    codes.Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError builds an Error with a canonical code and message.
func NewError(code codes.Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// wrapTransport wraps a transport-level failure (connection refused,
// body read, JSON decode) that never produced a wire error code.
func wrapTransport(message string, cause error) *Error {
	return &Error{Code: codes.Unavailable, Message: message, Cause: cause}
}

// codeFromConnect maps a Connect wire error code string to its
// canonical counterpart. Connect codes are defined as the snake_case
// names of the gRPC canonical codes.
func codeFromConnect(s string) codes.Code {
	switch s {
	case "canceled":
		return codes.Canceled
	case "invalid_argument":
		return codes.InvalidArgument
	case "deadline_exceeded":
		return codes.DeadlineExceeded
	case "not_found":
		return codes.NotFound
	case "already_exists":
		return codes.AlreadyExists
	case "permission_denied":
		return codes.PermissionDenied
	case "resource_exhausted":
		return codes.ResourceExhausted
	case "failed_precondition":
		return codes.FailedPrecondition
	case "aborted":
		return codes.Aborted
	case "out_of_range":
		return codes.OutOfRange
	case "unimplemented":
		return codes.Unimplemented
	case "internal":
		return codes.Internal
	case "unavailable":
		return codes.Unavailable
	case "data_loss":
		return codes.DataLoss
	case "unauthenticated":
		return codes.Unauthenticated
	default:
		return codes.Unknown
	}
}
