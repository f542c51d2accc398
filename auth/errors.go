package auth

import (
	"errors"
	"fmt"
)

// Kind discriminates the failure classes surfaced by the client.
type Kind int

const (
	// KindConfiguration indicates missing or unusable construction input,
	// such as an absent client id or secret.
	KindConfiguration Kind = iota + 1

	// KindAuthentication indicates the provider rejected the credentials
	// (HTTP 401 on the token exchange).
	KindAuthentication

	// KindAuthorization indicates the application lacks permission
	// (HTTP 403 on the token exchange).
	KindAuthorization

	// KindTokenExchange covers every other failure to obtain a token:
	// malformed request, transport failure, malformed response or an
	// unexpected status.
	KindTokenExchange
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindTokenExchange:
		return "token exchange"
	}
	return "unknown"
}

// Error is the typed error returned by every client operation. StatusCode
// is zero when the failure happened before an HTTP response was received.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// AsError returns the typed client error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr, true
	}
	return nil, false
}

func newError(kind Kind, statusCode int, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    fmt.Sprintf(format, args...),
		cause:      cause,
	}
}
