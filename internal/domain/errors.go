package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
	ErrExecution     = errors.New("execution error")
	ErrNoSelection   = errors.New("no collection selected")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindExecution     ErrorKind = "execution"
	KindTransport     ErrorKind = "transport"
	KindHTTPStatus    ErrorKind = "http_status"
	KindDecode        ErrorKind = "decode"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: file path or request path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// HTTPStatusError is returned when the backend answers with a non-2xx status.
type HTTPStatusError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.Status)
}

// StatusCode extracts the HTTP status from err, or 0 when err is not a status error.
func StatusCode(err error) int {
	var se *HTTPStatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// FallbackMessage is used when an error carries no text at all.
const FallbackMessage = "An error occurred"

// Message converts an error into the short human-readable text stored in
// loader state. Transport failures read "Network Error", non-2xx answers read
// "Request failed with status code N"; everything else uses the error text.
func Message(err error) string {
	if err == nil {
		return ""
	}

	if IsKind(err, KindTransport) {
		return "Network Error"
	}
	if code := StatusCode(err); code != 0 {
		return fmt.Sprintf("Request failed with status code %d", code)
	}

	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return FallbackMessage
	}
	return msg
}
