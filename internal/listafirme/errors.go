package listafirme

import "errors"

// Kind classifies why a fetch produced no payload.
type Kind string

const (
	KindProvider   Kind = "provider"
	KindParse      Kind = "parse"
	KindHTTPStatus Kind = "http_status"
	KindTimeout    Kind = "timeout"
	KindConnection Kind = "connection"
	KindUnexpected Kind = "unexpected"
)

// Error is returned by Client.Fetch. Message is what the audit entry stores
// and is safe to log; it never contains the API key.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or "" when err did not come from Fetch.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
