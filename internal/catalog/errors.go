package catalog

import (
	"errors"
	"fmt"
)

// ErrMissingField marks a required wire field that is absent or null.
var ErrMissingField = errors.New("missing required field")

// TransportError covers unreachable hosts, timeouts, non-2xx responses and
// URIs that cannot be fetched at all.
type TransportError struct {
	URI        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URI, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URI, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means the document did not match the catalog schema.
// Index is the offending element of "apps", or -1 for document-level errors.
type DecodeError struct {
	URI   string
	Index int
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	where := "document"
	if e.Index >= 0 {
		where = fmt.Sprintf("apps[%d]", e.Index)
	}
	if e.Field != "" {
		where += "." + e.Field
	}
	if e.URI != "" {
		return fmt.Sprintf("decode %s: %s: %v", e.URI, where, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", where, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsTransport reports whether err is (or wraps) a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsDecode reports whether err is (or wraps) a *DecodeError.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
