package curseforge

import (
	"errors"
	"fmt"
)

// APIError is returned when a catalog request fails, either at the
// transport level (Status is 0) or with a non-2xx status.
//
// All APIErrors are treated as transient by the fetcher, whatever the
// status: a 404 is retried the same way as a 503.
type APIError struct {
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("HTTP %d from %s", e.Status, e.URL)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a 2xx response does not carry the expected
// JSON document. The catalog never does this on success, so it is not
// retried and aborts the run.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err breaks the catalog contract and must not be
// retried.
func IsFatal(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
