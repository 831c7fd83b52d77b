package scrape

import (
	"errors"
	"fmt"
)

// TransportError covers network failures, timeouts and non-2xx responses.
// Callers treat it as retryable by escalating to the next fetch engine
// rather than surfacing it raw.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport error for %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("transport error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is classified as a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
