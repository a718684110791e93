package store

import "fmt"

// StatusError reports a non-success HTTP status from the store. Transport
// failures are wrapped net/http errors instead, so callers can distinguish
// a store that answered badly from a store that never answered.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.Status, e.Body)
}
