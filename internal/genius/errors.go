package genius

import (
	"fmt"
	"time"
)

// StatusError reports a non-2xx response from Genius.
type StatusError struct {
	Code       int
	Status     string
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("genius: unexpected status %s", e.Status)
	}
	return fmt.Sprintf("genius: unexpected status %s: %s", e.Status, e.Body)
}
