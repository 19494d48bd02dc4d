package lyricscache

import (
	"errors"
	"fmt"
)

var (
	// ErrCacheNotFound reports that the cache file does not exist.
	ErrCacheNotFound = errors.New("lyrics cache not found")
	// ErrMalformedRecord reports a cache line that is not a JSON object.
	ErrMalformedRecord = errors.New("malformed cache record")
)

// MalformedRecordError identifies the offending line of a corrupt cache.
type MalformedRecordError struct {
	Line int
	Err  error
}

func (e *MalformedRecordError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed cache record at line %d", e.Line)
	}
	return fmt.Sprintf("malformed cache record at line %d: %v", e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrMalformedRecord.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
