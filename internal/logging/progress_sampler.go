package logging

// ProgressSampler decides when a counting loop should emit a progress line.
// It fires on every multiple of the interval; an interval of zero never fires.
type ProgressSampler struct {
	every int
	last  int
}

// NewProgressSampler constructs a sampler that fires every n processed items.
func NewProgressSampler(n int) *ProgressSampler {
	if n < 0 {
		n = 0
	}
	return &ProgressSampler{every: n}
}

// ShouldLog reports whether the count reached a new multiple of the interval.
func (s *ProgressSampler) ShouldLog(count int) bool {
	if s == nil || s.every == 0 || count <= 0 {
		return false
	}
	if count%s.every != 0 || count == s.last {
		return false
	}
	s.last = count
	return true
}

// Reset clears the sampler state.
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	s.last = 0
}
