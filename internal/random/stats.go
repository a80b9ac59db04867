package random

// Summary accumulates the running mean and variance of a stream without
// retaining it (Welford's method), so arbitrarily long streams summarise in
// constant memory.
type Summary struct {
	Count int
	mean  float64
	m2    float64
}

// Add records one observation.
func (s *Summary) Add(x float64) {
	s.Count++
	delta := x - s.mean
	s.mean += delta / float64(s.Count)
	s.m2 += delta * (x - s.mean)
}

// Mean returns the sample mean, or 0 for an empty sample.
func (s *Summary) Mean() float64 {
	return s.mean
}

// Variance returns the unbiased sample variance, or 0 with fewer than two
// observations.
func (s *Summary) Variance() float64 {
	if s.Count < 2 {
		return 0
	}
	return s.m2 / float64(s.Count-1)
}
