package tracker

// ScoreTracker holds the session point total. It only ever grows.
type ScoreTracker struct {
	total int
}

func (s *ScoreTracker) Add(n int) {
	if n <= 0 {
		return
	}
	s.total += n
}

func (s *ScoreTracker) Total() int {
	return s.total
}
