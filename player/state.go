package player

import (
	"math"
	"sync/atomic"
)

// sharedState is the lock-free cell the worker publishes position, duration
// and the ended flag through. The facade reads it without ever waiting on
// the worker.
type sharedState struct {
	position atomic.Uint64
	duration atomic.Uint64
	ended    atomic.Bool
}

func newSharedState() *sharedState {
	return &sharedState{}
}

func (s *sharedState) setPosition(seconds float64) {
	s.position.Store(math.Float64bits(seconds))
}

func (s *sharedState) Position() float64 {
	return math.Float64frombits(s.position.Load())
}

func (s *sharedState) setDuration(seconds float64) {
	s.duration.Store(math.Float64bits(seconds))
}

func (s *sharedState) Duration() float64 {
	return math.Float64frombits(s.duration.Load())
}

func (s *sharedState) setEnded() {
	s.ended.Store(true)
}

func (s *sharedState) Ended() bool {
	return s.ended.Load()
}
