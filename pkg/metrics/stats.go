package metrics

import (
	"sync/atomic"
	"time"
)

// SimStats aggregates counters across simulation runs. All methods are safe
// for concurrent use; a single SimStats may be shared by engines running in
// parallel.
type SimStats struct {
	runsStarted   atomic.Uint64
	runsCompleted atomic.Uint64
	runsRejected  atomic.Uint64

	photonsSimulated   atomic.Uint64
	photonsIntercepted atomic.Uint64

	createdAt time.Time
}

// NewSimStats creates a new simulation stats collector.
func NewSimStats() *SimStats {
	return &SimStats{createdAt: time.Now()}
}

// RunStarted records a run that passed validation.
func (s *SimStats) RunStarted() {
	s.runsStarted.Add(1)
}

// RunRejected records a run rejected during parameter validation.
func (s *SimStats) RunRejected() {
	s.runsRejected.Add(1)
}

// RunCompleted records a fully produced trace.
func (s *SimStats) RunCompleted(photons, intercepted int) {
	s.runsCompleted.Add(1)
	s.photonsSimulated.Add(uint64(photons))
	s.photonsIntercepted.Add(uint64(intercepted))
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	RunsStarted        uint64
	RunsCompleted      uint64
	RunsRejected       uint64
	PhotonsSimulated   uint64
	PhotonsIntercepted uint64
	Uptime             time.Duration
}

// Snapshot returns the current counter values.
func (s *SimStats) Snapshot() Snapshot {
	return Snapshot{
		RunsStarted:        s.runsStarted.Load(),
		RunsCompleted:      s.runsCompleted.Load(),
		RunsRejected:       s.runsRejected.Load(),
		PhotonsSimulated:   s.photonsSimulated.Load(),
		PhotonsIntercepted: s.photonsIntercepted.Load(),
		Uptime:             time.Since(s.createdAt),
	}
}
