// Package stabilizer animates an orientation towards a target with an
// ease-out curve. It is used for every snap: cube and slice snap-back after
// a drag, undo playback and programmatic moves.
package stabilizer

import (
	"time"

	"github.com/SeamusWaldron/cubie/internal/quat"
)

// DefaultDuration is the baseline length of an interactive snap.
const DefaultDuration = 300 * time.Millisecond

// Clock returns the current time.
type Clock func() time.Time

// Option configures a Stabilizer.
type Option func(*Stabilizer)

// WithClock makes the stabilizer read time from clock instead of time.Now.
func WithClock(clock Clock) Option {
	return func(s *Stabilizer) {
		if clock != nil {
			s.now = clock
		}
	}
}

// Stabilizer interpolates from one orientation to another over a fixed
// duration, starting when it is created.
type Stabilizer struct {
	from      quat.Quat
	to        quat.Quat
	startedAt time.Time
	duration  time.Duration
	now       Clock
}

// New starts a stabilization from -> to lasting d. from and to are copied.
func New(from, to quat.Quat, d time.Duration, opts ...Option) *Stabilizer {
	s := &Stabilizer{
		from:     from,
		to:       to,
		duration: d,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now()
	return s
}

// Done reports whether the full duration has elapsed.
func (s *Stabilizer) Done() bool {
	return s.now().Sub(s.startedAt) >= s.duration
}

// Progress returns the linear progress in [0, 1].
func (s *Stabilizer) Progress() float64 {
	if s.duration <= 0 {
		return 1
	}
	t := float64(s.now().Sub(s.startedAt)) / float64(s.duration)
	if t > 1 {
		return 1
	}
	if t < 0 {
		return 0
	}
	return t
}

// Current returns the eased orientation for the current time. Once the
// duration has elapsed it returns the target exactly.
func (s *Stabilizer) Current() quat.Quat {
	t := s.Progress()
	eased := 1 - (1-t)*(1-t)
	return s.from.Slerp(s.to, eased)
}

// From returns the starting orientation.
func (s *Stabilizer) From() quat.Quat {
	return s.from
}

// Target returns the orientation the stabilizer ends at.
func (s *Stabilizer) Target() quat.Quat {
	return s.to
}

// Duration returns the snap duration for a move started while queued moves
// are still waiting: baseline when the queue is empty, approaching a third
// of baseline as the queue grows.
func Duration(baseline time.Duration, queued int) time.Duration {
	if queued < 0 {
		queued = 0
	}
	return time.Duration(float64(baseline) / (3 - 2/(1+float64(queued))))
}
