package stabilizer

import (
	"math"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubie/internal/quat"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestStartsAtFromAndEndsAtTo(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	from := quat.FromEuler(0.2, -0.3, 0.1)
	to := quat.Identity()
	s := New(from, to, DefaultDuration, WithClock(clock.Now))

	if s.Done() {
		t.Fatal("should not be done at start")
	}
	if got := s.Current(); got != from {
		t.Errorf("Current at t=0 = %v, want %v", got, from)
	}

	clock.Advance(DefaultDuration)
	if !s.Done() {
		t.Fatal("should be done after the full duration")
	}
	if got := s.Current(); got != to {
		t.Errorf("Current when done = %v, want %v", got, to)
	}

	clock.Advance(time.Second)
	if got := s.Current(); got != to {
		t.Errorf("Current long after done = %v, want %v", got, to)
	}
}

func TestCapturesFromByValue(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	from := quat.FromEuler(0.4, 0, 0)
	s := New(from, quat.Identity(), DefaultDuration, WithClock(clock.Now))

	from.X = 42
	if s.From().X == 42 {
		t.Error("mutating the source changed the stabilizer")
	}
}

func TestMonotonicApproach(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	from := quat.FromAxisAngle(quat.Vec3{X: 1, Y: 2, Z: 0.5}, 0.7)
	to := quat.FindClipped(from)
	s := New(from, to, DefaultDuration, WithClock(clock.Now))

	prev := math.Abs(s.Current().Dot(to))
	for i := 0; i < 30; i++ {
		clock.Advance(DefaultDuration / 30)
		cur := s.Current()
		if math.Abs(cur.Len()-1) > 1e-9 {
			t.Fatalf("step %d not normalized: %v", i, cur)
		}
		d := math.Abs(cur.Dot(to))
		if d+1e-12 < prev {
			t.Fatalf("step %d moved away from target: %f < %f", i, d, prev)
		}
		prev = d
	}
	if !quat.Equals(s.Current(), to) {
		t.Errorf("did not reach target")
	}
}

func TestEaseOut(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	axis := quat.Vec3{Z: 1}
	s := New(quat.Identity(), quat.FromAxisAngle(axis, math.Pi/2), 100*time.Millisecond, WithClock(clock.Now))

	clock.Advance(50 * time.Millisecond)
	got := s.Current()
	// eased = 1 - 0.5^2 = 0.75 of a quarter turn
	want := quat.FromAxisAngle(axis, 0.75*math.Pi/2)
	if !quat.Equals(got, want) {
		t.Errorf("halfway orientation = %v, want %v", got, want)
	}
}

func TestZeroDurationIsImmediatelyDone(t *testing.T) {
	to := quat.FromAxisAngle(quat.Vec3{Y: 1}, math.Pi/2)
	s := New(quat.Identity(), to, 0)
	if !s.Done() {
		t.Error("zero duration should be done")
	}
	if s.Current() != to {
		t.Error("zero duration should report the target")
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		queued int
		want   time.Duration
	}{
		{0, DefaultDuration},
		{1, DefaultDuration / 2},
		{3, time.Duration(float64(DefaultDuration) / 2.5)},
		{-4, DefaultDuration},
	}
	for _, tt := range tests {
		if got := Duration(DefaultDuration, tt.queued); got != tt.want {
			t.Errorf("Duration(%d) = %v, want %v", tt.queued, got, tt.want)
		}
	}

	long := Duration(DefaultDuration, 10000)
	if long < DefaultDuration/3 || long > DefaultDuration/3+time.Millisecond {
		t.Errorf("long queue duration %v should approach a third of baseline", long)
	}
}
