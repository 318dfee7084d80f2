package cube

import (
	"errors"
	"math"
	"testing"

	"github.com/SeamusWaldron/cubie/internal/quat"
)

func allSlices() []Slice {
	var out []Slice
	for _, axis := range []quat.Axis{quat.AxisX, quat.AxisY, quat.AxisZ} {
		for layer := -1; layer <= 1; layer++ {
			out = append(out, Slice{Axis: axis, Layer: layer})
		}
	}
	return out
}

func localGrid(c *Cube) map[*Cubie][3]int {
	out := make(map[*Cubie][3]int, 27)
	for _, cb := range c.Cubies() {
		out[cb] = cb.Node.Position.Grid()
	}
	return out
}

func TestClassifyAllPositions(t *testing.T) {
	c := New()
	counts := map[Kind]int{}
	for _, cb := range c.Cubies() {
		extremes := 0
		for _, v := range cb.Home {
			if v != 0 {
				extremes++
			}
		}
		if cb.Kind != Kind(extremes) {
			t.Errorf("cubie %v: kind %v, want %v", cb.Home, cb.Kind, Kind(extremes))
		}
		if got := Classify(cb.Faces); got != cb.Kind {
			t.Errorf("cubie %v: Classify = %v, stored %v", cb.Home, got, cb.Kind)
		}
		counts[cb.Kind]++
	}

	want := map[Kind]int{KindNone: 1, KindCenter: 6, KindEdge: 12, KindCorner: 8}
	for k, n := range want {
		if counts[k] != n {
			t.Errorf("%v cubies: got %d, want %d", k, counts[k], n)
		}
	}
}

func TestClassifyCounts(t *testing.T) {
	tests := []struct {
		faces [6]Color
		want  Kind
	}{
		{[6]Color{}, KindNone},
		{[6]Color{Green}, KindCenter},
		{[6]Color{Red, 0, Yellow}, KindEdge},
		{[6]Color{0, Orange, 0, White, 0, Blue}, KindCorner},
	}
	for _, tt := range tests {
		if got := Classify(tt.faces); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.faces, got, tt.want)
		}
	}
}

func TestGroupUngroupRestoresGrid(t *testing.T) {
	for i, q := range quat.Canonical() {
		for _, s := range allSlices() {
			c := New()
			c.SetOrientation(q)
			before := localGrid(c)

			if err := c.GroupSlice(s); err != nil {
				t.Fatalf("orientation %d slice %v: %v", i, s, err)
			}
			if n := len(c.Group().Children()); n != 9 {
				t.Fatalf("orientation %d slice %v: grouped %d cubies, want 9", i, s, n)
			}
			c.UngroupSlice()

			if c.Group() != nil {
				t.Fatalf("group should be cleared after ungroup")
			}
			if n := len(c.Root().Children()); n != 27 {
				t.Fatalf("root has %d children after ungroup, want 27", n)
			}
			for cb, pos := range before {
				p := cb.Node.Position
				if p.X != math.Round(p.X) || p.Y != math.Round(p.Y) || p.Z != math.Round(p.Z) {
					t.Errorf("cubie %v position not integral: %v", cb.Home, p)
				}
				if got := p.Grid(); got != pos {
					t.Errorf("orientation %d slice %v: cubie %v moved %v -> %v", i, s, cb.Home, pos, got)
				}
			}
		}
	}
}

func TestGroupUngroupOffGridOrientation(t *testing.T) {
	tilts := []quat.Quat{
		quat.FromEuler(0.3, -0.2, 0.1),
		quat.FromAxisAngle(quat.Vec3{X: 1, Y: 1, Z: 1}.Scale(1/math.Sqrt(3)), 1.0),
		quat.FromAxisAngle(quat.Vec3{Y: 1}, math.Pi/4),
	}
	turns := []float64{0, math.Pi / 2, math.Pi}

	for i, tilt := range tilts {
		for _, s := range allSlices() {
			for _, angle := range turns {
				c := New()
				c.SetOrientation(quat.Canonical()[i*5].Mul(tilt))
				before := localGrid(c)

				if err := c.GroupSlice(s); err != nil {
					t.Fatalf("tilt %d slice %v: %v", i, s, err)
				}
				if n := len(c.Group().Children()); n != 9 {
					t.Fatalf("tilt %d slice %v: grouped %d cubies, want 9", i, s, n)
				}
				turn := quat.FromAxisAngle(s.Axis.Unit(), angle)
				c.Group().Orientation = turn
				c.UngroupSlice()

				if n := len(c.Root().Children()); n != 27 {
					t.Fatalf("root has %d children after ungroup, want 27", n)
				}
				for cb, pos := range before {
					want := pos
					if s.Matches(pos) {
						p := quat.Vec3{X: float64(pos[0]), Y: float64(pos[1]), Z: float64(pos[2])}
						want = turn.Rotate(p).Grid()
					}
					if got := cb.Node.Position.Grid(); got != want {
						t.Errorf("tilt %d slice %v turn %.2f: cubie %v at %v, want %v", i, s, angle, cb.Home, got, want)
					}
				}
			}
		}
	}
}

func TestGroupSliceTwiceFails(t *testing.T) {
	c := New()
	if err := c.GroupSlice(Slice{Axis: quat.AxisZ, Layer: 1}); err != nil {
		t.Fatal(err)
	}
	err := c.GroupSlice(Slice{Axis: quat.AxisX, Layer: 0})
	if !errors.Is(err, ErrSliceGrouped) {
		t.Fatalf("expected ErrSliceGrouped, got %v", err)
	}
}

func TestUngroupWithoutGroupIsNoop(t *testing.T) {
	c := New()
	c.UngroupSlice()
	if n := len(c.Root().Children()); n != 27 {
		t.Errorf("root has %d children, want 27", n)
	}
}

func TestQuarterTurnsReturnHome(t *testing.T) {
	for _, s := range allSlices() {
		c := New()
		for i := 0; i < 4; i++ {
			if err := c.GroupSlice(s); err != nil {
				t.Fatal(err)
			}
			c.Group().Orientation = quat.FromAxisAngle(s.Axis.Unit(), -math.Pi/2)
			c.UngroupSlice()

			for _, cb := range c.Cubies() {
				if s.Matches(cb.Home) != s.Matches(cb.GridPosition()) {
					t.Fatalf("slice %v turn %d: cubie %v left its layer", s, i, cb.Home)
				}
			}
		}
		for _, cb := range c.Cubies() {
			if cb.GridPosition() != cb.Home {
				t.Errorf("slice %v: cubie %v at %v after four turns", s, cb.Home, cb.GridPosition())
			}
		}
		if c.Net() != New().Net() {
			t.Errorf("slice %v: net differs after four turns:\n%s", s, c.Net())
		}
	}
}

func TestSolvedNet(t *testing.T) {
	c := New()
	want := map[NetFace]Color{NetU: Yellow, NetD: White, NetF: Green, NetB: Blue, NetR: Orange, NetL: Red}
	for f, color := range want {
		for i, got := range c.Facelets(f) {
			if got != color {
				t.Errorf("face %d facelet %d: got %v, want %v", f, i, got, color)
			}
		}
	}
}

func TestFrontTurnMovesTopRow(t *testing.T) {
	c := New()
	if err := c.GroupSlice(Slice{Axis: quat.AxisZ, Layer: 1}); err != nil {
		t.Fatal(err)
	}
	c.Group().Orientation = quat.FromAxisAngle(quat.Vec3{Z: 1}, -math.Pi/2)
	c.UngroupSlice()

	// A clockwise front turn brings the left face's colors to the bottom
	// row of the top face.
	up := c.Facelets(NetU)
	for _, i := range []int{6, 7, 8} {
		if up[i] != Red {
			t.Errorf("U facelet %d: got %v, want R", i, up[i])
		}
	}
	front := c.Facelets(NetF)
	for i, got := range front {
		if got != Green {
			t.Errorf("F facelet %d: got %v, want G", i, got)
		}
	}
}

func TestSliceStringAndParse(t *testing.T) {
	for _, s := range allSlices() {
		got, err := ParseSlice(s.String())
		if err != nil {
			t.Fatalf("ParseSlice(%q): %v", s.String(), err)
		}
		if got != s {
			t.Errorf("ParseSlice(%q) = %v", s.String(), got)
		}
	}
	if got := (Slice{Axis: quat.AxisZ, Layer: 1}).String(); got != "[null,null,1]" {
		t.Errorf("String() = %q", got)
	}
	for _, bad := range []string{"", "[1,2]", "[null,null,null]", "[1,null,1]", "[null,2,null]"} {
		if _, err := ParseSlice(bad); err == nil {
			t.Errorf("ParseSlice(%q) should fail", bad)
		}
	}
}

func TestSolved(t *testing.T) {
	c := New()
	if !c.Solved() {
		t.Fatal("new puzzle should be solved")
	}
	c.SetOrientation(quat.FromAxisAngle(quat.Vec3{X: 1}, math.Pi/2))
	if !c.Solved() {
		t.Error("rotating the whole puzzle should keep it solved")
	}
	if err := c.GroupSlice(Slice{Axis: quat.AxisX, Layer: -1}); err != nil {
		t.Fatal(err)
	}
	c.Group().Orientation = quat.FromAxisAngle(quat.Vec3{X: 1}, math.Pi/2)
	c.UngroupSlice()
	if c.Solved() {
		t.Error("a quarter turn should unsolve the puzzle")
	}
}
