package render

import (
	"math"
	"testing"

	"github.com/SeamusWaldron/cubie/internal/cube"
	"github.com/SeamusWaldron/cubie/internal/quat"
)

func TestViewportNormalize(t *testing.T) {
	v := Viewport{Width: 4, Height: 2}
	tests := []struct {
		col, row int
		want     quat.Vec2
	}{
		{0, 0, quat.Vec2{X: -0.75, Y: 0.5}},
		{3, 1, quat.Vec2{X: 0.75, Y: -0.5}},
		{2, 0, quat.Vec2{X: 0.25, Y: 0.5}},
	}
	for _, tt := range tests {
		got := v.Normalize(tt.col, tt.row)
		if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
			t.Errorf("Normalize(%d,%d) = %v, want %v", tt.col, tt.row, got, tt.want)
		}
	}
	if (Viewport{}).Normalize(1, 1) != (quat.Vec2{}) {
		t.Error("empty viewport should map to the origin")
	}
}

func TestHitTestCenter(t *testing.T) {
	p := cube.New()
	cam := Camera{Scale: 2, Aspect: 1}

	h, ok := cam.HitTest(p, quat.Vec2{})
	if !ok {
		t.Fatal("center ray should hit the puzzle")
	}
	if h.Cubie.Home != [3]int{0, 0, 1} {
		t.Errorf("hit cubie %v, want front center", h.Cubie.Home)
	}
	if h.Cubie.Kind != cube.KindCenter {
		t.Errorf("kind = %v, want center", h.Cubie.Kind)
	}
	if h.Color != cube.Green {
		t.Errorf("color = %v, want green", h.Color)
	}
	if math.Abs(h.Point.Z-(1+HalfSize)) > 1e-9 {
		t.Errorf("hit z = %f, want %f", h.Point.Z, 1+HalfSize)
	}
	if math.Abs(h.Normal.Z-1) > 1e-9 {
		t.Errorf("normal = %v, want +Z", h.Normal)
	}
}

func TestHitTestCornerGrabPoint(t *testing.T) {
	p := cube.New()
	cam := Camera{Scale: 2, Aspect: 1}

	h, ok := cam.HitTest(p, quat.Vec2{X: 0.5, Y: 0.5})
	if !ok {
		t.Fatal("ray should hit the top right corner")
	}
	if h.Cubie.Kind != cube.KindCorner {
		t.Errorf("kind = %v, want corner", h.Cubie.Kind)
	}
	if got := h.Point.Round(); got != (quat.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("rounded hit point = %v, want (1,1,1)", got)
	}
}

func TestHitTestMiss(t *testing.T) {
	p := cube.New()
	cam := Camera{Scale: 2, Aspect: 1}
	if _, ok := cam.HitTest(p, quat.Vec2{X: 0.95, Y: 0.95}); ok {
		t.Error("ray outside the puzzle should miss")
	}
}

func TestHitTestFollowsOrientation(t *testing.T) {
	p := cube.New()
	p.SetOrientation(quat.FromAxisAngle(quat.Vec3{Y: 1}, math.Pi/2))
	cam := Camera{Scale: 2, Aspect: 1}

	h, ok := cam.HitTest(p, quat.Vec2{})
	if !ok {
		t.Fatal("center ray should hit")
	}
	// A quarter turn about +Y brings -X to the front.
	if h.Color != cube.Red {
		t.Errorf("color = %v, want red", h.Color)
	}
}

func TestHitTestEdgeFlag(t *testing.T) {
	p := cube.New()
	cam := Camera{Scale: 1, Aspect: 1}

	h, ok := cam.HitTest(p, quat.Vec2{X: 0.45})
	if !ok {
		t.Fatal("ray should hit")
	}
	if !h.Edge {
		t.Error("point near the cubie border should be flagged as edge")
	}
	h, _ = cam.HitTest(p, quat.Vec2{})
	if h.Edge {
		t.Error("face center should not be an edge")
	}
}

func TestFrame(t *testing.T) {
	v := Viewport{Width: 40, Height: 20}
	frame := Frame(cube.New(), v)
	if len(frame) != 20 || len(frame[0]) != 40 {
		t.Fatalf("frame is %dx%d", len(frame[0]), len(frame))
	}
	center := frame[10][20]
	if !center.Hit || center.Color != cube.Green {
		t.Errorf("center cell = %+v, want green hit", center)
	}
	if frame[0][0].Hit {
		t.Error("corner cell should be background")
	}
}
