// Package render ray-casts the puzzle for a character-cell display. It maps
// terminal cells to normalized pointer coordinates and finds the cubie
// under each cell.
package render

import (
	"math"

	"github.com/SeamusWaldron/cubie/internal/cube"
	"github.com/SeamusWaldron/cubie/internal/quat"
)

const (
	// HalfSize is half the edge length of a cubie box. Cubies sit on a unit
	// grid, so a thin gap shows between neighbors.
	HalfSize = 0.475

	// DefaultScale fits the puzzle in any orientation into the viewport.
	DefaultScale = 2.7

	// CellAspect is the height of a terminal cell over its width.
	CellAspect = 2.0

	edgeWidth = 0.07
	eyeZ      = 10.0
)

// Viewport is a grid of Width x Height terminal cells.
type Viewport struct {
	Width  int
	Height int
}

// Normalize maps the center of cell (col, row) to [-1,1] x [-1,1] with y
// pointing up.
func (v Viewport) Normalize(col, row int) quat.Vec2 {
	if v.Width <= 0 || v.Height <= 0 {
		return quat.Vec2{}
	}
	return quat.Vec2{
		X: (float64(col)+0.5)/float64(v.Width)*2 - 1,
		Y: -((float64(row)+0.5)/float64(v.Height)*2 - 1),
	}
}

// Aspect returns the physical width over height of the viewport.
func (v Viewport) Aspect() float64 {
	if v.Height <= 0 {
		return 1
	}
	return float64(v.Width) / (float64(v.Height) * CellAspect)
}

// Camera is an orthographic camera on the +Z axis looking toward -Z.
type Camera struct {
	Scale  float64 // world units from the viewport center to its shorter edge
	Aspect float64 // physical width over height
}

// NewCamera returns a camera framing the puzzle in v.
func NewCamera(v Viewport) Camera {
	return Camera{Scale: DefaultScale, Aspect: v.Aspect()}
}

// Ray returns the world-space ray through normalized point p.
func (c Camera) Ray(p quat.Vec2) (origin, dir quat.Vec3) {
	sx, sy := c.Scale, c.Scale
	if c.Aspect >= 1 {
		sx *= c.Aspect
	} else if c.Aspect > 0 {
		sy /= c.Aspect
	}
	return quat.Vec3{X: p.X * sx, Y: p.Y * sy, Z: eyeZ}, quat.Vec3{Z: -1}
}

// Hit is the nearest intersection of a ray with the puzzle.
type Hit struct {
	Cubie    *cube.Cubie
	Point    quat.Vec3 // world space
	Normal   quat.Vec3 // world space
	Color    cube.Color
	Edge     bool // near the border of the face
	Distance float64
}

// HitTest returns the nearest cubie under normalized point p.
func (c Camera) HitTest(puzzle *cube.Cube, p quat.Vec2) (Hit, bool) {
	origin, dir := c.Ray(p)

	var best Hit
	found := false
	for _, cb := range puzzle.Cubies() {
		h, ok := intersect(cb, origin, dir)
		if !ok {
			continue
		}
		if !found || h.Distance < best.Distance {
			best = h
			found = true
		}
	}
	return best, found
}

// intersect runs a slab test in the cubie's local frame.
func intersect(cb *cube.Cubie, origin, dir quat.Vec3) (Hit, bool) {
	wo := cb.Node.WorldOrientation()
	inv := wo.Conjugate()
	lo := cb.Node.ToLocal(origin)
	ld := inv.Rotate(dir)

	tmin, tmax := math.Inf(-1), math.Inf(1)
	enter := quat.AxisX
	for _, a := range []quat.Axis{quat.AxisX, quat.AxisY, quat.AxisZ} {
		o, d := lo.Get(a), ld.Get(a)
		if math.Abs(d) < 1e-12 {
			if o < -HalfSize || o > HalfSize {
				return Hit{}, false
			}
			continue
		}
		t1 := (-HalfSize - o) / d
		t2 := (HalfSize - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			enter = a
		}
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return Hit{}, false
		}
	}
	if tmax < 0 {
		return Hit{}, false
	}

	local := lo.Add(ld.Scale(tmin))
	var n quat.Vec3
	if ld.Get(enter) > 0 {
		n.Set(enter, -1)
	} else {
		n.Set(enter, 1)
	}

	color := cube.Background
	for _, f := range quat.Faces {
		if f.Normal() == n {
			color = cb.Faces[f]
			break
		}
	}

	edge := false
	for _, a := range []quat.Axis{quat.AxisX, quat.AxisY, quat.AxisZ} {
		if a != enter && math.Abs(local.Get(a)) > HalfSize-edgeWidth {
			edge = true
		}
	}

	return Hit{
		Cubie:    cb,
		Point:    origin.Add(dir.Scale(tmin)),
		Normal:   wo.Rotate(n),
		Color:    color,
		Edge:     edge,
		Distance: tmin,
	}, true
}

// Cell is what one terminal cell shows.
type Cell struct {
	Hit   bool
	Color cube.Color
	Edge  bool
}

// Frame samples the puzzle at the center of every cell of v, row by row.
func Frame(puzzle *cube.Cube, v Viewport) [][]Cell {
	cam := NewCamera(v)
	rows := make([][]Cell, v.Height)
	for row := range rows {
		rows[row] = make([]Cell, v.Width)
		for col := range rows[row] {
			h, ok := cam.HitTest(puzzle, v.Normalize(col, row))
			if !ok {
				continue
			}
			rows[row][col] = Cell{Hit: true, Color: h.Color, Edge: h.Edge}
		}
	}
	return rows
}
