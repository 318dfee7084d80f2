package cube

import (
	"fmt"
	"math"
	"strings"

	"github.com/SeamusWaldron/cubie/internal/quat"
	"github.com/SeamusWaldron/cubie/internal/scene"
)

// Slice selects the 9 cubies whose world grid coordinate on Axis equals
// Layer. The two other axes are unconstrained.
type Slice struct {
	Axis  quat.Axis
	Layer int
}

// Matches reports whether a grid position belongs to the slice.
func (s Slice) Matches(pos [3]int) bool {
	return pos[s.Axis] == s.Layer
}

// Valid reports whether the slice names an existing layer.
func (s Slice) Valid() bool {
	return s.Axis >= quat.AxisX && s.Axis <= quat.AxisZ && s.Layer >= -1 && s.Layer <= 1
}

// String renders the selector as a triple, e.g. [null,null,1].
func (s Slice) String() string {
	parts := []string{"null", "null", "null"}
	if s.Valid() {
		parts[s.Axis] = fmt.Sprint(s.Layer)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// ParseSlice parses the triple form produced by String.
func ParseSlice(text string) (Slice, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(text), "["), "]")
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return Slice{}, fmt.Errorf("cube: invalid slice %q", text)
	}

	var s Slice
	found := 0
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "null" {
			continue
		}
		var layer int
		if _, err := fmt.Sscan(p, &layer); err != nil {
			return Slice{}, fmt.Errorf("cube: invalid slice %q: %w", text, err)
		}
		s = Slice{Axis: quat.Axis(i), Layer: layer}
		found++
	}
	if found != 1 || !s.Valid() {
		return Slice{}, fmt.Errorf("cube: invalid slice %q", text)
	}
	return s, nil
}

// GroupSlice re-parents every cubie in the slice under a new group node
// attached to the root, so rotating the group rotates the slice.
func (c *Cube) GroupSlice(s Slice) error {
	if c.group != nil {
		return ErrSliceGrouped
	}
	if !s.Valid() {
		return fmt.Errorf("cube: cannot group invalid slice %v", s)
	}

	group := scene.NewNode("slice " + s.String())
	c.root.Add(group)
	for _, cb := range c.cubies {
		if cb.Node.Parent() != c.root {
			continue
		}
		if !s.Matches(cb.GridPosition()) {
			continue
		}
		group.Attach(cb.Node)
	}
	c.group = group
	return nil
}

// UngroupSlice moves the grouped cubies back under the root, keeping their
// world transform, and snaps their positions to the integer grid. No-op when
// nothing is grouped.
func (c *Cube) UngroupSlice() {
	if c.group == nil {
		return
	}
	for _, n := range c.group.Children() {
		c.root.Attach(n)
		n.Position = n.Position.Round()
		n.Orientation = snapOrientation(n.Orientation)
	}
	c.root.Remove(c.group)
	c.group = nil
}

// snapOrientation removes drift from a cubie orientation that should be a
// whole number of quarter turns.
func snapOrientation(q quat.Quat) quat.Quat {
	s := quat.FindClipped(q)
	if math.Abs(q.Dot(s)) > 1-1e-3 {
		if q.Dot(s) < 0 {
			return s.Negate()
		}
		return s
	}
	return q
}
