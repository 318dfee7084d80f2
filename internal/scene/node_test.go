package scene

import (
	"math"
	"testing"

	"github.com/SeamusWaldron/cubie/internal/quat"
)

func near(a, b quat.Vec3) bool {
	d := a.Sub(b)
	return math.Sqrt(d.Dot(d)) < 1e-9
}

func TestWorldTransformComposes(t *testing.T) {
	root := NewNode("root")
	root.Orientation = quat.FromAxisAngle(quat.Vec3{Z: 1}, math.Pi/2)
	child := NewNode("child")
	child.Position = quat.Vec3{X: 1}
	root.Add(child)

	if got := child.WorldPosition(); !near(got, quat.Vec3{Y: 1}) {
		t.Errorf("world position = %v, want (0,1,0)", got)
	}
	if !quat.Equals(child.WorldOrientation(), root.Orientation) {
		t.Errorf("world orientation = %v, want %v", child.WorldOrientation(), root.Orientation)
	}
}

func TestAttachPreservesWorldTransform(t *testing.T) {
	root := NewNode("root")
	root.Orientation = quat.FromEuler(0.3, -0.8, 0.1)

	child := NewNode("child")
	child.Position = quat.Vec3{X: 1, Y: -1, Z: 1}
	child.Orientation = quat.FromEuler(0.5, 0, 0)
	root.Add(child)

	group := NewNode("group")
	group.Orientation = quat.FromAxisAngle(quat.Vec3{Y: 1}, 0.7)
	root.Add(group)

	wp, wo := child.WorldPosition(), child.WorldOrientation()
	group.Attach(child)

	if child.Parent() != group {
		t.Fatal("child should now belong to group")
	}
	if len(root.Children()) != 1 {
		t.Errorf("root should only keep the group, has %d children", len(root.Children()))
	}
	if got := child.WorldPosition(); !near(got, wp) {
		t.Errorf("world position changed: %v -> %v", wp, got)
	}
	if got := child.WorldOrientation(); !quat.Equals(got, wo) {
		t.Errorf("world orientation changed: %v -> %v", wo, got)
	}

	root.Attach(child)
	if got := child.Position; !near(got, quat.Vec3{X: 1, Y: -1, Z: 1}) {
		t.Errorf("round trip position = %v", got)
	}
}

func TestChildrenIsACopy(t *testing.T) {
	root := NewNode("root")
	a, b := NewNode("a"), NewNode("b")
	root.Add(a)
	root.Add(b)

	other := NewNode("other")
	for _, c := range root.Children() {
		other.Attach(c)
	}
	if len(root.Children()) != 0 || len(other.Children()) != 2 {
		t.Errorf("re-parenting while iterating lost nodes: root=%d other=%d",
			len(root.Children()), len(other.Children()))
	}
}

func TestToLocal(t *testing.T) {
	n := NewNode("n")
	n.Position = quat.Vec3{X: 2}
	n.Orientation = quat.FromAxisAngle(quat.Vec3{Z: 1}, math.Pi/2)
	if got := n.ToLocal(quat.Vec3{X: 2, Y: 1}); !near(got, quat.Vec3{X: 1}) {
		t.Errorf("ToLocal = %v, want (1,0,0)", got)
	}
}
