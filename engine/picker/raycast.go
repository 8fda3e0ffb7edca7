package picker

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Hit is a single ray intersection with a collidable node.
type Hit struct {
	// NodeID is the stable id of the node that was hit.
	NodeID string

	// Distance is the ray parameter of the entry point.
	Distance float32

	// Point is the entry point in world space.
	Point mgl32.Vec3

	// Normal is the outward unit normal of the entered side, in the node's local space.
	Normal mgl32.Vec3
}

// Collidable is a scene node that carries an axis-aligned box collider in its local space.
type Collidable interface {
	ID() string
	Enabled() bool
	Transform() common.Transform
	Collider() (halfExtents mgl32.Vec3, ok bool)
}

// HitTester returns every node a ray passes through, nearest first.
type HitTester interface {
	HitTest(ray common.Ray) []Hit
}

type boxCaster struct {
	source func() []Collidable
}

var _ HitTester = &boxCaster{}

// NewBoxCaster creates a hit tester that intersects rays with the box colliders of
// the nodes returned by source. source is consulted on every query so nodes added
// after construction are found.
//
// Parameters:
//   - source: returns the current set of candidate nodes
//
// Returns:
//   - HitTester: the newly created hit tester
func NewBoxCaster(source func() []Collidable) HitTester {
	return &boxCaster{source: source}
}

func (b *boxCaster) HitTest(ray common.Ray) []Hit {
	if b.source == nil {
		return nil
	}
	var hits []Hit
	for _, n := range b.source() {
		if n == nil || !n.Enabled() {
			continue
		}
		half, ok := n.Collider()
		if !ok {
			continue
		}
		if h, ok := intersectBox(ray, n.Transform(), half); ok {
			h.NodeID = n.ID()
			hits = append(hits, h)
		}
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return hits
}

// intersectBox runs a slab test of ray against the box [-half, half] placed by t.
// Rays starting inside the box do not hit it.
func intersectBox(ray common.Ray, t common.Transform, half mgl32.Vec3) (Hit, bool) {
	inv := t.Rotation.Inverse()
	origin := inv.Rotate(ray.Origin.Sub(t.Position))
	dir := inv.Rotate(ray.Direction)
	for i := 0; i < 3; i++ {
		s := t.Scale[i]
		if s == 0 {
			return Hit{}, false
		}
		origin[i] /= s
		dir[i] /= s
	}

	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)
	axis := -1
	for i := 0; i < 3; i++ {
		if math32.Abs(dir[i]) < 1e-8 {
			if origin[i] < -half[i] || origin[i] > half[i] {
				return Hit{}, false
			}
			continue
		}
		t0 := (-half[i] - origin[i]) / dir[i]
		t1 := (half[i] - origin[i]) / dir[i]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
			axis = i
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return Hit{}, false
		}
	}
	if axis < 0 || tmin < 0 {
		return Hit{}, false
	}

	var normal mgl32.Vec3
	if dir[axis] > 0 {
		normal[axis] = -1
	} else {
		normal[axis] = 1
	}
	return Hit{
		Distance: tmin,
		Point:    ray.At(tmin),
		Normal:   normal,
	}, true
}
