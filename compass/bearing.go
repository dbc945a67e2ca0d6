// Package compass finds the nearest active target from a viewer and turns the
// direction to it into a marker position at a fixed radius.
package compass

import "math"

// Point is a position in world space.
type Point struct {
	X float64
	Y float64
}

// Target is a collectible the compass may point at. Inactive targets are
// never selected.
type Target struct {
	Position Point
	Active   bool
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Bearing returns the angle in radians from one point to another.
func Bearing(from, to Point) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// Project returns the point radius units away from origin along angle.
func Project(origin Point, angle, radius float64) Point {
	return Point{
		X: origin.X + radius*math.Cos(angle),
		Y: origin.Y + radius*math.Sin(angle),
	}
}

// Nearest returns the index of the active target closest to viewer. Ties go
// to the target that appears first. ok is false when no target is active.
func Nearest(viewer Point, targets []Target) (idx int, ok bool) {
	best := math.Inf(1)
	bestIdx := -1
	for i := range targets {
		t := &targets[i]
		if !t.Active {
			continue
		}
		d := Distance(viewer, t.Position)
		if d < best {
			best = d
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return 0, false
	}
	return bestIdx, true
}

// NearestBearing returns the point at radius from viewer in the direction of
// the nearest active target. ok is false when there is nothing to point at;
// callers keep or hide their marker in that case.
func NearestBearing(viewer Point, targets []Target, radius float64) (Point, bool) {
	idx, ok := Nearest(viewer, targets)
	if !ok {
		return Point{}, false
	}
	angle := Bearing(viewer, targets[idx].Position)
	return Project(viewer, angle, radius), true
}
