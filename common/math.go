package common

// Intersects reports whether two top-left anchored rectangles overlap.
// Touching edges do not count.
func Intersects(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && ax+aw > bx && ay < by+bh && ay+ah > by
}

