package component

// Compass marks the indicator that orbits the player toward the nearest
// active star.
type Compass struct {
	Radius       float64
	HideWhenIdle bool
	HasBearing   bool
	TargetIndex  int
}

var CompassComponent = NewComponent[Compass]()
