package component

// LevelBounds stores the world-space size of the scene. The physics system
// walls it in.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
