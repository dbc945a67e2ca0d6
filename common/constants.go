package common

const (
	BaseWidth  = 800
	BaseHeight = 600

	// TPS is the fixed update rate the physics step is derived from.
	TPS = 60

	// Gravity is in pixels per second squared, pointing down the screen.
	Gravity = 300.0
)
