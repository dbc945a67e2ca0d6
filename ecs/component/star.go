package component

// Star is one collectible in the star batch. Index is the star's position in
// the batch and fixes the order the compass scans targets in.
type Star struct {
	Index    int
	Active   bool
	Points   int
	Bounce   float64
	RespawnY float64
	Width    float64
	Height   float64
}

var StarComponent = NewComponent[Star]()
