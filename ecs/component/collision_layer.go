package component

const (
	LayerSolid uint32 = 1 << iota
	LayerPlayer
	LayerStar
)

// CollisionLayer declares a collision category and the categories it collides
// with. Zero Category means LayerSolid, zero Mask means everything.
type CollisionLayer struct {
	Category uint32
	Mask     uint32
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
