package component

// ScreenSpace marks HUD entities. They are drawn after every world entity
// whatever their render layer.
type ScreenSpace struct{}

var ScreenSpaceComponent = NewComponent[ScreenSpace]()
