package component

import "image/color"

// Score is the HUD counter. Text is the string the HUD should show and
// RenderedText the string currently baked into the sprite image.
type Score struct {
	Value        int
	Format       string
	Color        color.Color
	Scale        float64
	Text         string
	RenderedText string
}

var ScoreComponent = NewComponent[Score]()
