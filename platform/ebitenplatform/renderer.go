package ebitenplatform

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/render"
)

// DefaultBackground is the clear color used when none is configured.
var DefaultBackground = color.RGBA{R: 204, G: 204, B: 204, A: 255}

// Renderer draws the scene onto an ebiten image.
type Renderer struct {
	scene      *render.Scene
	Background color.RGBA
}

// NewRenderer creates a renderer over storage. A zero background selects
// DefaultBackground.
func NewRenderer(storage *ecs.Storage, background color.RGBA) *Renderer {
	if background == (color.RGBA{}) {
		background = DefaultBackground
	}
	return &Renderer{scene: render.NewScene(storage), Background: background}
}

// Draw clears screen and fills one rectangle per drawable entity.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.Background)
	for _, rect := range r.scene.Collect() {
		vector.DrawFilledRect(screen,
			float32(rect.X), float32(rect.Y),
			float32(rect.Width), float32(rect.Height),
			rect.Color, false)
	}
}
