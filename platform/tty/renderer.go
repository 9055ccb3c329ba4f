package tty

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/render"
)

// Renderer draws the scene as glyphs, scaling the world onto the terminal grid.
type Renderer struct {
	scene      *render.Scene
	worldW     float64
	worldH     float64
	background tcell.Style
}

// NewRenderer creates a renderer for a world of worldW by worldH units.
func NewRenderer(storage *ecs.Storage, worldW, worldH float64, background color.RGBA) *Renderer {
	return &Renderer{
		scene:      render.NewScene(storage),
		worldW:     worldW,
		worldH:     worldH,
		background: tcell.StyleDefault.Background(rgb(background)),
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Draw clears screen and paints every drawable entity. Each entity covers
// at least one cell.
func (r *Renderer) Draw(screen tcell.Screen) {
	screen.SetStyle(r.background)
	screen.Clear()

	cols, rows := screen.Size()
	sx := float64(cols) / r.worldW
	sy := float64(rows) / r.worldH

	for _, rect := range r.scene.Collect() {
		style := r.background.Foreground(rgb(rect.Color))
		x0 := int(math.Floor(rect.X * sx))
		y0 := int(math.Floor(rect.Y * sy))
		x1 := max(x0+1, int(math.Ceil((rect.X+rect.Width)*sx)))
		y1 := max(y0+1, int(math.Ceil((rect.Y+rect.Height)*sy)))

		for y := max(y0, 0); y < min(y1, rows); y++ {
			for x := max(x0, 0); x < min(x1, cols); x++ {
				screen.SetContent(x, y, rect.Glyph, nil, style)
			}
		}
	}
	screen.Show()
}
