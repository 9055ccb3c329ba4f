// Package render turns (Position, Render) pairs into draw commands.
package render

import (
	"image/color"

	"github.com/plus3/hearth/component"
	"github.com/plus3/hearth/ecs"
)

// Rect is one filled rectangle in world units.
type Rect struct {
	Entity        ecs.EntityId
	X, Y          float64
	Width, Height float64
	Color         color.RGBA
	Glyph         rune
}

type drawable struct {
	Id       ecs.EntityId
	Position *component.Position
	Render   *component.Render
}

// Scene collects draw commands from a storage. It must be used outside
// scheduler execution, after Maintain.
type Scene struct {
	view  *ecs.View[drawable]
	rects []Rect
}

// NewScene creates a scene over storage.
func NewScene(storage *ecs.Storage) *Scene {
	return &Scene{view: ecs.NewView[drawable](storage)}
}

// Collect returns the rectangles to draw this frame, in storage iteration
// order. The slice is reused by the next call.
func (s *Scene) Collect() []Rect {
	s.rects = s.rects[:0]
	for item := range s.view.Values() {
		r := item.Render.Rect
		s.rects = append(s.rects, Rect{
			Entity: item.Id,
			X:      item.Position.X,
			Y:      item.Position.Y,
			Width:  r.Width,
			Height: r.Height,
			Color:  r.Color,
			Glyph:  item.Render.RuneOrDefault(),
		})
	}
	return s.rects
}
