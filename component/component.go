// Package component defines the components the game attaches to entities.
package component

import (
	"fmt"
	"image/color"

	"github.com/plus3/hearth/controller"
	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/vmath"
)

// Position is an entity's location in world units.
type Position struct {
	vmath.Vec2
}

// Velocity is an entity's rate of movement in world units per second.
type Velocity struct {
	vmath.Vec2
}

// Control attaches a controller to an entity.
type Control struct {
	Controller controller.Controller
}

// NewControl wraps c. It panics when c is nil.
func NewControl(c controller.Controller) Control {
	if c == nil {
		panic("component: nil controller")
	}
	return Control{Controller: c}
}

// Rectangle is a filled, axis aligned rectangle anchored at its top left corner.
type Rectangle struct {
	Width, Height float64
	Color         color.RGBA
}

// Render describes how an entity is drawn.
type Render struct {
	Rect Rectangle
	// Glyph is used by character frontends. Zero means '#'.
	Glyph rune
}

// NewRectangle returns a Render for a w by h rectangle.
func NewRectangle(w, h float64, c color.RGBA) Render {
	return Render{Rect: Rectangle{Width: w, Height: h, Color: c}}
}

// RuneOrDefault returns Glyph, or '#' when it is unset.
func (r Render) RuneOrDefault() rune {
	if r.Glyph == 0 {
		return '#'
	}
	return r.Glyph
}

func (r Render) String() string {
	return fmt.Sprintf("Rectangle(%gx%g)", r.Rect.Width, r.Rect.Height)
}

// Register adds every component in this package to the registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Control](registry)
	ecs.RegisterComponent[Render](registry)
}
