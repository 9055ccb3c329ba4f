// Package controller holds the behaviours that steer controlled entities.
package controller

import (
	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/gametime"
	"github.com/plus3/hearth/input"
	"github.com/plus3/hearth/vmath"
)

const (
	// AccelerationRate is the default velocity change per second of held input.
	AccelerationRate = 400.0
	// MaxAcceleration bounds acceleration in units/s². Not enforced yet.
	MaxAcceleration = 800.0
)

// Controller updates an entity's velocity from the frame's input.
// Implementations must not retain vel beyond the call.
type Controller interface {
	DoActions(entity ecs.EntityId, t gametime.GameTime, vel *vmath.Vec2, events input.Events)
}

// Func adapts a function to the Controller interface.
type Func func(entity ecs.EntityId, t gametime.GameTime, vel *vmath.Vec2, events input.Events)

func (f Func) DoActions(entity ecs.EntityId, t gametime.GameTime, vel *vmath.Vec2, events input.Events) {
	f(entity, t, vel, events)
}

// None leaves velocity untouched.
type None struct{}

func (None) DoActions(ecs.EntityId, gametime.GameTime, *vmath.Vec2, input.Events) {}

// Human steers with the arrow keys. Every directional key event in the
// batch, whether a press edge or a repeat, accelerates along its axis.
type Human struct {
	// Rate overrides AccelerationRate when non-zero.
	Rate float64
}

// NewHuman returns a Human using AccelerationRate.
func NewHuman() *Human {
	return &Human{}
}

func (h *Human) rate() float64 {
	if h.Rate != 0 {
		return h.Rate
	}
	return AccelerationRate
}

func (h *Human) DoActions(_ ecs.EntityId, t gametime.GameTime, vel *vmath.Vec2, events input.Events) {
	step := h.rate() * t.ElapsedSeconds()
	for _, e := range events {
		if !e.IsVirtKey() {
			continue
		}
		switch e.Key {
		case input.KeyLeft:
			vel.X -= step
		case input.KeyRight:
			vel.X += step
		case input.KeyUp:
			vel.Y -= step
		case input.KeyDown:
			vel.Y += step
		}
	}
}
