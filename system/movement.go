// Package system holds the systems that advance the game world each frame.
package system

import (
	"github.com/plus3/hearth/component"
	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/gametime"
)

// MovementSystem integrates velocity into position using the frame's game time.
type MovementSystem struct {
	Time     ecs.Read[gametime.GameTime]
	Entities ecs.Query[struct {
		Position *component.Position `ecs:"write"`
		Velocity *component.Velocity
	}]
}

func (s *MovementSystem) Execute(*ecs.UpdateFrame) {
	dt := s.Time.Get().ElapsedSeconds()
	for item := range s.Entities.Values() {
		item.Position.Vec2 = item.Position.Add(item.Velocity.Scale(dt))
	}
}
