package system

import (
	"github.com/plus3/hearth/component"
	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/gametime"
	"github.com/plus3/hearth/input"
)

// ControlSystem hands every controlled entity the frame's events so its
// controller can adjust the entity's velocity.
type ControlSystem struct {
	Time     ecs.Read[gametime.GameTime]
	Events   ecs.Read[input.Events]
	Entities ecs.Query[struct {
		Id       ecs.EntityId
		Position *component.Position
		Velocity *component.Velocity `ecs:"write"`
		Control  *component.Control  `ecs:"write"`
	}]
}

func (s *ControlSystem) Execute(*ecs.UpdateFrame) {
	t := s.Time.Get()
	events := s.Events.Get()
	for item := range s.Entities.Values() {
		item.Control.Controller.DoActions(item.Id, t, &item.Velocity.Vec2, events)
	}
}

// Register adds the control and movement systems to scheduler with control
// ordered first. It returns them for inspection.
func Register(scheduler *ecs.Scheduler) (*ControlSystem, *MovementSystem) {
	control := &ControlSystem{}
	movement := &MovementSystem{}
	scheduler.Register(control, ecs.WithName("control"))
	scheduler.Register(movement, ecs.WithName("movement"), ecs.RunsAfter(control))
	return control, movement
}
