package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/hearth/ecs"
)

type Transform struct {
	X, Y float32
}

type Speed struct {
	DX, DY float32
}

type Hitpoints struct {
	Current, Max int
}

type FrameCounter struct {
	Frames int
}

type PhysicsSystem struct {
	Entities ecs.Query[struct {
		Transform *Transform `ecs:"write"`
		Speed     *Speed
	}]
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Entities.Values() {
		entity.Transform.X += entity.Speed.DX * float32(frame.DeltaTime)
		entity.Transform.Y += entity.Speed.DY * float32(frame.DeltaTime)
	}
}

type HealingSystem struct {
	Entities  ecs.Query[struct{ *Hitpoints }]
	Counter   ecs.Write[FrameCounter]
	RegenRate float32
}

func (s *HealingSystem) Execute(frame *ecs.UpdateFrame) {
	s.Counter.Get().Frames++
	for entity := range s.Entities.Values() {
		if entity.Hitpoints.Current < entity.Hitpoints.Max {
			entity.Hitpoints.Current += int(s.RegenRate * float32(frame.DeltaTime))
			if entity.Hitpoints.Current > entity.Hitpoints.Max {
				entity.Hitpoints.Current = entity.Hitpoints.Max
			}
		}
	}
}

// Access declares the write to Hitpoints that the plain Query field reads.
func (s *HealingSystem) Access() ecs.Access {
	return ecs.NewView[struct {
		Hitpoints *Hitpoints `ecs:"write"`
	}](nil).Access()
}

// ExampleScheduler demonstrates building a game loop with multiple systems.
// The Scheduler initializes Query, Read and Write fields at registration,
// orders systems by their declared dependencies and runs them once per call
// to Once. Structural changes wait for Storage.Maintain.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Speed](registry)
	ecs.RegisterComponent[Hitpoints](registry)
	storage := ecs.NewStorage(registry)
	ecs.InsertResource(storage.Resources(), FrameCounter{})

	storage.CreateEntity().With(
		Transform{X: 0, Y: 0},
		Speed{DX: 10, DY: 5},
		Hitpoints{Current: 80, Max: 100},
	).Build()
	storage.CreateEntity().With(
		Transform{X: 100, Y: 100},
		Speed{DX: -5, DY: -5},
		Hitpoints{Current: 50, Max: 100},
	).Build()
	storage.Maintain()

	physics := &PhysicsSystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&HealingSystem{RegenRate: 10}, ecs.RunsAfter(physics))
	scheduler.Register(physics)

	scheduler.Once(1.0)
	storage.Maintain()

	fmt.Println("Order:", scheduler.Order())

	view := ecs.NewView[struct {
		*Transform
		*Hitpoints
	}](storage)

	fmt.Println("After one frame:")
	for item := range view.Values() {
		fmt.Printf("Position: (%.0f, %.0f), Health: %d/%d\n",
			item.Transform.X, item.Transform.Y,
			item.Hitpoints.Current, item.Hitpoints.Max)
	}
	fmt.Println("Frames:", ecs.ReadResource[FrameCounter](storage.Resources()).Frames)

	// Output:
	// Order: [PhysicsSystem HealingSystem]
	// After one frame:
	// Position: (10, 5), Health: 90/100
	// Position: (95, 95), Health: 60/100
	// Frames: 1
}

// ExampleScheduler_Run demonstrates running a continuous loop.
// Run blocks, calling Once and then Storage.Maintain at a fixed interval
// until the context is cancelled.
func ExampleScheduler_Run() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Speed](registry)
	storage := ecs.NewStorage(registry)

	storage.CreateEntity().With(Transform{X: 0, Y: 0}, Speed{DX: 1, DY: 1}).Build()

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&PhysicsSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped with", storage.EntityCount(), "entity")
	// Output:
	// Scheduler stopped with 1 entity
}

// ExampleSystemFunc shows a function system with an explicit access declaration.
func ExampleSystemFunc() {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)
	ecs.InsertResource(storage.Resources(), FrameCounter{})

	counter := ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		ecs.WriteResource[FrameCounter](frame.Resources).Frames++
	})

	scheduler := ecs.NewScheduler(storage, ecs.WithParallel(true))
	scheduler.Register(counter, ecs.WithName("counter"),
		ecs.WithAccess(ecs.Access{WriteResources: ecs.TypesOf(FrameCounter{})}))

	for i := 0; i < 3; i++ {
		scheduler.Once(0.016)
	}

	fmt.Println(ecs.ReadResource[FrameCounter](storage.Resources()).Frames)
	// Output:
	// 3
}
