package ecs

// UpdateFrame is the context handed to every system for one scheduler invocation.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
	Resources *Resources
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  storage.Commands(),
		Storage:   storage,
		Resources: storage.Resources(),
	}
}
