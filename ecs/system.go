package ecs

// System represents a behavior that operates on entities with specific components.
// Systems declare their access through Query, Read and Write fields (initialized
// by the Scheduler at registration) and optionally through AccessDeclarer.
// Fields of any other type hold custom state that persists between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a function to the System interface. Its access must be
// declared at registration with WithAccess.
type SystemFunc func(frame *UpdateFrame)

// Execute calls f(frame).
func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
