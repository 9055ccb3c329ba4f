package input

// RawEvent is a platform window or keyboard event before translation.
// The set of implementations is closed.
type RawEvent interface {
	rawEvent()
}

// KeyboardInput is a physical key press or release.
type KeyboardInput struct {
	State     ElementState
	ScanCode  uint32
	Key       Key
	Modifiers Modifiers
}

// MouseInput is a mouse button press or release.
type MouseInput struct {
	State     ElementState
	Button    MouseButton
	Modifiers Modifiers
}

// ReceivedCharacter is one decoded text character.
type ReceivedCharacter struct {
	Char rune
}

// Focused reports the window gaining or losing input focus.
type Focused struct {
	Focused bool
}

// ModifiersChanged carries a modifier snapshot without a key event.
type ModifiersChanged struct {
	Modifiers Modifiers
}

// CloseRequested is the user asking the window to close.
type CloseRequested struct{}

func (KeyboardInput) rawEvent()     {}
func (MouseInput) rawEvent()        {}
func (ReceivedCharacter) rawEvent() {}
func (Focused) rawEvent()           {}
func (ModifiersChanged) rawEvent()  {}
func (CloseRequested) rawEvent()    {}
