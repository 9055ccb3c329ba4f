package input

import (
	"strconv"
	"strings"
)

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseBack
	MouseForward
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "MouseLeft"
	case MouseRight:
		return "MouseRight"
	case MouseMiddle:
		return "MouseMiddle"
	case MouseBack:
		return "MouseBack"
	case MouseForward:
		return "MouseForward"
	}
	return "MouseButton(" + strconv.Itoa(int(b)) + ")"
}

// Button is the identity used by the held-key table. Virtual keys map to
// themselves; mouse buttons live in a reserved range above every key.
type Button uint32

const mouseBucketBase Button = 1 << 16

// KeyButton returns the button for a virtual key.
func KeyButton(k Key) Button {
	return Button(k)
}

// MouseBucket returns the reserved button for a mouse button.
func MouseBucket(b MouseButton) Button {
	return mouseBucketBase + Button(b)
}

// Key returns the virtual key of b, or false for mouse buttons.
func (b Button) Key() (Key, bool) {
	if b >= mouseBucketBase {
		return KeyUnknown, false
	}
	return Key(b), true
}

// Mouse returns the mouse button of b, or false for keys.
func (b Button) Mouse() (MouseButton, bool) {
	if b < mouseBucketBase {
		return 0, false
	}
	return MouseButton(b - mouseBucketBase), true
}

func (b Button) String() string {
	if k, ok := b.Key(); ok {
		return k.String()
	}
	m, _ := b.Mouse()
	return m.String()
}

// Modifiers is a snapshot of the four modifier flags.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Super bool
}

// IsZero reports whether no modifier is set.
func (m Modifiers) IsZero() bool {
	return m == Modifiers{}
}

// String renders the set as "ctrl+alt+shift+super" with absent flags omitted.
func (m Modifiers) String() string {
	var parts []string
	if m.Ctrl {
		parts = append(parts, "ctrl")
	}
	if m.Alt {
		parts = append(parts, "alt")
	}
	if m.Shift {
		parts = append(parts, "shift")
	}
	if m.Super {
		parts = append(parts, "super")
	}
	return strings.Join(parts, "+")
}

// ElementState is the pressed or released state of a key or button.
type ElementState uint8

const (
	StateUnknown ElementState = iota
	Pressed
	Released
)

func (s ElementState) String() string {
	switch s {
	case Pressed:
		return "Pressed"
	case Released:
		return "Released"
	}
	return "Unknown"
}
