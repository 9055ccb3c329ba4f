// Package ebitenplatform reads ebiten's per-tick input state and reports it
// as raw input events.
package ebitenplatform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/hearth/input"
)

// State is the subset of ebiten's input API the poller reads.
type State interface {
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key
	AppendInputChars(runes []rune) []rune
	IsKeyPressed(key ebiten.Key) bool
	IsMouseButtonJustPressed(button ebiten.MouseButton) bool
	IsMouseButtonJustReleased(button ebiten.MouseButton) bool
	IsFocused() bool
	IsWindowBeingClosed() bool
}

// Live reads ebiten directly. It must be used from the game's Update.
type Live struct{}

func (Live) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func (Live) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(keys)
}

func (Live) AppendInputChars(runes []rune) []rune {
	return ebiten.AppendInputChars(runes)
}

func (Live) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (Live) IsFocused() bool {
	return ebiten.IsFocused()
}

func (Live) IsWindowBeingClosed() bool {
	return ebiten.IsWindowBeingClosed()
}

func (Live) IsMouseButtonJustPressed(button ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(button)
}

func (Live) IsMouseButtonJustReleased(button ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(button)
}

// Poller converts edge-triggered ebiten state into raw events, keeping just
// enough memory to report focus and modifier changes.
type Poller struct {
	state     State
	focused   bool
	modifiers input.Modifiers

	keys  []ebiten.Key
	chars []rune
	out   []input.RawEvent
}

// NewPoller creates a poller over state, assuming the window starts focused.
func NewPoller(state State) *Poller {
	return &Poller{state: state, focused: true}
}

// Poll returns the raw events since the previous call. The slice is reused
// by the next call.
func (p *Poller) Poll() []input.RawEvent {
	p.out = p.out[:0]

	if focused := p.state.IsFocused(); focused != p.focused {
		p.focused = focused
		p.out = append(p.out, input.Focused{Focused: focused})
	}

	mods := p.readModifiers()
	if mods != p.modifiers {
		p.modifiers = mods
		p.out = append(p.out, input.ModifiersChanged{Modifiers: mods})
	}

	p.keys = p.state.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		p.out = append(p.out, input.KeyboardInput{State: input.Released, Key: TranslateKey(k), Modifiers: mods})
	}
	p.keys = p.state.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		p.out = append(p.out, input.KeyboardInput{State: input.Pressed, Key: TranslateKey(k), Modifiers: mods})
	}

	p.chars = p.state.AppendInputChars(p.chars[:0])
	for _, ch := range p.chars {
		p.out = append(p.out, input.ReceivedCharacter{Char: ch})
	}

	for _, mb := range mouseButtons {
		if p.state.IsMouseButtonJustReleased(mb.ebiten) {
			p.out = append(p.out, input.MouseInput{State: input.Released, Button: mb.input, Modifiers: mods})
		}
		if p.state.IsMouseButtonJustPressed(mb.ebiten) {
			p.out = append(p.out, input.MouseInput{State: input.Pressed, Button: mb.input, Modifiers: mods})
		}
	}

	if p.state.IsWindowBeingClosed() {
		p.out = append(p.out, input.CloseRequested{})
	}
	return p.out
}

func (p *Poller) readModifiers() input.Modifiers {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if p.state.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return input.Modifiers{
		Shift: pressed(ebiten.KeyShiftLeft, ebiten.KeyShiftRight),
		Ctrl:  pressed(ebiten.KeyControlLeft, ebiten.KeyControlRight),
		Alt:   pressed(ebiten.KeyAltLeft, ebiten.KeyAltRight),
		Super: pressed(ebiten.KeyMetaLeft, ebiten.KeyMetaRight),
	}
}
