package input

import (
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// DefaultTextRepeat is the hold time after which repeats are classified as TextRepeat.
const DefaultTextRepeat = 250 * time.Millisecond

// FrameTime is the frame clock the translator stamps presses with.
type FrameTime interface {
	FrameStartTime() time.Duration
}

// Translator turns raw platform events into the per-frame event batch,
// tracking held buttons to synthesize repeat events. It is not safe for
// concurrent use; the frame driver owns it.
type Translator struct {
	keysDown       *intmap.Map[Button, time.Duration]
	modifiers      Modifiers
	frameEvents    Events
	textRepeat     time.Duration
	closeRequested bool
	logger         *zap.Logger
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithTextRepeat sets the EarlyRepeat to TextRepeat threshold.
func WithTextRepeat(d time.Duration) TranslatorOption {
	return func(t *Translator) {
		t.textRepeat = d
	}
}

// WithLogger sets the logger for focus changes and ignored raw events.
func WithLogger(logger *zap.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// NewTranslator creates a translator with nothing held.
func NewTranslator(opts ...TranslatorOption) *Translator {
	t := &Translator{
		keysDown:   intmap.New[Button, time.Duration](16),
		textRepeat: DefaultTextRepeat,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TextRepeat returns the configured repeat threshold.
func (t *Translator) TextRepeat() time.Duration {
	return t.textRepeat
}

// TranslateEvent applies one raw event at the given frame time and reports
// whether it added an event to the current frame.
func (t *Translator) TranslateEvent(raw RawEvent, now FrameTime) bool {
	switch ev := raw.(type) {
	case KeyboardInput:
		if !ev.Key.Valid() || !validState(ev.State) {
			t.ignore(raw)
			return false
		}
		t.modifiers = ev.Modifiers
		button := KeyButton(ev.Key)
		if ev.State == Released {
			t.keysDown.Del(button)
			return false
		}
		if t.keysDown.Has(button) {
			return false
		}
		t.keysDown.Put(button, now.FrameStartTime())
		t.frameEvents = append(t.frameEvents, VirtKeyEvent(ev.Key, t.modifiers, NoRepeat()))
		return true

	case MouseInput:
		if ev.Button > MouseForward || !validState(ev.State) {
			t.ignore(raw)
			return false
		}
		t.modifiers = ev.Modifiers
		button := MouseBucket(ev.Button)
		if ev.State == Released {
			t.keysDown.Del(button)
		} else if !t.keysDown.Has(button) {
			t.keysDown.Put(button, now.FrameStartTime())
		}
		return false

	case ReceivedCharacter:
		if !utf8.ValidRune(ev.Char) {
			t.ignore(raw)
			return false
		}
		t.frameEvents = append(t.frameEvents, CharacterEvent(ev.Char))
		return true

	case Focused:
		if !ev.Focused {
			t.logger.Debug("focus lost, releasing held buttons", zap.Int("held", t.keysDown.Len()))
			t.keysDown.Clear()
		}
		return false

	case ModifiersChanged:
		t.modifiers = ev.Modifiers
		return false

	case CloseRequested:
		t.closeRequested = true
		return false
	}

	t.ignore(raw)
	return false
}

func validState(s ElementState) bool {
	return s == Pressed || s == Released
}

func (t *Translator) ignore(raw RawEvent) {
	if ce := t.logger.Check(zap.DebugLevel, "ignoring raw event"); ce != nil {
		ce.Write(zap.String("event", fmt.Sprintf("%#v", raw)))
	}
}

// GetEvents hands over the events captured since the previous call, followed
// by a repeat event for every key still held, in ascending button order.
// Repeats use the current modifiers. A key pressed at exactly this frame's
// start time gets no repeat, since its press event already covers it.
func (t *Translator) GetEvents(now FrameTime) Events {
	events := t.frameEvents
	t.frameEvents = nil
	t.closeRequested = false

	frameStart := now.FrameStartTime()
	for _, button := range t.Held() {
		key, ok := button.Key()
		if !ok {
			continue
		}
		pressed, _ := t.keysDown.Get(button)
		held := frameStart - pressed
		if held <= 0 {
			continue
		}
		repeat := EarlyRepeat(held)
		if held >= t.textRepeat {
			repeat = TextRepeat(held)
		}
		events = append(events, VirtKeyEvent(key, t.modifiers, repeat))
	}
	return events
}

// Held returns the held buttons in ascending order.
func (t *Translator) Held() []Button {
	held := make([]Button, 0, t.keysDown.Len())
	t.keysDown.ForEach(func(b Button, _ time.Duration) bool {
		held = append(held, b)
		return true
	})
	slices.Sort(held)
	return held
}

// IsHeld reports whether the button is down.
func (t *Translator) IsHeld(b Button) bool {
	return t.keysDown.Has(b)
}

// HeldSince returns the frame time at which the button was first seen pressed.
func (t *Translator) HeldSince(b Button) (time.Duration, bool) {
	return t.keysDown.Get(b)
}

// Modifiers returns the last observed modifier snapshot.
func (t *Translator) Modifiers() Modifiers {
	return t.modifiers
}

// CloseRequested reports whether a close request arrived since the last GetEvents.
func (t *Translator) CloseRequested() bool {
	return t.closeRequested
}

// Pending returns the number of events captured for the current frame.
func (t *Translator) Pending() int {
	return len(t.frameEvents)
}
