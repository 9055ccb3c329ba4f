package input

import (
	"fmt"
	"time"
)

// Kind distinguishes character events from virtual key events.
type Kind uint8

const (
	KindCharacter Kind = iota + 1
	KindVirtKey
)

// RepeatKind classifies how long a key has been held.
type RepeatKind uint8

const (
	// RepeatNone marks the press edge of a hold.
	RepeatNone RepeatKind = iota
	// RepeatEarly marks a hold shorter than the text repeat threshold.
	RepeatEarly
	// RepeatText marks a hold at or past the text repeat threshold.
	RepeatText
)

func (k RepeatKind) String() string {
	switch k {
	case RepeatNone:
		return "NoRepeat"
	case RepeatEarly:
		return "EarlyRepeat"
	case RepeatText:
		return "TextRepeat"
	}
	return fmt.Sprintf("RepeatKind(%d)", uint8(k))
}

// Repeat is a repeat classification with the hold duration it was computed from.
// Duration is zero for RepeatNone.
type Repeat struct {
	Kind     RepeatKind
	Duration time.Duration
}

func NoRepeat() Repeat {
	return Repeat{Kind: RepeatNone}
}

func EarlyRepeat(held time.Duration) Repeat {
	return Repeat{Kind: RepeatEarly, Duration: held}
}

func TextRepeat(held time.Duration) Repeat {
	return Repeat{Kind: RepeatText, Duration: held}
}

func (r Repeat) String() string {
	if r.Kind == RepeatNone {
		return r.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", r.Kind, r.Duration)
}

// Event is one translated input event. Events compare by value.
type Event struct {
	Kind      Kind
	Char      rune
	Key       Key
	Modifiers Modifiers
	Repeat    Repeat
}

// CharacterEvent returns a character input event.
func CharacterEvent(ch rune) Event {
	return Event{Kind: KindCharacter, Char: ch}
}

// VirtKeyEvent returns a virtual key event.
func VirtKeyEvent(key Key, mods Modifiers, repeat Repeat) Event {
	return Event{Kind: KindVirtKey, Key: key, Modifiers: mods, Repeat: repeat}
}

func (e Event) IsCharacter() bool {
	return e.Kind == KindCharacter
}

func (e Event) IsVirtKey() bool {
	return e.Kind == KindVirtKey
}

func (e Event) String() string {
	switch e.Kind {
	case KindCharacter:
		return fmt.Sprintf("Character(%q)", e.Char)
	case KindVirtKey:
		if e.Modifiers.IsZero() {
			return fmt.Sprintf("VirtKey(%s, %s)", e.Key, e.Repeat)
		}
		return fmt.Sprintf("VirtKey(%s+%s, %s)", e.Modifiers, e.Key, e.Repeat)
	}
	return "Event(invalid)"
}

// Events is the batch of events for one frame. It is also the resource
// type the frame driver publishes for systems.
type Events []Event

// Pressed reports whether the batch holds the press edge of key.
func (es Events) Pressed(key Key) bool {
	for _, e := range es {
		if e.Kind == KindVirtKey && e.Key == key && e.Repeat.Kind == RepeatNone {
			return true
		}
	}
	return false
}

// Text returns the characters of the batch in order.
func (es Events) Text() string {
	var runes []rune
	for _, e := range es {
		if e.Kind == KindCharacter {
			runes = append(runes, e.Char)
		}
	}
	return string(runes)
}
