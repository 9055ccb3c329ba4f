// Package tty runs the game in a terminal through tcell.
//
// Terminals report key presses, and auto-repeat, but never releases. The
// Adapter synthesizes a release once a key has gone quiet for longer than
// the terminal's repeat delay.
package tty

import (
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/hearth/input"
)

// DefaultReleaseAfter is slightly longer than the usual 500ms terminal
// auto-repeat delay.
const DefaultReleaseAfter = 600 * time.Millisecond

// Adapter converts tcell events into raw input events.
type Adapter struct {
	releaseAfter time.Duration
	lastSeen     map[input.Key]time.Time
	modifiers    input.Modifiers
}

// NewAdapter creates an adapter. A non-positive releaseAfter selects
// DefaultReleaseAfter.
func NewAdapter(releaseAfter time.Duration) *Adapter {
	if releaseAfter <= 0 {
		releaseAfter = DefaultReleaseAfter
	}
	return &Adapter{
		releaseAfter: releaseAfter,
		lastSeen:     make(map[input.Key]time.Time),
	}
}

// Translate converts one tcell event received at now.
func (a *Adapter) Translate(ev tcell.Event, now time.Time) []input.RawEvent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.translateKey(ev, now)
	case *tcell.EventFocus:
		if !ev.Focused {
			clear(a.lastSeen)
		}
		return []input.RawEvent{input.Focused{Focused: ev.Focused}}
	}
	return nil
}

func (a *Adapter) translateKey(ev *tcell.EventKey, now time.Time) []input.RawEvent {
	var out []input.RawEvent
	key, mods := translateKey(ev)

	if mods != a.modifiers {
		a.modifiers = mods
		out = append(out, input.ModifiersChanged{Modifiers: mods})
	}

	if key != input.KeyUnknown {
		if _, held := a.lastSeen[key]; !held {
			out = append(out, input.KeyboardInput{State: input.Pressed, Key: key, Modifiers: mods})
		}
		a.lastSeen[key] = now
	}

	if ev.Key() == tcell.KeyRune {
		out = append(out, input.ReceivedCharacter{Char: ev.Rune()})
	}
	return out
}

// Expire releases every key not seen within the release window, in key order.
func (a *Adapter) Expire(now time.Time) []input.RawEvent {
	var expired []input.Key
	for key, seen := range a.lastSeen {
		if now.Sub(seen) >= a.releaseAfter {
			expired = append(expired, key)
		}
	}
	if len(expired) == 0 {
		return nil
	}
	slices.Sort(expired)

	out := make([]input.RawEvent, 0, len(expired)+1)
	for _, key := range expired {
		delete(a.lastSeen, key)
		out = append(out, input.KeyboardInput{State: input.Released, Key: key, Modifiers: a.modifiers})
	}
	if len(a.lastSeen) == 0 && !a.modifiers.IsZero() {
		a.modifiers = input.Modifiers{}
		out = append(out, input.ModifiersChanged{})
	}
	return out
}

// Held returns the keys the adapter currently believes are down.
func (a *Adapter) Held() []input.Key {
	keys := make([]input.Key, 0, len(a.lastSeen))
	for key := range a.lastSeen {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
