package input

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Trigger is an event shape with the repeat classification stripped off,
// used as the key of an InputMap.
type Trigger struct {
	Kind      Kind
	Char      rune
	Key       Key
	Modifiers Modifiers
}

// CharTrigger matches a character event.
func CharTrigger(ch rune) Trigger {
	return Trigger{Kind: KindCharacter, Char: ch}
}

// KeyTrigger matches a virtual key event with exactly the given modifiers.
func KeyTrigger(key Key, mods Modifiers) Trigger {
	return Trigger{Kind: KindVirtKey, Key: key, Modifiers: mods}
}

// TriggerOf returns the trigger an event would fire.
func TriggerOf(e Event) Trigger {
	if e.Kind == KindCharacter {
		return CharTrigger(e.Char)
	}
	return KeyTrigger(e.Key, e.Modifiers)
}

// String renders the trigger in the form accepted by ParseTrigger.
func (t Trigger) String() string {
	if t.Kind == KindCharacter {
		return "char:" + string(t.Char)
	}
	if t.Modifiers.IsZero() {
		return t.Key.String()
	}
	return t.Modifiers.String() + "+" + t.Key.String()
}

var keysByLowerName = func() map[string]Key {
	m := make(map[string]Key, len(keysByName))
	for name, k := range keysByName {
		m[strings.ToLower(name)] = k
	}
	for d := 0; d <= 9; d++ {
		m[fmt.Sprint(d)] = KeyNum0 + Key(d)
	}
	m["esc"] = KeyEscape
	m["return"] = KeyEnter
	return m
}()

// ParseTrigger parses bindings such as "ctrl+q", "Escape", "shift+Up" or "char:r".
// Key and modifier names are case-insensitive.
func ParseTrigger(s string) (Trigger, error) {
	if rest, ok := strings.CutPrefix(s, "char:"); ok {
		ch, size := utf8.DecodeRuneInString(rest)
		if ch == utf8.RuneError || size != len(rest) {
			return Trigger{}, fmt.Errorf("input: binding %q must name exactly one character", s)
		}
		return CharTrigger(ch), nil
	}

	parts := strings.Split(s, "+")
	var mods Modifiers
	for _, part := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "ctrl", "control":
			mods.Ctrl = true
		case "alt", "option":
			mods.Alt = true
		case "shift":
			mods.Shift = true
		case "super", "cmd", "meta":
			mods.Super = true
		default:
			return Trigger{}, fmt.Errorf("input: unknown modifier %q in binding %q", part, s)
		}
	}

	name := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	key, ok := keysByLowerName[name]
	if !ok {
		return Trigger{}, fmt.Errorf("input: unknown key %q in binding %q", name, s)
	}
	return KeyTrigger(key, mods), nil
}

type binding struct {
	id        CommandID
	repeating bool
}

// InputMap binds triggers to commands of a directory.
type InputMap struct {
	directory *CommandDirectory
	bindings  map[Trigger]binding
}

// NewInputMap creates an empty map over directory.
func NewInputMap(directory *CommandDirectory) *InputMap {
	return &InputMap{
		directory: directory,
		bindings:  make(map[Trigger]binding),
	}
}

// Directory returns the command directory the map resolves against.
func (m *InputMap) Directory() *CommandDirectory {
	return m.directory
}

// Bind fires cmd on the press edge of trigger. Character triggers fire on every character event.
func (m *InputMap) Bind(trigger Trigger, cmd Command) {
	m.bindings[trigger] = binding{id: cmd.ID}
}

// BindRepeating fires cmd on the press edge and on every repeat of trigger.
func (m *InputMap) BindRepeating(trigger Trigger, cmd Command) {
	m.bindings[trigger] = binding{id: cmd.ID, repeating: true}
}

// BindString parses trigger and binds it to the named command, registering the command if needed.
func (m *InputMap) BindString(trigger, command string) error {
	t, err := ParseTrigger(trigger)
	if err != nil {
		return err
	}
	m.Bind(t, m.directory.Register(command))
	return nil
}

// Unbind removes the binding of trigger, reporting whether one existed.
func (m *InputMap) Unbind(trigger Trigger) bool {
	if _, ok := m.bindings[trigger]; !ok {
		return false
	}
	delete(m.bindings, trigger)
	return true
}

func (m *InputMap) Len() int {
	return len(m.bindings)
}

// Lookup returns the command bound to a translated event.
func (m *InputMap) Lookup(e Event) (Command, bool) {
	b, ok := m.bindings[TriggerOf(e)]
	if !ok {
		return Command{}, false
	}
	if e.Kind == KindVirtKey && e.Repeat.Kind != RepeatNone && !b.repeating {
		return Command{}, false
	}
	return m.directory.ByID(b.id)
}

// MapRaw resolves a raw event directly: characters by value, key presses by
// key and modifiers. Releases and other events map to nothing.
func (m *InputMap) MapRaw(raw RawEvent) (Command, bool) {
	var trigger Trigger
	switch ev := raw.(type) {
	case ReceivedCharacter:
		trigger = CharTrigger(ev.Char)
	case KeyboardInput:
		if ev.State != Pressed || !ev.Key.Valid() {
			return Command{}, false
		}
		trigger = KeyTrigger(ev.Key, ev.Modifiers)
	default:
		return Command{}, false
	}
	b, ok := m.bindings[trigger]
	if !ok {
		return Command{}, false
	}
	return m.directory.ByID(b.id)
}

// Commands maps a batch to the commands it fires, in event order.
func (m *InputMap) Commands(events Events) []Command {
	var out []Command
	for _, e := range events {
		if cmd, ok := m.Lookup(e); ok {
			out = append(out, cmd)
		}
	}
	return out
}
