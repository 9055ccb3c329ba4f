package input_test

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/plus3/hearth/gametime"
	"github.com/plus3/hearth/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(d time.Duration) gametime.GameTime {
	return gametime.GameTime{FrameStart: d}
}

func press(k input.Key) input.KeyboardInput {
	return input.KeyboardInput{State: input.Pressed, Key: k}
}

func release(k input.Key) input.KeyboardInput {
	return input.KeyboardInput{State: input.Released, Key: k}
}

func TestTranslatorPress(t *testing.T) {
	t.Run("press emits one edge event", func(t *testing.T) {
		tr := input.NewTranslator()
		assert.True(t, tr.TranslateEvent(press(input.KeyA), at(time.Second)))

		events := tr.GetEvents(at(time.Second))
		assert.Equal(t, input.Events{input.VirtKeyEvent(input.KeyA, input.Modifiers{}, input.NoRepeat())}, events)
		assert.True(t, tr.IsHeld(input.KeyButton(input.KeyA)))
	})

	t.Run("press while held is idempotent", func(t *testing.T) {
		tr := input.NewTranslator()
		tr.TranslateEvent(press(input.KeyA), at(time.Second))
		assert.False(t, tr.TranslateEvent(press(input.KeyA), at(2*time.Second)))

		since, ok := tr.HeldSince(input.KeyButton(input.KeyA))
		require.True(t, ok)
		assert.Equal(t, time.Second, since)

		events := tr.GetEvents(at(time.Second))
		assert.Len(t, events, 1)
	})

	t.Run("edge events are delivered once", func(t *testing.T) {
		tr := input.NewTranslator()
		tr.TranslateEvent(press(input.KeyA), at(0))

		first := tr.GetEvents(at(0))
		second := tr.GetEvents(at(0))
		assert.Len(t, first, 1)
		assert.Empty(t, second)
	})

	t.Run("the replacement character is delivered", func(t *testing.T) {
		tr := input.NewTranslator()
		assert.True(t, tr.TranslateEvent(input.ReceivedCharacter{Char: utf8.RuneError}, at(0)))
		assert.Equal(t, input.Events{input.CharacterEvent(utf8.RuneError)}, tr.GetEvents(at(0)))
	})

	t.Run("characters are never deduplicated", func(t *testing.T) {
		tr := input.NewTranslator()
		assert.True(t, tr.TranslateEvent(input.ReceivedCharacter{Char: 'x'}, at(0)))
		assert.True(t, tr.TranslateEvent(input.ReceivedCharacter{Char: 'x'}, at(0)))

		events := tr.GetEvents(at(0))
		assert.Equal(t, input.Events{input.CharacterEvent('x'), input.CharacterEvent('x')}, events)
		assert.Equal(t, "xx", events.Text())
	})
}

func TestTranslatorRepeat(t *testing.T) {
	t.Run("escalating classification", func(t *testing.T) {
		tr := input.NewTranslator(input.WithTextRepeat(250 * time.Millisecond))
		start := 10 * time.Second
		tr.TranslateEvent(press(input.KeyRight), at(start))

		assert.Equal(t, input.Events{
			input.VirtKeyEvent(input.KeyRight, input.Modifiers{}, input.NoRepeat()),
		}, tr.GetEvents(at(start)))

		assert.Equal(t, input.Events{
			input.VirtKeyEvent(input.KeyRight, input.Modifiers{}, input.EarlyRepeat(100*time.Millisecond)),
		}, tr.GetEvents(at(start+100*time.Millisecond)))

		assert.Equal(t, input.Events{
			input.VirtKeyEvent(input.KeyRight, input.Modifiers{}, input.TextRepeat(300*time.Millisecond)),
		}, tr.GetEvents(at(start+300*time.Millisecond)))
	})

	t.Run("threshold itself is a text repeat", func(t *testing.T) {
		tr := input.NewTranslator()
		tr.TranslateEvent(press(input.KeyUp), at(0))
		tr.GetEvents(at(0))

		events := tr.GetEvents(at(input.DefaultTextRepeat))
		require.Len(t, events, 1)
		assert.Equal(t, input.RepeatText, events[0].Repeat.Kind)
	})

	t.Run("repeats follow captured events in button order", func(t *testing.T) {
		tr := input.NewTranslator()
		tr.TranslateEvent(press(input.KeyZ), at(0))
		tr.TranslateEvent(press(input.KeyB), at(0))
		tr.GetEvents(at(0))

		tr.TranslateEvent(input.ReceivedCharacter{Char: 'q'}, at(time.Millisecond))
		events := tr.GetEvents(at(time.Millisecond))
		require.Len(t, events, 3)
		assert.Equal(t, input.CharacterEvent('q'), events[0])
		assert.Equal(t, input.KeyB, events[1].Key)
		assert.Equal(t, input.KeyZ, events[2].Key)
	})

	t.Run("repeats carry the current modifiers", func(t *testing.T) {
		tr := input.NewTranslator()
		tr.TranslateEvent(press(input.KeyS), at(0))
		tr.GetEvents(at(0))

		ctrl := input.Modifiers{Ctrl: true}
		tr.TranslateEvent(input.ModifiersChanged{Modifiers: ctrl}, at(time.Millisecond))

		events := tr.GetEvents(at(time.Millisecond))
		require.Len(t, events, 1)
		assert.Equal(t, ctrl, events[0].Modifiers)
		assert.Equal(t, ctrl, tr.Modifiers())
	})

	t.Run("held mouse buttons produce no events", func(t *testing.T) {
		tr := input.NewTranslator()
		assert.False(t, tr.TranslateEvent(input.MouseInput{State: input.Pressed, Button: input.MouseLeft}, at(0)))
		assert.True(t, tr.IsHeld(input.MouseBucket(input.MouseLeft)))

		assert.Empty(t, tr.GetEvents(at(time.Second)))

		tr.TranslateEvent(input.MouseInput{State: input.Released, Button: input.MouseLeft}, at(time.Second))
		assert.False(t, tr.IsHeld(input.MouseBucket(input.MouseLeft)))
	})
}

func TestTranslatorRelease(t *testing.T) {
	t.Run("release removes exactly one entry", func(t *testing.T) {
		tr := input.NewTranslator()
		tr.TranslateEvent(press(input.KeyA), at(0))
		tr.TranslateEvent(press(input.KeyB), at(0))
		tr.TranslateEvent(press(input.KeyC), at(0))

		assert.False(t, tr.TranslateEvent(release(input.KeyB), at(0)))
		assert.Equal(t, []input.Button{input.KeyButton(input.KeyA), input.KeyButton(input.KeyC)}, tr.Held())
	})

	t.Run("releasing an unheld key is a no-op", func(t *testing.T) {
		tr := input.NewTranslator()
		tr.TranslateEvent(press(input.KeyA), at(0))
		tr.TranslateEvent(release(input.KeyQ), at(0))
		assert.Equal(t, []input.Button{input.KeyButton(input.KeyA)}, tr.Held())
	})

	t.Run("focus loss clears every held button", func(t *testing.T) {
		tr := input.NewTranslator()
		for _, k := range []input.Key{input.KeyA, input.KeyB, input.KeyLeft, input.KeyF5} {
			tr.TranslateEvent(press(k), at(0))
		}
		tr.TranslateEvent(input.MouseInput{State: input.Pressed, Button: input.MouseRight}, at(0))
		tr.GetEvents(at(0))

		tr.TranslateEvent(input.Focused{Focused: false}, at(time.Second))
		assert.Empty(t, tr.Held())
		assert.Empty(t, tr.GetEvents(at(2*time.Second)))
	})

	t.Run("focus gain keeps held buttons", func(t *testing.T) {
		tr := input.NewTranslator()
		tr.TranslateEvent(press(input.KeyA), at(0))
		tr.TranslateEvent(input.Focused{Focused: true}, at(0))
		assert.Len(t, tr.Held(), 1)
	})
}

func TestTranslatorHeldTable(t *testing.T) {
	// the table holds a button iff its latest event was a press not followed
	// by a release or focus loss
	type step struct {
		raw  input.RawEvent
		held []input.Key
	}
	steps := []step{
		{press(input.KeyA), []input.Key{input.KeyA}},
		{press(input.KeyB), []input.Key{input.KeyA, input.KeyB}},
		{press(input.KeyA), []input.Key{input.KeyA, input.KeyB}},
		{release(input.KeyA), []input.Key{input.KeyB}},
		{release(input.KeyA), []input.Key{input.KeyB}},
		{press(input.KeyC), []input.Key{input.KeyB, input.KeyC}},
		{input.Focused{Focused: false}, nil},
		{press(input.KeyA), []input.Key{input.KeyA}},
		{release(input.KeyA), nil},
	}

	tr := input.NewTranslator()
	for i, s := range steps {
		tr.TranslateEvent(s.raw, at(time.Duration(i)*time.Millisecond))
		var want []input.Button
		for _, k := range s.held {
			want = append(want, input.KeyButton(k))
		}
		if want == nil {
			want = []input.Button{}
		}
		assert.Equal(t, want, tr.Held(), "step %d", i)
	}
}

func TestTranslatorIgnoresMalformedEvents(t *testing.T) {
	tests := []struct {
		name string
		raw  input.RawEvent
	}{
		{"unknown key", input.KeyboardInput{State: input.Pressed, Key: input.KeyUnknown, Modifiers: input.Modifiers{Shift: true}}},
		{"out of range key", input.KeyboardInput{State: input.Pressed, Key: input.Key(60000)}},
		{"unknown state", input.KeyboardInput{State: input.StateUnknown, Key: input.KeyA}},
		{"invalid rune", input.ReceivedCharacter{Char: 0xD800}},
		{"unknown mouse button", input.MouseInput{State: input.Pressed, Button: input.MouseButton(200)}},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := input.NewTranslator()
			assert.False(t, tr.TranslateEvent(tt.raw, at(0)))
			assert.Empty(t, tr.Held())
			assert.Equal(t, input.Modifiers{}, tr.Modifiers())
			assert.Empty(t, tr.GetEvents(at(time.Second)))
		})
	}
}

func TestTranslatorCloseRequested(t *testing.T) {
	tr := input.NewTranslator()
	assert.False(t, tr.TranslateEvent(input.CloseRequested{}, at(0)))
	assert.True(t, tr.CloseRequested())

	tr.GetEvents(at(0))
	assert.False(t, tr.CloseRequested())
}
