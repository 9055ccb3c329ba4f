package input_test

import (
	"fmt"
	"time"

	"github.com/plus3/hearth/gametime"
	"github.com/plus3/hearth/input"
)

// ExampleTranslator walks one key through a press, two held frames and a release.
func ExampleTranslator() {
	tr := input.NewTranslator(input.WithTextRepeat(250 * time.Millisecond))

	frame := func(ms int) gametime.GameTime {
		return gametime.GameTime{FrameStart: time.Duration(ms) * time.Millisecond}
	}

	tr.TranslateEvent(input.KeyboardInput{State: input.Pressed, Key: input.KeyLeft}, frame(0))
	tr.TranslateEvent(input.ReceivedCharacter{Char: 'h'}, frame(0))
	fmt.Println(tr.GetEvents(frame(0)))
	fmt.Println(tr.GetEvents(frame(100)))
	fmt.Println(tr.GetEvents(frame(300)))

	tr.TranslateEvent(input.KeyboardInput{State: input.Released, Key: input.KeyLeft}, frame(316))
	fmt.Println(tr.GetEvents(frame(316)))

	// Output:
	// [VirtKey(Left, NoRepeat) Character('h')]
	// [VirtKey(Left, EarlyRepeat(100ms))]
	// [VirtKey(Left, TextRepeat(300ms))]
	// []
}

// ExampleInputMap binds commands from configuration strings.
func ExampleInputMap() {
	m := input.NewInputMap(input.NewCommandDirectory())
	_ = m.BindString("ctrl+q", "quit")
	_ = m.BindString("char:r", "reset")

	events := input.Events{
		input.CharacterEvent('r'),
		input.VirtKeyEvent(input.KeyQ, input.Modifiers{Ctrl: true}, input.NoRepeat()),
		input.VirtKeyEvent(input.KeyQ, input.Modifiers{Ctrl: true}, input.EarlyRepeat(time.Millisecond)),
	}
	for _, cmd := range m.Commands(events) {
		fmt.Println(cmd.Name)
	}

	// Output:
	// reset
	// quit
}
