package tty

import (
	"github.com/gdamore/tcell/v2"

	"github.com/plus3/hearth/input"
)

var namedKeys = map[tcell.Key]input.Key{
	tcell.KeyEscape:     input.KeyEscape,
	tcell.KeyEnter:      input.KeyEnter,
	tcell.KeyTab:        input.KeyTab,
	tcell.KeyBacktab:    input.KeyTab,
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
	tcell.KeyInsert:     input.KeyInsert,
	tcell.KeyDelete:     input.KeyDelete,
	tcell.KeyHome:       input.KeyHome,
	tcell.KeyEnd:        input.KeyEnd,
	tcell.KeyPgUp:       input.KeyPageUp,
	tcell.KeyPgDn:       input.KeyPageDown,
	tcell.KeyLeft:       input.KeyLeft,
	tcell.KeyRight:      input.KeyRight,
	tcell.KeyUp:         input.KeyUp,
	tcell.KeyDown:       input.KeyDown,
	tcell.KeyF1:         input.KeyF1,
	tcell.KeyF2:         input.KeyF2,
	tcell.KeyF3:         input.KeyF3,
	tcell.KeyF4:         input.KeyF4,
	tcell.KeyF5:         input.KeyF5,
	tcell.KeyF6:         input.KeyF6,
	tcell.KeyF7:         input.KeyF7,
	tcell.KeyF8:         input.KeyF8,
	tcell.KeyF9:         input.KeyF9,
	tcell.KeyF10:        input.KeyF10,
	tcell.KeyF11:        input.KeyF11,
	tcell.KeyF12:        input.KeyF12,
}

var punctuation = map[rune]input.Key{
	' ': input.KeySpace,
	'-': input.KeyMinus, '_': input.KeyMinus,
	'=': input.KeyEqual, '+': input.KeyEqual,
	',': input.KeyComma, '<': input.KeyComma,
	'.': input.KeyPeriod, '>': input.KeyPeriod,
	'/': input.KeySlash, '?': input.KeySlash,
	';': input.KeySemicolon, ':': input.KeySemicolon,
	'\'': input.KeyApostrophe, '"': input.KeyApostrophe,
	'[': input.KeyLeftBracket, '{': input.KeyLeftBracket,
	']': input.KeyRightBracket, '}': input.KeyRightBracket,
	'\\': input.KeyBackslash, '|': input.KeyBackslash,
	'`': input.KeyGrave, '~': input.KeyGrave,
}

// runeKey maps a typed rune to the key that most likely produced it.
func runeKey(r rune) (input.Key, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return input.KeyA + input.Key(r-'a'), false
	case r >= 'A' && r <= 'Z':
		return input.KeyA + input.Key(r-'A'), true
	case r >= '0' && r <= '9':
		return input.KeyNum0 + input.Key(r-'0'), false
	}
	if k, ok := punctuation[r]; ok {
		return k, false
	}
	return input.KeyUnknown, false
}

// translateKey returns the virtual key of ev, with any modifier the terminal
// folded into the key code made explicit.
func translateKey(ev *tcell.EventKey) (input.Key, input.Modifiers) {
	mods := translateModifiers(ev.Modifiers())
	key := ev.Key()

	if k, ok := namedKeys[key]; ok {
		return k, mods
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mods.Ctrl = true
		return input.KeyA + input.Key(key-tcell.KeyCtrlA), mods
	}
	if key == tcell.KeyRune {
		k, shifted := runeKey(ev.Rune())
		if shifted {
			mods.Shift = true
		}
		return k, mods
	}
	return input.KeyUnknown, mods
}

func translateModifiers(m tcell.ModMask) input.Modifiers {
	return input.Modifiers{
		Shift: m&tcell.ModShift != 0,
		Ctrl:  m&tcell.ModCtrl != 0,
		Alt:   m&tcell.ModAlt != 0,
		Super: m&tcell.ModMeta != 0,
	}
}
