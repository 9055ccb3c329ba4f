package ebitenplatform

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/hearth/input"
)

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyA: input.KeyA, ebiten.KeyB: input.KeyB, ebiten.KeyC: input.KeyC,
	ebiten.KeyD: input.KeyD, ebiten.KeyE: input.KeyE, ebiten.KeyF: input.KeyF,
	ebiten.KeyG: input.KeyG, ebiten.KeyH: input.KeyH, ebiten.KeyI: input.KeyI,
	ebiten.KeyJ: input.KeyJ, ebiten.KeyK: input.KeyK, ebiten.KeyL: input.KeyL,
	ebiten.KeyM: input.KeyM, ebiten.KeyN: input.KeyN, ebiten.KeyO: input.KeyO,
	ebiten.KeyP: input.KeyP, ebiten.KeyQ: input.KeyQ, ebiten.KeyR: input.KeyR,
	ebiten.KeyS: input.KeyS, ebiten.KeyT: input.KeyT, ebiten.KeyU: input.KeyU,
	ebiten.KeyV: input.KeyV, ebiten.KeyW: input.KeyW, ebiten.KeyX: input.KeyX,
	ebiten.KeyY: input.KeyY, ebiten.KeyZ: input.KeyZ,

	ebiten.KeyDigit0: input.KeyNum0, ebiten.KeyDigit1: input.KeyNum1,
	ebiten.KeyDigit2: input.KeyNum2, ebiten.KeyDigit3: input.KeyNum3,
	ebiten.KeyDigit4: input.KeyNum4, ebiten.KeyDigit5: input.KeyNum5,
	ebiten.KeyDigit6: input.KeyNum6, ebiten.KeyDigit7: input.KeyNum7,
	ebiten.KeyDigit8: input.KeyNum8, ebiten.KeyDigit9: input.KeyNum9,

	ebiten.KeyF1: input.KeyF1, ebiten.KeyF2: input.KeyF2, ebiten.KeyF3: input.KeyF3,
	ebiten.KeyF4: input.KeyF4, ebiten.KeyF5: input.KeyF5, ebiten.KeyF6: input.KeyF6,
	ebiten.KeyF7: input.KeyF7, ebiten.KeyF8: input.KeyF8, ebiten.KeyF9: input.KeyF9,
	ebiten.KeyF10: input.KeyF10, ebiten.KeyF11: input.KeyF11, ebiten.KeyF12: input.KeyF12,

	ebiten.KeyEscape:    input.KeyEscape,
	ebiten.KeyEnter:     input.KeyEnter,
	ebiten.KeyTab:       input.KeyTab,
	ebiten.KeyBackspace: input.KeyBackspace,
	ebiten.KeySpace:     input.KeySpace,
	ebiten.KeyInsert:    input.KeyInsert,
	ebiten.KeyDelete:    input.KeyDelete,
	ebiten.KeyHome:      input.KeyHome,
	ebiten.KeyEnd:       input.KeyEnd,
	ebiten.KeyPageUp:    input.KeyPageUp,
	ebiten.KeyPageDown:  input.KeyPageDown,

	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyArrowDown:  input.KeyDown,

	ebiten.KeyShiftLeft:    input.KeyLeftShift,
	ebiten.KeyShiftRight:   input.KeyRightShift,
	ebiten.KeyControlLeft:  input.KeyLeftControl,
	ebiten.KeyControlRight: input.KeyRightControl,
	ebiten.KeyAltLeft:      input.KeyLeftAlt,
	ebiten.KeyAltRight:     input.KeyRightAlt,
	ebiten.KeyMetaLeft:     input.KeyLeftSuper,
	ebiten.KeyMetaRight:    input.KeyRightSuper,

	ebiten.KeyMinus:        input.KeyMinus,
	ebiten.KeyEqual:        input.KeyEqual,
	ebiten.KeyComma:        input.KeyComma,
	ebiten.KeyPeriod:       input.KeyPeriod,
	ebiten.KeySlash:        input.KeySlash,
	ebiten.KeySemicolon:    input.KeySemicolon,
	ebiten.KeyQuote:        input.KeyApostrophe,
	ebiten.KeyBracketLeft:  input.KeyLeftBracket,
	ebiten.KeyBracketRight: input.KeyRightBracket,
	ebiten.KeyBackslash:    input.KeyBackslash,
	ebiten.KeyBackquote:    input.KeyGrave,
	ebiten.KeyCapsLock:     input.KeyCapsLock,
}

// TranslateKey maps an ebiten key to a virtual key, or KeyUnknown.
func TranslateKey(k ebiten.Key) input.Key {
	if key, ok := keyMap[k]; ok {
		return key
	}
	return input.KeyUnknown
}

var mouseButtons = []struct {
	ebiten ebiten.MouseButton
	input  input.MouseButton
}{
	{ebiten.MouseButtonLeft, input.MouseLeft},
	{ebiten.MouseButtonRight, input.MouseRight},
	{ebiten.MouseButtonMiddle, input.MouseMiddle},
	{ebiten.MouseButton3, input.MouseBack},
	{ebiten.MouseButton4, input.MouseForward},
}
