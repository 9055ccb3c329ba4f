package input

//go:generate stringer -type=Key -trimprefix=Key

// Key identifies a virtual key independent of keyboard layout.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyNum0
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeySpace
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftSuper
	KeyRightSuper
	KeyMinus
	KeyEqual
	KeyComma
	KeyPeriod
	KeySlash
	KeySemicolon
	KeyApostrophe
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeyGrave
	KeyCapsLock
)

const numKeys = int(KeyCapsLock) + 1

// Valid reports whether k is a known key other than KeyUnknown.
func (k Key) Valid() bool {
	return k > KeyUnknown && int(k) < numKeys
}

// IsModifier reports whether k is one of the shift, control, alt or super keys.
func (k Key) IsModifier() bool {
	return k >= KeyLeftShift && k <= KeyRightSuper
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, numKeys)
	for k := KeyUnknown + 1; int(k) < numKeys; k++ {
		m[k.String()] = k
	}
	return m
}()

// KeyByName looks a key up by its String form, e.g. "Escape", "Q" or "Num1".
func KeyByName(name string) (Key, bool) {
	k, ok := keysByName[name]
	return k, ok
}
