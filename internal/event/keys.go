package event

import "fmt"

// Key identifies a key by the symbol it produces. Backends resolve it
// through the active keyboard layout, so modifiers such as Shift are
// already applied.
type Key int

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

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

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
	KeyReturn
	KeyTab
	KeySpace
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyLeftArrow
	KeyRightArrow
	KeyUpArrow
	KeyDownArrow

	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftSuper
	KeyRightSuper
	KeyCapsLock

	KeyMinus
	KeyEqual
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeySemicolon
	KeyQuote
	KeyBackTick
	KeyComma
	KeyPeriod
	KeySlash

	keyCount
)

var keyNames = map[Key]string{
	KeyUnknown:      "Unknown",
	KeyEscape:       "Escape",
	KeyReturn:       "Return",
	KeyTab:          "Tab",
	KeySpace:        "Space",
	KeyBackspace:    "Backspace",
	KeyDelete:       "Delete",
	KeyInsert:       "Insert",
	KeyHome:         "Home",
	KeyEnd:          "End",
	KeyPageUp:       "PageUp",
	KeyPageDown:     "PageDown",
	KeyLeftArrow:    "Left",
	KeyRightArrow:   "Right",
	KeyUpArrow:      "Up",
	KeyDownArrow:    "Down",
	KeyLeftShift:    "LeftShift",
	KeyRightShift:   "RightShift",
	KeyLeftControl:  "LeftControl",
	KeyRightControl: "RightControl",
	KeyLeftAlt:      "LeftAlt",
	KeyRightAlt:     "RightAlt",
	KeyLeftSuper:    "LeftSuper",
	KeyRightSuper:   "RightSuper",
	KeyCapsLock:     "CapsLock",
	KeyMinus:        "Minus",
	KeyEqual:        "Equal",
	KeyLeftBracket:  "LeftBracket",
	KeyRightBracket: "RightBracket",
	KeyBackslash:    "Backslash",
	KeySemicolon:    "Semicolon",
	KeyQuote:        "Quote",
	KeyBackTick:     "BackTick",
	KeyComma:        "Comma",
	KeyPeriod:       "Period",
	KeySlash:        "Slash",
}

func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + int(k-KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// symbolKeys maps X keysym names (as returned by keysym lookups) and their
// printable forms to physical keys. Shifted symbols map to the key that
// produces them on a US layout.
var symbolKeys = map[string]Key{
	"Escape":       KeyEscape,
	"Return":       KeyReturn,
	"KP_Enter":     KeyReturn,
	"Tab":          KeyTab,
	"ISO_Left_Tab": KeyTab,
	"space":        KeySpace,
	" ":            KeySpace,
	"BackSpace":    KeyBackspace,
	"Delete":       KeyDelete,
	"Insert":       KeyInsert,
	"Home":         KeyHome,
	"End":          KeyEnd,
	"Prior":        KeyPageUp,
	"Page_Up":      KeyPageUp,
	"Next":         KeyPageDown,
	"Page_Down":    KeyPageDown,
	"Left":         KeyLeftArrow,
	"Right":        KeyRightArrow,
	"Up":           KeyUpArrow,
	"Down":         KeyDownArrow,
	"Shift_L":      KeyLeftShift,
	"Shift_R":      KeyRightShift,
	"Control_L":    KeyLeftControl,
	"Control_R":    KeyRightControl,
	"Alt_L":        KeyLeftAlt,
	"Alt_R":        KeyRightAlt,
	"Meta_L":       KeyLeftSuper,
	"Meta_R":       KeyRightSuper,
	"Super_L":      KeyLeftSuper,
	"Super_R":      KeyRightSuper,
	"Caps_Lock":    KeyCapsLock,

	"minus": KeyMinus, "-": KeyMinus, "underscore": KeyMinus, "_": KeyMinus,
	"equal": KeyEqual, "=": KeyEqual, "plus": KeyEqual, "+": KeyEqual,
	"bracketleft": KeyLeftBracket, "[": KeyLeftBracket, "braceleft": KeyLeftBracket, "{": KeyLeftBracket,
	"bracketright": KeyRightBracket, "]": KeyRightBracket, "braceright": KeyRightBracket, "}": KeyRightBracket,
	"backslash": KeyBackslash, "\\": KeyBackslash, "bar": KeyBackslash, "|": KeyBackslash,
	"semicolon": KeySemicolon, ";": KeySemicolon, "colon": KeySemicolon, ":": KeySemicolon,
	"apostrophe": KeyQuote, "'": KeyQuote, "quoteright": KeyQuote, "quotedbl": KeyQuote, "\"": KeyQuote,
	"grave": KeyBackTick, "`": KeyBackTick, "quoteleft": KeyBackTick, "asciitilde": KeyBackTick, "~": KeyBackTick,
	"comma": KeyComma, ",": KeyComma, "less": KeyComma, "<": KeyComma,
	"period": KeyPeriod, ".": KeyPeriod, "greater": KeyPeriod, ">": KeyPeriod,
	"slash": KeySlash, "/": KeySlash, "question": KeySlash, "?": KeySlash,

	"exclam": Key1, "!": Key1,
	"at": Key2, "@": Key2,
	"numbersign": Key3, "#": Key3,
	"dollar": Key4, "$": Key4,
	"percent": Key5, "%": Key5,
	"asciicircum": Key6, "^": Key6,
	"ampersand": Key7, "&": Key7,
	"asterisk": Key8, "*": Key8,
	"parenleft": Key9, "(": Key9,
	"parenright": Key0, ")": Key0,
}

// KeyFromName resolves an X keysym name (for example "Return", "a",
// "Shift_L" or "F5") to a Key. Unrecognized names yield KeyUnknown.
func KeyFromName(name string) Key {
	if k, ok := symbolKeys[name]; ok {
		return k
	}
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return KeyA + Key(c-'a')
		case c >= 'A' && c <= 'Z':
			return KeyA + Key(c-'A')
		case c >= '0' && c <= '9':
			return Key0 + Key(c-'0')
		}
	}
	var n int
	if _, err := fmt.Sscanf(name, "F%d", &n); err == nil && n >= 1 && n <= 12 && name == fmt.Sprintf("F%d", n) {
		return KeyF1 + Key(n-1)
	}
	return KeyUnknown
}
