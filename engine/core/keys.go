package core

import (
	"fmt"
	"strings"
)

// keyNames maps every key code to its name without the KEY_ prefix.
// Settings files refer to keys by these names.
var keyNames = map[KeyCode]string{
	KEY_BACKSPACE:    "BACKSPACE",
	KEY_ENTER:        "ENTER",
	KEY_TAB:          "TAB",
	KEY_SHIFT:        "SHIFT",
	KEY_PAUSE:        "PAUSE",
	KEY_CAPITAL:      "CAPITAL",
	KEY_ESCAPE:       "ESCAPE",
	KEY_CONVERT:      "CONVERT",
	KEY_NONCONVERT:   "NONCONVERT",
	KEY_ACCEPT:       "ACCEPT",
	KEY_MODECHANGE:   "MODECHANGE",
	KEY_SPACE:        "SPACE",
	KEY_PRIOR:        "PRIOR",
	KEY_NEXT:         "NEXT",
	KEY_END:          "END",
	KEY_HOME:         "HOME",
	KEY_LEFT:         "LEFT",
	KEY_UP:           "UP",
	KEY_RIGHT:        "RIGHT",
	KEY_DOWN:         "DOWN",
	KEY_SELECT:       "SELECT",
	KEY_PRINT:        "PRINT",
	KEY_EXECUTE:      "EXECUTE",
	KEY_SNAPSHOT:     "SNAPSHOT",
	KEY_INSERT:       "INSERT",
	KEY_DELETE:       "DELETE",
	KEY_HELP:         "HELP",
	KEY_A:            "A",
	KEY_B:            "B",
	KEY_C:            "C",
	KEY_D:            "D",
	KEY_E:            "E",
	KEY_F:            "F",
	KEY_G:            "G",
	KEY_H:            "H",
	KEY_I:            "I",
	KEY_J:            "J",
	KEY_K:            "K",
	KEY_L:            "L",
	KEY_M:            "M",
	KEY_N:            "N",
	KEY_O:            "O",
	KEY_P:            "P",
	KEY_Q:            "Q",
	KEY_R:            "R",
	KEY_S:            "S",
	KEY_T:            "T",
	KEY_U:            "U",
	KEY_V:            "V",
	KEY_W:            "W",
	KEY_X:            "X",
	KEY_Y:            "Y",
	KEY_Z:            "Z",
	KEY_LWIN:         "LWIN",
	KEY_RWIN:         "RWIN",
	KEY_APPS:         "APPS",
	KEY_SLEEP:        "SLEEP",
	KEY_NUMPAD0:      "NUMPAD0",
	KEY_NUMPAD1:      "NUMPAD1",
	KEY_NUMPAD2:      "NUMPAD2",
	KEY_NUMPAD3:      "NUMPAD3",
	KEY_NUMPAD4:      "NUMPAD4",
	KEY_NUMPAD5:      "NUMPAD5",
	KEY_NUMPAD6:      "NUMPAD6",
	KEY_NUMPAD7:      "NUMPAD7",
	KEY_NUMPAD8:      "NUMPAD8",
	KEY_NUMPAD9:      "NUMPAD9",
	KEY_MULTIPLY:     "MULTIPLY",
	KEY_ADD:          "ADD",
	KEY_SEPARATOR:    "SEPARATOR",
	KEY_SUBTRACT:     "SUBTRACT",
	KEY_DECIMAL:      "DECIMAL",
	KEY_DIVIDE:       "DIVIDE",
	KEY_F1:           "F1",
	KEY_F2:           "F2",
	KEY_F3:           "F3",
	KEY_F4:           "F4",
	KEY_F5:           "F5",
	KEY_F6:           "F6",
	KEY_F7:           "F7",
	KEY_F8:           "F8",
	KEY_F9:           "F9",
	KEY_F10:          "F10",
	KEY_F11:          "F11",
	KEY_F12:          "F12",
	KEY_F13:          "F13",
	KEY_F14:          "F14",
	KEY_F15:          "F15",
	KEY_F16:          "F16",
	KEY_F17:          "F17",
	KEY_F18:          "F18",
	KEY_F19:          "F19",
	KEY_F20:          "F20",
	KEY_F21:          "F21",
	KEY_F22:          "F22",
	KEY_F23:          "F23",
	KEY_F24:          "F24",
	KEY_NUMLOCK:      "NUMLOCK",
	KEY_SCROLL:       "SCROLL",
	KEY_NUMPAD_EQUAL: "NUMPAD_EQUAL",
	KEY_LSHIFT:       "LSHIFT",
	KEY_RSHIFT:       "RSHIFT",
	KEY_LCONTROL:     "LCONTROL",
	KEY_RCONTROL:     "RCONTROL",
	KEY_LMENU:        "LMENU",
	KEY_RMENU:        "RMENU",
	KEY_SEMICOLON:    "SEMICOLON",
	KEY_PLUS:         "PLUS",
	KEY_COMMA:        "COMMA",
	KEY_MINUS:        "MINUS",
	KEY_PERIOD:       "PERIOD",
	KEY_SLASH:        "SLASH",
	KEY_GRAVE:        "GRAVE",
}

var keyCodes = func() map[string]KeyCode {
	codes := make(map[string]KeyCode, len(keyNames))
	for code, name := range keyNames {
		codes[name] = code
	}
	return codes
}()

func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KeyCode(0x%02X)", uint16(k))
}

// ParseKeyCode resolves a key name, case-insensitively and with or without
// the KEY_ prefix.
func ParseKeyCode(name string) (KeyCode, error) {
	n := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(name)), "KEY_")
	code, ok := keyCodes[n]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownKey)
	}
	return code, nil
}

func (k *KeyCode) UnmarshalText(text []byte) error {
	code, err := ParseKeyCode(string(text))
	if err != nil {
		return err
	}
	*k = code
	return nil
}

func (k KeyCode) MarshalText() ([]byte, error) {
	name, ok := keyNames[k]
	if !ok {
		return nil, fmt.Errorf("key code 0x%02X: %w", uint16(k), ErrUnknownKey)
	}
	return []byte(name), nil
}
