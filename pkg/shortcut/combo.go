// Package shortcut maps key combinations typed in a raw terminal to actions.
package shortcut

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Named keys that have no printable rune of their own.
const (
	KeyEnter     rune = '\r'
	KeyTab       rune = '\t'
	KeyEscape    rune = 0x1b
	KeyBackspace rune = 0x7f
)

var keyNames = map[string]rune{
	"enter":     KeyEnter,
	"tab":       KeyTab,
	"esc":       KeyEscape,
	"backspace": KeyBackspace,
	"space":     ' ',
}

// ErrInvalidCombo is returned by ParseCombo for malformed input.
var ErrInvalidCombo = errors.New("invalid key combination")

// Combo is a key with optional modifiers.
// ParseCombo and Decode store the letter of a ctrl combo in lower case.
type Combo struct {
	Ctrl bool
	Alt  bool
	Key  rune
}

// ParseCombo parses text such as "ctrl+k", "Alt+S" or "enter".
func ParseCombo(s string) (Combo, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	var c Combo
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl", "control":
			c.Ctrl = true
		case "alt", "meta":
			c.Alt = true
		default:
			return Combo{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidCombo, mod, s)
		}
	}

	key := parts[len(parts)-1]
	if r, ok := keyNames[key]; ok {
		c.Key = r
		return c, nil
	}
	if utf8.RuneCountInString(key) != 1 {
		return Combo{}, fmt.Errorf("%w: %q", ErrInvalidCombo, s)
	}
	c.Key, _ = utf8.DecodeRuneInString(key)
	return c, nil
}

// MustParse is ParseCombo for constants; it panics on error.
func MustParse(s string) Combo {
	c, err := ParseCombo(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Combo) String() string {
	var b strings.Builder
	if c.Ctrl {
		b.WriteString("ctrl+")
	}
	if c.Alt {
		b.WriteString("alt+")
	}
	for name, r := range keyNames {
		if r == c.Key {
			b.WriteString(name)
			return b.String()
		}
	}
	b.WriteRune(c.Key)
	return b.String()
}

// Printable reports whether the combo inserts a character as-is.
func (c Combo) Printable() bool {
	return !c.Ctrl && !c.Alt && unicode.IsPrint(c.Key)
}

// Decode reads one key press from the start of raw terminal input and
// returns it with the number of bytes consumed. n is 0 when buf is empty or
// holds an incomplete UTF-8 sequence.
//
// Control bytes 0x01-0x1a become ctrl+letter, except tab and carriage
// return which terminals cannot tell apart from ctrl+i and ctrl+m. An escape
// byte followed by another key is read as alt+key.
func Decode(buf []byte) (c Combo, n int) {
	if len(buf) == 0 {
		return Combo{}, 0
	}

	b := buf[0]
	switch {
	case b == byte(KeyEscape):
		if len(buf) > 1 && buf[1] != byte(KeyEscape) {
			inner, m := Decode(buf[1:])
			if m > 0 {
				inner.Alt = true
				return inner, m + 1
			}
		}
		return Combo{Key: KeyEscape}, 1
	case b == '\r' || b == '\n':
		return Combo{Key: KeyEnter}, 1
	case b == '\t':
		return Combo{Key: KeyTab}, 1
	case b == byte(KeyBackspace) || b == 0x08:
		return Combo{Key: KeyBackspace}, 1
	case b >= 0x01 && b <= 0x1a:
		return Combo{Ctrl: true, Key: rune('a' + b - 1)}, 1
	case b < utf8.RuneSelf:
		return Combo{Key: rune(b)}, 1
	}

	if !utf8.FullRune(buf) {
		return Combo{}, 0
	}
	r, size := utf8.DecodeRune(buf)
	return Combo{Key: r}, size
}
