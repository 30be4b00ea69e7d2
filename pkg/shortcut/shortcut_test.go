package shortcut

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCombo(t *testing.T) {
	tests := []struct {
		in   string
		want Combo
	}{
		{"ctrl+k", Combo{Ctrl: true, Key: 'k'}},
		{"Ctrl+K", Combo{Ctrl: true, Key: 'k'}},
		{" control+s ", Combo{Ctrl: true, Key: 's'}},
		{"alt+enter", Combo{Alt: true, Key: KeyEnter}},
		{"ctrl+alt+x", Combo{Ctrl: true, Alt: true, Key: 'x'}},
		{"esc", Combo{Key: KeyEscape}},
		{"ç", Combo{Key: 'ç'}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCombo(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "ctrl+", "shift+k", "ctrl+kk"} {
		_, err := ParseCombo(bad)
		assert.True(t, errors.Is(err, ErrInvalidCombo), "ParseCombo(%q) = %v", bad, err)
	}
}

func TestComboString(t *testing.T) {
	assert.Equal(t, "ctrl+k", MustParse("ctrl+k").String())
	assert.Equal(t, "alt+enter", MustParse("alt+enter").String())
	assert.Equal(t, "a", Combo{Key: 'a'}.String())
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		in    []byte
		want  Combo
		wantN int
	}{
		{"empty", nil, Combo{}, 0},
		{"ctrl+k", []byte{0x0b}, Combo{Ctrl: true, Key: 'k'}, 1},
		{"ctrl+c", []byte{0x03, 'x'}, Combo{Ctrl: true, Key: 'c'}, 1},
		{"enter", []byte{'\r'}, Combo{Key: KeyEnter}, 1},
		{"tab", []byte{'\t'}, Combo{Key: KeyTab}, 1},
		{"backspace", []byte{0x7f}, Combo{Key: KeyBackspace}, 1},
		{"upper letter", []byte{'M'}, Combo{Key: 'M'}, 1},
		{"alt+s", []byte{0x1b, 's'}, Combo{Alt: true, Key: 's'}, 2},
		{"lone escape", []byte{0x1b}, Combo{Key: KeyEscape}, 1},
		{"utf8", []byte("ã!"), Combo{Key: 'ã'}, 2},
		{"partial utf8", []byte("ã")[:1], Combo{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := Decode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantN, n)
		})
	}
}

func TestObserver(t *testing.T) {
	o := NewObserver()
	save := MustParse("ctrl+k")

	assert.False(t, o.Dispatch(save))

	var calls []string
	unA := o.Register(save, func() { calls = append(calls, "a") })
	unB := o.Register(save, func() { calls = append(calls, "b") })
	assert.True(t, o.Bound(save))

	assert.True(t, o.Dispatch(save))
	assert.Equal(t, []string{"a", "b"}, calls)

	unA()
	unA()
	calls = nil
	assert.True(t, o.Dispatch(save))
	assert.Equal(t, []string{"b"}, calls)

	unB()
	assert.False(t, o.Bound(save))
	assert.False(t, o.Dispatch(save))
}

func TestObserver_HandlerMayUnregister(t *testing.T) {
	o := NewObserver()
	c := MustParse("ctrl+s")

	var unregister func()
	fired := 0
	unregister = o.Register(c, func() {
		fired++
		unregister()
	})

	assert.True(t, o.Dispatch(c))
	assert.False(t, o.Dispatch(c))
	assert.Equal(t, 1, fired)
}
