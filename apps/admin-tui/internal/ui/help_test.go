package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyBinding_Label(t *testing.T) {
	tests := []struct {
		name string
		kb   KeyBinding
		want string
	}{
		{"ファンクションキー", KeyBinding{Key: KeyRefresh}, "F5"},
		{"Ctrl", KeyBinding{Key: KeyQuit}, "Ctrl+Q"},
		{"文字キー", KeyBinding{Rune: RuneBlacklist}, "b"},
		{"未定義", KeyBinding{Key: tcell.KeyF12}, "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kb.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHelpText(t *testing.T) {
	text := helpText(GetDefaultHelpSections())

	for _, want := range []string{
		"[::b]Fleet Actions[::-]",
		"  b  Toggle device blacklist",
		"  v  Revoke node certificate serial",
		"  Ctrl+Q  Exit application",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("ヘルプに %q が含まれていない", want)
		}
	}
}
