package format

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"短い", "rate burst", 20, "rate burst"},
		{"切り詰め", "unexpected protocol switch", 13, "unexpected..."},
		{"ちょうど", "probe", 5, "probe"},
		{"3文字以下", "probe", 3, "pro"},
		{"ゼロ", "probe", 0, ""},
		{"空文字", "", 5, ""},
		{"マルチバイト", "異常検知レポート", 6, "異常検..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"短い", "node-a", 19, "node-a"},
		{"フィンガープリント", "3f2a9c0d11e4b87a55c0", 11, "3f2a...55c0"},
		{"ちょうど", "0123456789", 10, "0123456789"},
		{"短い上限", "0123456789", 4, "0..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateMiddle(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("TruncateMiddle(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}
