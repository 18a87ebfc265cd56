package format

import "testing"

func TestBytes(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{1 << 30, "1.00 GB"},
		{1 << 40, "1.00 TB"},
		{1 << 50, "1024.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Bytes(tt.input); got != tt.want {
				t.Errorf("Bytes(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBytesShort(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1.0K"},
		{10 * 1024 * 1024, "10.0M"},
		{1 << 30, "1.0G"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := BytesShort(tt.input); got != tt.want {
				t.Errorf("BytesShort(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUsage(t *testing.T) {
	tests := []struct {
		name  string
		used  int64
		quota int64
		want  string
	}{
		{"half", 512, 1024, "512 B / 1.00 KB (50%)"},
		{"full", 1024, 1024, "1.00 KB / 1.00 KB (100%)"},
		{"unused", 0, 2048, "0 B / 2.00 KB (0%)"},
		{"no quota", 100, 0, "100 B / 0 B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Usage(tt.used, tt.quota); got != tt.want {
				t.Errorf("Usage(%d, %d) = %q, want %q", tt.used, tt.quota, got, tt.want)
			}
		})
	}
}
