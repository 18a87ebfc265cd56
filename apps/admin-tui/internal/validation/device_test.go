package validation

import (
	"reflect"
	"testing"
)

func TestValidateDevice(t *testing.T) {
	tests := []struct {
		name      string
		input     *DeviceInput
		wantCount int
	}{
		{
			name:  "valid input",
			input: &DeviceInput{ID: "aa:bb:cc:dd:ee:01", Features: "connect,transmit", Quota: "1048576", Mode: "both", Role: "sensor", Protocol: "wifi"},
		},
		{
			name:  "minimal input",
			input: &DeviceInput{ID: "dev-1", Mode: "read"},
		},
		{
			name:      "all invalid",
			input:     &DeviceInput{ID: "", Features: "Bad Feature", Quota: "-1", Mode: "sideways", Role: "Admin!", Protocol: "carrier-pigeon"},
			wantCount: 6,
		},
		{
			name:      "quota not a number",
			input:     &DeviceInput{ID: "dev-1", Quota: "10GB", Mode: "write"},
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateDevice(tt.input)
			if len(errs) != tt.wantCount {
				t.Errorf("ValidateDevice() errors = %v, want %d errors", errs, tt.wantCount)
			}
		})
	}
}

func TestNormalizeDeviceInput(t *testing.T) {
	input := &DeviceInput{
		ID:       "  AA:BB:CC:DD:EE:01 ",
		Features: " Transmit, connect ,transmit,, ",
		Quota:    " 100 ",
		Mode:     " BOTH ",
		Role:     " Network_Admin ",
		Protocol: " WiFi ",
	}

	got := NormalizeDeviceInput(input)
	want := &DeviceInput{
		ID:       "AA:BB:CC:DD:EE:01",
		Features: "connect,transmit",
		Quota:    "100",
		Mode:     "both",
		Role:     "network_admin",
		Protocol: "wifi",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeDeviceInput() = %+v, want %+v", got, want)
	}
}

func TestParseFeatures(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"transmit", []string{"transmit"}},
		{"transmit, connect, transmit", []string{"connect", "transmit"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFeatures(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFeatures(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseQuota(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"4096", 4096, false},
		{"-5", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuota(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuota(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseQuota(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
