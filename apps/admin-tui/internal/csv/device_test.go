package csv

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/oyaguma3/fleetguard/pkg/model"
)

func TestParseDeviceCSV_ValidData(t *testing.T) {
	csvData := `id,mode,quota,features,role,protocol
AA:BB:CC:DD:EE:01,both,1048576,transmit;connect,sensor,wifi
gw-01,read,0,,network_admin,
edge-7,write,42`

	devices, errs := ParseDeviceCSV(strings.NewReader(csvData))
	if len(errs) > 0 {
		t.Fatalf("ParseDeviceCSV() errors = %v, want no errors", errs)
	}
	if len(devices) != 3 {
		t.Fatalf("ParseDeviceCSV() got %d devices, want 3", len(devices))
	}

	want := &model.Device{
		ID:                "AA:BB:CC:DD:EE:01",
		SupportedFeatures: []string{"connect", "transmit"},
		Quota:             1048576,
		Mode:              model.ModeBoth,
		Role:              "sensor",
		Protocol:          "wifi",
	}
	if !reflect.DeepEqual(devices[0], want) {
		t.Errorf("devices[0] = %+v, want %+v", devices[0], want)
	}
	if devices[1].Role != model.RoleNetworkAdmin || len(devices[1].SupportedFeatures) != 0 {
		t.Errorf("devices[1] = %+v", devices[1])
	}
	if devices[2].Quota != 42 || devices[2].Mode != model.ModeWrite {
		t.Errorf("devices[2] = %+v", devices[2])
	}
}

func TestParseDeviceCSV_Errors(t *testing.T) {
	tests := []struct {
		name      string
		csvData   string
		wantValid int
	}{
		{
			name:    "Empty file",
			csvData: "",
		},
		{
			name:    "Wrong header",
			csvData: "mode,id,quota\n",
		},
		{
			name: "Invalid mode",
			csvData: `id,mode,quota
dev-1,sideways,0`,
		},
		{
			name: "Invalid quota",
			csvData: `id,mode,quota
dev-1,read,lots`,
		},
		{
			name: "Unknown protocol",
			csvData: `id,mode,quota,features,role,protocol
dev-1,read,0,,,smoke-signal`,
		},
		{
			name: "Duplicate id keeps first row",
			csvData: `id,mode,quota
dev-1,read,0
dev-1,write,0`,
			wantValid: 1,
		},
		{
			name: "Missing columns in data row",
			csvData: `id,mode,quota
dev-1,read`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devices, errs := ParseDeviceCSV(strings.NewReader(tt.csvData))
			if len(errs) == 0 {
				t.Error("ParseDeviceCSV() expected error, got none")
			}
			if len(devices) != tt.wantValid {
				t.Errorf("valid devices = %d, want %d", len(devices), tt.wantValid)
			}
		})
	}
}

func TestDeviceCSV_Roundtrip(t *testing.T) {
	original := []*model.Device{
		{ID: "dev-1", SupportedFeatures: []string{"connect", "transmit"}, Quota: 100, Mode: model.ModeBoth, Role: "sensor", Protocol: "zigbee"},
		{ID: "dev-2", SupportedFeatures: []string{}, Quota: 0, Mode: model.ModeRead},
	}

	var buf bytes.Buffer
	if err := WriteDeviceCSV(&buf, original); err != nil {
		t.Fatalf("WriteDeviceCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "id,mode,quota,features,role,protocol" {
		t.Errorf("Header = %q", lines[0])
	}

	parsed, errs := ParseDeviceCSV(strings.NewReader(buf.String()))
	if len(errs) > 0 {
		t.Fatalf("ParseDeviceCSV() errors = %v", errs)
	}
	if !reflect.DeepEqual(parsed, original) {
		t.Errorf("Roundtrip = %+v, want %+v", parsed, original)
	}
}
