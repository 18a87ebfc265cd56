package radius

import (
	"errors"
	"net"
	"testing"

	radiuspkg "layeh.com/radius"
	"layeh.com/radius/rfc2865"
)

func TestExtractAccessAttributes(t *testing.T) {
	tests := []struct {
		name           string
		callingStation string
		userName       string
		wantDeviceID   string
		wantErr        error
	}{
		{
			name:           "Calling-Station-Idをハイフン区切りから正規化",
			callingStation: "AA-BB-CC-DD-EE-01",
			userName:       "user@example.com",
			wantDeviceID:   "aa:bb:cc:dd:ee:01",
		},
		{
			name:           "区切りなしMAC",
			callingStation: "aabbccddee02",
			wantDeviceID:   "aa:bb:cc:dd:ee:02",
		},
		{
			name:           "MAC以外のCalling-Station-Idはそのまま",
			callingStation: "sensor-0001",
			wantDeviceID:   "sensor-0001",
		},
		{
			name:         "User-Nameへフォールバック",
			userName:     " cam-17 ",
			wantDeviceID: "cam-17",
		},
		{
			name:    "識別子なし",
			wantErr: ErrMissingDeviceID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := radiuspkg.New(radiuspkg.CodeAccessRequest, []byte("secret"))
			if tt.callingStation != "" {
				_ = rfc2865.CallingStationID_SetString(p, tt.callingStation)
			}
			if tt.userName != "" {
				_ = rfc2865.UserName_SetString(p, tt.userName)
			}
			_ = rfc2865.NASIdentifier_SetString(p, "ap-01")

			attrs, err := ExtractAccessAttributes(p)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			if attrs.DeviceID != tt.wantDeviceID {
				t.Errorf("DeviceID = %q, want %q", attrs.DeviceID, tt.wantDeviceID)
			}
			if attrs.NASIdentifier != "ap-01" {
				t.Errorf("NASIdentifier = %q, want %q", attrs.NASIdentifier, "ap-01")
			}
		})
	}
}

func TestExtractAccountingAttributes(t *testing.T) {
	packet := radiuspkg.New(radiuspkg.CodeAccountingRequest, []byte("testing123"))

	addUint32Attr(packet, AttrTypeAcctStatusType, AcctStatusTypeInterim)
	packet.Add(radiuspkg.Type(AttrTypeAcctSessionID), []byte("sess-123"))
	_ = rfc2865.CallingStationID_SetString(packet, "AA:BB:CC:DD:EE:01")
	packet.Add(radiuspkg.Type(AttrTypeNASIPAddress), radiuspkg.Attribute(net.IPv4(192, 168, 1, 1).To4()))
	addUint32Attr(packet, AttrTypeAcctInputOct, 1000)
	addUint32Attr(packet, AttrTypeAcctInputGigaw, 1)
	addUint32Attr(packet, AttrTypeAcctOutputOct, 2000)
	addUint32Attr(packet, AttrTypeAcctSessionTime, 300)

	attrs, err := ExtractAccountingAttributes(packet)
	if err != nil {
		t.Fatalf("ExtractAccountingAttributes failed: %v", err)
	}

	if attrs.AcctStatusType != AcctStatusTypeInterim {
		t.Errorf("AcctStatusType = %d, want %d", attrs.AcctStatusType, AcctStatusTypeInterim)
	}
	if attrs.AcctSessionID != "sess-123" {
		t.Errorf("AcctSessionID = %q, want %q", attrs.AcctSessionID, "sess-123")
	}
	if attrs.DeviceID != "aa:bb:cc:dd:ee:01" {
		t.Errorf("DeviceID = %q, want %q", attrs.DeviceID, "aa:bb:cc:dd:ee:01")
	}
	if attrs.NasIPAddress != "192.168.1.1" {
		t.Errorf("NasIPAddress = %q, want %q", attrs.NasIPAddress, "192.168.1.1")
	}
	wantIn := uint64(1)<<32 + 1000
	if attrs.InputOctets != wantIn {
		t.Errorf("InputOctets = %d, want %d", attrs.InputOctets, wantIn)
	}
	if attrs.OutputOctets != 2000 {
		t.Errorf("OutputOctets = %d, want 2000", attrs.OutputOctets)
	}
	if attrs.TotalOctets() != wantIn+2000 {
		t.Errorf("TotalOctets = %d, want %d", attrs.TotalOctets(), wantIn+2000)
	}
	if attrs.SessionTime != 300 {
		t.Errorf("SessionTime = %d, want 300", attrs.SessionTime)
	}
}

func TestExtractAccountingAttributes_Missing(t *testing.T) {
	tests := []struct {
		name    string
		build   func(p *radiuspkg.Packet)
		wantErr error
	}{
		{
			name: "Acct-Status-Typeなし",
			build: func(p *radiuspkg.Packet) {
				p.Add(radiuspkg.Type(AttrTypeAcctSessionID), []byte("sess-1"))
			},
			wantErr: ErrMissingStatusType,
		},
		{
			name: "Acct-Session-Idなし",
			build: func(p *radiuspkg.Packet) {
				addUint32Attr(p, AttrTypeAcctStatusType, AcctStatusTypeStart)
			},
			wantErr: ErrMissingSessionID,
		},
		{
			name: "デバイス識別子なし",
			build: func(p *radiuspkg.Packet) {
				addUint32Attr(p, AttrTypeAcctStatusType, AcctStatusTypeStart)
				p.Add(radiuspkg.Type(AttrTypeAcctSessionID), []byte("sess-1"))
			},
			wantErr: ErrMissingDeviceID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := radiuspkg.New(radiuspkg.CodeAccountingRequest, []byte("secret"))
			tt.build(p)
			_, err := ExtractAccountingAttributes(p)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeMAC(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AA:BB:CC:DD:EE:FF", "aa:bb:cc:dd:ee:ff"},
		{"aabb.ccdd.eeff", "aa:bb:cc:dd:ee:ff"},
		{"AA-BB-CC-DD-EE-FF", "aa:bb:cc:dd:ee:ff"},
		{"zzbbccddeeff", "zzbbccddeeff"},
		{"short", "short"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeMAC(tt.in); got != tt.want {
				t.Errorf("NormalizeMAC(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
