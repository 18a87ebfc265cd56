package decision

import (
	"errors"
	"strings"
	"testing"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

func TestValidateRequest(t *testing.T) {
	size := int64(0)
	tests := []struct {
		name      string
		req       *model.DecisionRequest
		feature   string
		wantField string
	}{
		{"authenticate", &model.DecisionRequest{DeviceID: "dev1", Action: model.ActionAuthenticate}, "", ""},
		{"transmitでサイズ0", &model.DecisionRequest{DeviceID: "dev1", Action: model.ActionTransmit, NetworkID: "n1", DataSize: &size}, "", ""},
		{"機能名一致", &model.DecisionRequest{DeviceID: "dev1", Action: "establish_mlo", Feature: "mlo"}, "mlo", ""},
		{"機能名省略", &model.DecisionRequest{DeviceID: "dev1", Action: "establish_mlo"}, "mlo", ""},
		{"device_id長すぎ", &model.DecisionRequest{DeviceID: strings.Repeat("a", 129), Action: model.ActionAuthenticate}, "", "device_id"},
		{"device_id制御文字", &model.DecisionRequest{DeviceID: "dev\x00", Action: model.ActionAuthenticate}, "", "device_id"},
		{"action長すぎ", &model.DecisionRequest{DeviceID: "dev1", Action: strings.Repeat("x", 65)}, "", "action"},
		{"transmitにnetwork_idなし", &model.DecisionRequest{DeviceID: "dev1", Action: model.ActionTransmit, DataSize: &size}, "", "network_id"},
		{"機能名不一致", &model.DecisionRequest{DeviceID: "dev1", Action: "establish_mlo", Feature: "emlsr"}, "mlo", "feature"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req, tt.feature)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("予期しないエラー: %v", err)
				}
				return
			}
			var verr *apperr.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}
