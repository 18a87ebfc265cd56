package decision

import (
	"unicode"

	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

const (
	maxIDLength     = 128
	maxActionLength = 64
)

// validateRequest はアクション種別に必要な項目が揃っているかを検証する。
// requiredFeatureは機能アクションの場合のみ指定する。
func validateRequest(req *model.DecisionRequest, requiredFeature string) error {
	if req == nil {
		return apperr.NewValidationError("request", "must not be empty")
	}
	if !validID(req.DeviceID) {
		return apperr.NewValidationError("device_id", "must be 1-128 printable characters")
	}
	if req.Action == "" || len(req.Action) > maxActionLength {
		return apperr.NewValidationError("action", "must be 1-64 characters")
	}

	switch req.Action {
	case model.ActionConnect:
		if !validID(req.NetworkID) {
			return apperr.NewValidationError("network_id", "required for connect")
		}
	case model.ActionTransmit:
		if !validID(req.NetworkID) {
			return apperr.NewValidationError("network_id", "required for transmit")
		}
		if req.DataSize == nil || *req.DataSize < 0 {
			return apperr.NewValidationError("data_size", "must be a non-negative integer")
		}
	case model.ActionAllocateResources:
		if req.Resources == nil {
			return apperr.NewValidationError("resources", "required for allocate_resources")
		}
	default:
		if requiredFeature != "" && req.Feature != "" && req.Feature != requiredFeature {
			return apperr.NewValidationError("feature", "does not match the action")
		}
	}
	return nil
}

func validID(s string) bool {
	if s == "" || len(s) > maxIDLength {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
