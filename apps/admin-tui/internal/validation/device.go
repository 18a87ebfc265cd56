package validation

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/oyaguma3/fleetguard/pkg/model"
)

// DeviceInput はデバイスの入力データを表す。
// Featuresはカンマ区切り、Quotaはバイト数の10進表記。
type DeviceInput struct {
	ID       string
	Features string
	Quota    string
	Mode     string
	Role     string
	Protocol string
}

// ValidateDeviceID はデバイスIDのバリデーションを行う。
func ValidateDeviceID(id string) error {
	if id == "" {
		return fieldError("ID", "required")
	}
	if !DeviceIDPattern.MatchString(id) {
		return fieldError("ID", "must be 1-64 characters of letters, digits, ':', '.', '_' or '-'")
	}
	return nil
}

// ValidateFeatures は宣言機能のバリデーションを行う。
func ValidateFeatures(features string) error {
	list := ParseFeatures(features)
	if len(list) > MaxFeatures {
		return fieldError("Features", "must be at most %d entries", MaxFeatures)
	}
	for _, f := range list {
		if !FeaturePattern.MatchString(f) {
			return fieldError("Features", "invalid feature %q", f)
		}
	}
	return nil
}

// ValidateQuota はクォータのバリデーションを行う。
func ValidateQuota(quota string) error {
	if _, err := ParseQuota(quota); err != nil {
		return fieldError("Quota", "must be a non-negative integer")
	}
	return nil
}

// ValidateMode はデータ方向モードのバリデーションを行う。
func ValidateMode(mode string) error {
	if !model.Mode(mode).Valid() {
		return fieldError("Mode", "must be read, write or both")
	}
	return nil
}

// ValidateRole はデバイスロールのバリデーションを行う。
func ValidateRole(role string) error {
	if !RolePattern.MatchString(role) {
		return fieldError("Role", "must contain only lowercase letters, digits and underscores")
	}
	return nil
}

// ValidateProtocol は主プロトコルのバリデーションを行う（空は許可）。
func ValidateProtocol(protocol string) error {
	if protocol != "" && !model.IsKnownProtocol(protocol) {
		return fieldError("Protocol", "must be one of %s", strings.Join(model.KnownProtocols, ", "))
	}
	return nil
}

// ValidateDevice はデバイスデータの全体バリデーションを行う。
func ValidateDevice(input *DeviceInput) []error {
	return collect(
		ValidateDeviceID(input.ID),
		ValidateFeatures(input.Features),
		ValidateQuota(input.Quota),
		ValidateMode(input.Mode),
		ValidateRole(input.Role),
		ValidateProtocol(input.Protocol),
	)
}

// NormalizeDeviceInput は入力データを正規化する。
// ID以外は小文字化し、機能リストは重複を除いて整列する。
func NormalizeDeviceInput(input *DeviceInput) *DeviceInput {
	return &DeviceInput{
		ID:       strings.TrimSpace(input.ID),
		Features: strings.Join(ParseFeatures(strings.ToLower(input.Features)), ","),
		Quota:    strings.TrimSpace(input.Quota),
		Mode:     strings.ToLower(strings.TrimSpace(input.Mode)),
		Role:     strings.ToLower(strings.TrimSpace(input.Role)),
		Protocol: strings.ToLower(strings.TrimSpace(input.Protocol)),
	}
}

// ParseFeatures はカンマ区切りの機能リストを分解する。
func ParseFeatures(s string) []string {
	features := []string{}
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" || slices.Contains(features, f) {
			continue
		}
		features = append(features, f)
	}
	slices.Sort(features)
	return features
}

// ParseQuota はクォータ文字列を解析する。空は0として扱う。
func ParseQuota(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative quota: %d", n)
	}
	return n, nil
}
