package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// NetworkInput はネットワークの入力データを表す。
type NetworkInput struct {
	ID         string
	Name       string
	MaxDevices string
}

// ValidateNetwork はネットワークデータの全体バリデーションを行う。
func ValidateNetwork(input *NetworkInput) []error {
	var errs []error

	if input.ID == "" {
		errs = append(errs, fieldError("ID", "required"))
	} else if err := ValidateNetworkID(input.ID); err != nil {
		errs = append(errs, err)
	}
	if len(input.Name) > MaxNetworkNameLength {
		errs = append(errs, fieldError("Name", "must be at most %d characters", MaxNetworkNameLength))
	}
	if _, err := ParseMaxDevices(input.MaxDevices); err != nil {
		errs = append(errs, fieldError("MaxDevices", "must be a non-negative integer"))
	}

	return errs
}

// NormalizeNetworkInput は入力データを正規化する。
func NormalizeNetworkInput(input *NetworkInput) *NetworkInput {
	return &NetworkInput{
		ID:         strings.TrimSpace(input.ID),
		Name:       strings.TrimSpace(input.Name),
		MaxDevices: strings.TrimSpace(input.MaxDevices),
	}
}

// ParseMaxDevices は最大接続デバイス数を解析する。
func ParseMaxDevices(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative max devices: %d", n)
	}
	return n, nil
}

// ValidateSerial は証明書シリアルのバリデーションを行う。
func ValidateSerial(serial string) error {
	if serial == "" {
		return fieldError("Serial", "required")
	}
	if !SerialPattern.MatchString(serial) {
		return fieldError("Serial", "must be a hexadecimal string")
	}
	return nil
}
