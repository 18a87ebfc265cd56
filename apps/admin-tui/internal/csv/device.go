package csv

import (
	"io"
	"strconv"
	"strings"

	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/validation"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// DeviceCSVHeader はデバイスCSVのヘッダー行。features以降は省略できる。
var DeviceCSVHeader = []string{"id", "mode", "quota", "features", "role", "protocol"}

// featureSeparator はfeatures列内の区切り文字。
// カンマはCSVの列区切りと衝突するため使わない。
const featureSeparator = ";"

var deviceLayout = layout{header: DeviceCSVHeader, required: 3, keyName: "id"}

func deviceKey(d *model.Device) string { return d.ID }

// ParseDeviceCSV はデバイスCSVを読み込む。
// 同じIDが複数行にある場合は最初の行を採用し、以降をエラーとする。
func ParseDeviceCSV(r io.Reader) ([]*model.Device, []error) {
	return parseAll(r, deviceLayout, parseDeviceRow, deviceKey)
}

func parseDeviceRow(rec row) (*model.Device, []error) {
	input := validation.NormalizeDeviceInput(&validation.DeviceInput{
		ID:       rec.col(0),
		Mode:     rec.col(1),
		Quota:    rec.col(2),
		Features: strings.ReplaceAll(rec.col(3), featureSeparator, ","),
		Role:     rec.col(4),
		Protocol: rec.col(5),
	})
	if verrs := validation.ValidateDevice(input); len(verrs) > 0 {
		return nil, verrs
	}

	quota, _ := validation.ParseQuota(input.Quota)
	return &model.Device{
		ID:                input.ID,
		SupportedFeatures: validation.ParseFeatures(input.Features),
		Quota:             quota,
		Mode:              model.Mode(input.Mode),
		Role:              input.Role,
		Protocol:          input.Protocol,
	}, nil
}

// WriteDeviceCSV はデバイスをCSVとして書き込む。
func WriteDeviceCSV(w io.Writer, devices []*model.Device) error {
	return writeAll(w, deviceLayout, devices, func(d *model.Device) []string {
		return []string{
			d.ID,
			string(d.Mode),
			strconv.FormatInt(d.Quota, 10),
			strings.Join(d.SupportedFeatures, featureSeparator),
			d.Role,
			d.Protocol,
		}
	}, deviceKey)
}
