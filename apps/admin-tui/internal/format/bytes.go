// Package format は画面表示用の整形関数を提供する。
package format

import "fmt"

var byteUnits = []string{"K", "M", "G", "T"}

// scale はバイト数を1024単位で縮約し、値と単位を返す。
// 1KB未満の場合は単位に空文字を返す。
func scale(n int64) (float64, string) {
	v := float64(n)
	unit := ""
	for _, u := range byteUnits {
		if v < 1024 {
			break
		}
		v /= 1024
		unit = u
	}
	return v, unit
}

// Bytes はバイト数を "1.50 MB" 形式にする。
func Bytes(n int64) string {
	v, unit := scale(n)
	if unit == "" {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.2f %sB", v, unit)
}

// BytesShort はバイト数を一覧表示向けの "1.5M" 形式にする。
func BytesShort(n int64) string {
	v, unit := scale(n)
	if unit == "" {
		return fmt.Sprintf("%dB", n)
	}
	return fmt.Sprintf("%.1f%s", v, unit)
}

// Usage は帯域使用量とクォータを "used / quota (NN%)" 形式にする。
func Usage(used, quota int64) string {
	if quota <= 0 {
		return Bytes(used) + " / " + Bytes(quota)
	}
	pct := used * 100 / quota
	return fmt.Sprintf("%s / %s (%d%%)", Bytes(used), Bytes(quota), pct)
}
