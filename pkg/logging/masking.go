// Package logging はログ関連のユーティリティを提供する。
package logging

import "strings"

// MaskDeviceID はデバイスIDをマスキングする。
// MACアドレス形式はOUI（区切り文字を含む先頭9文字）と末尾2文字を残す。
// 例: 3c:71:bf:12:34:56 → 3c:71:bf:******56
// それ以外は先頭4文字と末尾2文字を残す。
// enabled=false の場合はマスキングせずにそのまま返す。
func MaskDeviceID(id string, enabled bool) string {
	if !enabled {
		return id
	}
	if isMACLike(id) {
		return MaskPartial(id, 9, 2, '*')
	}
	return MaskPartial(id, 4, 2, '*')
}

func isMACLike(s string) bool {
	if len(s) != 17 {
		return false
	}
	sep := s[2]
	if sep != ':' && sep != '-' {
		return false
	}
	return strings.Count(s, string(sep)) == 5
}

// MaskPartial は文字列の一部をマスキングする。
// keepPrefix: 先頭から保持する文字数
// keepSuffix: 末尾から保持する文字数
// maskChar: マスキングに使用する文字
func MaskPartial(s string, keepPrefix, keepSuffix int, maskChar rune) string {
	runes := []rune(s)
	length := len(runes)

	// 文字列が短すぎる場合はそのまま返す
	if length <= keepPrefix+keepSuffix {
		return s
	}

	result := make([]rune, length)
	copy(result, runes[:keepPrefix])
	for i := keepPrefix; i < length-keepSuffix; i++ {
		result[i] = maskChar
	}
	copy(result[length-keepSuffix:], runes[length-keepSuffix:])

	return string(result)
}
