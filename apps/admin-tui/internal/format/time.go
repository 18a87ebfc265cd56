package format

import (
	"fmt"
	"time"
)

const (
	layoutDateTime      = "2006-01-02 15:04:05"
	layoutDateTimeShort = "01-02 15:04"
)

// DateTime はUnix秒をローカル時刻の "2006-01-02 15:04:05" 形式にする。
func DateTime(unixSec int64) string {
	return time.Unix(unixSec, 0).Local().Format(layoutDateTime)
}

// DateTimeShort はUnix秒を一覧表示向けの "01-02 15:04" 形式にする。
// 0は未設定として "-" を返す。
func DateTimeShort(unixSec int64) string {
	if unixSec == 0 {
		return "-"
	}
	return time.Unix(unixSec, 0).Local().Format(layoutDateTimeShort)
}

// Duration は秒数を上位2単位で表す。
// 例: 90 -> "1m 30s", 93784 -> "1d 2h"
func Duration(seconds int64) string {
	if seconds < 0 {
		return "-"
	}
	days := seconds / 86400
	hours := seconds % 86400 / 3600
	minutes := seconds % 3600 / 60
	secs := seconds % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// Remaining はブロックや証明書の期限までの残り時間を返す。
// 期限を過ぎている場合は "expired" を返す。
func Remaining(untilUnixSec int64) string {
	left := untilUnixSec - time.Now().Unix()
	if left <= 0 {
		return "expired"
	}
	return Duration(left)
}
