package format

import "fmt"

// Rate は試行回数を "action 12/30" 形式にする。上限を超えていれば末尾に "!" を付ける。
func Rate(action string, count int64, limit int) string {
	s := fmt.Sprintf("%s %d/%d", action, count, limit)
	if limit > 0 && count > int64(limit) {
		s += "!"
	}
	return s
}
