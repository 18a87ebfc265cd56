package format

// Truncate は文字列をmaxLen文字に収め、超過分は "..." で置き換える。
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// TruncateMiddle は先頭と末尾を残して中央を省略する。
// フィンガープリントやシリアル番号のように両端で識別する値に使う。
func TruncateMiddle(s string, maxLen int) string {
	if maxLen <= 5 {
		return Truncate(s, maxLen)
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	keep := maxLen - 3
	head := keep / 2
	tail := keep - head
	return string(runes[:head]) + "..." + string(runes[len(runes)-tail:])
}
