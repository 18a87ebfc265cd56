package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

// 表示色
var (
	ColorSuccess = tcell.ColorGreen
	ColorWarning = tcell.ColorYellow
	ColorError   = tcell.ColorRed

	ColorText   = tcell.ColorWhite
	ColorMuted  = tcell.ColorGray
	ColorHeader = tcell.ColorYellow
	ColorBorder = tcell.ColorBlue

	ColorBlacklisted = tcell.ColorRed
)

// IndicatorBlacklisted はブラックリスト登録済みデバイスの行頭記号。
const IndicatorBlacklisted = '!'

// colorTags はtviewの色タグ名。
var colorTags = map[tcell.Color]string{
	tcell.ColorWhite:  "white",
	tcell.ColorRed:    "red",
	tcell.ColorGreen:  "green",
	tcell.ColorBlue:   "blue",
	tcell.ColorYellow: "yellow",
	tcell.ColorTeal:   "teal",
	tcell.ColorGray:   "gray",
}

// StyleText はtextをcolorの色タグで囲む。未知の色は白として扱う。
func StyleText(text string, color tcell.Color) string {
	tag, ok := colorTags[color]
	if !ok {
		tag = "white"
	}
	return "[" + tag + "]" + text + "[-]"
}

// StateColor はエスカレーション状態の表示色を返す。
func StateColor(state model.EscalationState) tcell.Color {
	switch state {
	case model.StateWarned:
		return ColorWarning
	case model.StateTemporarilyBlocked, model.StatePermanentlyBlocked:
		return ColorError
	default:
		return ColorSuccess
	}
}

// SeverityColor は重大度の表示色を返す。
func SeverityColor(severity model.Severity) tcell.Color {
	switch severity {
	case model.SeverityCritical:
		return ColorError
	case model.SeverityHigh:
		return ColorWarning
	default:
		return ColorText
	}
}
