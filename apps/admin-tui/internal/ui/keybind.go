package ui

import "github.com/gdamore/tcell/v2"

// 画面共通の特殊キー
const (
	KeyCreate  = tcell.KeyF2
	KeyEdit    = tcell.KeyF3
	KeyDelete  = tcell.KeyF4
	KeyRefresh = tcell.KeyF5
	KeyHelp    = tcell.KeyF1
	KeyQuit    = tcell.KeyCtrlQ
)

// 一覧画面の文字キー
const (
	RuneCreate  = 'n'
	RuneEdit    = 'e'
	RuneDelete  = 'd'
	RuneRefresh = 'r'
	RuneFilter  = '/'
	RuneQuit    = 'q'
)

// フリート操作の文字キー
const (
	RuneBlacklist     = 'b'
	RuneFindings      = 'f'
	RuneUnblock       = 'u'
	RuneAcknowledge   = 'a'
	RuneFalsePositive = 'x'
	RuneRevoke        = 'v'
	RuneHideConfirmed = 'h'
)

// KeyBinding はヘルプに表示するキー割り当て。
// Keyが0の場合はRuneを使う。
type KeyBinding struct {
	Key         tcell.Key
	Rune        rune
	Description string
}

var keyLabels = map[tcell.Key]string{
	tcell.KeyF1:      "F1",
	tcell.KeyF2:      "F2",
	tcell.KeyF3:      "F3",
	tcell.KeyF4:      "F4",
	tcell.KeyF5:      "F5",
	tcell.KeyUp:      "↑",
	tcell.KeyDown:    "↓",
	tcell.KeyPgUp:    "PgUp",
	tcell.KeyPgDn:    "PgDn",
	tcell.KeyTab:     "Tab",
	tcell.KeyBacktab: "Shift+Tab",
	tcell.KeyEnter:   "Enter",
	tcell.KeyEsc:     "Esc",
	tcell.KeyCtrlQ:   "Ctrl+Q",
}

// Label はキーの表示名を返す。
func (b KeyBinding) Label() string {
	if b.Key == 0 {
		return string(b.Rune)
	}
	if l, ok := keyLabels[b.Key]; ok {
		return l
	}
	return "?"
}
