package ui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// StatusType はステータスメッセージの種類。
type StatusType int

const (
	StatusInfo StatusType = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// statusDuration はメッセージをデフォルト表示に戻すまでの時間。
const statusDuration = 5 * time.Second

const defaultStatusText = " F1:Help | q:Back/Quit | Ctrl+Q:Exit"

// StatusBar は画面下部の1行メッセージ領域。
type StatusBar struct {
	view *tview.TextView
	app  *tview.Application

	mu         sync.Mutex
	clearTimer *time.Timer
}

// NewStatusBar は新しいStatusBarを生成する。
func NewStatusBar() *StatusBar {
	view := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	view.SetBackgroundColor(tcell.ColorDarkBlue)
	view.SetTextColor(tcell.ColorWhite)

	return &StatusBar{view: view}
}

// SetApp はtview.Applicationへの参照を設定し、デフォルト表示に戻す。
func (s *StatusBar) SetApp(app *tview.Application) {
	s.app = app
	s.ShowDefault()
}

// ShowDefault はキー操作の案内を表示する。
func (s *StatusBar) ShowDefault() {
	s.view.SetText(defaultStatusText)
}

// statusText は種類に応じた色と記号を付けたメッセージを返す。
func statusText(statusType StatusType, message string) string {
	switch statusType {
	case StatusSuccess:
		return "[green::b] ✓ " + message + " [-::-]"
	case StatusWarning:
		return "[yellow::b] ⚠ " + message + " [-::-]"
	case StatusError:
		return "[red::b] ✗ " + message + " [-::-]"
	default:
		return "[cyan] ℹ " + message + " [-]"
	}
}

// Show はメッセージを表示し、一定時間後にデフォルト表示へ戻す。
func (s *StatusBar) Show(statusType StatusType, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}
	s.view.SetText(statusText(statusType, message))

	s.clearTimer = time.AfterFunc(statusDuration, func() {
		if s.app != nil {
			s.app.QueueUpdateDraw(s.ShowDefault)
		}
	})
}

// ShowInfo は情報メッセージを表示する。
func (s *StatusBar) ShowInfo(message string) {
	s.Show(StatusInfo, message)
}

// ShowSuccess は成功メッセージを表示する。
func (s *StatusBar) ShowSuccess(message string) {
	s.Show(StatusSuccess, message)
}

// ShowWarning は警告メッセージを表示する。
func (s *StatusBar) ShowWarning(message string) {
	s.Show(StatusWarning, message)
}

// ShowError はエラーメッセージを表示する。
func (s *StatusBar) ShowError(message string) {
	s.Show(StatusError, message)
}

// GetView は内部のtview.TextViewを返す。
func (s *StatusBar) GetView() *tview.TextView {
	return s.view
}
