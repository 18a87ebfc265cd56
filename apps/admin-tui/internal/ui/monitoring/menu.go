// Package monitoring は統計とアノマリー対応の画面を提供する。
package monitoring

import (
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/rivo/tview"
)

// MenuScreen はモニタリングメニュー。
type MenuScreen struct {
	menu         *ui.Menu
	onStatistics func()
	onBlocks     func()
	onAlerts     func()
	onNodes      func()
	onBack       func()
}

// NewMenuScreen は新しいMenuScreenを生成する。
func NewMenuScreen() *MenuScreen {
	s := &MenuScreen{}
	call := func(f *func()) func() {
		return func() {
			if *f != nil {
				(*f)()
			}
		}
	}

	s.menu = ui.NewMenu("Monitoring", []ui.MenuItem{
		{Label: "Statistics Dashboard", Description: "Fleet, session and anomaly response counts", Key: '1', Action: call(&s.onStatistics)},
		{Label: "Active Blocks", Description: "View and lift device blocks", Key: '2', Action: call(&s.onBlocks)},
		{Label: "Alerts", Description: "Review and acknowledge escalation alerts", Key: '3', Action: call(&s.onAlerts)},
		{Label: "Monitoring Nodes", Description: "View nodes and revoke certificate serials", Key: '4', Action: call(&s.onNodes)},
		{Label: "Back", Description: "Return to main menu", Key: ui.RuneQuit, Action: call(&s.onBack)},
	})
	s.menu.SetOnQuit(call(&s.onBack))
	return s
}

// SetOnStatistics は統計ダッシュボード選択時のコールバックを設定する。
func (s *MenuScreen) SetOnStatistics(handler func()) {
	s.onStatistics = handler
}

// SetOnBlocks はブロック一覧選択時のコールバックを設定する。
func (s *MenuScreen) SetOnBlocks(handler func()) {
	s.onBlocks = handler
}

// SetOnAlerts はアラート一覧選択時のコールバックを設定する。
func (s *MenuScreen) SetOnAlerts(handler func()) {
	s.onAlerts = handler
}

// SetOnNodes は監視ノード一覧選択時のコールバックを設定する。
func (s *MenuScreen) SetOnNodes(handler func()) {
	s.onNodes = handler
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *MenuScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetList は内部のtview.Listを返す。
func (s *MenuScreen) GetList() *tview.List {
	return s.menu.GetList()
}
