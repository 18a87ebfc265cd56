package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuItem はメニューの1項目。
type MenuItem struct {
	Label       string
	Description string
	Key         rune
	Action      func()
}

// Menu はショートカット付きの縦並びメニュー。
// Escまたはqで onQuit を呼ぶ。
type Menu struct {
	list   *tview.List
	onQuit func()
}

// NewMenu は新しいMenuを生成する。
func NewMenu(title string, items []MenuItem) *Menu {
	m := &Menu{list: tview.NewList().ShowSecondaryText(true)}

	for _, item := range items {
		action := item.Action
		m.list.AddItem(item.Label, item.Description, item.Key, func() {
			if action != nil {
				action()
			}
		})
	}

	m.list.SetTitle(" " + title + " ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(ColorBorder)

	m.list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || event.Rune() == RuneQuit {
			if m.onQuit != nil {
				m.onQuit()
			}
			return nil
		}
		return event
	})
	return m
}

// SetOnQuit はEsc/q押下時のコールバックを設定する。
func (m *Menu) SetOnQuit(handler func()) {
	m.onQuit = handler
}

// GetList は内部のtview.Listを返す。
func (m *Menu) GetList() *tview.List {
	return m.list
}

// MainMenuActions はメインメニュー各項目の遷移先。
type MainMenuActions struct {
	Devices      func()
	Clients      func()
	Networks     func()
	ImportExport func()
	Monitoring   func()
	Exit         func()
}

// MainMenuItems はメインメニューの項目を返す。
func MainMenuItems(a MainMenuActions) []MenuItem {
	return []MenuItem{
		{"Device Management", "Register devices, blacklist, inspect state and findings", '1', a.Devices},
		{"RADIUS Client Management", "Manage NAS clients used by nas-gateway", '2', a.Clients},
		{"Network Management", "Manage networks and their device capacity", '3', a.Networks},
		{"Import/Export", "Import or export devices and clients as CSV", '4', a.ImportExport},
		{"Monitoring", "Statistics, blocks, alerts and monitoring nodes", '5', a.Monitoring},
		{"Exit", "Exit the console", RuneQuit, a.Exit},
	}
}

// NewMainMenu はメインメニューを生成する。
func NewMainMenu(a MainMenuActions) *Menu {
	m := NewMenu("fleetguard - Main Menu", MainMenuItems(a))
	m.SetOnQuit(a.Exit)
	return m
}
