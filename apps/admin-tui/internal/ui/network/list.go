// Package network はネットワーク管理画面を提供する。
package network

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/store"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/rivo/tview"
)

// ListScreen はネットワーク一覧画面を表す。
type ListScreen struct {
	table        *tview.Table
	app          *ui.App
	networkStore *store.NetworkStore
	networks     []*store.NetworkInfo
	filter       *ui.Filter
	pagination   *ui.Pagination
	onCreate     func()
	onEdit       func(n *store.NetworkInfo)
	onBack       func()
}

// NewListScreen は新しいListScreenを生成する。
func NewListScreen(app *ui.App, networkStore *store.NetworkStore) *ListScreen {
	table := tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)

	table.SetTitle(" Network List ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(tcell.ColorBlue)

	screen := &ListScreen{
		table:        table,
		app:          app,
		networkStore: networkStore,
		filter:       ui.NewFilter("ID", "Name"),
		pagination:   ui.NewPagination(ui.DefaultPageSize),
	}

	screen.setupKeyBindings()
	return screen
}

// SetOnCreate は新規作成時のコールバックを設定する。
func (s *ListScreen) SetOnCreate(handler func()) {
	s.onCreate = handler
}

// SetOnEdit は編集時のコールバックを設定する。
func (s *ListScreen) SetOnEdit(handler func(n *store.NetworkInfo)) {
	s.onEdit = handler
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *ListScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetTable は内部のtview.Tableを返す。
func (s *ListScreen) GetTable() *tview.Table {
	return s.table
}

// Load はデータを読み込む。
func (s *ListScreen) Load(ctx context.Context) error {
	networks, err := s.networkStore.List(ctx)
	if err != nil {
		return err
	}

	s.networks = networks
	s.render()
	return nil
}

// Refresh はデータを再読み込みする。
func (s *ListScreen) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// SetFilter はフィルタを設定する。
func (s *ListScreen) SetFilter(query string) {
	s.filter.SetQuery(query)
	s.pagination.FirstPage()
	s.render()
}

// ClearFilter はフィルタをクリアする。
func (s *ListScreen) ClearFilter() {
	s.filter.Clear()
	s.pagination.FirstPage()
	s.render()
}

// GetSelected は選択されているネットワークを返す。
func (s *ListScreen) GetSelected() *store.NetworkInfo {
	row, _ := s.table.GetSelection()
	pageItems := ui.GetPageItems(s.getFilteredNetworks(), s.pagination)
	idx := row - 1
	if idx < 0 || idx >= len(pageItems) {
		return nil
	}
	return pageItems[idx]
}

func (s *ListScreen) getFilteredNetworks() []*store.NetworkInfo {
	return ui.FilterItems(s.networks, s.filter, func(n *store.NetworkInfo) []string {
		return []string{n.ID, n.Name}
	})
}

// usageColor は接続数の上限に対する使用率で色を決める。
func usageColor(connected, limit int64) tcell.Color {
	switch {
	case limit <= 0:
		return ui.ColorText
	case connected >= limit:
		return ui.ColorError
	case connected*10 >= limit*8:
		return ui.ColorWarning
	default:
		return ui.ColorSuccess
	}
}

func (s *ListScreen) render() {
	s.table.Clear()

	headers := []string{"ID", "Name", "Connected", "Max Devices"}
	for col, header := range headers {
		s.table.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignLeft).
			SetSelectable(false).
			SetExpansion(1))
	}

	pageItems := ui.GetPageItems(s.getFilteredNetworks(), s.pagination)
	for i, n := range pageItems {
		row := i + 1

		s.table.SetCell(row, 0, tview.NewTableCell(n.ID).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(1))
		s.table.SetCell(row, 1, tview.NewTableCell(n.Name).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(1))
		s.table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%d", n.Connected)).
			SetTextColor(usageColor(n.Connected, n.MaxDevices)).
			SetExpansion(1))
		s.table.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%d", n.MaxDevices)).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(1))
	}

	title := " Network List "
	if s.filter.Active {
		title += "[yellow](" + s.filter.FormatFilterStatus() + ")[-] "
	}
	title += "[gray]" + s.pagination.FormatPageInfo() + "[-] "
	s.table.SetTitle(title)

	if len(pageItems) > 0 {
		s.table.Select(1, 0)
	}
}

func (s *ListScreen) setupKeyBindings() {
	s.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc:
			if s.filter.Active {
				s.ClearFilter()
				return nil
			}
			if s.onBack != nil {
				s.onBack()
			}
			return nil
		case tcell.KeyF2:
			if s.onCreate != nil {
				s.onCreate()
			}
			return nil
		case tcell.KeyF3, tcell.KeyEnter:
			if n := s.GetSelected(); n != nil && s.onEdit != nil {
				s.onEdit(n)
			}
			return nil
		case tcell.KeyF5:
			s.refresh()
			return nil
		case tcell.KeyPgUp:
			if s.pagination.PrevPage() {
				s.render()
			}
			return nil
		case tcell.KeyPgDn:
			if s.pagination.NextPage() {
				s.render()
			}
			return nil
		}

		switch event.Rune() {
		case ui.RuneCreate:
			if s.onCreate != nil {
				s.onCreate()
			}
			return nil
		case ui.RuneEdit:
			if n := s.GetSelected(); n != nil && s.onEdit != nil {
				s.onEdit(n)
			}
			return nil
		case ui.RuneRefresh:
			s.refresh()
			return nil
		case ui.RuneFilter:
			s.showFilterDialog()
			return nil
		case ui.RuneQuit:
			if s.onBack != nil {
				s.onBack()
			}
			return nil
		}

		return event
	})
}

func (s *ListScreen) refresh() {
	s.app.QueueUpdateDraw(func() {
		if err := s.Refresh(context.Background()); err != nil {
			s.app.GetStatusBar().ShowError("Failed to refresh: " + err.Error())
		} else {
			s.app.GetStatusBar().ShowSuccess("Refreshed")
		}
	})
}

func (s *ListScreen) showFilterDialog() {
	dialog := ui.NewInputDialog(
		"Filter Networks",
		s.filter.Label(),
		s.filter.Query,
		func(value string) {
			s.SetFilter(value)
			s.app.ClosePage("filter-dialog")
			s.app.SetFocus(s.table)
		},
		func() {
			s.app.ClosePage("filter-dialog")
			s.app.SetFocus(s.table)
		},
	)

	s.app.AddPage("filter-dialog", centered(dialog.GetForm(), 50, 7), true, true)
	s.app.SetFocus(dialog.GetForm())
}

// centered はコンポーネントを中央に配置する。
func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
