// Package device はデバイス管理画面を提供する。
package device

import (
	"context"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/format"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/store"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/rivo/tview"
)

// ListScreen はデバイス一覧画面を表す。
type ListScreen struct {
	table       *tview.Table
	app         *ui.App
	deviceStore *store.DeviceStore
	devices     []*model.Device
	filter      *ui.Filter
	pagination  *ui.Pagination
	onSelect    func(id string)
	onCreate    func()
	onEdit      func(id string)
	onBlacklist func(id string, blacklisted bool)
	onBack      func()
}

// NewListScreen は新しいListScreenを生成する。
func NewListScreen(app *ui.App, deviceStore *store.DeviceStore) *ListScreen {
	table := tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)

	table.SetTitle(" Device List ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(tcell.ColorBlue)

	screen := &ListScreen{
		table:       table,
		app:         app,
		deviceStore: deviceStore,
		filter:      ui.NewFilter("ID", "Role", "Protocol"),
		pagination:  ui.NewPagination(ui.DefaultPageSize),
	}

	screen.setupKeyBindings()
	return screen
}

// SetOnSelect はデバイス選択時のコールバックを設定する。
func (s *ListScreen) SetOnSelect(handler func(id string)) {
	s.onSelect = handler
}

// SetOnCreate は新規作成時のコールバックを設定する。
func (s *ListScreen) SetOnCreate(handler func()) {
	s.onCreate = handler
}

// SetOnEdit は編集時のコールバックを設定する。
func (s *ListScreen) SetOnEdit(handler func(id string)) {
	s.onEdit = handler
}

// SetOnBlacklist はブラックリスト切り替え時のコールバックを設定する。
// blacklistedには切り替え前の状態が渡される。
func (s *ListScreen) SetOnBlacklist(handler func(id string, blacklisted bool)) {
	s.onBlacklist = handler
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *ListScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetTable は内部のtview.Tableを返す。
func (s *ListScreen) GetTable() *tview.Table {
	return s.table
}

// Load はデータを読み込む。デバイスはID順で返される。
func (s *ListScreen) Load(ctx context.Context) error {
	devices, err := s.deviceStore.List(ctx)
	if err != nil {
		return err
	}

	s.devices = devices
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

// GetSelected は選択されているデバイスを返す。
func (s *ListScreen) GetSelected() *model.Device {
	row, _ := s.table.GetSelection()
	pageItems := ui.GetPageItems(s.getFilteredDevices(), s.pagination)
	idx := row - 1
	if idx < 0 || idx >= len(pageItems) {
		return nil
	}
	return pageItems[idx]
}

// GetSelectedID は選択されているデバイスIDを返す。
func (s *ListScreen) GetSelectedID() string {
	if d := s.GetSelected(); d != nil {
		return d.ID
	}
	return ""
}

func (s *ListScreen) getFilteredDevices() []*model.Device {
	return ui.FilterItems(s.devices, s.filter, func(d *model.Device) []string {
		return []string{d.ID, d.Role, d.Protocol}
	})
}

func (s *ListScreen) render() {
	s.table.Clear()

	headers := []string{"", "ID", "Mode", "Quota", "Features", "Role", "Protocol", "Updated"}
	for col, header := range headers {
		cell := tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignLeft).
			SetSelectable(false).
			SetExpansion(1)
		if col == 0 {
			cell.SetExpansion(0)
		}
		s.table.SetCell(0, col, cell)
	}

	pageItems := ui.GetPageItems(s.getFilteredDevices(), s.pagination)
	for i, d := range pageItems {
		row := i + 1

		// ブラックリストインジケータ
		indicator := " "
		textColor := ui.ColorText
		if d.Blacklisted {
			indicator = string(ui.IndicatorBlacklisted)
			textColor = ui.ColorBlacklisted
		}

		s.table.SetCell(row, 0, tview.NewTableCell(indicator).
			SetTextColor(ui.ColorBlacklisted).
			SetAlign(tview.AlignCenter))
		s.table.SetCell(row, 1, tview.NewTableCell(d.ID).
			SetTextColor(textColor).
			SetExpansion(1))
		s.table.SetCell(row, 2, tview.NewTableCell(string(d.Mode)).
			SetTextColor(textColor).
			SetExpansion(1))
		s.table.SetCell(row, 3, tview.NewTableCell(format.BytesShort(d.Quota)).
			SetTextColor(textColor).
			SetExpansion(1))
		s.table.SetCell(row, 4, tview.NewTableCell(format.Truncate(strings.Join(d.SupportedFeatures, ","), 30)).
			SetTextColor(tcell.ColorTeal).
			SetExpansion(2))
		s.table.SetCell(row, 5, tview.NewTableCell(d.Role).
			SetTextColor(textColor).
			SetExpansion(1))
		s.table.SetCell(row, 6, tview.NewTableCell(d.Protocol).
			SetTextColor(textColor).
			SetExpansion(1))
		s.table.SetCell(row, 7, tview.NewTableCell(format.DateTimeShort(d.UpdatedAt)).
			SetTextColor(tcell.ColorGray).
			SetExpansion(1))
	}

	title := " Device List "
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
		case tcell.KeyF3:
			if id := s.GetSelectedID(); id != "" && s.onEdit != nil {
				s.onEdit(id)
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
		case tcell.KeyEnter:
			if id := s.GetSelectedID(); id != "" && s.onSelect != nil {
				s.onSelect(id)
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
			if id := s.GetSelectedID(); id != "" && s.onEdit != nil {
				s.onEdit(id)
			}
			return nil
		case ui.RuneBlacklist:
			if d := s.GetSelected(); d != nil && s.onBlacklist != nil {
				s.onBlacklist(d.ID, d.Blacklisted)
			}
			return nil
		case ui.RuneFindings:
			if id := s.GetSelectedID(); id != "" && s.onSelect != nil {
				s.onSelect(id)
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
		"Filter Devices",
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
