package monitoring

import (
	"context"
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/api"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/audit"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/format"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/rivo/tview"
)

// BlockListScreen は有効なブロックの一覧画面を表す。
type BlockListScreen struct {
	table       *tview.Table
	app         *ui.App
	apiClient   *api.Client
	auditLogger *audit.Logger
	blocks      []*model.Block
	filter      *ui.Filter
	pagination  *ui.Pagination
	onBack      func()
}

// NewBlockListScreen は新しいBlockListScreenを生成する。
func NewBlockListScreen(app *ui.App, apiClient *api.Client, auditLogger *audit.Logger) *BlockListScreen {
	table := tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)

	table.SetTitle(" Active Blocks ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(tcell.ColorBlue)

	screen := &BlockListScreen{
		table:       table,
		app:         app,
		apiClient:   apiClient,
		auditLogger: auditLogger,
		filter:      ui.NewFilter("Device", "Reason"),
		pagination:  ui.NewPagination(ui.DefaultPageSize),
	}

	screen.setupKeyBindings()
	return screen
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *BlockListScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetTable は内部のtview.Tableを返す。
func (s *BlockListScreen) GetTable() *tview.Table {
	return s.table
}

// Load はデータを読み込む。
func (s *BlockListScreen) Load(ctx context.Context) error {
	blocks, err := s.apiClient.ListBlocks(ctx)
	if err != nil {
		return err
	}

	// 新しいブロックを先頭に
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].CreatedAt > blocks[j].CreatedAt
	})
	s.blocks = blocks
	s.render()
	return nil
}

// Refresh はデータを再読み込みする。
func (s *BlockListScreen) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// SetFilter はフィルタを設定する。
func (s *BlockListScreen) SetFilter(query string) {
	s.filter.SetQuery(query)
	s.pagination.FirstPage()
	s.render()
}

// ClearFilter はフィルタをクリアする。
func (s *BlockListScreen) ClearFilter() {
	s.filter.Clear()
	s.pagination.FirstPage()
	s.render()
}

// GetSelected は選択されているブロックを返す。
func (s *BlockListScreen) GetSelected() *model.Block {
	row, _ := s.table.GetSelection()
	pageItems := ui.GetPageItems(s.getFilteredBlocks(), s.pagination)
	idx := row - 1
	if idx < 0 || idx >= len(pageItems) {
		return nil
	}
	return pageItems[idx]
}

func (s *BlockListScreen) getFilteredBlocks() []*model.Block {
	return ui.FilterItems(s.blocks, s.filter, func(b *model.Block) []string {
		return []string{b.DeviceID, b.Reason}
	})
}

func (s *BlockListScreen) render() {
	s.table.Clear()

	headers := []string{"Device", "Kind", "Reason", "Since", "Remaining"}
	for col, header := range headers {
		s.table.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignLeft).
			SetSelectable(false).
			SetExpansion(1))
	}

	pageItems := ui.GetPageItems(s.getFilteredBlocks(), s.pagination)
	for i, b := range pageItems {
		row := i + 1

		kindColor := tcell.ColorYellow
		remaining := format.Remaining(b.ExpiresAt)
		if b.Kind == model.BlockPermanent {
			kindColor = ui.ColorError
			remaining = "until unblocked"
		}

		s.table.SetCell(row, 0, tview.NewTableCell(b.DeviceID).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(1))
		s.table.SetCell(row, 1, tview.NewTableCell(string(b.Kind)).
			SetTextColor(kindColor).
			SetExpansion(1))
		s.table.SetCell(row, 2, tview.NewTableCell(format.Truncate(b.Reason, 40)).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(2))
		s.table.SetCell(row, 3, tview.NewTableCell(format.DateTimeShort(b.CreatedAt)).
			SetTextColor(tcell.ColorGray).
			SetExpansion(1))
		s.table.SetCell(row, 4, tview.NewTableCell(remaining).
			SetTextColor(tcell.ColorTeal).
			SetExpansion(1))
	}

	title := " Active Blocks "
	if s.filter.Active {
		title += "[yellow](" + s.filter.FormatFilterStatus() + ")[-] "
	}
	title += "[gray]" + s.pagination.FormatPageInfo() + "[-] "
	s.table.SetTitle(title)

	if len(pageItems) > 0 {
		s.table.Select(1, 0)
	}
}

func (s *BlockListScreen) setupKeyBindings() {
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
		case tcell.KeyF5:
			refreshWithStatus(s.app, s)
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
		case ui.RuneUnblock:
			if b := s.GetSelected(); b != nil {
				s.confirmUnblock(b)
			}
			return nil
		case ui.RuneRefresh:
			refreshWithStatus(s.app, s)
			return nil
		case ui.RuneFilter:
			showFilterDialog(s.app, "Filter Blocks", s.filter, s.table, s.SetFilter)
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

func (s *BlockListScreen) confirmUnblock(b *model.Block) {
	const page = "unblock-confirm"
	message := fmt.Sprintf("Lift the %s block on device %s?\nThe device returns to normal state.", b.Kind, b.DeviceID)

	dialog := ui.NewConfirmDialog("Unblock Device", message,
		func() {
			closeDialog(s.app, page, s.table)
			s.unblock(b.DeviceID)
		},
		func() {
			closeDialog(s.app, page, s.table)
		},
	)
	showDialog(s.app, page, dialog.GetModal(), dialog.GetModal())
}

func (s *BlockListScreen) unblock(deviceID string) {
	ctx := context.Background()
	if err := s.apiClient.Unblock(ctx, deviceID); err != nil {
		s.app.GetStatusBar().ShowError("Failed to unblock: " + err.Error())
		return
	}
	s.auditLogger.LogUnblock(deviceID)
	s.app.GetStatusBar().ShowSuccess("Unblocked " + deviceID)

	if err := s.Refresh(ctx); err != nil {
		s.app.GetStatusBar().ShowError("Failed to refresh: " + err.Error())
	}
}
