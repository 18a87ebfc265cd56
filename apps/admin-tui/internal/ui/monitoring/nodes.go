package monitoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/api"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/audit"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/format"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/validation"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/rivo/tview"
)

// NodeListScreen は監視ノード一覧画面を表す。
type NodeListScreen struct {
	table       *tview.Table
	app         *ui.App
	apiClient   *api.Client
	auditLogger *audit.Logger
	nodes       []*model.MonitoringNode
	filter      *ui.Filter
	pagination  *ui.Pagination
	onBack      func()
}

// NewNodeListScreen は新しいNodeListScreenを生成する。
func NewNodeListScreen(app *ui.App, apiClient *api.Client, auditLogger *audit.Logger) *NodeListScreen {
	table := tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)

	table.SetTitle(" Monitoring Nodes ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(tcell.ColorBlue)

	screen := &NodeListScreen{
		table:       table,
		app:         app,
		apiClient:   apiClient,
		auditLogger: auditLogger,
		filter:      ui.NewFilter("Name", "Location", "Serial"),
		pagination:  ui.NewPagination(ui.DefaultPageSize),
	}

	screen.setupKeyBindings()
	return screen
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *NodeListScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetTable は内部のtview.Tableを返す。
func (s *NodeListScreen) GetTable() *tview.Table {
	return s.table
}

// Load はデータを読み込む。
func (s *NodeListScreen) Load(ctx context.Context) error {
	nodes, err := s.apiClient.ListNodes(ctx)
	if err != nil {
		return err
	}

	s.nodes = nodes
	s.render()
	return nil
}

// Refresh はデータを再読み込みする。
func (s *NodeListScreen) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// SetFilter はフィルタを設定する。
func (s *NodeListScreen) SetFilter(query string) {
	s.filter.SetQuery(query)
	s.pagination.FirstPage()
	s.render()
}

// ClearFilter はフィルタをクリアする。
func (s *NodeListScreen) ClearFilter() {
	s.filter.Clear()
	s.pagination.FirstPage()
	s.render()
}

// GetSelected は選択されているノードを返す。
func (s *NodeListScreen) GetSelected() *model.MonitoringNode {
	row, _ := s.table.GetSelection()
	pageItems := ui.GetPageItems(s.getFilteredNodes(), s.pagination)
	idx := row - 1
	if idx < 0 || idx >= len(pageItems) {
		return nil
	}
	return pageItems[idx]
}

func (s *NodeListScreen) getFilteredNodes() []*model.MonitoringNode {
	return ui.FilterItems(s.nodes, s.filter, func(n *model.MonitoringNode) []string {
		return []string{n.Name, n.Location, n.Serial, n.ID}
	})
}

func (s *NodeListScreen) render() {
	s.table.Clear()

	headers := []string{"Name", "Fingerprint", "Capabilities", "Serial", "Expires", "Status"}
	for col, header := range headers {
		s.table.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignLeft).
			SetSelectable(false).
			SetExpansion(1))
	}

	now := time.Now().Unix()
	pageItems := ui.GetPageItems(s.getFilteredNodes(), s.pagination)
	for i, n := range pageItems {
		row := i + 1

		status, statusColor := "active", tcell.ColorGreen
		switch {
		case !n.Active:
			status, statusColor = "inactive", tcell.ColorRed
		case n.NotAfter <= now:
			status, statusColor = "expired", tcell.ColorYellow
		}

		s.table.SetCell(row, 0, tview.NewTableCell(n.Name).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(1))
		s.table.SetCell(row, 1, tview.NewTableCell(format.TruncateMiddle(n.ID, 19)).
			SetTextColor(tcell.ColorGray).
			SetExpansion(1))
		s.table.SetCell(row, 2, tview.NewTableCell(strings.Join(n.Capabilities, ",")).
			SetTextColor(tcell.ColorTeal).
			SetExpansion(1))
		s.table.SetCell(row, 3, tview.NewTableCell(format.TruncateMiddle(n.Serial, 19)).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(1))
		s.table.SetCell(row, 4, tview.NewTableCell(format.DateTimeShort(n.NotAfter)).
			SetTextColor(tcell.ColorGray).
			SetExpansion(1))
		s.table.SetCell(row, 5, tview.NewTableCell(status).
			SetTextColor(statusColor).
			SetExpansion(1))
	}

	title := " Monitoring Nodes "
	if s.filter.Active {
		title += "[yellow](" + s.filter.FormatFilterStatus() + ")[-] "
	}
	title += "[gray]" + s.pagination.FormatPageInfo() + "[-] "
	s.table.SetTitle(title)

	if len(pageItems) > 0 {
		s.table.Select(1, 0)
	}
}

func (s *NodeListScreen) setupKeyBindings() {
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
		case ui.RuneRevoke:
			serial := ""
			if n := s.GetSelected(); n != nil {
				serial = n.Serial
			}
			s.showRevokeDialog(serial)
			return nil
		case ui.RuneRefresh:
			refreshWithStatus(s.app, s)
			return nil
		case ui.RuneFilter:
			showFilterDialog(s.app, "Filter Nodes", s.filter, s.table, s.SetFilter)
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

func (s *NodeListScreen) showRevokeDialog(serial string) {
	const page = "revoke-dialog"

	dialog := ui.NewInputDialog(
		"Revoke Certificate",
		"Serial (hex):",
		serial,
		func(value string) {
			value = strings.TrimSpace(value)
			if err := validation.ValidateSerial(value); err != nil {
				s.app.GetStatusBar().ShowError(err.Error())
				return
			}
			closeDialog(s.app, page, s.table)
			s.confirmRevoke(value)
		},
		func() {
			closeDialog(s.app, page, s.table)
		},
	)
	showDialog(s.app, page, centered(dialog.GetForm(), 60, 7), dialog.GetForm())
}

func (s *NodeListScreen) confirmRevoke(serial string) {
	const page = "revoke-confirm"
	message := fmt.Sprintf("Revoke certificate serial %s?\nEvery node registered with it stops being accepted.", serial)

	dialog := ui.NewWarningDialog("Revoke Certificate", message,
		func() {
			closeDialog(s.app, page, s.table)
			s.revoke(serial)
		},
		func() {
			closeDialog(s.app, page, s.table)
		},
	)
	showDialog(s.app, page, dialog.GetModal(), dialog.GetModal())
}

func (s *NodeListScreen) revoke(serial string) {
	ctx := context.Background()
	result, err := s.apiClient.RevokeSerial(ctx, serial)
	if err != nil {
		s.app.GetStatusBar().ShowError("Failed to revoke: " + err.Error())
		return
	}
	s.auditLogger.LogRevoke(result.Serial, result.DeactivatedNodes)
	s.app.GetStatusBar().ShowSuccess(fmt.Sprintf("Revoked %s (%d nodes deactivated)", result.Serial, len(result.DeactivatedNodes)))

	if err := s.Refresh(ctx); err != nil {
		s.app.GetStatusBar().ShowError("Failed to refresh: " + err.Error())
	}
}
