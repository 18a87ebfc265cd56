package monitoring

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/api"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/audit"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/format"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/rivo/tview"
)

// AlertFetchLimit は一覧画面で取得するアラートの最大件数
const AlertFetchLimit = 100

// AlertListScreen はアラート一覧画面を表す。
type AlertListScreen struct {
	table         *tview.Table
	app           *ui.App
	apiClient     *api.Client
	auditLogger   *audit.Logger
	alerts        []*model.Alert
	filter        *ui.Filter
	pagination    *ui.Pagination
	hideConfirmed bool
	onBack        func()
}

// NewAlertListScreen は新しいAlertListScreenを生成する。
func NewAlertListScreen(app *ui.App, apiClient *api.Client, auditLogger *audit.Logger) *AlertListScreen {
	table := tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)

	table.SetTitle(" Alerts ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(tcell.ColorBlue)

	screen := &AlertListScreen{
		table:       table,
		app:         app,
		apiClient:   apiClient,
		auditLogger: auditLogger,
		filter:      ui.NewFilter("Device", "Type", "Severity"),
		pagination:  ui.NewPagination(ui.DefaultPageSize),
	}

	screen.setupKeyBindings()
	return screen
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *AlertListScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetTable は内部のtview.Tableを返す。
func (s *AlertListScreen) GetTable() *tview.Table {
	return s.table
}

// Load はデータを読み込む。APIは新しい順に返す。
func (s *AlertListScreen) Load(ctx context.Context) error {
	alerts, err := s.apiClient.ListAlerts(ctx, AlertFetchLimit)
	if err != nil {
		return err
	}

	s.alerts = alerts
	s.render()
	return nil
}

// Refresh はデータを再読み込みする。
func (s *AlertListScreen) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// SetFilter はフィルタを設定する。
func (s *AlertListScreen) SetFilter(query string) {
	s.filter.SetQuery(query)
	s.pagination.FirstPage()
	s.render()
}

// ClearFilter はフィルタをクリアする。
func (s *AlertListScreen) ClearFilter() {
	s.filter.Clear()
	s.pagination.FirstPage()
	s.render()
}

// ToggleConfirmed は確認済みアラートの表示を切り替える。
func (s *AlertListScreen) ToggleConfirmed() {
	s.hideConfirmed = !s.hideConfirmed
	s.pagination.FirstPage()
	s.render()
}

// GetSelected は選択されているアラートを返す。
func (s *AlertListScreen) GetSelected() *model.Alert {
	row, _ := s.table.GetSelection()
	pageItems := ui.GetPageItems(s.getFilteredAlerts(), s.pagination)
	idx := row - 1
	if idx < 0 || idx >= len(pageItems) {
		return nil
	}
	return pageItems[idx]
}

func (s *AlertListScreen) getFilteredAlerts() []*model.Alert {
	alerts := s.alerts
	if s.hideConfirmed {
		alerts = make([]*model.Alert, 0, len(s.alerts))
		for _, a := range s.alerts {
			if !a.Confirmed() {
				alerts = append(alerts, a)
			}
		}
	}
	return ui.FilterItems(alerts, s.filter, func(a *model.Alert) []string {
		return []string{a.DeviceID, a.Type, string(a.Severity)}
	})
}

func alertStatus(a *model.Alert) (string, tcell.Color) {
	switch {
	case a.Acknowledged:
		return "ack by " + a.AcknowledgedBy, tcell.ColorGray
	case a.AdminNotified:
		return "notified", tcell.ColorGreen
	default:
		return "pending", tcell.ColorRed
	}
}

func (s *AlertListScreen) render() {
	s.table.Clear()

	headers := []string{"Time", "Severity", "Device", "Type", "Status"}
	for col, header := range headers {
		s.table.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetAlign(tview.AlignLeft).
			SetSelectable(false).
			SetExpansion(1))
	}

	pageItems := ui.GetPageItems(s.getFilteredAlerts(), s.pagination)
	for i, a := range pageItems {
		row := i + 1
		status, statusColor := alertStatus(a)

		s.table.SetCell(row, 0, tview.NewTableCell(format.DateTimeShort(a.CreatedAt)).
			SetTextColor(tcell.ColorGray).
			SetExpansion(1))
		s.table.SetCell(row, 1, tview.NewTableCell(string(a.Severity)).
			SetTextColor(ui.SeverityColor(a.Severity)).
			SetExpansion(1))
		s.table.SetCell(row, 2, tview.NewTableCell(a.DeviceID).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(1))
		s.table.SetCell(row, 3, tview.NewTableCell(a.Type).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(1))
		s.table.SetCell(row, 4, tview.NewTableCell(status).
			SetTextColor(statusColor).
			SetExpansion(1))
	}

	title := " Alerts "
	if s.hideConfirmed {
		title += "[red](unconfirmed only)[-] "
	}
	if s.filter.Active {
		title += "[yellow](" + s.filter.FormatFilterStatus() + ")[-] "
	}
	title += "[gray]" + s.pagination.FormatPageInfo() + "[-] "
	s.table.SetTitle(title)

	if len(pageItems) > 0 {
		s.table.Select(1, 0)
	}
}

func (s *AlertListScreen) setupKeyBindings() {
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
		case ui.RuneAcknowledge:
			if a := s.GetSelected(); a != nil {
				s.acknowledge(a)
			}
			return nil
		case ui.RuneHideConfirmed:
			s.ToggleConfirmed()
			return nil
		case ui.RuneRefresh:
			refreshWithStatus(s.app, s)
			return nil
		case ui.RuneFilter:
			showFilterDialog(s.app, "Filter Alerts", s.filter, s.table, s.SetFilter)
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

func (s *AlertListScreen) acknowledge(a *model.Alert) {
	if a.Acknowledged {
		s.app.GetStatusBar().ShowInfo("Alert already acknowledged")
		return
	}

	ctx := context.Background()
	if err := s.apiClient.AcknowledgeAlert(ctx, a.ID); err != nil {
		s.app.GetStatusBar().ShowError("Failed to acknowledge: " + err.Error())
		return
	}
	s.auditLogger.LogAcknowledge(a.ID, a.DeviceID)
	s.app.GetStatusBar().ShowSuccess("Acknowledged alert for " + a.DeviceID)

	if err := s.Refresh(ctx); err != nil {
		s.app.GetStatusBar().ShowError("Failed to refresh: " + err.Error())
	}
}
