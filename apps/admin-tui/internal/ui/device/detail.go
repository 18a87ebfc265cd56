package device

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
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/rivo/tview"
)

// DetailScreen はデバイスの状態と検知結果の画面を表す。
type DetailScreen struct {
	flex        *tview.Flex
	textView    *tview.TextView
	findings    *tview.Table
	app         *ui.App
	apiClient   *api.Client
	auditLogger *audit.Logger
	deviceID    string
	status      *api.DeviceStatus
	items       []*model.AnomalyFinding
	onBack      func()
}

// NewDetailScreen は新しいDetailScreenを生成する。
func NewDetailScreen(app *ui.App, apiClient *api.Client, auditLogger *audit.Logger) *DetailScreen {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	textView.SetBorder(true).
		SetTitle(" Device Status ").
		SetBorderColor(tcell.ColorBlue)

	findings := tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	findings.SetBorder(true).
		SetTitle(" Findings ").
		SetBorderColor(tcell.ColorGray)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(textView, 12, 0, false).
		AddItem(findings, 0, 1, true)

	screen := &DetailScreen{
		flex:        flex,
		textView:    textView,
		findings:    findings,
		app:         app,
		apiClient:   apiClient,
		auditLogger: auditLogger,
	}

	screen.setupKeyBindings()
	return screen
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *DetailScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetFlex は内部のtview.Flexを返す。
func (s *DetailScreen) GetFlex() *tview.Flex {
	return s.flex
}

// GetTable は検知結果テーブルを返す。
func (s *DetailScreen) GetTable() *tview.Table {
	return s.findings
}

// Load は指定デバイスの状態と検知結果を読み込む。
func (s *DetailScreen) Load(ctx context.Context, deviceID string) error {
	s.deviceID = deviceID

	status, err := s.apiClient.GetDevice(ctx, deviceID)
	if err != nil {
		s.textView.SetText("[red]Error loading device: " + err.Error() + "[-]")
		return err
	}
	items, err := s.apiClient.ListFindings(ctx, deviceID)
	if err != nil {
		return err
	}

	s.status = status
	s.items = items
	s.renderStatus()
	s.renderFindings()
	return nil
}

// Refresh は現在のデバイスを再読み込みする。
func (s *DetailScreen) Refresh(ctx context.Context) error {
	return s.Load(ctx, s.deviceID)
}

// GetSelectedFinding は選択されている検知結果を返す。
func (s *DetailScreen) GetSelectedFinding() *model.AnomalyFinding {
	row, _ := s.findings.GetSelection()
	idx := row - 1
	if idx < 0 || idx >= len(s.items) {
		return nil
	}
	return s.items[idx]
}

func (s *DetailScreen) renderStatus() {
	st := s.status
	d := st.Device
	var b strings.Builder

	fmt.Fprintf(&b, "[yellow::b]%s[-::-]", d.ID)
	if d.Blacklisted {
		b.WriteString("  [red::b]BLACKLISTED[-::-]")
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  [cyan]State:[-]     %s\n", ui.StyleText(string(st.State), ui.StateColor(st.State)))
	if st.Trust != nil {
		fmt.Fprintf(&b, "  [cyan]Trust:[-]     %.1f\n", st.Trust.Score)
	}
	fmt.Fprintf(&b, "  [cyan]Mode:[-]      %s    [cyan]Role:[-] %s    [cyan]Protocol:[-] %s\n",
		d.Mode, orDash(d.Role), orDash(d.Protocol))
	fmt.Fprintf(&b, "  [cyan]Usage:[-]     %s\n", format.Usage(st.Usage, d.Quota))
	fmt.Fprintf(&b, "  [cyan]Features:[-]  %s\n", orDash(strings.Join(d.SupportedFeatures, ", ")))

	var rates []string
	for _, rc := range st.RateCounters {
		if rc.Count > 0 {
			rates = append(rates, format.Rate(rc.Action, rc.Count, rc.Limit))
		}
	}
	fmt.Fprintf(&b, "  [cyan]Rates:[-]     %s  [gray](window %s)[-]\n", orDash(strings.Join(rates, ", ")), orDash(st.RateWindow))

	now := time.Now().Unix()
	if st.Block.ActiveAt(now) {
		until := "until unblocked"
		if st.Block.Kind == model.BlockTemporary {
			until = format.Remaining(st.Block.ExpiresAt) + " left"
		}
		fmt.Fprintf(&b, "  [red]Block:[-]     %s (%s) %s\n", st.Block.Kind, until, st.Block.Reason)
	}
	if st.Warning != nil && now < st.Warning.ExpiresAt {
		fmt.Fprintf(&b, "  [yellow]Warning:[-]   %s (expires %s)\n", st.Warning.Reason, format.DateTimeShort(st.Warning.ExpiresAt))
	}

	s.textView.SetText(b.String())
}

func (s *DetailScreen) renderFindings() {
	s.findings.Clear()

	headers := []string{"Observed", "Protocol", "Anomaly", "Severity", "Confidence", "Note"}
	for col, header := range headers {
		s.findings.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1))
	}

	for i, f := range s.items {
		row := i + 1

		noteColor := tcell.ColorGray
		if !f.Actionable {
			noteColor = tcell.ColorDarkGray
		}

		s.findings.SetCell(row, 0, tview.NewTableCell(format.DateTimeShort(f.ObservedAt)).
			SetTextColor(tcell.ColorGray).
			SetExpansion(1))
		s.findings.SetCell(row, 1, tview.NewTableCell(f.Protocol).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(1))
		s.findings.SetCell(row, 2, tview.NewTableCell(f.AnomalyType).
			SetTextColor(tcell.ColorWhite).
			SetExpansion(1))
		s.findings.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%s (%.0f)", f.Severity, f.SeverityScore)).
			SetTextColor(ui.SeverityColor(f.Severity)).
			SetExpansion(1))
		s.findings.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf("%.2f", f.Confidence)).
			SetTextColor(tcell.ColorTeal).
			SetExpansion(1))
		s.findings.SetCell(row, 5, tview.NewTableCell(format.Truncate(f.Note, 30)).
			SetTextColor(noteColor).
			SetExpansion(2))
	}

	s.findings.SetTitle(fmt.Sprintf(" Findings (%d) ", len(s.items)))
	if len(s.items) > 0 {
		s.findings.Select(1, 0)
	}
}

func (s *DetailScreen) setupKeyBindings() {
	s.findings.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc:
			if s.onBack != nil {
				s.onBack()
			}
			return nil
		case tcell.KeyF5:
			s.refresh()
			return nil
		}

		switch event.Rune() {
		case ui.RuneFalsePositive:
			if f := s.GetSelectedFinding(); f != nil {
				s.confirmFalsePositive(f)
			}
			return nil
		case ui.RuneUnblock:
			if s.status != nil && s.status.Block.ActiveAt(time.Now().Unix()) {
				s.unblock()
			}
			return nil
		case ui.RuneRefresh:
			s.refresh()
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

func (s *DetailScreen) refresh() {
	s.app.QueueUpdateDraw(func() {
		if err := s.Refresh(context.Background()); err != nil {
			s.app.GetStatusBar().ShowError("Failed to refresh: " + err.Error())
		} else {
			s.app.GetStatusBar().ShowSuccess("Refreshed")
		}
	})
}

func (s *DetailScreen) confirmFalsePositive(f *model.AnomalyFinding) {
	const page = "false-positive-confirm"

	dialog := ui.NewConfirmDialog(
		"Mark False Positive",
		fmt.Sprintf("Mark %s on %s as a false positive?\nMatching reports will be ignored.", f.AnomalyType, f.DeviceID),
		func() {
			s.app.ClosePage(page)
			s.app.SetFocus(s.findings)
			s.markFalsePositive(f)
		},
		func() {
			s.app.ClosePage(page)
			s.app.SetFocus(s.findings)
		},
	)

	s.app.AddPage(page, dialog.GetModal(), true, true)
}

func (s *DetailScreen) markFalsePositive(f *model.AnomalyFinding) {
	ctx := context.Background()
	if _, err := s.apiClient.MarkFalsePositive(ctx, f.ID); err != nil {
		s.app.GetStatusBar().ShowError("Failed to mark false positive: " + err.Error())
		return
	}
	s.auditLogger.LogFalsePositive(f.ID, f.DeviceID, f.AnomalyType)
	s.app.GetStatusBar().ShowSuccess("Marked false positive: " + f.AnomalyType)

	if err := s.Refresh(ctx); err != nil {
		s.app.GetStatusBar().ShowError("Failed to refresh: " + err.Error())
	}
}

func (s *DetailScreen) unblock() {
	ctx := context.Background()
	if err := s.apiClient.Unblock(ctx, s.deviceID); err != nil {
		s.app.GetStatusBar().ShowError("Failed to unblock: " + err.Error())
		return
	}
	s.auditLogger.LogUnblock(s.deviceID)
	s.app.GetStatusBar().ShowSuccess("Unblocked " + s.deviceID)

	if err := s.Refresh(ctx); err != nil {
		s.app.GetStatusBar().ShowError("Failed to refresh: " + err.Error())
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
