package monitoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/format"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/store"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/rivo/tview"
)

// StatisticsScreen はフリート全体の件数を表示するダッシュボード。
type StatisticsScreen struct {
	view            *tview.TextView
	app             *ui.App
	statisticsStore *store.StatisticsStore
	onBack          func()
}

// NewStatisticsScreen は新しいStatisticsScreenを生成する。
func NewStatisticsScreen(app *ui.App, statisticsStore *store.StatisticsStore) *StatisticsScreen {
	view := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)

	view.SetTitle(" Statistics Dashboard ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(ui.ColorBorder)

	s := &StatisticsScreen{
		view:            view,
		app:             app,
		statisticsStore: statisticsStore,
	}
	s.setupKeyBindings()
	return s
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *StatisticsScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetView は内部のtview.TextViewを返す。
func (s *StatisticsScreen) GetView() *tview.TextView {
	return s.view
}

// Load は統計を読み込む。1分以内の再読み込みはキャッシュを返す。
func (s *StatisticsScreen) Load(ctx context.Context) error {
	stats, err := s.statisticsStore.Get(ctx)
	if err != nil {
		s.view.SetText("[red]Error loading statistics: " + err.Error() + "[-]")
		return err
	}
	s.view.SetText(renderStatistics(stats))
	return nil
}

// Refresh はキャッシュを破棄して再集計する。
func (s *StatisticsScreen) Refresh(ctx context.Context) error {
	s.statisticsStore.ClearCache()
	return s.Load(ctx)
}

type statRow struct {
	label string
	value string
}

type statSection struct {
	title string
	rows  []statRow
}

func statisticsSections(st *store.Statistics) []statSection {
	plain := func(n int64) string { return fmt.Sprint(n) }
	return []statSection{
		{"Fleet", []statRow{
			{"Devices", plain(st.DeviceCount)},
			{"Blacklisted", countStyle(st.BlacklistCount, "red")},
			{"Networks", plain(st.NetworkCount)},
			{"RADIUS Clients", plain(st.ClientCount)},
		}},
		{"Sessions", []statRow{
			{"Authorized", plain(st.SessionCount)},
			{"Accounting", plain(st.AcctSessionCount)},
		}},
		{"Anomaly Response", []statRow{
			{"Monitoring Nodes", plain(st.NodeCount)},
			{"Active Blocks", countStyle(st.BlockCount, "red")},
			{"Alerts", countStyle(st.AlertCount, "yellow")},
		}},
	}
}

// renderStatistics はダッシュボードの本文を組み立てる。
func renderStatistics(st *store.Statistics) string {
	var b strings.Builder
	b.WriteString("[yellow::b]fleetguard Statistics[-::-]\n")

	for _, sec := range statisticsSections(st) {
		fmt.Fprintf(&b, "\n[white::b]%s[-::-]\n", sec.title)
		for _, r := range sec.rows {
			fmt.Fprintf(&b, "  [cyan]%-18s[-] %s\n", r.label+":", r.value)
		}
	}

	fmt.Fprintf(&b, "\n[gray]Last updated: %s[-]\n", format.DateTime(st.UpdatedAt))
	b.WriteString("[gray]Counts are cached for 1 minute. r: refresh now, q/Esc: back[-]\n")
	return b.String()
}

// countStyle は0より大きい件数を指定色で強調する。
func countStyle(n int64, color string) string {
	if n == 0 {
		return "0"
	}
	return fmt.Sprintf("[%s]%d[-]", color, n)
}

func (s *StatisticsScreen) setupKeyBindings() {
	s.view.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || event.Rune() == ui.RuneQuit {
			if s.onBack != nil {
				s.onBack()
			}
			return nil
		}
		if event.Key() == ui.KeyRefresh || event.Rune() == ui.RuneRefresh {
			refreshWithStatus(s.app, s)
			return nil
		}
		return event
	})
}
