// Package client はnas-gatewayが参照するRADIUSクライアント(NAS)の管理画面を提供する。
package client

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/store"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/fleetguard/pkg/logging"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/rivo/tview"
)

// defaultNetworkLabel はNetworkID未設定のクライアントの表示。
// nas-gatewayはDEFAULT_NETWORK_IDにフォールバックする。
const defaultNetworkLabel = "(default)"

// ListScreen はRADIUSクライアント一覧画面。
type ListScreen struct {
	table       *tview.Table
	app         *ui.App
	clientStore *store.ClientStore
	clients     []*model.RadiusClient
	filter      *ui.Filter
	pagination  *ui.Pagination
	onCreate    func()
	onEdit      func(ip string)
	onDelete    func(ip string)
	onBack      func()
}

// NewListScreen は新しいListScreenを生成する。
func NewListScreen(app *ui.App, clientStore *store.ClientStore) *ListScreen {
	table := tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)

	table.SetTitle(" RADIUS Client List ").
		SetTitleAlign(tview.AlignCenter).
		SetBorder(true).
		SetBorderColor(ui.ColorBorder)

	screen := &ListScreen{
		table:       table,
		app:         app,
		clientStore: clientStore,
		filter:      ui.NewFilter("IP", "Name", "Network"),
		pagination:  ui.NewPagination(ui.DefaultPageSize),
	}

	screen.setupKeyBindings()
	return screen
}

// SetOnCreate は新規作成時のコールバックを設定する。
func (s *ListScreen) SetOnCreate(handler func()) {
	s.onCreate = handler
}

// SetOnEdit は編集時のコールバックを設定する。Enterでも呼ばれる。
func (s *ListScreen) SetOnEdit(handler func(ip string)) {
	s.onEdit = handler
}

// SetOnDelete は削除時のコールバックを設定する。
func (s *ListScreen) SetOnDelete(handler func(ip string)) {
	s.onDelete = handler
}

// SetOnBack は戻る時のコールバックを設定する。
func (s *ListScreen) SetOnBack(handler func()) {
	s.onBack = handler
}

// GetTable は内部のtview.Tableを返す。
func (s *ListScreen) GetTable() *tview.Table {
	return s.table
}

// Load はValkeyからクライアント一覧を読み込む。
func (s *ListScreen) Load(ctx context.Context) error {
	clients, err := s.clientStore.List(ctx)
	if err != nil {
		return err
	}
	s.clients = clients
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

// GetSelectedIP は選択行のIPを返す。未選択なら空文字。
func (s *ListScreen) GetSelectedIP() string {
	row, _ := s.table.GetSelection()
	pageItems := ui.GetPageItems(s.filtered(), s.pagination)
	if row < 1 || row > len(pageItems) {
		return ""
	}
	return pageItems[row-1].IP
}

func (s *ListScreen) filtered() []*model.RadiusClient {
	return ui.FilterItems(s.clients, s.filter, func(c *model.RadiusClient) []string {
		return []string{c.IP, c.Name, networkLabel(c)}
	})
}

// maskSecret は共有シークレットの先頭と末尾2文字だけを残す。
// 4文字以下は全体を伏せる。
func maskSecret(secret string) string {
	if len([]rune(secret)) <= 4 {
		return "****"
	}
	return logging.MaskPartial(secret, 2, 2, '*')
}

func networkLabel(c *model.RadiusClient) string {
	return c.NetworkOr(defaultNetworkLabel)
}

func (s *ListScreen) render() {
	s.table.Clear()

	for col, header := range []string{"IP Address", "Name", "Secret", "Network"} {
		s.table.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(ui.ColorHeader).
			SetSelectable(false).
			SetExpansion(1))
	}

	pageItems := ui.GetPageItems(s.filtered(), s.pagination)
	for i, c := range pageItems {
		row := i + 1
		networkColor := ui.ColorText
		if c.NetworkID == "" {
			networkColor = ui.ColorMuted
		}
		s.table.SetCell(row, 0, tview.NewTableCell(c.IP).SetTextColor(ui.ColorText).SetExpansion(1))
		s.table.SetCell(row, 1, tview.NewTableCell(c.Name).SetTextColor(ui.ColorText).SetExpansion(1))
		s.table.SetCell(row, 2, tview.NewTableCell(maskSecret(c.Secret)).SetTextColor(ui.ColorMuted).SetExpansion(1))
		s.table.SetCell(row, 3, tview.NewTableCell(networkLabel(c)).SetTextColor(networkColor).SetExpansion(1))
	}

	title := " RADIUS Client List "
	if s.filter.Active {
		title += "[yellow](" + s.filter.FormatFilterStatus() + ")[-] "
	}
	title += "[gray]" + s.pagination.FormatPageInfo() + "[-] "
	s.table.SetTitle(title)

	if len(pageItems) > 0 {
		s.table.Select(1, 0)
	}
}

// withSelected は選択行があればそのIPでfを呼ぶ。
func (s *ListScreen) withSelected(f func(ip string)) {
	if ip := s.GetSelectedIP(); ip != "" && f != nil {
		f(ip)
	}
}

func (s *ListScreen) refresh() {
	s.app.QueueUpdateDraw(func() {
		if err := s.Refresh(context.Background()); err != nil {
			s.app.GetStatusBar().ShowError("Failed to refresh: " + err.Error())
			return
		}
		s.app.GetStatusBar().ShowSuccess("Refreshed")
	})
}

func (s *ListScreen) back() {
	if s.onBack != nil {
		s.onBack()
	}
}

func (s *ListScreen) create() {
	if s.onCreate != nil {
		s.onCreate()
	}
}

func (s *ListScreen) setupKeyBindings() {
	s.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc:
			if s.filter.Active {
				s.ClearFilter()
			} else {
				s.back()
			}
		case ui.KeyCreate:
			s.create()
		case ui.KeyEdit, tcell.KeyEnter:
			s.withSelected(s.onEdit)
		case ui.KeyDelete:
			s.withSelected(s.onDelete)
		case ui.KeyRefresh:
			s.refresh()
		case tcell.KeyPgUp:
			if s.pagination.PrevPage() {
				s.render()
			}
		case tcell.KeyPgDn:
			if s.pagination.NextPage() {
				s.render()
			}
		case tcell.KeyRune:
			switch event.Rune() {
			case ui.RuneCreate:
				s.create()
			case ui.RuneEdit:
				s.withSelected(s.onEdit)
			case ui.RuneDelete:
				s.withSelected(s.onDelete)
			case ui.RuneRefresh:
				s.refresh()
			case ui.RuneFilter:
				s.showFilterDialog()
			case ui.RuneQuit:
				s.back()
			default:
				return event
			}
		default:
			return event
		}
		return nil
	})
}

func (s *ListScreen) showFilterDialog() {
	const page = "filter-dialog"
	dialog := ui.NewInputDialog("Filter Clients", s.filter.Label(), s.filter.Query,
		func(value string) {
			s.SetFilter(value)
			s.app.ClosePage(page)
			s.app.SetFocus(s.table)
		},
		func() {
			s.app.ClosePage(page)
			s.app.SetFocus(s.table)
		},
	)

	s.app.AddPage(page, centered(dialog.GetForm(), 50, 7), true, true)
	s.app.SetFocus(dialog.GetForm())
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
