// Admin TUI - fleetguard運用コンソール
package main

import (
	"context"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/api"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/audit"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/config"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/store"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui/client"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui/device"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui/importexport"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui/monitoring"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui/network"
	"github.com/oyaguma3/fleetguard/pkg/valkey"
	"github.com/redis/go-redis/v9"
	"github.com/rivo/tview"
)

// 画面のページ名
const (
	pageStartupError = "startup-error"
	pageMainMenu     = "main-menu"
	pageHelp         = "help"
	pageConfirm      = "confirm"
	pageDeviceList   = "device-list"
	pageDeviceForm   = "device-form"
	pageDeviceDetail = "device-detail"
	pageClientList   = "client-list"
	pageClientForm   = "client-form"
	pageNetworkList  = "network-list"
	pageNetworkForm  = "network-form"
	pageImportExport = "import-export-menu"
	pageImport       = "import-screen"
	pageExport       = "export-screen"
	pageMonitoring   = "monitoring-menu"
	pageStatistics   = "statistics"
	pageBlockList    = "block-list"
	pageAlertList    = "alert-list"
	pageNodeList     = "node-list"
)

// Application は画面遷移と共有リソースを保持する。
// 参照系はValkeyを直接読み、エンジンが所有するデータの更新はAdmin API経由で行う。
type Application struct {
	app         *ui.App
	cfg         *config.Config
	redisClient *redis.Client
	apiClient   *api.Client
	auditLogger *audit.Logger
	auditFile   *os.File

	deviceStore     *store.DeviceStore
	clientStore     *store.ClientStore
	networkStore    *store.NetworkStore
	statisticsStore *store.StatisticsStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 監査ログは画面出力と混ざらないようファイルへ書き込む
	auditFile, err := os.OpenFile(cfg.AuditLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		log.Fatalf("Failed to open audit log: %v", err)
	}

	a := &Application{
		app:         ui.NewApp(),
		cfg:         cfg,
		apiClient:   api.NewClient(cfg),
		auditLogger: audit.NewLogger(auditFile, cfg.AdminActor),
		auditFile:   auditFile,
	}
	a.app.GetStatusBar().SetApp(a.app.GetApplication())

	if err := a.connectValkey(); err != nil {
		a.app.AddPage(pageStartupError, a.startupError(err).GetModal(), true, true)
	} else {
		a.start()
	}

	if err := a.app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func (a *Application) connectValkey() error {
	client, err := valkey.NewClient(valkey.NewOptions(valkey.ProfileConsole, a.cfg.ValkeyAddr, a.cfg.ValkeyPassword))
	if err != nil {
		return err
	}

	a.redisClient = client
	a.deviceStore = store.NewDeviceStore(client)
	a.clientStore = store.NewClientStore(client)
	a.networkStore = store.NewNetworkStore(client)
	a.statisticsStore = store.NewStatisticsStore(client, a.deviceStore, a.clientStore, a.networkStore)
	return nil
}

func (a *Application) startupError(cause error) *ui.StartupErrorScreen {
	return ui.NewStartupErrorScreen(a.cfg.ValkeyAddr, cause.Error(),
		func() {
			if err := a.connectValkey(); err != nil {
				a.app.GetStatusBar().ShowError("Connection failed: " + err.Error())
				return
			}
			a.app.ClosePage(pageStartupError)
			a.start()
		},
		a.quit,
	)
}

// start はメインメニューとグローバルキーを設定する。
func (a *Application) start() {
	menu := ui.NewMainMenu(ui.MainMenuActions{
		Devices:      a.showDeviceList,
		Clients:      a.showClientList,
		Networks:     a.showNetworkList,
		ImportExport: a.showImportExportMenu,
		Monitoring:   a.showMonitoringMenu,
		Exit:         a.quit,
	})
	a.app.AddPage(pageMainMenu, menu.GetList(), true, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case ui.KeyQuit:
			a.quit()
			return nil
		case ui.KeyHelp:
			help := ui.NewHelpModal(ui.GetDefaultHelpSections(), func() { a.app.ClosePage(pageHelp) })
			a.app.AddPage(pageHelp, help.GetModal(), true, true)
			return nil
		}
		return event
	})
}

func (a *Application) quit() {
	if a.redisClient != nil {
		_ = a.redisClient.Close()
	}
	if a.auditFile != nil {
		_ = a.auditFile.Close()
	}
	a.app.Stop()
}

// openScreen はページを表示してfocusにフォーカスを移し、loadを非同期で実行する。
func (a *Application) openScreen(page string, root, focus tview.Primitive, load func(context.Context) error) {
	a.app.AddPage(page, root, true, false)
	a.app.SwitchToPage(page)
	if focus != nil {
		a.app.SetFocus(focus)
	}
	if load == nil {
		return
	}
	go a.app.QueueUpdateDraw(func() {
		if err := load(context.Background()); err != nil {
			a.app.GetStatusBar().ShowError("Failed to load: " + err.Error())
		}
	})
}

// openForm はフォームを中央に重ねて表示する。
func (a *Application) openForm(page string, form *tview.Form, width, height int) {
	centered := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(form, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
	a.app.AddPage(page, centered, true, true)
	a.app.SetFocus(form)
}

// closeTo はpageを閉じてtoに戻る関数を返す。
func (a *Application) closeTo(page, to string) func() {
	return func() {
		a.app.ClosePage(page)
		a.app.SwitchToPage(to)
	}
}

func (a *Application) toMainMenu() { a.app.SwitchToPage(pageMainMenu) }

func (a *Application) confirm(title, message string, onConfirm func()) {
	dialog := ui.NewConfirmDialog(title, message,
		func() {
			a.app.ClosePage(pageConfirm)
			onConfirm()
		},
		func() { a.app.ClosePage(pageConfirm) },
	)
	a.app.AddPage(pageConfirm, dialog.GetModal(), true, true)
}

// デバイス

func (a *Application) showDeviceList() {
	screen := device.NewListScreen(a.app, a.deviceStore)
	screen.SetOnSelect(a.showDeviceDetail)
	screen.SetOnCreate(func() { a.showDeviceForm("") })
	screen.SetOnEdit(a.showDeviceForm)
	screen.SetOnBlacklist(func(id string, blacklisted bool) {
		a.confirmBlacklist(id, !blacklisted, func() { _ = screen.Refresh(context.Background()) })
	})
	screen.SetOnBack(a.toMainMenu)

	a.openScreen(pageDeviceList, screen.GetTable(), screen.GetTable(), screen.Load)
}

// showDeviceForm はidが空なら新規登録、それ以外は編集としてフォームを開く。
func (a *Application) showDeviceForm(id string) {
	screen := device.NewFormScreen(a.app, a.deviceStore, a.apiClient, a.auditLogger)
	screen.SetOnSave(func() {
		a.app.ClosePage(pageDeviceForm)
		a.showDeviceList()
	})
	screen.SetOnCancel(a.closeTo(pageDeviceForm, pageDeviceList))

	if id == "" {
		screen.SetupCreate()
	} else if err := screen.SetupEdit(context.Background(), id); err != nil {
		a.app.GetStatusBar().ShowError("Failed to load device: " + err.Error())
		return
	}
	a.openForm(pageDeviceForm, screen.GetForm(), 64, 19)
}

func (a *Application) showDeviceDetail(id string) {
	screen := device.NewDetailScreen(a.app, a.apiClient, a.auditLogger)
	screen.SetOnBack(func() {
		a.app.ClosePage(pageDeviceDetail)
		a.showDeviceList()
	})

	a.openScreen(pageDeviceDetail, screen.GetFlex(), screen.GetTable(), func(ctx context.Context) error {
		return screen.Load(ctx, id)
	})
}

func (a *Application) confirmBlacklist(id string, on bool, onDone func()) {
	title, message, done := "Blacklist Device",
		"Blacklist this device?\nAll further requests will be denied.\n\n"+id,
		"Device blacklisted: "+id
	if !on {
		title, message, done = "Remove From Blacklist",
			"Remove this device from the blacklist?\n\n"+id,
			"Device removed from blacklist: "+id
	}

	a.confirm(title, message, func() {
		if err := a.apiClient.SetBlacklisted(context.Background(), id, on); err != nil {
			a.app.GetStatusBar().ShowError("Failed to update blacklist: " + err.Error())
			return
		}
		a.auditLogger.LogBlacklist(id, on)
		a.app.GetStatusBar().ShowSuccess(done)
		onDone()
	})
}

// NASクライアント

func (a *Application) showClientList() {
	screen := client.NewListScreen(a.app, a.clientStore)
	screen.SetOnCreate(func() { a.showClientForm("") })
	screen.SetOnEdit(a.showClientForm)
	screen.SetOnDelete(func(ip string) {
		a.confirm("Confirm Delete", "Are you sure you want to delete this client?\n\n"+ip, func() {
			ctx := context.Background()
			if err := a.clientStore.Delete(ctx, ip); err != nil {
				a.app.GetStatusBar().ShowError("Failed to delete: " + err.Error())
				return
			}
			a.auditLogger.LogDelete(audit.TargetClient, store.ClientKey(ip), "")
			a.app.GetStatusBar().ShowSuccess("Client deleted: " + ip)
			_ = screen.Refresh(ctx)
		})
	})
	screen.SetOnBack(a.toMainMenu)

	a.openScreen(pageClientList, screen.GetTable(), screen.GetTable(), screen.Load)
}

// showClientForm はipが空なら新規登録、それ以外は編集としてフォームを開く。
func (a *Application) showClientForm(ip string) {
	screen := client.NewFormScreen(a.app, a.clientStore, a.networkStore, a.auditLogger)
	screen.SetOnSave(func() {
		a.app.ClosePage(pageClientForm)
		a.showClientList()
	})
	screen.SetOnCancel(a.closeTo(pageClientForm, pageClientList))

	ctx := context.Background()
	if ip == "" {
		if err := screen.SetupCreate(ctx); err != nil {
			a.app.GetStatusBar().ShowError("Failed to load networks: " + err.Error())
			return
		}
	} else if err := screen.SetupEdit(ctx, ip); err != nil {
		a.app.GetStatusBar().ShowError("Failed to load client: " + err.Error())
		return
	}
	a.openForm(pageClientForm, screen.GetForm(), 60, 14)
}

// ネットワーク

func (a *Application) showNetworkList() {
	screen := network.NewListScreen(a.app, a.networkStore)
	screen.SetOnCreate(func() { a.showNetworkForm(nil) })
	screen.SetOnEdit(a.showNetworkForm)
	screen.SetOnBack(a.toMainMenu)

	a.openScreen(pageNetworkList, screen.GetTable(), screen.GetTable(), screen.Load)
}

func (a *Application) showNetworkForm(n *store.NetworkInfo) {
	screen := network.NewFormScreen(a.app, a.apiClient, a.auditLogger)
	screen.SetOnSave(func() {
		a.app.ClosePage(pageNetworkForm)
		a.showNetworkList()
	})
	screen.SetOnCancel(a.closeTo(pageNetworkForm, pageNetworkList))

	if n != nil {
		screen.SetupEdit(n.Network)
	} else {
		screen.SetupCreate()
	}
	a.openForm(pageNetworkForm, screen.GetForm(), 60, 12)
}

// インポート/エクスポート

func (a *Application) showImportExportMenu() {
	menu := ui.NewMenu("Import/Export", []ui.MenuItem{
		{Label: "Import", Description: "Import devices or RADIUS clients from CSV", Key: '1', Action: a.showImportScreen},
		{Label: "Export", Description: "Export devices or RADIUS clients to CSV", Key: '2', Action: a.showExportScreen},
		{Label: "Back", Description: "Return to main menu", Key: ui.RuneQuit, Action: a.toMainMenu},
	})
	menu.SetOnQuit(a.toMainMenu)

	a.openScreen(pageImportExport, menu.GetList(), nil, nil)
}

func (a *Application) showImportScreen() {
	screen := importexport.NewImportScreen(a.app, a.apiClient, a.clientStore, a.auditLogger)
	screen.SetOnComplete(func() { a.app.SwitchToPage(pageImportExport) })
	screen.SetOnCancel(a.closeTo(pageImport, pageImportExport))

	a.openScreen(pageImport, screen.GetFlex(), nil, nil)
}

func (a *Application) showExportScreen() {
	screen := importexport.NewExportScreen(a.app, a.deviceStore, a.clientStore, a.auditLogger)
	screen.SetOnComplete(func() { a.app.SwitchToPage(pageImportExport) })
	screen.SetOnCancel(a.closeTo(pageExport, pageImportExport))

	a.openScreen(pageExport, screen.GetFlex(), nil, nil)
}

// 監視

func (a *Application) showMonitoringMenu() {
	screen := monitoring.NewMenuScreen()
	screen.SetOnStatistics(a.showStatistics)
	screen.SetOnBlocks(a.showBlocks)
	screen.SetOnAlerts(a.showAlerts)
	screen.SetOnNodes(a.showNodes)
	screen.SetOnBack(a.toMainMenu)

	a.openScreen(pageMonitoring, screen.GetList(), nil, nil)
}

func (a *Application) showStatistics() {
	screen := monitoring.NewStatisticsScreen(a.app, a.statisticsStore)
	screen.SetOnBack(a.closeTo(pageStatistics, pageMonitoring))

	a.openScreen(pageStatistics, screen.GetView(), nil, screen.Load)
}

func (a *Application) showBlocks() {
	screen := monitoring.NewBlockListScreen(a.app, a.apiClient, a.auditLogger)
	screen.SetOnBack(a.closeTo(pageBlockList, pageMonitoring))

	a.openScreen(pageBlockList, screen.GetTable(), screen.GetTable(), screen.Load)
}

func (a *Application) showAlerts() {
	screen := monitoring.NewAlertListScreen(a.app, a.apiClient, a.auditLogger)
	screen.SetOnBack(a.closeTo(pageAlertList, pageMonitoring))

	a.openScreen(pageAlertList, screen.GetTable(), screen.GetTable(), screen.Load)
}

func (a *Application) showNodes() {
	screen := monitoring.NewNodeListScreen(a.app, a.apiClient, a.auditLogger)
	screen.SetOnBack(a.closeTo(pageNodeList, pageMonitoring))

	a.openScreen(pageNodeList, screen.GetTable(), screen.GetTable(), screen.Load)
}
