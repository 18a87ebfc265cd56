package importexport

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/audit"
	csvpkg "github.com/oyaguma3/fleetguard/apps/admin-tui/internal/csv"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/store"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/rivo/tview"
)

// ExportScreen はエクスポート画面を表す。
type ExportScreen struct {
	form        *tview.Form
	resultView  *tview.TextView
	flex        *tview.Flex
	app         *ui.App
	deviceStore *store.DeviceStore
	clientStore *store.ClientStore
	auditLogger *audit.Logger
	onComplete  func()
	onCancel    func()
}

// NewExportScreen は新しいExportScreenを生成する。
func NewExportScreen(
	app *ui.App,
	deviceStore *store.DeviceStore,
	clientStore *store.ClientStore,
	auditLogger *audit.Logger,
) *ExportScreen {
	form := tview.NewForm()
	form.SetBorder(true).
		SetTitle(" Export Data ").
		SetBorderColor(tcell.ColorBlue)

	resultView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	resultView.SetBorder(true).
		SetTitle(" Export Result ").
		SetBorderColor(tcell.ColorGray)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 10, 0, true).
		AddItem(resultView, 0, 1, false)

	screen := &ExportScreen{
		form:        form,
		resultView:  resultView,
		flex:        flex,
		app:         app,
		deviceStore: deviceStore,
		clientStore: clientStore,
		auditLogger: auditLogger,
	}

	screen.setupForm()
	return screen
}

// SetOnComplete は完了時のコールバックを設定する。
func (s *ExportScreen) SetOnComplete(handler func()) {
	s.onComplete = handler
}

// SetOnCancel はキャンセル時のコールバックを設定する。
func (s *ExportScreen) SetOnCancel(handler func()) {
	s.onCancel = handler
}

// GetFlex は内部のtview.Flexを返す。
func (s *ExportScreen) GetFlex() *tview.Flex {
	return s.flex
}

func (s *ExportScreen) setupForm() {
	s.form.Clear(true)
	s.form.SetTitle(" Export Data ")

	s.form.AddDropDown("Data Type", dataTypes, 0, nil)
	s.form.AddInputField("Output File", "", 50, nil, nil)
	s.form.AddButton("Export", s.handleExport)
	s.form.AddButton("Cancel", s.handleCancel)

	s.setupKeyBindings()
}

func (s *ExportScreen) setupKeyBindings() {
	s.form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			s.handleCancel()
			return nil
		}
		return event
	})
}

// writeFile はデータ種別に応じたCSVをfilePathに書き出し、件数を返す。
func (s *ExportScreen) writeFile(ctx context.Context, dataType, filePath string) (int, audit.TargetType, error) {
	var (
		count  int
		target audit.TargetType
		write  func(f *os.File) error
	)

	switch dataType {
	case DataTypeDevices:
		devices, err := s.deviceStore.List(ctx)
		if err != nil {
			return 0, "", fmt.Errorf("loading data: %w", err)
		}
		count, target = len(devices), audit.TargetDevice
		write = func(f *os.File) error { return csvpkg.WriteDeviceCSV(f, devices) }
	default:
		clients, err := s.clientStore.List(ctx)
		if err != nil {
			return 0, "", fmt.Errorf("loading data: %w", err)
		}
		count, target = len(clients), audit.TargetClient
		write = func(f *os.File) error { return csvpkg.WriteClientCSV(f, clients) }
	}

	file, err := os.Create(filePath)
	if err != nil {
		return 0, "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := write(file); err != nil {
		return 0, "", fmt.Errorf("writing CSV: %w", err)
	}
	return count, target, nil
}

func (s *ExportScreen) handleExport() {
	_, dataType := s.form.GetFormItemByLabel("Data Type").(*tview.DropDown).GetCurrentOption()
	filePath := strings.TrimSpace(s.form.GetFormItemByLabel("Output File").(*tview.InputField).GetText())

	if filePath == "" {
		s.app.GetStatusBar().ShowError("Output file path is required")
		return
	}

	count, target, err := s.writeFile(context.Background(), dataType, filePath)
	if err != nil {
		s.resultView.SetText("[red]Error " + err.Error() + "[-]")
		return
	}

	s.auditLogger.LogExport(target, count, filePath)

	var result strings.Builder
	result.WriteString("[green]Export completed![-]\n\n")
	fmt.Fprintf(&result, "Exported: %d %s\n", count, strings.ToLower(dataType))
	fmt.Fprintf(&result, "File: %s\n", filePath)
	s.resultView.SetText(result.String())
	s.app.GetStatusBar().ShowSuccess(fmt.Sprintf("Exported %d %s to %s", count, strings.ToLower(dataType), filePath))

	// Export成功後、Done/Export Moreボタンを表示
	s.form.Clear(true)
	s.form.SetTitle(" Export Completed ")
	s.form.AddButton("Done", func() {
		if s.onComplete != nil {
			s.onComplete()
		}
	})
	s.form.AddButton("Export More", func() {
		go func() {
			s.app.QueueUpdateDraw(func() {
				s.setupForm()
				s.resultView.SetText("")
				s.app.SetFocus(s.form)
				s.app.Sync()
			})
		}()
	})

	// InputCaptureを再登録（form.Clear(true)で消失するため）
	s.setupKeyBindings()
	s.app.SetFocus(s.form)
	s.app.Sync()
}

func (s *ExportScreen) handleCancel() {
	if s.onCancel != nil {
		s.onCancel()
	}
}
