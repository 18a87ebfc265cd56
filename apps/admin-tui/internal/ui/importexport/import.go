// Package importexport はインポート/エクスポート画面を提供する。
package importexport

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/api"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/audit"
	csvpkg "github.com/oyaguma3/fleetguard/apps/admin-tui/internal/csv"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/store"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/rivo/tview"
)

// データ種別
const (
	DataTypeDevices = "Devices"
	DataTypeClients = "RADIUS Clients"
)

var dataTypes = []string{DataTypeDevices, DataTypeClients}

// DevicePutter はデバイスの登録・更新を行う。
type DevicePutter interface {
	PutDevice(ctx context.Context, deviceID string, in *api.DeviceInput) (*model.Device, error)
}

// ImportScreen はインポート画面を表す。
type ImportScreen struct {
	form        *tview.Form
	resultView  *tview.TextView
	flex        *tview.Flex
	app         *ui.App
	devices     DevicePutter
	clientStore *store.ClientStore
	auditLogger *audit.Logger
	onComplete  func()
	onCancel    func()
}

// NewImportScreen は新しいImportScreenを生成する。
func NewImportScreen(
	app *ui.App,
	devices DevicePutter,
	clientStore *store.ClientStore,
	auditLogger *audit.Logger,
) *ImportScreen {
	form := tview.NewForm()
	form.SetBorder(true).
		SetTitle(" Import Data ").
		SetBorderColor(tcell.ColorBlue)

	resultView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	resultView.SetBorder(true).
		SetTitle(" Import Result ").
		SetBorderColor(tcell.ColorGray)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 12, 0, true).
		AddItem(resultView, 0, 1, false)

	screen := &ImportScreen{
		form:        form,
		resultView:  resultView,
		flex:        flex,
		app:         app,
		devices:     devices,
		clientStore: clientStore,
		auditLogger: auditLogger,
	}

	screen.setupForm()
	return screen
}

// SetOnComplete は完了時のコールバックを設定する。
func (s *ImportScreen) SetOnComplete(handler func()) {
	s.onComplete = handler
}

// SetOnCancel はキャンセル時のコールバックを設定する。
func (s *ImportScreen) SetOnCancel(handler func()) {
	s.onCancel = handler
}

// GetFlex は内部のtview.Flexを返す。
func (s *ImportScreen) GetFlex() *tview.Flex {
	return s.flex
}

func (s *ImportScreen) setupForm() {
	s.form.Clear(true)
	s.form.SetTitle(" Import Data ")

	s.form.AddDropDown("Data Type", dataTypes, 0, nil)
	s.form.AddInputField("File Path", "", 50, nil, nil)
	s.form.AddButton("Validate", s.handleValidate)
	s.form.AddButton("Import", s.handleImport)
	s.form.AddButton("Cancel", s.handleCancel)

	s.setupKeyBindings()
}

func (s *ImportScreen) setupKeyBindings() {
	s.form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			s.handleCancel()
			return nil
		}
		return event
	})
}

// parsed はCSV解析結果を表す。
type parsed struct {
	dataType string
	devices  []*model.Device
	clients  []*model.RadiusClient
	errs     []error
}

func (p *parsed) count() int {
	return len(p.devices) + len(p.clients)
}

func parseFile(dataType string, r io.Reader) *parsed {
	switch dataType {
	case DataTypeDevices:
		devices, errs := csvpkg.ParseDeviceCSV(r)
		return &parsed{dataType: dataType, devices: devices, errs: errs}
	default:
		clients, errs := csvpkg.ParseClientCSV(r)
		return &parsed{dataType: dataType, clients: clients, errs: errs}
	}
}

func writeErrors(b *strings.Builder, heading string, errs []error) {
	b.WriteString("[red]" + heading + "[-]\n")
	for _, e := range errs {
		b.WriteString("  - " + e.Error() + "\n")
	}
}

func (s *ImportScreen) readInput() (string, *parsed, bool) {
	_, dataType := s.form.GetFormItemByLabel("Data Type").(*tview.DropDown).GetCurrentOption()
	filePath := strings.TrimSpace(s.form.GetFormItemByLabel("File Path").(*tview.InputField).GetText())

	if filePath == "" {
		s.app.GetStatusBar().ShowError("File path is required")
		return "", nil, false
	}

	file, err := os.Open(filePath)
	if err != nil {
		s.resultView.SetText("[red]Error: " + err.Error() + "[-]")
		return "", nil, false
	}
	defer file.Close()

	return filePath, parseFile(dataType, file), true
}

func (s *ImportScreen) handleValidate() {
	_, p, ok := s.readInput()
	if !ok {
		return
	}

	var result strings.Builder
	result.WriteString("[yellow]Validation Result[-]\n\n")

	if len(p.errs) > 0 {
		writeErrors(&result, "Validation failed:", p.errs)
	} else {
		result.WriteString("[green]Validation passed![-]\n\n")
		fmt.Fprintf(&result, "Records to import: %d\n", p.count())
	}

	s.resultView.SetText(result.String())
}

func (s *ImportScreen) handleImport() {
	filePath, p, ok := s.readInput()
	if !ok {
		return
	}

	var result strings.Builder
	if len(p.errs) > 0 {
		writeErrors(&result, "Validation failed - Import aborted:", p.errs)
		s.resultView.SetText(result.String())
		return
	}

	ctx := context.Background()

	if p.dataType == DataTypeDevices {
		imported, failures := ImportDevices(ctx, s.devices, p.devices)
		if imported > 0 {
			s.auditLogger.LogImport(audit.TargetDevice, imported, filePath)
		}
		if len(failures) > 0 {
			writeErrors(&result, fmt.Sprintf("Imported %d of %d devices. Failures:", imported, len(p.devices)), failures)
			s.resultView.SetText(result.String())
			s.app.GetStatusBar().ShowWarning(fmt.Sprintf("Imported %d devices, %d failed", imported, len(failures)))
			return
		}
		result.WriteString("[green]Import completed![-]\n\n")
		fmt.Fprintf(&result, "Imported: %d devices\n", imported)
		s.app.GetStatusBar().ShowSuccess(fmt.Sprintf("Imported %d devices", imported))
	} else {
		// TxPipelineで一括挿入
		if err := s.clientStore.BulkCreate(ctx, p.clients); err != nil {
			result.WriteString("[red]Import failed: " + err.Error() + "[-]")
			s.resultView.SetText(result.String())
			return
		}

		s.auditLogger.LogImport(audit.TargetClient, len(p.clients), filePath)
		result.WriteString("[green]Import completed![-]\n\n")
		fmt.Fprintf(&result, "Imported: %d clients\n", len(p.clients))
		s.app.GetStatusBar().ShowSuccess(fmt.Sprintf("Imported %d clients", len(p.clients)))
	}

	s.resultView.SetText(result.String())
	s.showCompleted()
}

// ImportDevices はデバイスを1件ずつ管理APIで登録する。
// 失敗した行があっても残りの登録は継続する。
func ImportDevices(ctx context.Context, putter DevicePutter, devices []*model.Device) (int, []error) {
	imported := 0
	var failures []error
	for _, d := range devices {
		_, err := putter.PutDevice(ctx, d.ID, &api.DeviceInput{
			SupportedFeatures: d.SupportedFeatures,
			Quota:             d.Quota,
			Mode:              d.Mode,
			Role:              d.Role,
			Protocol:          d.Protocol,
		})
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", d.ID, err))
			continue
		}
		imported++
	}
	return imported, failures
}

func (s *ImportScreen) showCompleted() {
	// Import成功後、Done/Import Moreボタンを表示
	s.form.Clear(true)
	s.form.SetTitle(" Import Completed ")
	s.form.AddButton("Done", func() {
		if s.onComplete != nil {
			s.onComplete()
		}
	})
	s.form.AddButton("Import More", func() {
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

func (s *ImportScreen) handleCancel() {
	if s.onCancel != nil {
		s.onCancel()
	}
}
