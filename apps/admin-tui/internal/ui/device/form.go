package device

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/api"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/audit"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/store"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/validation"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/rivo/tview"
)

// noProtocolOption は主プロトコル未設定を表す選択肢
const noProtocolOption = "(none)"

var modeOptions = []string{string(model.ModeRead), string(model.ModeWrite), string(model.ModeBoth)}

// FormScreen はデバイス登録/編集画面を表す。
// 書き込みはauthz-serverの管理APIを経由する。
type FormScreen struct {
	form        *tview.Form
	app         *ui.App
	deviceStore *store.DeviceStore
	apiClient   *api.Client
	auditLogger *audit.Logger
	editMode    bool
	onSave      func()
	onCancel    func()
}

// NewFormScreen は新しいFormScreenを生成する。
func NewFormScreen(app *ui.App, deviceStore *store.DeviceStore, apiClient *api.Client, auditLogger *audit.Logger) *FormScreen {
	form := tview.NewForm()

	form.SetBorder(true).
		SetBorderColor(tcell.ColorBlue)

	return &FormScreen{
		form:        form,
		app:         app,
		deviceStore: deviceStore,
		apiClient:   apiClient,
		auditLogger: auditLogger,
	}
}

// SetOnSave は保存時のコールバックを設定する。
func (s *FormScreen) SetOnSave(handler func()) {
	s.onSave = handler
}

// SetOnCancel はキャンセル時のコールバックを設定する。
func (s *FormScreen) SetOnCancel(handler func()) {
	s.onCancel = handler
}

// GetForm は内部のtview.Formを返す。
func (s *FormScreen) GetForm() *tview.Form {
	return s.form
}

// SetupCreate は新規作成モードでフォームをセットアップする。
func (s *FormScreen) SetupCreate() {
	s.editMode = false

	s.form.Clear(true)
	s.form.SetTitle(" Register Device ")

	s.addFields(&model.Device{Mode: model.ModeBoth})

	s.form.AddButton("Save", s.handleSave)
	s.form.AddButton("Cancel", s.handleCancel)

	s.setupKeyBindings()
}

// SetupEdit は編集モードでフォームをセットアップする。
func (s *FormScreen) SetupEdit(ctx context.Context, id string) error {
	d, err := s.deviceStore.Get(ctx, id)
	if err != nil {
		return err
	}

	s.editMode = true

	s.form.Clear(true)
	s.form.SetTitle(" Edit Device ")

	s.addFields(d)

	// 編集モードではIDは変更不可
	idField := s.form.GetFormItemByLabel("ID").(*tview.InputField)
	idField.SetDisabled(true)

	s.form.AddButton("Save", s.handleSave)
	s.form.AddButton("Cancel", s.handleCancel)

	s.setupKeyBindings()
	return nil
}

func (s *FormScreen) addFields(d *model.Device) {
	modeIdx := slices.Index(modeOptions, string(d.Mode))
	if modeIdx < 0 {
		modeIdx = slices.Index(modeOptions, string(model.ModeBoth))
	}

	protocols := append([]string{noProtocolOption}, model.KnownProtocols...)
	protoIdx := slices.Index(protocols, d.Protocol)
	if protoIdx < 0 {
		protoIdx = 0
	}

	quota := ""
	if d.Quota > 0 {
		quota = strconv.FormatInt(d.Quota, 10)
	}

	s.form.AddInputField("ID", d.ID, 40, nil, nil)
	s.form.AddInputField("Features", strings.Join(d.SupportedFeatures, ","), 40, nil, nil)
	s.form.AddInputField("Quota (bytes)", quota, 20, nil, nil)
	s.form.AddDropDown("Mode", modeOptions, modeIdx, nil)
	s.form.AddInputField("Role", d.Role, 20, nil, nil)
	s.form.AddDropDown("Protocol", protocols, protoIdx, nil)
}

func (s *FormScreen) handleSave() {
	_, mode := s.form.GetFormItemByLabel("Mode").(*tview.DropDown).GetCurrentOption()
	_, protocol := s.form.GetFormItemByLabel("Protocol").(*tview.DropDown).GetCurrentOption()
	if protocol == noProtocolOption {
		protocol = ""
	}

	input := validation.NormalizeDeviceInput(&validation.DeviceInput{
		ID:       s.form.GetFormItemByLabel("ID").(*tview.InputField).GetText(),
		Features: s.form.GetFormItemByLabel("Features").(*tview.InputField).GetText(),
		Quota:    s.form.GetFormItemByLabel("Quota (bytes)").(*tview.InputField).GetText(),
		Mode:     mode,
		Role:     s.form.GetFormItemByLabel("Role").(*tview.InputField).GetText(),
		Protocol: protocol,
	})

	if errs := validation.ValidateDevice(input); len(errs) > 0 {
		s.app.GetStatusBar().ShowError("Validation error: " + errs[0].Error())
		return
	}

	s.save(input)
}

func (s *FormScreen) save(input *validation.DeviceInput) {
	ctx := context.Background()

	// バリデーション済みのため解析エラーは発生しない
	quota, _ := validation.ParseQuota(input.Quota)

	d, err := s.apiClient.PutDevice(ctx, input.ID, &api.DeviceInput{
		SupportedFeatures: validation.ParseFeatures(input.Features),
		Quota:             quota,
		Mode:              model.Mode(input.Mode),
		Role:              input.Role,
		Protocol:          input.Protocol,
	})
	if err != nil {
		s.app.GetStatusBar().ShowError("Failed to save: " + err.Error())
		return
	}

	if s.editMode {
		s.auditLogger.LogUpdate(audit.TargetDevice, store.DeviceKey(d.ID), d.ID)
		s.app.GetStatusBar().ShowSuccess("Device updated: " + d.ID)
	} else {
		s.auditLogger.LogCreate(audit.TargetDevice, store.DeviceKey(d.ID), d.ID)
		s.app.GetStatusBar().ShowSuccess("Device registered: " + d.ID)
	}

	if s.onSave != nil {
		s.onSave()
	}
}

func (s *FormScreen) handleCancel() {
	if s.onCancel != nil {
		s.onCancel()
	}
}

func (s *FormScreen) setupKeyBindings() {
	s.form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			s.handleCancel()
			return nil
		}
		return event
	})
}
