package network

import (
	"context"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/api"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/audit"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/store"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/validation"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/rivo/tview"
)

// FormScreen はネットワーク登録/編集画面を表す。
type FormScreen struct {
	form        *tview.Form
	app         *ui.App
	apiClient   *api.Client
	auditLogger *audit.Logger
	editMode    bool
	onSave      func()
	onCancel    func()
}

// NewFormScreen は新しいFormScreenを生成する。
func NewFormScreen(app *ui.App, apiClient *api.Client, auditLogger *audit.Logger) *FormScreen {
	form := tview.NewForm()

	form.SetBorder(true).
		SetBorderColor(tcell.ColorBlue)

	return &FormScreen{
		form:        form,
		app:         app,
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
	s.form.SetTitle(" Create Network ")

	s.form.AddInputField("ID", "", 40, nil, nil)
	s.form.AddInputField("Name", "", 40, nil, nil)
	s.form.AddInputField("Max Devices", "0", 10, nil, nil)

	s.form.AddButton("Save", s.handleSave)
	s.form.AddButton("Cancel", s.handleCancel)

	s.setupKeyBindings()
}

// SetupEdit は編集モードでフォームをセットアップする。
func (s *FormScreen) SetupEdit(n *model.Network) {
	s.editMode = true

	s.form.Clear(true)
	s.form.SetTitle(" Edit Network ")

	s.form.AddInputField("ID", n.ID, 40, nil, nil)
	s.form.AddInputField("Name", n.Name, 40, nil, nil)
	s.form.AddInputField("Max Devices", strconv.FormatInt(n.MaxDevices, 10), 10, nil, nil)

	// 編集モードではIDは変更不可
	s.form.GetFormItemByLabel("ID").(*tview.InputField).SetDisabled(true)

	s.form.AddButton("Save", s.handleSave)
	s.form.AddButton("Cancel", s.handleCancel)

	s.setupKeyBindings()
}

func (s *FormScreen) handleSave() {
	input := validation.NormalizeNetworkInput(&validation.NetworkInput{
		ID:         s.form.GetFormItemByLabel("ID").(*tview.InputField).GetText(),
		Name:       s.form.GetFormItemByLabel("Name").(*tview.InputField).GetText(),
		MaxDevices: s.form.GetFormItemByLabel("Max Devices").(*tview.InputField).GetText(),
	})

	if errs := validation.ValidateNetwork(input); len(errs) > 0 {
		s.app.GetStatusBar().ShowError("Validation error: " + errs[0].Error())
		return
	}

	maxDevices, _ := validation.ParseMaxDevices(input.MaxDevices)

	ctx := context.Background()
	n, err := s.apiClient.PutNetwork(ctx, input.ID, &api.NetworkInput{Name: input.Name, MaxDevices: maxDevices})
	if err != nil {
		s.app.GetStatusBar().ShowError("Failed to save: " + err.Error())
		return
	}

	if s.editMode {
		s.auditLogger.LogUpdate(audit.TargetNetwork, store.NetworkKey(n.ID), "")
		s.app.GetStatusBar().ShowSuccess("Network updated: " + n.ID)
	} else {
		s.auditLogger.LogCreate(audit.TargetNetwork, store.NetworkKey(n.ID), "")
		s.app.GetStatusBar().ShowSuccess("Network created: " + n.ID)
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
