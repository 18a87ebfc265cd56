package client

import (
	"context"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/audit"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/store"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/validation"
	"github.com/oyaguma3/fleetguard/pkg/model"
	"github.com/rivo/tview"
)

const (
	fieldIP      = "IP Address"
	fieldSecret  = "Secret"
	fieldName    = "Name"
	fieldNetwork = "Network"
)

// FormScreen はNASクライアントの登録と編集を行う画面。
// IPはキーなので編集時は変更できない。
type FormScreen struct {
	form         *tview.Form
	app          *ui.App
	clientStore  *store.ClientStore
	networkStore *store.NetworkStore
	auditLogger  *audit.Logger
	editMode     bool
	onSave       func()
	onCancel     func()
}

// NewFormScreen は新しいFormScreenを生成する。
func NewFormScreen(app *ui.App, clientStore *store.ClientStore, networkStore *store.NetworkStore, auditLogger *audit.Logger) *FormScreen {
	form := tview.NewForm()
	form.SetBorder(true).SetBorderColor(ui.ColorBorder)

	s := &FormScreen{
		form:         form,
		app:          app,
		clientStore:  clientStore,
		networkStore: networkStore,
		auditLogger:  auditLogger,
	}
	form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			s.cancel()
			return nil
		}
		return event
	})
	return s
}

func (s *FormScreen) SetOnSave(handler func())   { s.onSave = handler }
func (s *FormScreen) SetOnCancel(handler func()) { s.onCancel = handler }
func (s *FormScreen) GetForm() *tview.Form       { return s.form }

// SetupCreate は空のフォームを用意する。
func (s *FormScreen) SetupCreate(ctx context.Context) error {
	return s.build(ctx, " Create RADIUS Client ", &model.RadiusClient{}, false)
}

// SetupEdit は登録済みクライアントの値でフォームを用意する。
func (s *FormScreen) SetupEdit(ctx context.Context, ip string) error {
	c, err := s.clientStore.Get(ctx, ip)
	if err != nil {
		return err
	}
	return s.build(ctx, " Edit RADIUS Client ", c, true)
}

func (s *FormScreen) build(ctx context.Context, title string, c *model.RadiusClient, edit bool) error {
	networks, err := s.networkStore.List(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(networks))
	for _, n := range networks {
		ids = append(ids, n.ID)
	}
	options, selected := networkChoices(ids, c.NetworkID)

	s.editMode = edit
	s.form.Clear(true)
	s.form.SetTitle(title)
	s.form.AddInputField(fieldIP, c.IP, 20, nil, nil)
	s.form.AddInputField(fieldSecret, c.Secret, 40, nil, nil)
	s.form.AddInputField(fieldName, c.Name, 40, nil, nil)
	s.form.AddDropDown(fieldNetwork, options, selected, nil)
	s.input(fieldIP).SetDisabled(edit)

	s.form.AddButton("Save", s.submit)
	s.form.AddButton("Cancel", s.cancel)
	return nil
}

// networkChoices はドロップダウンの選択肢と初期選択位置を返す。
// 先頭は既定ネットワーク。未登録のネットワークIDも現在値として残す。
func networkChoices(ids []string, current string) ([]string, int) {
	options := append([]string{defaultNetworkLabel}, ids...)
	if current == "" {
		return options, 0
	}
	if i := slices.Index(ids, current); i >= 0 {
		return options, i + 1
	}
	return append(options, current), len(options)
}

func (s *FormScreen) input(label string) *tview.InputField {
	return s.form.GetFormItemByLabel(label).(*tview.InputField)
}

func (s *FormScreen) submit() {
	_, network := s.form.GetFormItemByLabel(fieldNetwork).(*tview.DropDown).GetCurrentOption()
	if network == defaultNetworkLabel {
		network = ""
	}
	input := validation.NormalizeClientInput(&validation.ClientInput{
		IP:        s.input(fieldIP).GetText(),
		Secret:    s.input(fieldSecret).GetText(),
		Name:      s.input(fieldName).GetText(),
		NetworkID: network,
	})
	if errs := validation.ValidateClient(input); len(errs) > 0 {
		s.app.GetStatusBar().ShowError("Validation error: " + errs[0].Error())
		return
	}

	c := model.NewRadiusClient(input.IP, input.Secret, input.Name, input.NetworkID)
	status := s.app.GetStatusBar()
	ctx := context.Background()
	if s.editMode {
		if err := s.clientStore.Update(ctx, c); err != nil {
			status.ShowError("Failed to update: " + err.Error())
			return
		}
		s.auditLogger.LogUpdate(audit.TargetClient, store.ClientKey(c.IP), "")
		status.ShowSuccess("Client updated: " + c.IP)
	} else {
		if err := s.clientStore.Create(ctx, c); err != nil {
			status.ShowError("Failed to create: " + err.Error())
			return
		}
		s.auditLogger.LogCreate(audit.TargetClient, store.ClientKey(c.IP), "")
		status.ShowSuccess("Client created: " + c.IP)
	}

	if s.onSave != nil {
		s.onSave()
	}
}

func (s *FormScreen) cancel() {
	if s.onCancel != nil {
		s.onCancel()
	}
}
