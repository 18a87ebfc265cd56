package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// newChoiceModal は二択のモーダルを生成する。
// 先頭ボタンが押された場合のみonConfirmを呼ぶ。
func newChoiceModal(title, text string, buttons [2]string, border tcell.Color, onConfirm, onCancel func()) *tview.Modal {
	modal := tview.NewModal().
		SetText(text).
		AddButtons(buttons[:]).
		SetDoneFunc(func(_ int, label string) {
			cb := onCancel
			if label == buttons[0] {
				cb = onConfirm
			}
			if cb != nil {
				cb()
			}
		})

	modal.SetTitle(" " + title + " ").
		SetBorder(true).
		SetBorderColor(border)
	return modal
}

// ConfirmDialog はYes/Noの確認ダイアログ。
type ConfirmDialog struct {
	modal *tview.Modal
}

// NewConfirmDialog は新しいConfirmDialogを生成する。
func NewConfirmDialog(title, message string, onConfirm, onCancel func()) *ConfirmDialog {
	return &ConfirmDialog{
		modal: newChoiceModal(title, message, [2]string{"Yes", "No"}, tcell.ColorWhite, onConfirm, onCancel),
	}
}

// GetModal は内部のtview.Modalを返す。
func (d *ConfirmDialog) GetModal() *tview.Modal {
	return d.modal
}

// WarningDialog は取り消せない操作の前に表示する警告ダイアログ。
// 証明書の失効などに使う。
type WarningDialog struct {
	modal *tview.Modal
}

// NewWarningDialog は新しいWarningDialogを生成する。
func NewWarningDialog(title, message string, onConfirm, onCancel func()) *WarningDialog {
	modal := newChoiceModal(title, "⚠ WARNING ⚠\n\n"+message, [2]string{"Continue", "Cancel"}, tcell.ColorYellow, onConfirm, onCancel)
	modal.SetBackgroundColor(tcell.ColorBlack)
	return &WarningDialog{modal: modal}
}

// GetModal は内部のtview.Modalを返す。
func (d *WarningDialog) GetModal() *tview.Modal {
	return d.modal
}

// InputDialog は1行入力のダイアログ。
type InputDialog struct {
	form  *tview.Form
	input *tview.InputField
}

// NewInputDialog は新しいInputDialogを生成する。
func NewInputDialog(title, label, defaultValue string, onSubmit func(value string), onCancel func()) *InputDialog {
	d := &InputDialog{form: tview.NewForm()}
	d.input = tview.NewInputField().
		SetLabel(label).
		SetText(defaultValue)

	d.form.AddFormItem(d.input)
	d.form.AddButton("OK", func() {
		if onSubmit != nil {
			onSubmit(d.input.GetText())
		}
	})
	d.form.AddButton("Cancel", func() {
		if onCancel != nil {
			onCancel()
		}
	})
	d.form.SetCancelFunc(func() {
		if onCancel != nil {
			onCancel()
		}
	})

	d.form.SetBorder(true).
		SetTitle(" " + title + " ").
		SetTitleAlign(tview.AlignCenter).
		SetBorderColor(tcell.ColorWhite)
	return d
}

// GetForm は内部のtview.Formを返す。
func (d *InputDialog) GetForm() *tview.Form {
	return d.form
}
