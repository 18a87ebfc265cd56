package monitoring

import (
	"context"

	"github.com/oyaguma3/fleetguard/apps/admin-tui/internal/ui"
	"github.com/rivo/tview"
)

// refresher は再読み込み可能な画面を表す。
type refresher interface {
	Refresh(ctx context.Context) error
}

// refreshWithStatus は画面を再読み込みし、結果をステータスバーに表示する。
func refreshWithStatus(app *ui.App, r refresher) {
	app.QueueUpdateDraw(func() {
		if err := r.Refresh(context.Background()); err != nil {
			app.GetStatusBar().ShowError("Failed to refresh: " + err.Error())
		} else {
			app.GetStatusBar().ShowSuccess("Refreshed")
		}
	})
}

// showDialog はダイアログページを表示する。
func showDialog(app *ui.App, name string, p tview.Primitive, focus tview.Primitive) {
	app.AddPage(name, p, true, true)
	app.SetFocus(focus)
}

// closeDialog はダイアログページを閉じ、フォーカスを戻す。
func closeDialog(app *ui.App, name string, back tview.Primitive) {
	app.ClosePage(name)
	app.SetFocus(back)
}

// showFilterDialog はフィルタ入力ダイアログを表示する。
func showFilterDialog(app *ui.App, title string, filter *ui.Filter, back tview.Primitive, apply func(string)) {
	dialog := ui.NewInputDialog(
		title,
		filter.Label(),
		filter.Query,
		func(value string) {
			apply(value)
			closeDialog(app, "filter-dialog", back)
		},
		func() {
			closeDialog(app, "filter-dialog", back)
		},
	)
	showDialog(app, "filter-dialog", centered(dialog.GetForm(), 50, 7), dialog.GetForm())
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
