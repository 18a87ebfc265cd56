// Package ui はfleetguard運用コンソールの画面部品を提供する。
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App はページ群とステータスバーを束ねたコンソール本体。
// 画面遷移はページ名で管理し、ダイアログは重ねて表示した後ClosePageで破棄する。
type App struct {
	app       *tview.Application
	pages     *tview.Pages
	statusBar *StatusBar
	layout    *tview.Flex
}

// NewApp は新しいAppを生成する。
func NewApp() *App {
	a := &App{
		app:       tview.NewApplication(),
		pages:     tview.NewPages(),
		statusBar: NewStatusBar(),
	}
	a.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar.view, 1, 0, false)
	return a
}

// Run はイベントループを開始し、Stopが呼ばれるまでブロックする。
func (a *App) Run() error {
	return a.app.SetRoot(a.layout, true).EnableMouse(false).Run()
}

// Stop はイベントループを終了する。
func (a *App) Stop() {
	a.app.Stop()
}

// GetApplication は内部のtview.Applicationを返す。
func (a *App) GetApplication() *tview.Application {
	return a.app
}

// GetStatusBar はステータスバーを返す。
func (a *App) GetStatusBar() *StatusBar {
	return a.statusBar
}

// AddPage はページを追加する。同名のページは置き換えられる。
func (a *App) AddPage(name string, page tview.Primitive, resize, visible bool) {
	a.pages.AddPage(name, page, resize, visible)
}

// SwitchToPage は指定したページだけを表示する。
func (a *App) SwitchToPage(name string) {
	a.pages.SwitchToPage(name)
}

// ClosePage はダイアログなどの一時ページを閉じて破棄する。
func (a *App) ClosePage(name string) {
	a.pages.HidePage(name)
	a.pages.RemovePage(name)
}

// SetFocus はフォーカスを移す。
func (a *App) SetFocus(p tview.Primitive) {
	a.app.SetFocus(p)
}

// QueueUpdateDraw はイベントループ上でfを実行して再描画する。
// 別goroutineから画面を更新する場合は必ずこれを経由する。
func (a *App) QueueUpdateDraw(f func()) {
	a.app.QueueUpdateDraw(f)
}

// SetInputCapture は全画面共通のキー入力ハンドラを設定する。
func (a *App) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	a.app.SetInputCapture(capture)
}

// Sync は端末の表示を全面的に再描画する。
func (a *App) Sync() {
	a.app.Sync()
}
