package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// StartupErrorScreen はValkeyへ接続できなかった場合の画面。
type StartupErrorScreen struct {
	modal *tview.Modal
}

// startupErrorText は接続失敗時の案内文を組み立てる。
func startupErrorText(addr, errorMessage string) string {
	return fmt.Sprintf("Failed to connect to Valkey at %s:\n\n%s\n\n"+
		"Device, network and client lists are read directly from Valkey.\n"+
		"Check VALKEY_ADDR and VALKEY_PASSWORD, then retry.", addr, errorMessage)
}

// NewStartupErrorScreen は新しいStartupErrorScreenを生成する。
func NewStartupErrorScreen(addr, errorMessage string, onRetry, onExit func()) *StartupErrorScreen {
	modal := newChoiceModal("Connection Error", startupErrorText(addr, errorMessage),
		[2]string{"Retry", "Exit"}, tcell.ColorRed, onRetry, onExit)
	modal.SetBackgroundColor(tcell.ColorBlack)
	return &StartupErrorScreen{modal: modal}
}

// GetModal は内部のtview.Modalを返す。
func (s *StartupErrorScreen) GetModal() *tview.Modal {
	return s.modal
}
