package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// HelpModal はキー操作の一覧を表示するモーダル。
type HelpModal struct {
	modal *tview.Modal
}

// HelpSection はヘルプの1セクション。
type HelpSection struct {
	Title    string
	Bindings []KeyBinding
}

// helpText はセクション群をtviewの色タグ付きテキストにする。
func helpText(sections []HelpSection) string {
	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("[::b]" + section.Title + "[::-]\n")
		for _, kb := range section.Bindings {
			b.WriteString("  " + kb.Label() + "  " + kb.Description + "\n")
		}
	}
	return b.String()
}

// NewHelpModal は新しいHelpModalを生成する。
func NewHelpModal(sections []HelpSection, onClose func()) *HelpModal {
	modal := tview.NewModal().
		SetText(helpText(sections)).
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(int, string) {
			if onClose != nil {
				onClose()
			}
		})

	modal.SetTitle(" Help ").
		SetBorder(true).
		SetBorderColor(tcell.ColorTeal)

	return &HelpModal{modal: modal}
}

// GetModal は内部のtview.Modalを返す。
func (h *HelpModal) GetModal() *tview.Modal {
	return h.modal
}

// GetDefaultHelpSections はコンソール全体のキー操作を返す。
func GetDefaultHelpSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Navigation",
			Bindings: []KeyBinding{
				{Key: tcell.KeyUp, Description: "Move up"},
				{Key: tcell.KeyDown, Description: "Move down"},
				{Key: tcell.KeyPgUp, Description: "Previous page"},
				{Key: tcell.KeyPgDn, Description: "Next page"},
				{Key: tcell.KeyTab, Description: "Next form field"},
				{Key: tcell.KeyBacktab, Description: "Previous form field"},
				{Key: tcell.KeyEnter, Description: "Select/Confirm"},
				{Key: tcell.KeyEsc, Description: "Back/Cancel"},
			},
		},
		{
			Title: "Lists",
			Bindings: []KeyBinding{
				{Key: KeyCreate, Description: "Create new"},
				{Rune: RuneCreate, Description: "Create new (alt)"},
				{Key: KeyEdit, Description: "Edit selected"},
				{Rune: RuneEdit, Description: "Edit selected (alt)"},
				{Key: KeyDelete, Description: "Delete selected RADIUS client"},
				{Rune: RuneDelete, Description: "Delete selected RADIUS client (alt)"},
				{Key: KeyRefresh, Description: "Refresh list"},
				{Rune: RuneRefresh, Description: "Refresh list (alt)"},
				{Rune: RuneFilter, Description: "Filter"},
			},
		},
		{
			Title: "Fleet Actions",
			Bindings: []KeyBinding{
				{Rune: RuneBlacklist, Description: "Toggle device blacklist"},
				{Rune: RuneFindings, Description: "Show device findings"},
				{Rune: RuneUnblock, Description: "Lift selected block"},
				{Rune: RuneAcknowledge, Description: "Acknowledge selected alert"},
				{Rune: RuneHideConfirmed, Description: "Show unconfirmed alerts only"},
				{Rune: RuneFalsePositive, Description: "Mark finding as false positive"},
				{Rune: RuneRevoke, Description: "Revoke node certificate serial"},
			},
		},
		{
			Title: "Global",
			Bindings: []KeyBinding{
				{Key: KeyHelp, Description: "Show this help"},
				{Rune: RuneQuit, Description: "Back/Quit"},
				{Key: KeyQuit, Description: "Exit application"},
			},
		},
	}
}
