package ui

import (
	"fmt"
	"runtime"

	"fyne.io/fyne/v2"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

// shortcutAction names a command bound to a Ctrl/Cmd shortcut.
type shortcutAction string

const (
	actionUndo      shortcutAction = "undo"
	actionRedo      shortcutAction = "redo"
	actionCopy      shortcutAction = "copy"
	actionCut       shortcutAction = "cut"
	actionPaste     shortcutAction = "paste"
	actionSelectAll shortcutAction = "select-all"
	actionSave      shortcutAction = "save"
	actionOpen      shortcutAction = "open"
	actionNew       shortcutAction = "new"
)

// shortcutKeys is the keymap registered on the window. Tooltips read it too,
// so the hint on a button always matches the binding.
var shortcutKeys = map[shortcutAction]fyne.KeyName{
	actionUndo:      fyne.KeyZ,
	actionRedo:      fyne.KeyY,
	actionCopy:      fyne.KeyC,
	actionCut:       fyne.KeyX,
	actionPaste:     fyne.KeyV,
	actionSelectAll: fyne.KeyA,
	actionSave:      fyne.KeyS,
	actionOpen:      fyne.KeyO,
	actionNew:       fyne.KeyN,
}

// shortcutText renders the binding of action, e.g. "Ctrl+Z", or "" if unbound.
func shortcutText(action shortcutAction) string {
	key, ok := shortcutKeys[action]
	if !ok {
		return ""
	}
	mod := "Ctrl"
	if runtime.GOOS == "darwin" {
		mod = "Cmd"
	}
	return mod + "+" + string(key)
}

func withShortcut(tooltip string, action shortcutAction) string {
	if s := shortcutText(action); s != "" {
		return fmt.Sprintf("%s (%s)", tooltip, s)
	}
	return tooltip
}

// newIconButtonWithTooltip creates an icon-only toolbar button with a hover tooltip.
func newIconButtonWithTooltip(icon fyne.Resource, tooltip string, tapped func()) *ttwidget.Button {
	btn := ttwidget.NewButtonWithIcon("", icon, tapped)
	btn.SetToolTip(tooltip)
	return btn
}

// newActionButton is a toolbar button for a bound command; its tooltip
// carries the shortcut.
func newActionButton(icon fyne.Resource, tooltip string, action shortcutAction, tapped func()) *ttwidget.Button {
	return newIconButtonWithTooltip(icon, withShortcut(tooltip, action), tapped)
}
