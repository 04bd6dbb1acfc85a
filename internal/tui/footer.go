package tui

import "github.com/dm/antmon/internal/format"

// renderFooter renders the key binding hint and the last update time.
func renderFooter(app *App) string {
	width := app.width
	if width <= 0 {
		width = 120
	}
	text := "? for help"
	if app.showHelp {
		text = helpText
	}
	if !app.snapshot.LastUpdate.IsZero() {
		text += "   last update " + app.snapshot.LastUpdate.Format("15:04:05")
	}
	text += "   alloc/node " + format.Bytes(app.cfg.StoragePerNodeBytes)
	return StyleDim.Width(width).Render(text)
}
