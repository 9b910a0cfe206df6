package theme

// Palette and base styling for the preview window.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	ColorBg      = "#f7f9fb" // window background
	ColorSurface = "#ffffff" // frame label backdrop
	ColorAccent  = "#10b981" // status line
)

// InitStyles activates the base ttk theme and sets the root background.
// Call once from the Tk event loop before building widgets.
func InitStyles() {
	_ = ActivateTheme("azure light")
	App.Configure(Background(ColorBg))
}
