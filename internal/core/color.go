package core

// Color is a foreground color for a screen cell. Renderers map it to
// their own palette (lipgloss ANSI codes, tcell colors).
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorGray
)
