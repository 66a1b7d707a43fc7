package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors. The guideline piece colors come first.
const (
	ColorDefault Color = iota
	ColorCyan
	ColorBlue
	ColorOrange
	ColorYellow
	ColorGreen
	ColorRed
	ColorPurple
	ColorWhite
	ColorGray
	ColorDim
	ColorBrightWhite
	ColorBrightYellow
)
