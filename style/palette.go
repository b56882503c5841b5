// Package style provides a functional API for composing and applying lipgloss-based CLI styles.
package style

import "github.com/charmbracelet/lipgloss"

// Standard ANSI palette, so output follows the user's terminal theme.
var (
	Red    = lipgloss.Color("1")
	Green  = lipgloss.Color("2")
	Yellow = lipgloss.Color("3")
	Blue   = lipgloss.Color("4")
	Purple = lipgloss.Color("5")
	Cyan   = lipgloss.Color("6")

	HiRed    = lipgloss.Color("9")
	HiPurple = lipgloss.Color("13")
	HiCyan   = lipgloss.Color("14")
)
