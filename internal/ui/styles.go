package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Box drawing characters
const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
	LeftT       = "├"
	RightT      = "┤"
	TopT        = "┬"
	BottomT     = "┴"
	Cross       = "┼"
)

// Color palette
const (
	ColorBorder     = "240"
	ColorHeader     = "252"
	ColorOperation  = "214"
	ColorPermission = "81"
	ColorSelected   = "82"
	ColorError      = "203"
	ColorMuted      = "240"
	ColorHint       = "245"
)

// Shared styles
var (
	BorderStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	HeaderStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHeader))
	OperationStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorOperation))
	PermissionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPermission))
	SelectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSelected))
	ErrorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	MutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	HintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHint))
)

// padRight pads a string to the specified display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}
