package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/yarlson/taskdesk/internal/taskstore"
)

var (
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorWarning = lipgloss.Color("#e0af68")
	colorError   = lipgloss.Color("#f7768e")
	colorMuted   = lipgloss.Color("#565f89")
	colorHeader  = lipgloss.Color("#24283b")
	colorFg      = lipgloss.Color("#c0caf5")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorMuted)

	activeTabStyle = tabStyle.
			Foreground(colorFg).
			Background(colorHeader).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Background(colorHeader).
			Foreground(colorFg).
			Bold(true)

	focusedHeaderStyle = headerStyle.
				Foreground(colorPrimary).
				Underline(true)

	selectedRowStyle = lipgloss.NewStyle().
				Background(colorHeader).
				Bold(true)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Faint(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(12)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)
)

var priorityStyles = map[taskstore.Priority]lipgloss.Style{
	taskstore.PriorityHigh:   lipgloss.NewStyle().Foreground(colorError),
	taskstore.PriorityMedium: lipgloss.NewStyle().Foreground(colorWarning),
	taskstore.PriorityLow:    lipgloss.NewStyle().Foreground(colorSuccess),
}

var statusStyles = map[taskstore.TaskStatus]lipgloss.Style{
	taskstore.StatusOpen:       lipgloss.NewStyle().Foreground(colorPrimary),
	taskstore.StatusInProgress: lipgloss.NewStyle().Foreground(colorWarning),
	taskstore.StatusClosed:     lipgloss.NewStyle().Foreground(colorMuted),
}
