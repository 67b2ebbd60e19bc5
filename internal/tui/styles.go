package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#7D56F4")
	borderColor = lipgloss.Color("#5E6472")
	mutedColor  = lipgloss.Color("#7D7A85")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.BorderForeground(accentColor)

	paneTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	faintStyle = lipgloss.NewStyle().Faint(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

// paneChrome 是 pane 在内容之外占用的行列：上下边框加标题行，左右边框加内边距。
const (
	paneChromeHeight = 3
	paneChromeWidth  = 4
)
