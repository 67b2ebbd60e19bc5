package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// pane 是一个带标题的滚动区域，承载一条历史的文本。
type pane struct {
	id    string
	title string
	text  string
	lines int
	width int
	vp    viewport.Model
}

func newPane(id, title string) *pane {
	return &pane{id: id, title: title, vp: viewport.New(0, 0)}
}

// setText 整体替换内容；滚动位置尽量保持不变。
func (p *pane) setText(text string) {
	p.text = text
	if text == "" {
		p.lines = 0
	} else {
		p.lines = strings.Count(text, "\n") + 1
	}
	p.refresh()
}

func (p *pane) resize(width, height int) {
	p.width = width
	p.vp.Width = width
	p.vp.Height = maxInt(1, height)
	p.refresh()
}

func (p *pane) refresh() {
	if p.text == "" {
		p.vp.SetContent(faintStyle.Render("(no data yet)"))
		return
	}
	lines := strings.Split(p.text, "\n")
	if p.width > 0 {
		for i, line := range lines {
			lines[i] = clampLine(line, p.width)
		}
	}
	p.vp.SetContent(strings.Join(lines, "\n"))
}

func (p *pane) view(focused bool) string {
	style := paneStyle
	if focused {
		style = focusedPaneStyle
	}
	label := " " + countLabel(p.lines)
	title := paneTitleStyle.Render(clampLine(p.title, p.width))
	if runewidth.StringWidth(p.title+label) <= p.width || p.width <= 0 {
		title += faintStyle.Render(label)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, p.vp.View()))
}

// clampLine 按显示宽度截断，宽字符不会被切成半格。
func clampLine(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func countLabel(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return strconv.Itoa(n) + " entries"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
