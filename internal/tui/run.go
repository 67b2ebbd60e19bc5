package tui

import (
	"errors"

	"hrview/internal/features"
	"hrview/internal/history"

	tea "github.com/charmbracelet/bubbletea"
)

// Result 返回 TUI 退出时的 buffer 内容。
type Result struct {
	State     history.Buffer
	HeartRate history.Buffer
}

// Run 封装 Bubble Tea 入口，阻塞到用户退出。
func Run(opts Options) (Result, error) {
	programOptions := []tea.ProgramOption{}
	if opts.Features.Enabled(features.AltScreen) {
		programOptions = append(programOptions, tea.WithAltScreen())
	}
	model := New(opts)
	defer model.Stop()
	program := tea.NewProgram(model, programOptions...)
	m, err := program.Run()
	if err != nil {
		return Result{}, err
	}
	tuiModel, ok := m.(*Model)
	if !ok {
		return Result{}, errors.New("unexpected tui model")
	}
	return Result{
		State:     tuiModel.State(),
		HeartRate: tuiModel.HeartRate(),
	}, nil
}
