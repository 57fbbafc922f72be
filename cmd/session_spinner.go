package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/attendance-cli/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const sessionStatsRefresh = 250 * time.Millisecond

type sessionDoneMsg struct {
	result application.StopResult
	err    error
}

type sessionStatsMsg application.EngineStats

type sessionSpinnerModel struct {
	spinner spinner.Model
	engine  *application.SessionEngine
	wait    tea.Cmd
	stats   application.EngineStats
	result  application.StopResult
	err     error
	done    bool
}

func newSessionSpinnerModel(engine *application.SessionEngine, wait tea.Cmd) sessionSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return sessionSpinnerModel{
		spinner: s,
		engine:  engine,
		wait:    wait,
	}
}

func (m sessionSpinnerModel) pollStats() tea.Cmd {
	return tea.Tick(sessionStatsRefresh, func(time.Time) tea.Msg {
		return sessionStatsMsg(m.engine.Stats())
	})
}

func (m sessionSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait, m.pollStats())
}

func (m sessionSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case sessionStatsMsg:
		if m.done {
			return m, nil
		}
		m.stats = application.EngineStats(msg)
		return m, m.pollStats()
	case sessionDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m sessionSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s Recognizing... accepted %d (frames %d, ctrl+c to stop)", m.spinner.View(), m.stats.Accepted, m.stats.Frames)
}

func runSessionSpinner(ctx context.Context, output io.Writer, engine *application.SessionEngine, wait func(context.Context) (application.StopResult, error)) (application.StopResult, error) {
	waitCmd := func() tea.Msg {
		result, err := wait(ctx)
		return sessionDoneMsg{result: result, err: err}
	}

	p := tea.NewProgram(
		newSessionSpinnerModel(engine, waitCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return application.StopResult{}, err
	}

	result, ok := finalModel.(sessionSpinnerModel)
	if !ok {
		return application.StopResult{}, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.result, result.err
}
