//go:build linux

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tracekit/nvtrace/pkg/profiler"
	"github.com/tracekit/nvtrace/pkg/trace"
	"github.com/tracekit/nvtrace/pkg/types"
)

// dashModel renders live session counters while the profiler runs. It never
// touches the sampling hot path: every refresh is one lock-free Status()
// snapshot, polled well below the slow tier's rate.
type dashModel struct {
	p        *profiler.Profiler
	start    time.Time
	duration time.Duration
	st       profiler.Status
	width    int
}

type dashTickMsg struct{}

func dashTick() tea.Cmd {
	return tea.Tick(time.Second/5, func(time.Time) tea.Msg { return dashTickMsg{} })
}

func newDashModel(p *profiler.Profiler, duration time.Duration) *dashModel {
	return &dashModel{p: p, start: time.Now(), duration: duration, width: 100}
}

func (m *dashModel) Init() tea.Cmd { return dashTick() }

func (m *dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case dashTickMsg:
		m.st = m.p.Status()
		if m.duration > 0 && time.Since(m.start) >= m.duration {
			return m, tea.Quit
		}
		return m, dashTick()
	}
	return m, nil
}

var (
	dashTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	dashSubtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	dashLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	dashCardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
)

func (m *dashModel) View() string {
	st := m.st
	elapsed := time.Since(m.start)

	header := dashTitleStyle.Render("nvprofiler") + "  " +
		dashSubtleStyle.Render(fmt.Sprintf("elapsed %s", elapsed.Round(time.Second))) + "  " +
		dashSubtleStyle.Render("q to stop")

	tierCard := dashCard("Samples", strings.Join([]string{
		tierLine("fast", st.FastSamples, elapsed),
		tierLine("medium", st.MediumSamples, elapsed),
		tierLine("slow", st.SlowSamples, elapsed),
	}, "\n"))

	written := types.Bytes(st.FastSamples*trace.FastSampleSize +
		st.MediumSamples*trace.MediumSampleSize +
		st.SlowSamples*trace.SlowSampleSize +
		st.SyncPoints*trace.SyncPointSize +
		trace.HeaderSize)
	syncCard := dashCard("Trace",
		fmt.Sprintf("sync points %d (last id %d)\nfile size   %s", st.SyncPoints, st.LastSyncID, written.Humanized()))

	overflow := st.FastOverflow + st.MediumOverflow + st.SlowOverflow + st.SyncOverflow
	softErrs := st.GPUSoftErrors + st.CPUSoftErrors + st.EMCSoftErrors +
		st.RAMSoftErrors + st.PowerSoftErrors + st.ThermalSoftErrors
	healthCard := dashCard("Health",
		fmt.Sprintf("ring overflow %d\nsoft errors   %d", overflow, softErrs))

	row := lipgloss.JoinHorizontal(lipgloss.Top, tierCard, syncCard, healthCard)
	return lipgloss.JoinVertical(lipgloss.Left, header, row)
}

func tierLine(name string, n uint64, elapsed time.Duration) string {
	rate := 0.0
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(n) / s
	}
	return fmt.Sprintf("%-6s %9d  %8.1f/s", name, n, rate)
}

func dashCard(title, body string) string {
	return dashCardStyle.Render(dashLabelStyle.Render(title) + "\n" + body)
}

// runDashboard drives the live view until the duration elapses, the user
// quits, or ctx is cancelled by a signal.
func runDashboard(ctx context.Context, o opts, p *profiler.Profiler) error {
	prog := tea.NewProgram(newDashModel(p, o.duration), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
