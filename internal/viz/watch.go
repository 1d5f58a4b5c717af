package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/circsim/internal/circulation"
	"github.com/san-kum/circsim/internal/sim"
)

// IterationMsg carries a copy of one finished outer cycle.
type IterationMsg sim.Iteration

// DoneMsg ends the loop; Err is set when the solver failed.
type DoneMsg struct {
	Summary Summary
	Err     error
}

// Feed forwards a copy of every iteration to ch until done is closed.
func Feed(ch chan<- tea.Msg, done <-chan struct{}) sim.Observer {
	return sim.ObserverFunc(func(it sim.Iteration) {
		it.Drift = it.Drift.Clone()
		Send(ch, done, IterationMsg(it))
	})
}

// Send delivers msg on ch unless done is closed first.
func Send(ch chan<- tea.Msg, done <-chan struct{}, msg tea.Msg) bool {
	select {
	case ch <- msg:
		return true
	case <-done:
		return false
	}
}

// WatchModel follows a steady-state search as it runs.
type WatchModel struct {
	title     string
	tolerance float64
	maxIter   int
	events    <-chan tea.Msg

	history []float64
	last    *sim.Iteration
	done    *DoneMsg
}

func NewWatch(title string, tolerance float64, maxIter int, events <-chan tea.Msg) WatchModel {
	return WatchModel{
		title:     title,
		tolerance: tolerance,
		maxIter:   maxIter,
		events:    events,
	}
}

func waitFor(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m WatchModel) Init() tea.Cmd { return waitFor(m.events) }

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case IterationMsg:
		it := sim.Iteration(msg)
		m.last = &it
		m.history = append(m.history, it.Drift.Max())
		return m, waitFor(m.events)
	case DoneMsg:
		m.done = &msg
		return m, nil
	}
	return m, nil
}

// Done reports whether the solver has finished.
func (m WatchModel) Done() bool { return m.done != nil }

func (m WatchModel) View() string {
	var b strings.Builder
	b.WriteString(Title.Render(m.title) + "\n\n")

	n := 0
	if m.last != nil {
		n = m.last.Number
	}
	b.WriteString(fmt.Sprintf("iteration %3d/%d  ", n, m.maxIter))
	b.WriteString(ProgressBar(float64(n)/float64(max(m.maxIter, 1)), 30) + "\n")
	if len(m.history) > 0 {
		b.WriteString("drift history " + Sparkline(m.history, min(len(m.history), 40)) + "\n")
	}
	b.WriteString("\n")

	if m.last != nil {
		for i, d := range m.last.Drift {
			mark := StatusRunning.Render("·")
			if d < m.tolerance {
				mark = StatusConverged.Render("✓")
			}
			b.WriteString(fmt.Sprintf("%s %s %9.4f ml\n", mark,
				MetricLabel.Render(circulation.Compartment(i).String()), d))
		}
		b.WriteString("\n")
	}

	if len(m.history) > 1 {
		logs := make([]float64, len(m.history))
		for i, d := range m.history {
			logs[i] = math.Log10(math.Max(d, 1e-12))
		}
		b.WriteString(PlotSeries(logs, "log10 max drift") + "\n\n")
	}

	if m.done != nil {
		if m.done.Err != nil {
			b.WriteString(StatusCapped.Render("error: "+m.done.Err.Error()) + "\n")
		} else {
			b.WriteString(RenderSummary(m.done.Summary) + "\n")
		}
	}

	b.WriteString(KeyHint.Render("q to quit"))
	return b.String()
}
