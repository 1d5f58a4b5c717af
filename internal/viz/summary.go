package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/circsim/internal/report"
	"github.com/san-kum/circsim/internal/sim"
)

// Summary is what the summary panel shows for one run.
type Summary struct {
	Title      string
	Status     sim.Status
	Iterations int
	MaxDrift   float64
	Indices    report.Indices
}

func statusStyle(s sim.Status) lipgloss.Style {
	switch s {
	case sim.Converged:
		return StatusConverged
	case sim.Capped:
		return StatusCapped
	default:
		return StatusRunning
	}
}

func row(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value)
}

func RenderSummary(s Summary) string {
	idx := s.Indices

	var b strings.Builder
	b.WriteString(Title.Render(s.Title) + "\n\n")
	b.WriteString(MetricLabel.Render("status") + statusStyle(s.Status).Render(s.Status.String()) + "\n")
	b.WriteString(row("iterations", fmt.Sprintf("%d", s.Iterations)) + "\n")
	b.WriteString(row("max drift", fmt.Sprintf("%.4f ml", s.MaxDrift)) + "\n\n")

	b.WriteString(row("SBP / DBP", fmt.Sprintf("%.1f / %.1f mmHg", idx.SystolicPressure, idx.DiastolicPressure)) + "\n")
	b.WriteString(row("MAP", fmt.Sprintf("%.1f mmHg", idx.MeanPressure)) + "\n")
	b.WriteString(row("stroke volume", fmt.Sprintf("%.1f ml", idx.StrokeVolume)) + "\n")
	b.WriteString(row("RV stroke volume", fmt.Sprintf("%.1f ml", idx.RightStrokeVolume)) + "\n")
	b.WriteString(row("cardiac output", fmt.Sprintf("%.2f L/min", idx.CardiacOutput)) + "\n")
	b.WriteString(row("max dP/dt", fmt.Sprintf("%.0f mmHg/s", idx.MaxDPDT)) + "\n")
	if idx.HasEDP {
		b.WriteString(row("EDP", fmt.Sprintf("%.1f mmHg", idx.EDP)) + "\n")
	} else {
		b.WriteString(MetricLabel.Render("EDP") + Subtle.Render("n/a") + "\n")
	}
	b.WriteString(row("stroke work", fmt.Sprintf("%.0f mmHg·ml", idx.StrokeWork)))

	return Panel.Render(b.String())
}
