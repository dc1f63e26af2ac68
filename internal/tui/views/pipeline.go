package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sashaai2006/AstroMind/internal/tui"
	"github.com/sashaai2006/AstroMind/internal/workspace"
	"github.com/sashaai2006/AstroMind/pkg/backend"
	pkgtui "github.com/sashaai2006/AstroMind/pkg/tui"
)

// PipelineView renders the execution graph as ordered tiers: one row
// per cohort, steps in a cohort side by side.
type PipelineView struct {
	status   string
	cohorts  []workspace.Cohort
	logPanel *pkgtui.LogPanel

	width  int
	height int
}

// NewPipelineView creates the pipeline tab.
func NewPipelineView() *PipelineView {
	return &PipelineView{logPanel: pkgtui.NewLogPanel()}
}

// Name implements tui.View.
func (v *PipelineView) Name() string {
	return "Pipeline"
}

// SetStatus replaces the status scalar and regroups the steps.
func (v *PipelineView) SetStatus(status string, steps []backend.PipelineStep) {
	v.status = status
	v.cohorts = workspace.GroupSteps(steps)
}

// SetLog feeds the log panel the latest event tail.
func (v *PipelineView) SetLog(events []backend.LogEvent) {
	lines := make([]pkgtui.LogLine, len(events))
	for i, evt := range events {
		lines[i] = pkgtui.LogLine{
			Timestamp: evt.Timestamp,
			Agent:     evt.Agent,
			Level:     evt.Level,
			Msg:       evt.Msg,
		}
	}
	v.logPanel.SetLines(lines)
}

// Focus implements tui.View.
func (v *PipelineView) Focus() tea.Cmd { return nil }

// Blur implements tui.View.
func (v *PipelineView) Blur() {}

// Update implements tui.View.
func (v *PipelineView) Update(msg tea.Msg) (tui.View, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = size.Width
		v.height = size.Height - 4
		logHeight := v.height / 3
		if logHeight < 4 {
			logHeight = 4
		}
		v.logPanel.SetSize(v.width-2, logHeight)
	}
	return v, nil
}

// View implements tui.View.
func (v *PipelineView) View() string {
	var b strings.Builder

	b.WriteString(pkgtui.TitleStyle.Render("Pipeline"))
	b.WriteString("  ")
	b.WriteString(pkgtui.StatusIcon(v.status))
	b.WriteString(" ")
	b.WriteString(pkgtui.StatusStyle(v.status).Render(v.status))
	b.WriteString("\n\n")

	if len(v.cohorts) == 0 {
		b.WriteString(pkgtui.LabelStyle.Render("No steps planned yet"))
	}

	for i, cohort := range v.cohorts {
		tier := make([]string, len(cohort.Steps))
		for j, step := range cohort.Steps {
			tier[j] = v.renderStep(step)
		}
		b.WriteString(fmt.Sprintf("%s %s\n",
			pkgtui.LabelStyle.Render(fmt.Sprintf("tier %d", i+1)),
			lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(tier, "  "))))
		if i < len(v.cohorts)-1 {
			b.WriteString(pkgtui.LabelStyle.Render("   │") + "\n")
		}
	}

	body := b.String()
	logPanel := pkgtui.PanelStyle.Width(v.width - 2).Render(v.logPanel.View())
	return lipgloss.JoinVertical(lipgloss.Left, body, logPanel)
}

func (v *PipelineView) renderStep(step backend.PipelineStep) string {
	agent := lipgloss.NewStyle().Foreground(pkgtui.AgentColor(step.Agent)).Render(step.Agent)
	return fmt.Sprintf("%s %s (%s)", pkgtui.StatusIcon(string(step.Status)), step.Name, agent)
}

// ShortHelp implements tui.View.
func (v *PipelineView) ShortHelp() string {
	return "ctrl+r deep review"
}

var _ tui.View = (*PipelineView)(nil)
