package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"resolvis/pkg/trace"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command, an interactive terminal
// browser over the reconstructed runs and steps.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <log-file>",
		Short: "Browse the reconstructed search interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			lf, err := trace.LoadFile(args[0], loadProgress(ctx, logger, args[0]))
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			defer lf.Close()

			if lf.Steps() == 0 {
				printError("No processing steps found in %s", args[0])
				return nil
			}

			m := newBrowserModel(lf)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// browserView is the screen the browser is currently showing.
type browserView int

const (
	viewRuns browserView = iota
	viewSteps
	viewStep
)

// browserModel is the bubbletea model for the log browser. It moves
// between three screens: the run list, the step list of one run, and a
// single step's detail including its original log text.
type browserModel struct {
	lf     *trace.LogFile
	view   browserView
	run    int
	step   int
	cursor int
	offset int
	height int

	// text holds the log excerpt for the step being viewed, fetched
	// lazily the first time the detail screen opens.
	text    string
	textErr error
}

func newBrowserModel(lf *trace.LogFile) browserModel {
	return browserModel{lf: lf, height: 15}
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			switch m.view {
			case viewRuns:
				return m, tea.Quit
			case viewSteps:
				m.view = viewRuns
				m.cursor, m.offset = m.run, 0
			case viewStep:
				m.view = viewSteps
				m.cursor, m.offset = m.step, 0
				m.clampOffset()
			}
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < m.listLen()-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			switch m.view {
			case viewRuns:
				m.run = m.cursor
				m.view = viewSteps
				m.cursor, m.offset = 0, 0
			case viewSteps:
				m.step = m.cursor
				m.view = viewStep
				m.loadText()
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
		m.clampOffset()
	}
	return m, nil
}

// listLen is the number of selectable entries on the current screen.
func (m browserModel) listLen() int {
	switch m.view {
	case viewRuns:
		return len(m.lf.Runs())
	case viewSteps:
		return len(m.lf.Runs()[m.run])
	}
	return 0
}

func (m *browserModel) clampOffset() {
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *browserModel) loadText() {
	step := m.lf.Runs()[m.run][m.step]
	text, err := m.lf.StepText(step)
	m.text, m.textErr = text, err
}

func (m browserModel) View() string {
	switch m.view {
	case viewSteps:
		return m.viewStepList()
	case viewStep:
		return m.viewStepDetail()
	}
	return m.viewRunList()
}

func (m browserModel) viewRunList() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.lf.Name()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("up/down: navigate  enter: open run  q: quit"))
	b.WriteString("\n\n")

	runs := m.lf.Runs()
	end := m.offset + m.height
	if end > len(runs) {
		end = len(runs)
	}

	for i := m.offset; i < end; i++ {
		run := runs[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%sRun %d  %s", cursor, i+1,
			listDimStyle.Render(fmt.Sprintf("%d steps, depth %d", len(run), run.MaxDepth())))
		if i == m.cursor {
			line = listSelectedStyle.Render(fmt.Sprintf("%sRun %d", cursor, i+1)) + "  " +
				listDimStyle.Render(fmt.Sprintf("%d steps, depth %d", len(run), run.MaxDepth()))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(runs))))
	return b.String()
}

func (m browserModel) viewStepList() string {
	var b strings.Builder

	run := m.lf.Runs()[m.run]
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Run %d", m.run+1)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("up/down: navigate  enter: open step  esc: back  q: quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(run) {
		end = len(run)
	}

	for i := m.offset; i < end; i++ {
		step := run[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		sol := truncate(step.Solution.Key(), 60)
		line := fmt.Sprintf("%sStep %-5d %s", cursor, step.Order, sol)
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(run))))
	return b.String()
}

func (m browserModel) viewStepDetail() string {
	var b strings.Builder

	step := m.lf.Runs()[m.run][m.step]
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Step %d", step.Order)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc: back  q: quit"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s %s\n", listDimStyle.Render("Solution:"), StyleValue.Render(step.Solution.Key())))
	b.WriteString(fmt.Sprintf("  %s %s  %s %s\n",
		listDimStyle.Render("Depth:"), StyleNumber.Render(fmt.Sprintf("%d", step.Depth)),
		listDimStyle.Render("Branch size:"), StyleNumber.Render(fmt.Sprintf("%d", step.BranchSize))))
	if step.Parent != nil {
		b.WriteString(fmt.Sprintf("  %s step %d via %s\n",
			listDimStyle.Render("Parent:"), step.Parent.Parent.Order, step.Parent.Choice.Key()))
	}

	if len(step.Promotions) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleHighlight.Render("  Promotions"))
		b.WriteString("\n")
		for _, p := range step.Promotions {
			b.WriteString(fmt.Sprintf("    %s\n", truncate(p.Text, 76)))
		}
	}

	if len(step.Successors) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleHighlight.Render("  Successors"))
		b.WriteString("\n")
		for _, succ := range step.Successors {
			marker := listDimStyle.Render("unprocessed")
			if succ.Processed() {
				marker = fmt.Sprintf("step %d", succ.Step.Order)
			}
			forced := ""
			if succ.Forced {
				forced = StyleWarning.Render(" (forced)")
			}
			b.WriteString(fmt.Sprintf("    %s %s%s\n", marker, truncate(succ.Choice.Key(), 56), forced))
		}
	}

	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render("  Log text"))
	b.WriteString("\n")
	if m.textErr != nil {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("    unavailable: %v\n", m.textErr)))
	} else {
		for _, line := range strings.Split(strings.TrimRight(m.text, "\n"), "\n") {
			b.WriteString(listDimStyle.Render("    " + line))
			b.WriteString("\n")
		}
	}

	return b.String()
}
