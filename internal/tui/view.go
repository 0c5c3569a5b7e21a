package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/output"
	"taskboard/internal/service"
)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	styleColumn = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	styleSelected = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)

	styleHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

const minColumnWidth = 20

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderColumns())
	b.WriteString("\n")

	switch m.mode {
	case modeAdding:
		b.WriteString("add: " + m.input.View() + "\n")
	case modeConfirmDelete:
		if t, ok := m.selected(); ok {
			b.WriteString(fmt.Sprintf("delete %q? y/n\n", output.TitleOf(t)))
		}
	default:
		if m.status != "" {
			b.WriteString(styleError.Render(m.status) + "\n")
		}
	}

	b.WriteString(styleHelp.Render("a add  t/p/d move  x delete  r refresh  j/k select  q quit"))
	return b.String()
}

func (m model) renderColumns() string {
	width := m.width/3 - 2
	if width < minColumnWidth {
		width = minColumnWidth
	}

	cols := make([]string, 0, len(service.Statuses))
	for _, status := range service.Statuses {
		cols = append(cols, m.renderColumn(status, width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m model) renderColumn(status string, width int) string {
	var rows []string
	rows = append(rows, styleHeader.Render(output.ColumnTitle(status)))

	for i, t := range m.tasks {
		if columnFor(t.Status) != status {
			continue
		}
		line := truncate(fmt.Sprintf("%d %s", i+1, output.TitleOf(t)), width)
		if i == m.cursor {
			line = styleSelected.Render(line)
		}
		rows = append(rows, line)
	}
	if len(rows) == 1 {
		rows = append(rows, styleHelp.Render("(empty)"))
	}

	return styleColumn.Width(width).Render(strings.Join(rows, "\n"))
}

// columnFor maps a task status to its display column; anything unrecognized
// lands in todo, same as the plain list rendering.
func columnFor(status string) string {
	switch status {
	case service.StatusInProgress, service.StatusDone:
		return status
	default:
		return service.StatusTodo
	}
}

// truncate shortens a row to at most width runes, never splitting a rune.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
