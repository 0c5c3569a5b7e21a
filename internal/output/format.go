// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/service"
)

const (
	// ColumnSeparator is the separator line under column headers.
	ColumnSeparator = "------------"
)

// ColumnTitle maps a task status to its display heading.
func ColumnTitle(status string) string {
	switch status {
	case service.StatusInProgress:
		return "in progress"
	case service.StatusDone:
		return "done"
	default:
		return "todo"
	}
}

// FormatBoard prints the status columns. Task numbers index the
// arrival-ordered list, so they stay valid as command references regardless
// of which column a task sits in.
func FormatBoard(w io.Writer, tasks []service.Task) {
	numbers := make(map[string]int, len(tasks))
	for i, t := range tasks {
		numbers[t.ID] = i + 1
	}

	var cols board.Columns
	for _, t := range tasks {
		switch t.Status {
		case service.StatusInProgress:
			cols.InProgress = append(cols.InProgress, t)
		case service.StatusDone:
			cols.Done = append(cols.Done, t)
		default:
			cols.Todo = append(cols.Todo, t)
		}
	}

	for i, col := range []struct {
		status string
		tasks  []service.Task
	}{
		{service.StatusTodo, cols.Todo},
		{service.StatusInProgress, cols.InProgress},
		{service.StatusDone, cols.Done},
	} {
		if i > 0 {
			fmt.Fprintln(w)
		}
		FormatColumnHeader(w, col.status)
		for _, t := range col.tasks {
			FormatTask(w, numbers[t.ID], t)
		}
	}
}

// FormatColumnHeader formats a status column header.
func FormatColumnHeader(w io.Writer, status string) {
	fmt.Fprintln(w, ColumnTitle(status))
	fmt.Fprintln(w, ColumnSeparator)
}

// FormatTask formats a task line.
// Format: "{N:>4}  {TITLE}\n" (4-wide right-aligned number, two spaces, title)
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s\n", num, normalizeTitle(task.Title))
}

// FormatUser formats the whoami output.
func FormatUser(w io.Writer, user service.User) {
	fmt.Fprintf(w, "id:      %s\n", user.ID)
	fmt.Fprintf(w, "email:   %s\n", user.Email)
	if !user.CreatedAt.IsZero() {
		fmt.Fprintf(w, "created: %s\n", user.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// TitleOf returns a task's display title (prompts, TUI rows).
func TitleOf(task service.Task) string {
	return normalizeTitle(task.Title)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
