package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/api"
	"taskboard/internal/board"
	"taskboard/internal/channel"
	"taskboard/internal/service"
)

// mode is the input mode of the view.
type mode int

const (
	modeNormal mode = iota
	modeAdding
	modeConfirmDelete
)

type (
	// tasksMsg carries a fresh snapshot after a refresh.
	tasksMsg []service.Task

	// eventMsg carries a push event from the notification channel.
	eventMsg channel.Event

	// errMsg carries a failed refresh or mutation.
	errMsg struct{ err error }
)

type model struct {
	ctx    context.Context
	board  *board.Board
	events <-chan channel.Event

	tasks  []service.Task
	cursor int
	mode   mode
	input  textinput.Model

	width  int
	height int

	status string
	fatal  error
}

func newModel(ctx context.Context, b *board.Board, events <-chan channel.Event) model {
	ti := textinput.New()
	ti.Placeholder = "task title"
	ti.CharLimit = 200
	return model{
		ctx:    ctx,
		board:  b,
		events: events,
		input:  ti,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.waitForEvent())
}

// waitForEvent blocks on the push queue and hands the next event to Update.
func (m model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev, ok := <-m.events:
			if !ok {
				return nil
			}
			return eventMsg(ev)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m model) refreshCmd() tea.Cmd {
	b := m.board
	ctx := m.ctx
	return func() tea.Msg {
		if err := b.Refresh(ctx); err != nil {
			return errMsg{err}
		}
		return tasksMsg(b.Tasks())
	}
}

func (m model) createCmd(title string) tea.Cmd {
	b := m.board
	ctx := m.ctx
	return func() tea.Msg {
		if _, err := b.Create(ctx, title, ""); err != nil {
			return errMsg{err}
		}
		return tasksMsg(b.Tasks())
	}
}

func (m model) moveCmd(id, status string) tea.Cmd {
	b := m.board
	ctx := m.ctx
	return func() tea.Msg {
		if _, err := b.Update(ctx, id, service.TaskPatch{Status: &status}); err != nil {
			return errMsg{err}
		}
		return tasksMsg(b.Tasks())
	}
}

func (m model) removeCmd(id string) tea.Cmd {
	b := m.board
	ctx := m.ctx
	return func() tea.Msg {
		if err := b.Remove(ctx, id); err != nil {
			return errMsg{err}
		}
		return tasksMsg(b.Tasks())
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksMsg:
		m.tasks = msg
		m.status = ""
		m.clampCursor()
		return m, nil

	case eventMsg:
		// Every event type resolves to one full refetch.
		return m, tea.Batch(m.refreshCmd(), m.waitForEvent())

	case errMsg:
		if errors.Is(msg.err, api.ErrUnauthenticated) {
			m.fatal = msg.err
			return m, tea.Quit
		}
		m.status = "error: " + api.Detail(msg.err, "request failed")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAdding:
		switch msg.Type {
		case tea.KeyEsc:
			m.mode = modeNormal
			m.input.Blur()
			m.input.Reset()
			return m, nil
		case tea.KeyEnter:
			title := m.input.Value()
			m.mode = modeNormal
			m.input.Blur()
			m.input.Reset()
			if title == "" {
				return m, nil
			}
			return m, m.createCmd(title)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modeConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			m.mode = modeNormal
			if t, ok := m.selected(); ok {
				return m, m.removeCmd(t.ID)
			}
			return m, nil
		default:
			m.mode = modeNormal
			return m, nil
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
		return m, nil
	case "a":
		m.mode = modeAdding
		m.input.Focus()
		return m, textinput.Blink
	case "t":
		return m, m.moveSelected(service.StatusTodo)
	case "p":
		return m, m.moveSelected(service.StatusInProgress)
	case "d":
		return m, m.moveSelected(service.StatusDone)
	case "x":
		if _, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
		}
		return m, nil
	case "r":
		return m, m.refreshCmd()
	}
	return m, nil
}

func (m model) moveSelected(status string) tea.Cmd {
	t, ok := m.selected()
	if !ok || t.Status == status {
		return nil
	}
	return m.moveCmd(t.ID, status)
}

// selected returns the task under the cursor. The cursor indexes the
// arrival-ordered list, matching the numbers the list command prints.
func (m model) selected() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return service.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *model) clampCursor() {
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
