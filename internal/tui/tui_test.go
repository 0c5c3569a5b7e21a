package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"taskboard/internal/api"
	"taskboard/internal/board"
	"taskboard/internal/channel"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

func newTestModel(t *testing.T, svc *testutil.FakeService) model {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := board.New(svc, log)

	// A closed event queue makes waitForEvent return immediately, keeping
	// the synchronous step helper free of blocking commands.
	events := make(chan channel.Event)
	close(events)
	m := newModel(context.Background(), b, events)

	// Initial refresh, as Init would do.
	msg := m.refreshCmd()()
	next, _ := m.Update(msg)
	return next.(model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// step applies a message and runs any produced command synchronously.
func step(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(model)
	if cmd != nil {
		if out := cmd(); out != nil {
			if batch, ok := out.(tea.BatchMsg); ok {
				for _, c := range batch {
					if inner := c(); inner != nil {
						next, _ = m.Update(inner)
						m = next.(model)
					}
				}
				return m
			}
			next, _ = m.Update(out)
			m = next.(model)
		}
	}
	return m
}

func TestAddFlowCreatesTask(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc)

	next, _ := m.Update(key("a"))
	m = next.(model)
	require.Equal(t, modeAdding, m.mode)

	m.input.SetValue("Write docs")
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, modeNormal, m.mode)
	tasks := svc.Tasks()
	require.Len(t, tasks, 1)
	require.Equal(t, "Write docs", tasks[0].Title)
	require.Equal(t, service.StatusTodo, tasks[0].Status)
}

func TestAddFlowEscCancels(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc)

	next, _ := m.Update(key("a"))
	m = next.(model)
	m.input.SetValue("half typed")
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	require.Equal(t, modeNormal, m.mode)
	require.Empty(t, svc.Tasks())
}

func TestMoveKeyUpdatesStatus(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)
	m := newTestModel(t, svc)

	m = step(t, m, key("d"))

	require.Equal(t, service.StatusDone, svc.Tasks()[0].Status)
}

func TestDeleteDeclinedIssuesNoRequest(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)
	m := newTestModel(t, svc)

	next, _ := m.Update(key("x"))
	m = next.(model)
	require.Equal(t, modeConfirmDelete, m.mode)

	m = step(t, m, key("n"))

	require.Equal(t, modeNormal, m.mode)
	require.Zero(t, svc.DeleteTaskCalls)
	require.Len(t, svc.Tasks(), 1)
}

func TestDeleteConfirmed(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)
	m := newTestModel(t, svc)

	next, _ := m.Update(key("x"))
	m = next.(model)
	m = step(t, m, key("y"))

	require.Empty(t, svc.Tasks())
}

func TestEventTriggersRefresh(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc)
	before := svc.ListTasksCalls

	svc.AddTask("From elsewhere", service.StatusTodo)
	m = step(t, m, eventMsg(channel.Event{Type: channel.TaskCreated}))

	require.Greater(t, svc.ListTasksCalls, before)
	require.Len(t, m.tasks, 1)
}

func TestViewTruncatesLongTitlesOnRunes(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("日本語のタイトルがとても長いタスクを追加してみる", service.StatusTodo)
	m := newTestModel(t, svc)
	m.width = 60

	view := m.View()
	require.True(t, utf8.ValidString(view), "truncation must not split a rune")
	require.Contains(t, view, "…")
}

func TestViewUnknownStatusLandsInTodo(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Mystery task", "archived")
	m := newTestModel(t, svc)
	m.width = 120

	require.Contains(t, m.View(), "Mystery task")
	require.Equal(t, service.StatusTodo, columnFor("archived"))
}

func TestUnauthenticatedQuits(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc)

	svc.ListTasksErr = api.ErrUnauthenticated
	next, cmd := m.Update(m.refreshCmd()())
	m = next.(model)

	require.Error(t, m.fatal)
	require.NotNil(t, cmd)
}
