package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"taskboard/internal/api"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskboard 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
}

// Tests for list command
func TestListCommand_TasksByColumn(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)
	svc.AddTask("Write report", service.StatusInProgress)
	svc.AddTask("Ship release", service.StatusDone)

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	expected := "todo\n------------\n   1  Buy milk\n\n" +
		"in progress\n------------\n   2  Write report\n\n" +
		"done\n------------\n   3  Ship release\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected 'no tasks found', got %q", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, svc, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func TestListCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = &api.RequestError{Status: 500, Detail: "Internal error"}

	cmd := &commands.ListCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, "Internal error") {
		t.Errorf("expected server detail in stderr, got %q", stderr)
	}
}

func TestListCommand_SessionExpired(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = api.ErrUnauthenticated

	cmd := &commands.ListCmd{}
	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "session expired") {
		t.Errorf("expected login hint in stderr, got %q", stderr)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Buy", "milk"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}

	tasks := svc.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Title != "Buy milk" {
		t.Errorf("expected joined title 'Buy milk', got %q", tasks[0].Title)
	}
	if tasks[0].Status != service.StatusTodo {
		t.Errorf("new task should land in todo, got %q", tasks[0].Status)
	}
}

func TestAddCommand_WithDescription(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	cmd.SetDescription("2 liters")
	_, _, code := runCommand(t, cmd, svc, []string{"Buy milk"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Description != "2 liters" {
		t.Errorf("expected description to be stored, got %+v", tasks)
	}
}

func TestAddCommand_EmptyTitle(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"   "}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "title required") {
		t.Errorf("expected title error, got %q", stderr)
	}
	if len(svc.Tasks()) != 0 {
		t.Error("blank title must not create a task")
	}
}

// Tests for move command
func TestMoveCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)

	cmd := &commands.MoveCmd{}
	stdout, stderr, code := runCommand(t, cmd, svc, []string{"1", "done"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if got := svc.Tasks()[0].Status; got != service.StatusDone {
		t.Errorf("expected status done, got %q", got)
	}
}

func TestMoveCommand_BackwardTransition(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Ship release", service.StatusDone)

	cmd := &commands.MoveCmd{}
	_, _, code := runCommand(t, cmd, svc, []string{"1", "todo"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got := svc.Tasks()[0].Status; got != service.StatusTodo {
		t.Errorf("done back to todo should be allowed, got %q", got)
	}
}

func TestMoveCommand_InvalidStatus(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)

	cmd := &commands.MoveCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"1", "blocked"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "invalid status") {
		t.Errorf("expected invalid status error, got %q", stderr)
	}
}

func TestMoveCommand_OutOfRange(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)

	cmd := &commands.MoveCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"5", "done"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "out of range") {
		t.Errorf("expected out of range error, got %q", stderr)
	}
}

func TestMoveCommand_BadRef(t *testing.T) {
	svc := testutil.NewFakeService()

	cmd := &commands.MoveCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"abc", "done"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "invalid task reference") {
		t.Errorf("expected reference error, got %q", stderr)
	}
}

// Tests for edit command
func TestEditCommand_Title(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)

	cmd := &commands.EditCmd{}
	cmd.SetTitle("Buy oat milk")
	_, _, code := runCommand(t, cmd, svc, []string{"1"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got := svc.Tasks()[0].Title; got != "Buy oat milk" {
		t.Errorf("expected new title, got %q", got)
	}
}

func TestEditCommand_NothingToUpdate(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)

	cmd := &commands.EditCmd{}
	_, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "nothing to update") {
		t.Errorf("expected usage hint, got %q", stderr)
	}
}

func TestEditCommand_EmptyTitleRejected(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)

	cmd := &commands.EditCmd{}
	cmd.SetTitle("   ")
	_, _, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if got := svc.Tasks()[0].Title; got != "Buy milk" {
		t.Errorf("title should be unchanged, got %q", got)
	}
}

// Tests for rm command
func TestRmCommand_Confirmed(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)

	cmd := &commands.RmCmd{}
	cmd.SetInput(strings.NewReader("y\n"))
	stdout, _, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "ok") {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if len(svc.Tasks()) != 0 {
		t.Error("expected task to be deleted")
	}
}

func TestRmCommand_Declined(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)

	cmd := &commands.RmCmd{}
	cmd.SetInput(strings.NewReader("n\n"))
	stdout, _, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "aborted") {
		t.Errorf("expected 'aborted', got %q", stdout)
	}
	if svc.DeleteTaskCalls != 0 {
		t.Errorf("declining must issue no delete request, got %d", svc.DeleteTaskCalls)
	}
	if len(svc.Tasks()) != 1 {
		t.Error("task should still exist after declining")
	}
}

func TestRmCommand_DefaultIsDecline(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)

	cmd := &commands.RmCmd{}
	cmd.SetInput(strings.NewReader("\n"))
	_, _, code := runCommand(t, cmd, svc, []string{"1"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if svc.DeleteTaskCalls != 0 {
		t.Errorf("bare enter must decline, got %d delete calls", svc.DeleteTaskCalls)
	}
}

func TestRmCommand_NotFoundDetail(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.StatusTodo)
	svc.DeleteTaskErr = &api.RequestError{Status: 404, Detail: "Task not found"}

	cmd := &commands.RmCmd{}
	cmd.SetInput(strings.NewReader("yes\n"))
	_, stderr, code := runCommand(t, cmd, svc, []string{"1"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, "Task not found") {
		t.Errorf("expected server detail, got %q", stderr)
	}
}
