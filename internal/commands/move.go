package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&MoveCmd{})
}

// MoveCmd implements the move command: set a task's status column.
// Any transition is allowed, including done back to todo.
type MoveCmd struct{}

func (c *MoveCmd) Name() string      { return "move" }
func (c *MoveCmd) Aliases() []string { return []string{"mv"} }
func (c *MoveCmd) Synopsis() string  { return "Move a task to a status column" }
func (c *MoveCmd) Usage() string     { return "taskboard move [common flags] <n> <todo|in_progress|done>" }
func (c *MoveCmd) NeedsAuth() bool   { return true }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: status required")
		return exitcode.UserError
	}
	status := normalizeStatus(args[1])
	if !service.ValidStatus(status) {
		fmt.Fprintf(errOut, "error: invalid status: %s (expected todo, in_progress or done)\n", args[1])
		return exitcode.UserError
	}

	task, err := findTaskByNumber(ctx, svc, num)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return reportError(errOut, err, "Failed to load tasks")
	}

	b := board.New(svc, newLogger(cfg, errOut))
	if _, err := b.Update(ctx, task.ID, service.TaskPatch{Status: &status}); err != nil {
		return reportError(errOut, err, "Failed to update task")
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// normalizeStatus maps common spellings onto the wire statuses.
func normalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "in-progress", "inprogress", "progress", "doing":
		return service.StatusInProgress
	}
	return s
}
