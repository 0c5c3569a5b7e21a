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
	Register(&EditCmd{})
}

// EditCmd implements the edit command: patch a task's title/description.
type EditCmd struct {
	title    string
	desc     string
	descSet  bool
	titleSet bool
}

// SetTitle sets the title patch (for testing).
func (c *EditCmd) SetTitle(title string) {
	c.title, c.titleSet = title, true
}

// SetDescription sets the description patch (for testing).
func (c *EditCmd) SetDescription(desc string) {
	c.desc, c.descSet = desc, true
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task's title or description" }
func (c *EditCmd) Usage() string {
	return "taskboard edit [common flags] [--title <text>] [--desc <text>] <n>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("title", "", func(v string) error {
		c.title, c.titleSet = v, true
		return nil
	})
	fs.Func("desc", "", func(v string) error {
		c.desc, c.descSet = v, true
		return nil
	})
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	var patch service.TaskPatch
	if c.titleSet {
		patch.Title = &c.title
	}
	if c.descSet {
		patch.Description = &c.desc
	}
	if patch.IsEmpty() {
		fmt.Fprintln(errOut, "error: nothing to update (use --title or --desc)")
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
	if _, err := b.Update(ctx, task.ID, patch); err != nil {
		return reportError(errOut, err, "Failed to update task")
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
