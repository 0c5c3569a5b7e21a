package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command. Deletion is irreversible, so it asks
// for confirmation unless --yes is given. Declining issues no request.
type RmCmd struct {
	yes bool
	in  io.Reader
}

// SetInput overrides the prompt input (for testing).
func (c *RmCmd) SetInput(in io.Reader) {
	c.in = in
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskboard rm [common flags] [--yes] <n>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
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

	if !c.yes {
		in := c.in
		if in == nil {
			in = os.Stdin
		}
		question := fmt.Sprintf("Delete task %q?", output.TitleOf(task))
		if !confirm(in, out, question) {
			if !cfg.Quiet {
				fmt.Fprintln(out, "aborted")
			}
			return exitcode.Success
		}
	}

	b := board.New(svc, newLogger(cfg, errOut))
	if err := b.Remove(ctx, task.ID); err != nil {
		return reportError(errOut, err, "Failed to delete task")
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
