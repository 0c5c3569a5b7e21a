package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"taskboard/internal/service"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a 1-based task number from args. Numbers are the ones
// printed by the list command, i.e. positions in the arrival-ordered list.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	if !isAllDigits(args[0]) {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}
	num, err := strconv.Atoi(args[0])
	if err != nil || num < 1 {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}
	return num, nil
}

// findTaskByNumber resolves a task number against a fresh fetch of the
// ordered list. Numbers can go stale as other clients mutate the board;
// resolving against the current server state keeps the window small.
func findTaskByNumber(ctx context.Context, svc service.Service, num int) (service.Task, error) {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return service.Task{}, err
	}
	if num < 1 || num > len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
