package commands

import (
	"context"
	"strings"
	"testing"

	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

func TestParseTaskRef_Numeric(t *testing.T) {
	num, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != 5 {
		t.Errorf("expected 5, got %d", num)
	}
}

func TestParseTaskRef_Missing(t *testing.T) {
	_, err := ParseTaskRef(nil)
	if err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_NonNumeric(t *testing.T) {
	_, err := ParseTaskRef([]string{"abc"})
	if err == nil {
		t.Fatal("expected error for non-numeric ref")
	}
	expectedMsg := "invalid task reference: abc"
	if err.Error() != expectedMsg {
		t.Errorf("expected %q, got %q", expectedMsg, err.Error())
	}
}

func TestParseTaskRef_Zero(t *testing.T) {
	_, err := ParseTaskRef([]string{"0"})
	if err == nil {
		t.Fatal("expected error for zero ref")
	}
}

func TestParseTaskRef_Negative(t *testing.T) {
	_, err := ParseTaskRef([]string{"-1"})
	if err == nil {
		t.Fatal("expected error for negative ref")
	}
}

func TestFindTaskByNumber(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("first", service.StatusTodo)
	id := svc.AddTask("second", service.StatusDone)

	task, err := findTaskByNumber(context.Background(), svc, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != id {
		t.Errorf("expected task %s, got %s", id, task.ID)
	}
}

func TestFindTaskByNumber_OutOfRange(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("only", service.StatusTodo)

	_, err := findTaskByNumber(context.Background(), svc, 2)
	if err == nil {
		t.Fatal("expected error for out of range number")
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Errorf("expected out of range error, got %v", err)
	}
}
