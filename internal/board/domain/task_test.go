package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestIsOverdue(t *testing.T) {
	today := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	cases := []struct {
		name       string
		deadline   *time.Time
		status     TaskStatus
		columnName string
		want       bool
	}{
		{"no deadline", nil, TaskStatusActive, "Backlog", false},
		{"deadline passed", &yesterday, TaskStatusActive, "Backlog", true},
		{"deadline today", &today, TaskStatusActive, "Backlog", false},
		{"deadline ahead", &tomorrow, TaskStatusActive, "Backlog", false},
		{"archived exempt", &yesterday, TaskStatusArchived, "Backlog", false},
		{"done column exempt", &yesterday, TaskStatusActive, ColumnDone, false},
		{"blocked still counts", &yesterday, TaskStatusBlocked, "Backlog", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := &Task{Deadline: tc.deadline, Status: tc.status}
			if got := task.IsOverdue(tc.columnName, today); got != tc.want {
				t.Errorf("IsOverdue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsOverdueComparesDatesNotClockTimes(t *testing.T) {
	// Deadline earlier the same day is not overdue; the day has not passed.
	deadline := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC)

	task := &Task{Deadline: &deadline, Status: TaskStatusActive}
	if task.IsOverdue("Backlog", now) {
		t.Error("a deadline on the current date should not count as overdue")
	}
}

func TestIsCompletedLate(t *testing.T) {
	deadline := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	onTime := deadline.Add(2 * time.Hour)
	nextDay := deadline.AddDate(0, 0, 1)

	task := &Task{Deadline: &deadline, CompletedAt: &onTime}
	if task.IsCompletedLate() {
		t.Error("completion later the same day is on time")
	}

	task.CompletedAt = &nextDay
	if !task.IsCompletedLate() {
		t.Error("completion the day after the deadline is late")
	}

	task.CompletedAt = nil
	if task.IsCompletedLate() {
		t.Error("an unfinished task cannot be completed late")
	}
}

func TestSnapshotIsVersionedAndStable(t *testing.T) {
	deadline := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	task := &Task{
		ID:         "t-1",
		TaskNumber: "TASK-0042",
		Title:      "Snapshot me",
		ColumnID:   "col-1",
		Position:   3,
		CreatorID:  "u-1",
		Priority:   PriorityHigh,
		Status:     TaskStatusActive,
		Tags:       StringArray{"infra"},
		Deadline:   &deadline,
	}

	raw, err := task.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if decoded["version"] != float64(snapshotVersion) {
		t.Errorf("version = %v, want %d", decoded["version"], snapshotVersion)
	}
	if decoded["task_number"] != "TASK-0042" {
		t.Errorf("task_number = %v", decoded["task_number"])
	}
	if decoded["priority"] != "high" {
		t.Errorf("priority = %v", decoded["priority"])
	}
	// The persistence object graph must not leak into the snapshot.
	if _, ok := decoded["column"]; ok {
		t.Error("snapshot should not embed the column relation")
	}
}

func TestStringArrayScanValue(t *testing.T) {
	var a StringArray
	if err := a.Scan(`["one","two"]`); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(a) != 2 || a[0] != "one" || a[1] != "two" {
		t.Errorf("scanned %v", a)
	}

	if err := a.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if len(a) != 0 {
		t.Errorf("nil should scan to empty, got %v", a)
	}

	v, err := StringArray(nil).Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "[]" {
		t.Errorf("empty array serialized as %v, want []", v)
	}
}
