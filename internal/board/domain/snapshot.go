package domain

import (
	"encoding/json"
	"time"
)

// snapshotVersion is bumped whenever the snapshot shape changes. Audit rows
// keep the version alongside the data so old snapshots stay readable.
const snapshotVersion = 1

// taskSnapshot is the stable audit-trail representation of a task. It is an
// explicit serialization, deliberately decoupled from the persistence object
// graph.
type taskSnapshot struct {
	Version     int        `json:"version"`
	ID          string     `json:"id"`
	TaskNumber  string     `json:"task_number"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ColumnID    string     `json:"column_id"`
	Position    float64    `json:"position"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	GroupID     string     `json:"group_id,omitempty"`
	CreatorID   string     `json:"creator_id"`
	Priority    Priority   `json:"priority"`
	Status      TaskStatus `json:"status"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Snapshot renders the task as a versioned JSON document for the audit
// trail.
func (t *Task) Snapshot() (string, error) {
	snap := taskSnapshot{
		Version:     snapshotVersion,
		ID:          t.ID,
		TaskNumber:  t.TaskNumber,
		Title:       t.Title,
		Description: t.Description,
		ColumnID:    t.ColumnID,
		Position:    t.Position,
		AssigneeID:  t.AssigneeID,
		GroupID:     t.GroupID,
		CreatorID:   t.CreatorID,
		Priority:    t.Priority,
		Status:      t.Status,
		Category:    t.Category,
		Tags:        t.Tags,
		Deadline:    t.Deadline,
		StartedAt:   t.StartedAt,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
