package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	authdomain "taskboard-backend/internal/auth/domain"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type TaskStatus string

const (
	TaskStatusActive    TaskStatus = "active"
	TaskStatusBlocked   TaskStatus = "blocked"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusArchived  TaskStatus = "archived"
)

// StringArray is a custom type to handle JSON arrays in GORM
type StringArray []string

// Value implements driver.Valuer
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = []string{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	if len(bytes) == 0 {
		*a = []string{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// Task is the central board entity. TaskNumber is a human-facing sequential
// identifier ("TASK-0001"), immutable once assigned and strictly increasing.
// Position is a floating-point sort key ranking the task within its column;
// ties are broken by insertion order. Soft-deleted tasks stay in the store
// but are excluded from every read path.
type Task struct {
	ID             string           `json:"id" gorm:"primaryKey"`
	TaskNumber     string           `json:"task_number" gorm:"uniqueIndex;not null"`
	Title          string           `json:"title" gorm:"not null"`
	Description    string           `json:"description,omitempty"`
	ColumnID       string           `json:"column_id" gorm:"index;not null"`
	Column         *Column          `json:"column,omitempty" gorm:"foreignKey:ColumnID"`
	Position       float64          `json:"position" gorm:"not null;default:0"`
	AssigneeID     string           `json:"assignee_id,omitempty" gorm:"index"`
	Assignee       *authdomain.User `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID"`
	GroupID        string           `json:"group_id,omitempty" gorm:"index"`
	CreatorID      string           `json:"creator_id" gorm:"index;not null"`
	Creator        *authdomain.User `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Priority       Priority         `json:"priority" gorm:"default:medium"`
	Status         TaskStatus       `json:"status" gorm:"default:active"`
	Category       string           `json:"category,omitempty"`
	Tags           StringArray      `json:"tags,omitempty" gorm:"type:text"`
	Color          string           `json:"color,omitempty"`
	Deadline       *time.Time       `json:"deadline,omitempty"`
	EstimatedHours float64          `json:"estimated_hours,omitempty"`
	ActualHours    float64          `json:"actual_hours,omitempty"`

	// Workflow linkage for tasks spawned by outside automation
	WorkflowType     string `json:"workflow_type,omitempty"`
	WorkflowRef      string `json:"workflow_ref,omitempty"`
	WorkflowMetadata string `json:"workflow_metadata,omitempty" gorm:"type:text"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	IsDeleted bool       `json:"is_deleted" gorm:"index;default:false"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy string     `json:"deleted_by,omitempty"`
}

// IsOverdue reports whether the task counts as overdue: it has a deadline in
// the past, is not archived, and does not sit in the Done column.
func (t *Task) IsOverdue(columnName string, today time.Time) bool {
	if t.Deadline == nil {
		return false
	}
	if t.Status == TaskStatusArchived {
		return false
	}
	if columnName == ColumnDone {
		return false
	}
	deadline := dateOnly(*t.Deadline)
	return deadline.Before(dateOnly(today))
}

// IsCompletedLate reports whether the task was finished after its deadline.
func (t *Task) IsCompletedLate() bool {
	if t.Deadline == nil || t.CompletedAt == nil {
		return false
	}
	return dateOnly(*t.CompletedAt).After(dateOnly(*t.Deadline))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TaskCounter is the single-row monotonic sequence behind TaskNumber
// generation. The creation transaction increments the row in place, which
// serializes concurrent creates on the row lock so no two tasks can mint
// the same number.
type TaskCounter struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	LastValue int64     `json:"last_value" gorm:"not null;default:0"`
	UpdatedAt time.Time `json:"updated_at"`
}
