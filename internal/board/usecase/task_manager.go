package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	auditusecase "taskboard-backend/internal/audit/usecase"
	authdomain "taskboard-backend/internal/auth/domain"
	boarddomain "taskboard-backend/internal/board/domain"
	"taskboard-backend/internal/board/repository"
	"taskboard-backend/pkg/apperr"
	"taskboard-backend/pkg/database"
	"taskboard-backend/pkg/fuzzy"
)

// Service holds the board's long-lived collaborators. Call As to obtain a
// Manager scoped to an acting user.
type Service struct {
	db    *database.Manager
	audit *auditusecase.Logger
	log   *logrus.Logger
}

// NewService creates a new board Service.
func NewService(db *database.Manager, audit *auditusecase.Logger, log *logrus.Logger) *Service {
	return &Service{db: db, audit: audit, log: log}
}

// Manager executes board operations on behalf of one acting user. The
// actor and client context are fixed at construction and stamped onto
// every audit entry. Every operation runs in its own unit of work and
// rolls back completely on error.
type Manager struct {
	svc   *Service
	actor auditusecase.Actor
	ctx   authdomain.ClientContext
}

// As scopes a Manager to the given acting user and client context.
func (s *Service) As(actor auditusecase.Actor, ctx authdomain.ClientContext) *Manager {
	return &Manager{svc: s, actor: actor, ctx: ctx}
}

// CreateTaskInput carries the caller-settable fields of a new task.
type CreateTaskInput struct {
	Title          string
	Description    string
	ColumnID       string
	AssigneeID     string
	GroupID        string
	Priority       boarddomain.Priority
	Category       string
	Tags           []string
	Color          string
	Deadline       *time.Time
	EstimatedHours float64

	WorkflowType     string
	WorkflowRef      string
	WorkflowMetadata string
}

// UpdateTaskInput is a patch; nil fields are left untouched. ClearDeadline
// removes an existing deadline.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	AssigneeID     *string
	GroupID        *string
	Priority       *boarddomain.Priority
	Status         *boarddomain.TaskStatus
	Category       *string
	Tags           *[]string
	Color          *string
	Deadline       *time.Time
	ClearDeadline  bool
	EstimatedHours *float64
	ActualHours    *float64
}

// CreateTask mints the next task number, appends the task at the end of its
// column and records a task_created audit row with a full snapshot.
func (m *Manager) CreateTask(input CreateTaskInput) (*boarddomain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperr.Validation("title is required")
	}

	var task *boarddomain.Task
	err := m.svc.db.Transaction(func(tx *gorm.DB) error {
		tasks := repository.NewTaskRepository(tx)
		columns := repository.NewColumnRepository(tx)

		column, err := columns.FindByID(input.ColumnID)
		if err != nil {
			return apperr.Store("look up column", err)
		}
		if column == nil || !column.IsActive {
			return apperr.Validation("column does not exist or is inactive")
		}

		number, err := tasks.NextTaskNumber()
		if err != nil {
			return apperr.Store("generate task number", err)
		}

		maxPos, err := tasks.MaxPositionInColumn(column.ID)
		if err != nil {
			return apperr.Store("compute position", err)
		}

		priority := input.Priority
		if priority == "" {
			priority = boarddomain.PriorityMedium
		}

		task = &boarddomain.Task{
			TaskNumber:       number,
			Title:            strings.TrimSpace(input.Title),
			Description:      input.Description,
			ColumnID:         column.ID,
			Position:         maxPos + 1,
			AssigneeID:       input.AssigneeID,
			GroupID:          input.GroupID,
			CreatorID:        m.actor.ID,
			Priority:         priority,
			Status:           boarddomain.TaskStatusActive,
			Category:         input.Category,
			Tags:             input.Tags,
			Color:            input.Color,
			Deadline:         input.Deadline,
			EstimatedHours:   input.EstimatedHours,
			WorkflowType:     input.WorkflowType,
			WorkflowRef:      input.WorkflowRef,
			WorkflowMetadata: input.WorkflowMetadata,
		}
		if err := tasks.Create(task); err != nil {
			return apperr.Store("create task", err)
		}

		m.svc.audit.TaskCreated(tx, m.actor, task, m.ctx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// GetTask returns the task with assignee, creator and column loaded, or
// (nil, nil) when it does not exist or is soft-deleted.
func (m *Manager) GetTask(id string) (*boarddomain.Task, error) {
	task, err := repository.NewTaskRepository(m.svc.db.Session()).FindByID(id)
	if err != nil {
		return nil, apperr.Store("look up task", err)
	}
	return task, nil
}

type fieldChange struct {
	name     string
	oldValue string
	newValue string
}

// UpdateTask applies the patch and records one task_updated audit row per
// field that actually changed. A patch that changes nothing writes no rows.
func (m *Manager) UpdateTask(id string, input UpdateTaskInput) (*boarddomain.Task, error) {
	var task *boarddomain.Task

	err := m.svc.db.Transaction(func(tx *gorm.DB) error {
		tasks := repository.NewTaskRepository(tx)

		var err error
		task, err = tasks.FindByID(id)
		if err != nil {
			return apperr.Store("look up task", err)
		}
		if task == nil {
			return apperr.NotFound("task not found")
		}

		var changes []fieldChange
		record := func(name, oldV, newV string) {
			if oldV != newV {
				changes = append(changes, fieldChange{name, oldV, newV})
			}
		}

		if input.Title != nil {
			record("title", task.Title, *input.Title)
			task.Title = *input.Title
		}
		if input.Description != nil {
			record("description", task.Description, *input.Description)
			task.Description = *input.Description
		}
		if input.AssigneeID != nil {
			record("assignee_id", task.AssigneeID, *input.AssigneeID)
			task.AssigneeID = *input.AssigneeID
		}
		if input.GroupID != nil {
			record("group_id", task.GroupID, *input.GroupID)
			task.GroupID = *input.GroupID
		}
		if input.Priority != nil {
			record("priority", string(task.Priority), string(*input.Priority))
			task.Priority = *input.Priority
		}
		if input.Status != nil {
			record("status", string(task.Status), string(*input.Status))
			task.Status = *input.Status
		}
		if input.Category != nil {
			record("category", task.Category, *input.Category)
			task.Category = *input.Category
		}
		if input.Tags != nil {
			record("tags", strings.Join(task.Tags, ","), strings.Join(*input.Tags, ","))
			task.Tags = *input.Tags
		}
		if input.Color != nil {
			record("color", task.Color, *input.Color)
			task.Color = *input.Color
		}
		if input.ClearDeadline {
			record("deadline", formatDeadline(task.Deadline), "")
			task.Deadline = nil
		} else if input.Deadline != nil {
			record("deadline", formatDeadline(task.Deadline), formatDeadline(input.Deadline))
			task.Deadline = input.Deadline
		}
		if input.EstimatedHours != nil {
			record("estimated_hours", formatHours(task.EstimatedHours), formatHours(*input.EstimatedHours))
			task.EstimatedHours = *input.EstimatedHours
		}
		if input.ActualHours != nil {
			record("actual_hours", formatHours(task.ActualHours), formatHours(*input.ActualHours))
			task.ActualHours = *input.ActualHours
		}

		if len(changes) == 0 {
			return nil
		}

		if err := tasks.Update(task); err != nil {
			return apperr.Store("update task", err)
		}
		for _, c := range changes {
			m.svc.audit.TaskFieldUpdated(tx, m.actor, task, c.name, c.oldValue, c.newValue, m.ctx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask soft-deletes by default. A hard delete physically removes the
// row and everything cascading from it; the audit row is written first so
// the trail survives the cascade.
func (m *Manager) DeleteTask(id string, hardDelete bool) error {
	return m.svc.db.Transaction(func(tx *gorm.DB) error {
		tasks := repository.NewTaskRepository(tx)

		task, err := tasks.FindByID(id)
		if err != nil {
			return apperr.Store("look up task", err)
		}
		if task == nil {
			return apperr.NotFound("task not found")
		}

		m.svc.audit.TaskDeleted(tx, m.actor, task, hardDelete, m.ctx)

		if hardDelete {
			if err := tasks.HardDelete(task.ID); err != nil {
				return apperr.Store("delete task", err)
			}
			return nil
		}
		if err := tasks.SoftDelete(task.ID, m.actor.ID); err != nil {
			return apperr.Store("delete task", err)
		}
		return nil
	})
}

// MoveTask puts the task into another column. Without an explicit position
// the task is appended. Entering "In Progress" stamps the start time once;
// entering "Done" stamps the completion time once and marks the task
// completed.
func (m *Manager) MoveTask(id, newColumnID string, newPosition *float64) (*boarddomain.Task, error) {
	var task *boarddomain.Task

	err := m.svc.db.Transaction(func(tx *gorm.DB) error {
		tasks := repository.NewTaskRepository(tx)
		columns := repository.NewColumnRepository(tx)

		var err error
		task, err = tasks.FindByID(id)
		if err != nil {
			return apperr.Store("look up task", err)
		}
		if task == nil {
			return apperr.NotFound("task not found")
		}

		dest, err := columns.FindByID(newColumnID)
		if err != nil {
			return apperr.Store("look up column", err)
		}
		if dest == nil || !dest.IsActive {
			return apperr.Validation("destination column does not exist or is inactive")
		}

		fromName := ""
		if task.Column != nil {
			fromName = task.Column.Name
		}

		position := 0.0
		if newPosition != nil {
			position = *newPosition
		} else {
			maxPos, err := tasks.MaxPositionInColumn(dest.ID)
			if err != nil {
				return apperr.Store("compute position", err)
			}
			position = maxPos + 1
		}

		task.ColumnID = dest.ID
		task.Position = position

		now := time.Now()
		switch dest.Name {
		case boarddomain.ColumnInProgress:
			if task.StartedAt == nil {
				task.StartedAt = &now
			}
		case boarddomain.ColumnDone:
			if task.CompletedAt == nil {
				task.CompletedAt = &now
			}
			task.Status = boarddomain.TaskStatusCompleted
		}

		if err := tasks.Update(task); err != nil {
			return apperr.Store("move task", err)
		}

		m.svc.audit.TaskMoved(tx, m.actor, task, fromName, dest.Name, m.ctx)
		task.Column = dest
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// GetTasksByColumn lists the column's live tasks in board order.
func (m *Manager) GetTasksByColumn(columnID string) ([]*boarddomain.Task, error) {
	tasks, err := repository.NewTaskRepository(m.svc.db.Session()).FindByColumn(columnID)
	if err != nil {
		return nil, apperr.Store("list tasks", err)
	}
	return tasks, nil
}

// GetTasksByUser lists the user's assigned live tasks, newest first.
func (m *Manager) GetTasksByUser(userID string) ([]*boarddomain.Task, error) {
	tasks, err := repository.NewTaskRepository(m.svc.db.Session()).FindByUser(userID)
	if err != nil {
		return nil, apperr.Store("list tasks", err)
	}
	return tasks, nil
}

// GetTasksByGroup lists the group's assigned live tasks, newest first.
func (m *Manager) GetTasksByGroup(groupID string) ([]*boarddomain.Task, error) {
	tasks, err := repository.NewTaskRepository(m.svc.db.Session()).FindByGroup(groupID)
	if err != nil {
		return nil, apperr.Store("list tasks", err)
	}
	return tasks, nil
}

// SearchTasks matches the query case-insensitively against titles and
// descriptions, most relevant first. Title matches rank above category, tag
// and description matches.
func (m *Manager) SearchTasks(query string) ([]*boarddomain.Task, error) {
	tasks, err := repository.NewTaskRepository(m.svc.db.Session()).Search(query)
	if err != nil {
		return nil, apperr.Store("search tasks", err)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return taskRelevance(query, tasks[i]) > taskRelevance(query, tasks[j])
	})
	return tasks, nil
}

func taskRelevance(query string, t *boarddomain.Task) float64 {
	return fuzzy.Relevance(query, t.Title, t.Description, t.Category, t.Tags)
}

// TaskStatistics is the board-level aggregate.
type TaskStatistics struct {
	Total          int64   `json:"total"`
	Completed      int64   `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
	Overdue        int     `json:"overdue"`
}

// GetTaskStatistics computes the aggregate at query time. The overdue count
// uses the same predicate as per-task overdue classification: tasks in the
// Done column and archived tasks are exempt.
func (m *Manager) GetTaskStatistics() (*TaskStatistics, error) {
	session := m.svc.db.Session()
	tasks := repository.NewTaskRepository(session)

	total, err := tasks.CountActive()
	if err != nil {
		return nil, apperr.Store("count tasks", err)
	}
	completed, err := tasks.CountCompleted()
	if err != nil {
		return nil, apperr.Store("count completed tasks", err)
	}

	all, err := tasks.FindAll()
	if err != nil {
		return nil, apperr.Store("list tasks", err)
	}

	today := time.Now()
	overdue := 0
	for _, t := range all {
		columnName := ""
		if t.Column != nil {
			columnName = t.Column.Name
		}
		if t.IsOverdue(columnName, today) {
			overdue++
		}
	}

	stats := &TaskStatistics{
		Total:     total,
		Completed: completed,
		Overdue:   overdue,
	}
	if total > 0 {
		stats.CompletionRate = float64(completed) / float64(total)
	}
	return stats, nil
}

func formatDeadline(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatHours(h float64) string {
	if h == 0 {
		return ""
	}
	return fmt.Sprintf("%g", h)
}
