package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	boarddomain "taskboard-backend/internal/board/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// taskRepository implements TaskRepository using GORM
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of taskRepository. Pass a
// transaction handle to scope the repository to a unit of work.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *boarddomain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	return r.db.Create(task).Error
}

func (r *taskRepository) FindByID(id string) (*boarddomain.Task, error) {
	var task boarddomain.Task
	err := r.db.Preload("Assignee").Preload("Creator").Preload("Column").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// FindByIDIncludeDeleted bypasses the soft-delete filter. Debugging and
// audit-trail inspection only.
func (r *taskRepository) FindByIDIncludeDeleted(id string) (*boarddomain.Task, error) {
	var task boarddomain.Task
	err := r.db.Preload("Column").Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) FindByColumn(columnID string) ([]*boarddomain.Task, error) {
	var tasks []*boarddomain.Task
	err := r.db.Preload("Assignee").
		Where("column_id = ? AND is_deleted = ?", columnID, false).
		Order("position ASC, created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// FindByUser returns tasks assigned to the user, newest first.
func (r *taskRepository) FindByUser(userID string) ([]*boarddomain.Task, error) {
	var tasks []*boarddomain.Task
	err := r.db.Preload("Column").
		Where("assignee_id = ? AND is_deleted = ?", userID, false).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// FindByGroup returns tasks assigned to the group, newest first.
func (r *taskRepository) FindByGroup(groupID string) ([]*boarddomain.Task, error) {
	var tasks []*boarddomain.Task
	err := r.db.Preload("Column").
		Where("group_id = ? AND is_deleted = ?", groupID, false).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) FindAll() ([]*boarddomain.Task, error) {
	var tasks []*boarddomain.Task
	err := r.db.Preload("Column").
		Where("is_deleted = ?", false).
		Find(&tasks).Error
	return tasks, err
}

// Search matches the query case-insensitively against title and
// description.
func (r *taskRepository) Search(query string) ([]*boarddomain.Task, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var tasks []*boarddomain.Task
	err := r.db.Preload("Column").
		Where("is_deleted = ? AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", false, pattern, pattern).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// Update writes the task row only. Preloaded associations stay untouched:
// saving them would back-fill column_id and assignee_id from the stale
// loaded records and undo the change being persisted.
func (r *taskRepository) Update(task *boarddomain.Task) error {
	task.UpdatedAt = time.Now()
	return r.db.Omit(clause.Associations).Save(task).Error
}

func (r *taskRepository) SoftDelete(id, actorID string) error {
	now := time.Now()
	return r.db.Model(&boarddomain.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
			"deleted_by": actorID,
			"updated_at": now,
		}).Error
}

func (r *taskRepository) HardDelete(id string) error {
	return r.db.Where("id = ?", id).Delete(&boarddomain.Task{}).Error
}

// MaxPositionInColumn returns the highest position among live tasks in the
// column, 0 when the column is empty.
func (r *taskRepository) MaxPositionInColumn(columnID string) (float64, error) {
	var max *float64
	err := r.db.Model(&boarddomain.Task{}).
		Where("column_id = ? AND is_deleted = ?", columnID, false).
		Select("MAX(position)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// NextTaskNumber mints the next sequential task number from the counter
// row. The in-place increment takes a row lock, so concurrent creation
// transactions serialize here and numbers stay strictly increasing.
func (r *taskRepository) NextTaskNumber() (string, error) {
	counter := boarddomain.TaskCounter{ID: 1}
	if err := r.db.FirstOrCreate(&counter, boarddomain.TaskCounter{ID: 1}).Error; err != nil {
		return "", err
	}

	err := r.db.Model(&boarddomain.TaskCounter{}).Where("id = ?", 1).
		Updates(map[string]interface{}{
			"last_value": gorm.Expr("last_value + 1"),
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return "", err
	}

	if err := r.db.First(&counter, 1).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("TASK-%04d", counter.LastValue), nil
}

func (r *taskRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&boarddomain.Task{}).
		Where("is_deleted = ?", false).Count(&count).Error
	return count, err
}

func (r *taskRepository) CountCompleted() (int64, error) {
	var count int64
	err := r.db.Model(&boarddomain.Task{}).
		Where("is_deleted = ? AND status = ?", false, boarddomain.TaskStatusCompleted).
		Count(&count).Error
	return count, err
}
