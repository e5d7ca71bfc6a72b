package repository

import (
	"time"

	auditdomain "taskboard-backend/internal/audit/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityRepository defines the interface for audit-trail persistence.
// Rows are append-only; there are no update or delete operations.
type ActivityRepository interface {
	Create(row *auditdomain.ActivityLog) error
	FindByTask(taskID string, limit int) ([]*auditdomain.ActivityLog, error)
	FindRecent(limit int) ([]*auditdomain.ActivityLog, error)
}

// activityRepository implements ActivityRepository using GORM
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new instance of activityRepository. Pass a
// transaction handle to bind the write to the caller's unit of work.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(row *auditdomain.ActivityLog) error {
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	row.CreatedAt = time.Now()
	return r.db.Create(row).Error
}

func (r *activityRepository) FindByTask(taskID string, limit int) ([]*auditdomain.ActivityLog, error) {
	var rows []*auditdomain.ActivityLog
	err := r.db.Where("task_id = ?", taskID).
		Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *activityRepository) FindRecent(limit int) ([]*auditdomain.ActivityLog, error) {
	var rows []*auditdomain.ActivityLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
