package repository

import (
	"time"

	boarddomain "taskboard-backend/internal/board/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// dependencyRepository implements DependencyRepository using GORM
type dependencyRepository struct {
	db *gorm.DB
}

// NewDependencyRepository creates a new instance of dependencyRepository
func NewDependencyRepository(db *gorm.DB) DependencyRepository {
	return &dependencyRepository{db: db}
}

func (r *dependencyRepository) Create(dep *boarddomain.Dependency) error {
	if dep.ID == "" {
		dep.ID = uuid.New().String()
	}
	dep.CreatedAt = time.Now()
	return r.db.Create(dep).Error
}

func (r *dependencyRepository) FindByTask(taskID string) ([]*boarddomain.Dependency, error) {
	var deps []*boarddomain.Dependency
	err := r.db.Preload("DependsOnTask").
		Where("task_id = ?", taskID).
		Find(&deps).Error
	return deps, err
}

func (r *dependencyRepository) Exists(taskID, dependsOnTaskID string) (bool, error) {
	var count int64
	err := r.db.Model(&boarddomain.Dependency{}).
		Where("task_id = ? AND depends_on_task_id = ?", taskID, dependsOnTaskID).
		Count(&count).Error
	return count > 0, err
}

func (r *dependencyRepository) Delete(taskID, dependsOnTaskID string) error {
	return r.db.Where("task_id = ? AND depends_on_task_id = ?", taskID, dependsOnTaskID).
		Delete(&boarddomain.Dependency{}).Error
}
