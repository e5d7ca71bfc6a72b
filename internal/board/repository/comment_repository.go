package repository

import (
	"errors"
	"time"

	boarddomain "taskboard-backend/internal/board/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// commentRepository implements CommentRepository using GORM
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of commentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *boarddomain.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	return r.db.Create(comment).Error
}

func (r *commentRepository) FindByID(id string) (*boarddomain.Comment, error) {
	var comment boarddomain.Comment
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindByTask(taskID string) ([]*boarddomain.Comment, error) {
	var comments []*boarddomain.Comment
	err := r.db.Preload("Author").
		Where("task_id = ? AND is_deleted = ?", taskID, false).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) SoftDelete(id string) error {
	now := time.Now()
	return r.db.Model(&boarddomain.Comment{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
			"updated_at": now,
		}).Error
}
