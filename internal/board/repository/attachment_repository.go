package repository

import (
	"errors"
	"time"

	boarddomain "taskboard-backend/internal/board/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// attachmentRepository implements AttachmentRepository using GORM
type attachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new instance of attachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(att *boarddomain.Attachment) error {
	if att.ID == "" {
		att.ID = uuid.New().String()
	}
	att.CreatedAt = time.Now()
	return r.db.Create(att).Error
}

func (r *attachmentRepository) FindByID(id string) (*boarddomain.Attachment, error) {
	var att boarddomain.Attachment
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&att).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &att, nil
}

func (r *attachmentRepository) FindByTask(taskID string) ([]*boarddomain.Attachment, error) {
	var atts []*boarddomain.Attachment
	err := r.db.Preload("Uploader").
		Where("task_id = ? AND is_deleted = ?", taskID, false).
		Order("created_at ASC").
		Find(&atts).Error
	return atts, err
}

func (r *attachmentRepository) SoftDelete(id, actorID string) error {
	return r.db.Model(&boarddomain.Attachment{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": time.Now(),
			"deleted_by": actorID,
		}).Error
}
