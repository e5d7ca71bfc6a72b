package repository

import (
	"errors"
	"time"

	boarddomain "taskboard-backend/internal/board/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// columnRepository implements ColumnRepository using GORM
type columnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new instance of columnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &columnRepository{db: db}
}

func (r *columnRepository) Create(column *boarddomain.Column) error {
	if column.ID == "" {
		column.ID = uuid.New().String()
	}
	column.CreatedAt = time.Now()
	column.UpdatedAt = time.Now()
	return r.db.Create(column).Error
}

func (r *columnRepository) FindByID(id string) (*boarddomain.Column, error) {
	var column boarddomain.Column
	err := r.db.Where("id = ?", id).First(&column).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &column, nil
}

func (r *columnRepository) FindActive() ([]*boarddomain.Column, error) {
	var columns []*boarddomain.Column
	err := r.db.Where("is_active = ?", true).Order("position ASC").Find(&columns).Error
	return columns, err
}

// FindActiveByName looks up the single active column carrying the name.
// Inactive columns may share a name; active ones may not.
func (r *columnRepository) FindActiveByName(name string) (*boarddomain.Column, error) {
	var column boarddomain.Column
	err := r.db.Where("name = ? AND is_active = ?", name, true).First(&column).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &column, nil
}

func (r *columnRepository) Update(column *boarddomain.Column) error {
	column.UpdatedAt = time.Now()
	return r.db.Save(column).Error
}

func (r *columnRepository) Deactivate(id string) error {
	return r.db.Model(&boarddomain.Column{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}
