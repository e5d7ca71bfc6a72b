package repository

import (
	"errors"
	"time"

	boarddomain "taskboard-backend/internal/board/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingRepository implements SettingRepository using GORM
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new instance of settingRepository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(key string) (*boarddomain.Setting, error) {
	var setting boarddomain.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Set(key, value string) error {
	setting := boarddomain.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
