package usecase

import (
	"encoding/json"

	boarddomain "taskboard-backend/internal/board/domain"
	"taskboard-backend/internal/board/repository"
	"taskboard-backend/pkg/apperr"
)

// GetSetting returns one setting, or (nil, nil) when the key is unset.
func (m *Manager) GetSetting(key string) (*boarddomain.Setting, error) {
	setting, err := repository.NewSettingRepository(m.svc.db.Session()).Get(key)
	if err != nil {
		return nil, apperr.Store("look up setting", err)
	}
	return setting, nil
}

// SetSetting stores value under key, overwriting any previous value. Values
// must be valid JSON documents.
func (m *Manager) SetSetting(key, value string) error {
	if key == "" {
		return apperr.Validation("setting key is required")
	}
	if !json.Valid([]byte(value)) {
		return apperr.Validation("setting value must be valid JSON")
	}
	if err := repository.NewSettingRepository(m.svc.db.Session()).Set(key, value); err != nil {
		return apperr.Store("store setting", err)
	}
	return nil
}
