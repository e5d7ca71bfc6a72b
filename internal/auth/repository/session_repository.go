package repository

import (
	"errors"
	"time"

	authdomain "taskboard-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sessionRepository implements SessionRepository using GORM
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new instance of sessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *authdomain.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	now := time.Now()
	session.LoginAt = now
	session.LastActivity = now
	session.IsActive = true
	return r.db.Create(session).Error
}

// FindActiveByToken loads an active session and its owning user.
func (r *sessionRepository) FindActiveByToken(token string) (*authdomain.Session, error) {
	var session authdomain.Session
	err := r.db.Preload("User").
		Where("token = ? AND is_active = ?", token, true).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Update writes the session row only; the preloaded User is never saved
// through it.
func (r *sessionRepository) Update(session *authdomain.Session) error {
	return r.db.Omit(clause.Associations).Save(session).Error
}

func (r *sessionRepository) TouchActivity(token string) error {
	return r.db.Model(&authdomain.Session{}).
		Where("token = ? AND is_active = ?", token, true).
		Update("last_activity", time.Now()).Error
}

// DeactivateNonRememberMe closes every active session of the user that was
// not opened with "remember me". Used to enforce the single-active-session
// policy on login.
func (r *sessionRepository) DeactivateNonRememberMe(userID string) error {
	return r.db.Model(&authdomain.Session{}).
		Where("user_id = ? AND is_active = ? AND remember_me = ?", userID, true, false).
		Updates(map[string]interface{}{
			"is_active": false,
			"logout_at": time.Now(),
		}).Error
}

// DeactivateAllForUser closes every active session of the user, remember-me
// included. Used by administrative password resets.
func (r *sessionRepository) DeactivateAllForUser(userID string) error {
	return r.db.Model(&authdomain.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Updates(map[string]interface{}{
			"is_active": false,
			"logout_at": time.Now(),
		}).Error
}
