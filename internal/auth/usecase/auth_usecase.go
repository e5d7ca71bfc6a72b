package usecase

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	auditusecase "taskboard-backend/internal/audit/usecase"
	authdomain "taskboard-backend/internal/auth/domain"
	"taskboard-backend/internal/auth/repository"
	"taskboard-backend/pkg/apperr"
	"taskboard-backend/pkg/database"
	"taskboard-backend/pkg/security"
)

const genericAuthFailure = "invalid username or password"

// authUsecase implements AuthUsecase
type authUsecase struct {
	db    *database.Manager
	audit *auditusecase.Logger
	log   *logrus.Logger
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(db *database.Manager, audit *auditusecase.Logger, log *logrus.Logger) AuthUsecase {
	return &authUsecase{db: db, audit: audit, log: log}
}

func (u *authUsecase) Authenticate(username, password string, rememberMe bool, ctx authdomain.ClientContext) (*AuthResult, error) {
	var result *AuthResult

	err := u.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		sessions := repository.NewSessionRepository(tx)

		user, err := users.FindActiveByUsername(username)
		if err != nil {
			return apperr.Store("look up user", err)
		}
		if user == nil || !security.CheckPasswordHash(password, user.PasswordHash) {
			return apperr.Authentication(genericAuthFailure)
		}

		// Single-active-session policy: a fresh login closes the user's
		// other sessions, except ones opened with "remember me".
		if err := sessions.DeactivateNonRememberMe(user.ID); err != nil {
			return apperr.Store("invalidate sessions", err)
		}

		token, err := security.GenerateSessionToken()
		if err != nil {
			return apperr.Store("generate token", err)
		}

		session := &authdomain.Session{
			UserID:     user.ID,
			Token:      token,
			RememberMe: rememberMe,
			IPAddress:  ctx.IPAddress,
			UserAgent:  ctx.UserAgent,
		}
		if err := sessions.Create(session); err != nil {
			return apperr.Store("create session", err)
		}

		u.audit.UserLoggedIn(tx, auditusecase.Actor{ID: user.ID, Username: user.Username}, rememberMe, ctx)

		result = &AuthResult{
			User:                   user,
			Session:                session,
			PasswordChangeRequired: user.PasswordResetRequired,
		}
		return nil
	})
	if err != nil {
		if apperr.IsAuthentication(err) {
			return nil, err
		}
		// Internal failures must not leak detail through the login path.
		if u.log != nil {
			u.log.WithError(err).WithField("username", username).Error("login failed internally")
		}
		return nil, apperr.Authentication(genericAuthFailure)
	}
	return result, nil
}

func (u *authUsecase) ResumeSession(token string) (*AuthResult, error) {
	if token == "" {
		return nil, nil
	}

	sessions := repository.NewSessionRepository(u.db.Session())
	session, err := sessions.FindActiveByToken(token)
	if err != nil {
		return nil, apperr.Store("look up session", err)
	}
	if session == nil || session.User == nil || !session.User.IsActive {
		return nil, nil
	}

	if err := sessions.TouchActivity(token); err != nil {
		return nil, apperr.Store("touch session", err)
	}

	return &AuthResult{
		User:                   session.User,
		Session:                session,
		PasswordChangeRequired: session.User.PasswordResetRequired,
	}, nil
}

func (u *authUsecase) Logout(token string) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		sessions := repository.NewSessionRepository(tx)
		session, err := sessions.FindActiveByToken(token)
		if err != nil {
			return apperr.Store("look up session", err)
		}
		if session == nil {
			// Already logged out or never existed; logout is idempotent.
			return nil
		}

		now := time.Now()
		session.IsActive = false
		session.LogoutAt = &now
		if err := sessions.Update(session); err != nil {
			return apperr.Store("close session", err)
		}

		actor := auditusecase.Actor{ID: session.UserID}
		if session.User != nil {
			actor.Username = session.User.Username
		}
		u.audit.UserLoggedOut(tx, actor, authdomain.ClientContext{IPAddress: session.IPAddress, UserAgent: session.UserAgent})
		return nil
	})
}

func (u *authUsecase) UpdateLastActivity(token string) error {
	sessions := repository.NewSessionRepository(u.db.Session())
	return sessions.TouchActivity(token)
}

func (u *authUsecase) ChangePassword(userID, currentPassword, newPassword string) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)

		user, err := users.FindByID(userID)
		if err != nil {
			return apperr.Store("look up user", err)
		}
		if user == nil {
			return apperr.NotFound("user not found")
		}
		if !security.CheckPasswordHash(currentPassword, user.PasswordHash) {
			return apperr.Authentication("current password is incorrect")
		}

		if ok, reason := security.ValidatePasswordStrength(newPassword); !ok {
			return apperr.Validation(reason)
		}

		hash, err := security.HashPassword(newPassword)
		if err != nil {
			return apperr.Store("hash password", err)
		}
		user.PasswordHash = hash
		user.PasswordResetRequired = false
		if err := users.Update(user); err != nil {
			return apperr.Store("update user", err)
		}

		u.audit.PasswordChanged(tx, auditusecase.Actor{ID: user.ID, Username: user.Username}, authdomain.ClientContext{})
		return nil
	})
}

func (u *authUsecase) AdminResetPassword(actorID, targetUserID, newPassword string, forceReset bool) (string, error) {
	var plaintext string

	err := u.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		sessions := repository.NewSessionRepository(tx)

		actor, err := users.FindByID(actorID)
		if err != nil {
			return apperr.Store("look up acting user", err)
		}
		if actor == nil {
			return apperr.NotFound("acting user not found")
		}
		if !actor.Role.CanManageUsers() {
			return apperr.Authorization("only admins and managers may reset passwords")
		}

		target, err := users.FindByID(targetUserID)
		if err != nil {
			return apperr.Store("look up target user", err)
		}
		if target == nil {
			return apperr.NotFound("target user not found")
		}

		plaintext = newPassword
		if plaintext == "" {
			plaintext, err = security.GenerateTemporaryPassword(12)
			if err != nil {
				return apperr.Store("generate temporary password", err)
			}
		}

		hash, err := security.HashPassword(plaintext)
		if err != nil {
			return apperr.Store("hash password", err)
		}
		target.PasswordHash = hash
		target.PasswordResetRequired = forceReset
		if err := users.Update(target); err != nil {
			return apperr.Store("update target user", err)
		}

		// A reset invalidates every session of the target, remember-me
		// included.
		if err := sessions.DeactivateAllForUser(target.ID); err != nil {
			return apperr.Store("invalidate target sessions", err)
		}

		u.audit.PasswordReset(tx, auditusecase.Actor{ID: actor.ID, Username: actor.Username}, target.Username, authdomain.ClientContext{})
		return nil
	})
	if err != nil {
		return "", err
	}
	// The plaintext is returned exactly once and never persisted.
	return plaintext, nil
}

func (u *authUsecase) EnsurePasswordInitialized(user *authdomain.User, defaultPassword string) (bool, error) {
	if user.PasswordHash != "" {
		return false, nil
	}

	hash, err := security.HashPassword(defaultPassword)
	if err != nil {
		return false, apperr.Store("hash password", err)
	}
	user.PasswordHash = hash
	user.PasswordResetRequired = true

	users := repository.NewUserRepository(u.db.Session())
	if err := users.Update(user); err != nil {
		return false, apperr.Store("update user", err)
	}
	return true, nil
}

func (u *authUsecase) SeedAdmin(username, displayName, password string) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)

		count, err := users.CountByRole(authdomain.RoleAdmin)
		if err != nil {
			return apperr.Store("count admins", err)
		}
		if count > 0 {
			return nil
		}

		hash, err := security.HashPassword(password)
		if err != nil {
			return apperr.Store("hash password", err)
		}

		admin := &authdomain.User{
			Username:     username,
			DisplayName:  displayName,
			Role:         authdomain.RoleAdmin,
			PasswordHash: hash,
			IsActive:     true,
		}
		if err := users.Create(admin); err != nil {
			return apperr.Store("create admin", err)
		}
		if u.log != nil {
			u.log.WithField("username", username).Info("seeded initial admin account")
		}
		return nil
	})
}
