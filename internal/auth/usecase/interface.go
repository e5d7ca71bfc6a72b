package usecase

import authdomain "taskboard-backend/internal/auth/domain"

// AuthResult is what a successful login or session resume yields.
type AuthResult struct {
	User                   *authdomain.User    `json:"user"`
	Session                *authdomain.Session `json:"session"`
	PasswordChangeRequired bool                `json:"password_change_required"`
}

// AuthUsecase defines the authentication and session lifecycle operations.
type AuthUsecase interface {
	// Authenticate verifies credentials and opens a new session. Unknown
	// users, inactive users and wrong passwords all fail with the same
	// generic message.
	Authenticate(username, password string, rememberMe bool, ctx authdomain.ClientContext) (*AuthResult, error)

	// ResumeSession resolves a bearer token to its session and owner,
	// touching last-activity. It returns (nil, nil) when the token is
	// unknown, inactive or its owner has been deactivated.
	ResumeSession(token string) (*AuthResult, error)

	// Logout closes the session if it is still active. Idempotent.
	Logout(token string) error

	// UpdateLastActivity is the session heartbeat. Unknown tokens no-op.
	UpdateLastActivity(token string) error

	// ChangePassword verifies the current password, enforces the strength
	// policy on the new one and clears the reset-required flag.
	ChangePassword(userID, currentPassword, newPassword string) error

	// AdminResetPassword sets (or generates) a new password for the target
	// user, invalidates all of the target's sessions and returns the
	// plaintext exactly once. The actor must be an admin or manager.
	AdminResetPassword(actorID, targetUserID, newPassword string, forceReset bool) (string, error)

	// EnsurePasswordInitialized seeds a password hash only if the user has
	// none, marking the account for a forced change. Reports whether it
	// wrote anything.
	EnsurePasswordInitialized(user *authdomain.User, defaultPassword string) (bool, error)

	// SeedAdmin provisions the initial admin account when no active admin
	// exists yet.
	SeedAdmin(username, displayName, password string) error
}
