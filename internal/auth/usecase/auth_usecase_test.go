package usecase

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	auditdomain "taskboard-backend/internal/audit/domain"
	auditusecase "taskboard-backend/internal/audit/usecase"
	authdomain "taskboard-backend/internal/auth/domain"
	"taskboard-backend/internal/auth/repository"
	"taskboard-backend/pkg/apperr"
	"taskboard-backend/pkg/config"
	"taskboard-backend/pkg/database"
	"taskboard-backend/pkg/eventlog"
	"taskboard-backend/pkg/security"
)

func newTestAuth(t *testing.T) (AuthUsecase, *database.Manager) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.New(&config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 60,
	}, log)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.CreateTables(
		&authdomain.User{}, &authdomain.Session{},
		&auditdomain.ActivityLog{},
	); err != nil {
		t.Fatalf("create tables: %v", err)
	}

	audit := auditusecase.NewLogger(eventlog.NopSink{}, log)
	return NewAuthUsecase(db, audit, log), db
}

func createUser(t *testing.T, db *database.Manager, username, password string, role authdomain.Role) *authdomain.User {
	t.Helper()
	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &authdomain.User{
		Username:     username,
		DisplayName:  username,
		Role:         role,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := repository.NewUserRepository(db.DB()).Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestAuthenticateDoesNotDistinguishUnknownUserFromWrongPassword(t *testing.T) {
	uc, db := newTestAuth(t)
	createUser(t, db, "alice", "S3cret-pass!", authdomain.RoleMember)

	_, errWrongPassword := uc.Authenticate("alice", "nope", false, authdomain.ClientContext{})
	_, errUnknownUser := uc.Authenticate("nobody", "nope", false, authdomain.ClientContext{})

	if errWrongPassword == nil || errUnknownUser == nil {
		t.Fatal("both attempts must fail")
	}
	if !apperr.IsAuthentication(errWrongPassword) || !apperr.IsAuthentication(errUnknownUser) {
		t.Fatal("both failures must be authentication errors")
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Errorf("messages differ: %q vs %q", errWrongPassword, errUnknownUser)
	}
}

func TestAuthenticateClosesOtherSessionsExceptRememberMe(t *testing.T) {
	uc, db := newTestAuth(t)
	createUser(t, db, "alice", "S3cret-pass!", authdomain.RoleMember)

	plain, err := uc.Authenticate("alice", "S3cret-pass!", false, authdomain.ClientContext{})
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	remembered, err := uc.Authenticate("alice", "S3cret-pass!", true, authdomain.ClientContext{})
	if err != nil {
		t.Fatalf("remember-me login: %v", err)
	}
	latest, err := uc.Authenticate("alice", "S3cret-pass!", false, authdomain.ClientContext{})
	if err != nil {
		t.Fatalf("third login: %v", err)
	}

	if res, _ := uc.ResumeSession(plain.Session.Token); res != nil {
		t.Error("first plain session should have been closed by the later logins")
	}
	if res, _ := uc.ResumeSession(remembered.Session.Token); res == nil {
		t.Error("remember-me session should survive later logins")
	}
	if res, _ := uc.ResumeSession(latest.Session.Token); res == nil {
		t.Error("latest session should be resumable")
	}
}

func TestResumeSessionEmptyToken(t *testing.T) {
	uc, _ := newTestAuth(t)
	res, err := uc.ResumeSession("")
	if err != nil {
		t.Fatalf("ResumeSession: %v", err)
	}
	if res != nil {
		t.Error("empty token must not resolve to a session")
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	uc, db := newTestAuth(t)
	createUser(t, db, "alice", "S3cret-pass!", authdomain.RoleMember)

	result, err := uc.Authenticate("alice", "S3cret-pass!", false, authdomain.ClientContext{})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	token := result.Session.Token

	if err := uc.Logout(token); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	if err := uc.Logout(token); err != nil {
		t.Fatalf("second logout should be a no-op, got: %v", err)
	}
	if err := uc.Logout("never-issued"); err != nil {
		t.Fatalf("logout of unknown token should be a no-op, got: %v", err)
	}

	if res, _ := uc.ResumeSession(token); res != nil {
		t.Error("session should not resume after logout")
	}
}

func TestChangePasswordRejectsWeakPassword(t *testing.T) {
	uc, db := newTestAuth(t)
	user := createUser(t, db, "alice", "S3cret-pass!", authdomain.RoleMember)

	err := uc.ChangePassword(user.ID, "S3cret-pass!", "short1")
	if !apperr.IsValidation(err) {
		t.Fatalf("got %v, want a validation error", err)
	}

	// The stored hash must be untouched after the failed change.
	if _, err := uc.Authenticate("alice", "S3cret-pass!", false, authdomain.ClientContext{}); err != nil {
		t.Errorf("old password no longer works: %v", err)
	}
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	uc, db := newTestAuth(t)
	user := createUser(t, db, "alice", "S3cret-pass!", authdomain.RoleMember)

	err := uc.ChangePassword(user.ID, "guess", "N3w-secret-pass!")
	if !apperr.IsAuthentication(err) {
		t.Fatalf("got %v, want an authentication error", err)
	}
}

func TestChangePasswordClearsResetFlag(t *testing.T) {
	uc, db := newTestAuth(t)
	user := createUser(t, db, "alice", "S3cret-pass!", authdomain.RoleMember)

	users := repository.NewUserRepository(db.DB())
	user.PasswordResetRequired = true
	if err := users.Update(user); err != nil {
		t.Fatalf("flag user: %v", err)
	}

	if err := uc.ChangePassword(user.ID, "S3cret-pass!", "N3w-secret-pass!"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	updated, err := users.FindByID(user.ID)
	if err != nil || updated == nil {
		t.Fatalf("reload user: %v", err)
	}
	if updated.PasswordResetRequired {
		t.Error("reset flag should be cleared by a successful change")
	}
	if _, err := uc.Authenticate("alice", "N3w-secret-pass!", false, authdomain.ClientContext{}); err != nil {
		t.Errorf("new password does not authenticate: %v", err)
	}
}

func TestAdminResetPasswordRequiresPrivilege(t *testing.T) {
	uc, db := newTestAuth(t)
	member := createUser(t, db, "bob", "S3cret-pass!", authdomain.RoleMember)
	target := createUser(t, db, "alice", "S3cret-pass!", authdomain.RoleMember)

	_, err := uc.AdminResetPassword(member.ID, target.ID, "", true)
	if !apperr.IsAuthorization(err) {
		t.Fatalf("got %v, want an authorization error", err)
	}

	// The target must be able to log in with the unchanged password.
	if _, err := uc.Authenticate("alice", "S3cret-pass!", false, authdomain.ClientContext{}); err != nil {
		t.Errorf("target password was mutated by a denied reset: %v", err)
	}
}

func TestAdminResetPasswordGeneratesTemporaryAndClosesSessions(t *testing.T) {
	uc, db := newTestAuth(t)
	admin := createUser(t, db, "root", "S3cret-pass!", authdomain.RoleAdmin)
	createUser(t, db, "alice", "Old-pass-123!", authdomain.RoleMember)

	// Open a remember-me session for the target; a reset must close it too.
	session, err := uc.Authenticate("alice", "Old-pass-123!", true, authdomain.ClientContext{})
	if err != nil {
		t.Fatalf("target login: %v", err)
	}

	users := repository.NewUserRepository(db.DB())
	target, err := users.FindByUsername("alice")
	if err != nil || target == nil {
		t.Fatalf("load target: %v", err)
	}

	plaintext, err := uc.AdminResetPassword(admin.ID, target.ID, "", true)
	if err != nil {
		t.Fatalf("AdminResetPassword: %v", err)
	}
	if len(plaintext) < 12 {
		t.Errorf("temporary password too short: %d characters", len(plaintext))
	}

	if res, _ := uc.ResumeSession(session.Session.Token); res != nil {
		t.Error("remember-me session should be closed by a password reset")
	}

	result, err := uc.Authenticate("alice", plaintext, false, authdomain.ClientContext{})
	if err != nil {
		t.Fatalf("temporary password does not authenticate: %v", err)
	}
	if !result.PasswordChangeRequired {
		t.Error("reset with forceReset must require a password change on next login")
	}
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	uc, db := newTestAuth(t)

	if err := uc.SeedAdmin("root", "Root", "S3cret-pass!"); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := uc.SeedAdmin("root2", "Root Two", "S3cret-pass!"); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	count, err := repository.NewUserRepository(db.DB()).CountByRole(authdomain.RoleAdmin)
	if err != nil {
		t.Fatalf("count admins: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d admins, want 1", count)
	}
}

func TestEnsurePasswordInitialized(t *testing.T) {
	uc, db := newTestAuth(t)

	user := &authdomain.User{Username: "carol", DisplayName: "Carol", Role: authdomain.RoleMember, IsActive: true}
	if err := repository.NewUserRepository(db.DB()).Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	initialized, err := uc.EnsurePasswordInitialized(user, "Default-pass1!")
	if err != nil {
		t.Fatalf("EnsurePasswordInitialized: %v", err)
	}
	if !initialized {
		t.Fatal("blank hash should be initialized")
	}

	result, err := uc.Authenticate("carol", "Default-pass1!", false, authdomain.ClientContext{})
	if err != nil {
		t.Fatalf("default password does not authenticate: %v", err)
	}
	if !result.PasswordChangeRequired {
		t.Error("initialized accounts must be forced to change the default password")
	}

	again, err := uc.EnsurePasswordInitialized(result.User, "Default-pass1!")
	if err != nil {
		t.Fatalf("second EnsurePasswordInitialized: %v", err)
	}
	if again {
		t.Error("an account with a hash must not be re-initialized")
	}
}
