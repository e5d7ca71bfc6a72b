package usecase

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	authdomain "taskboard-backend/internal/auth/domain"
	"taskboard-backend/pkg/apperr"
	"taskboard-backend/pkg/config"
	"taskboard-backend/pkg/database"
)

func newTestGroups(t *testing.T) (GroupUsecase, *database.Manager) {
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
		&authdomain.User{}, &authdomain.Group{}, &authdomain.GroupMember{},
	); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	return NewGroupUsecase(db, log), db
}

func TestCreateGroupRequiresManagerRole(t *testing.T) {
	uc, db := newTestGroups(t)
	member := createUser(t, db, "bob", "S3cret-pass!", authdomain.RoleMember)
	manager := createUser(t, db, "meg", "S3cret-pass!", authdomain.RoleManager)

	if _, err := uc.CreateGroup(member.ID, "Platform", ""); !apperr.IsAuthorization(err) {
		t.Errorf("member actor: got %v, want an authorization error", err)
	}
	if _, err := uc.CreateGroup(manager.ID, "   ", ""); !apperr.IsValidation(err) {
		t.Errorf("blank name: got %v, want a validation error", err)
	}

	group, err := uc.CreateGroup(manager.ID, "Platform", "#00ff00")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if !group.IsActive || group.Name != "Platform" {
		t.Errorf("got %+v", group)
	}
}

func TestGroupMembership(t *testing.T) {
	uc, db := newTestGroups(t)
	admin := createUser(t, db, "root", "S3cret-pass!", authdomain.RoleAdmin)
	alice := createUser(t, db, "alice", "S3cret-pass!", authdomain.RoleMember)

	group, err := uc.CreateGroup(admin.ID, "Platform", "")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	if err := uc.AddMember(admin.ID, group.ID, alice.ID); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if err := uc.AddMember(admin.ID, group.ID, alice.ID); !apperr.IsValidation(err) {
		t.Errorf("duplicate membership: got %v, want a validation error", err)
	}
	if err := uc.AddMember(admin.ID, group.ID, "no-such-user"); !apperr.IsNotFound(err) {
		t.Errorf("unknown user: got %v, want a not-found error", err)
	}
	if err := uc.AddMember(alice.ID, group.ID, admin.ID); !apperr.IsAuthorization(err) {
		t.Errorf("member actor: got %v, want an authorization error", err)
	}

	loaded, err := uc.GetGroup(group.ID)
	if err != nil || loaded == nil {
		t.Fatalf("GetGroup: %v", err)
	}
	if len(loaded.Members) != 1 || loaded.Members[0].UserID != alice.ID {
		t.Errorf("members = %+v", loaded.Members)
	}

	if err := uc.RemoveMember(admin.ID, group.ID, alice.ID); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	loaded, err = uc.GetGroup(group.ID)
	if err != nil || loaded == nil {
		t.Fatalf("GetGroup: %v", err)
	}
	if len(loaded.Members) != 0 {
		t.Errorf("membership not removed: %+v", loaded.Members)
	}
}

func TestDeactivateGroupHidesItFromListing(t *testing.T) {
	uc, db := newTestGroups(t)
	admin := createUser(t, db, "root", "S3cret-pass!", authdomain.RoleAdmin)

	group, err := uc.CreateGroup(admin.ID, "Platform", "")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if err := uc.DeactivateGroup(admin.ID, group.ID); err != nil {
		t.Fatalf("DeactivateGroup: %v", err)
	}

	groups, err := uc.GetGroups()
	if err != nil {
		t.Fatalf("GetGroups: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("deactivated group still listed, got %d", len(groups))
	}

	if err := uc.DeactivateGroup(admin.ID, "no-such-group"); !apperr.IsNotFound(err) {
		t.Errorf("got %v, want a not-found error", err)
	}
}
