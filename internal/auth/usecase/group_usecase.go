package usecase

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	authdomain "taskboard-backend/internal/auth/domain"
	"taskboard-backend/internal/auth/repository"
	"taskboard-backend/pkg/apperr"
	"taskboard-backend/pkg/database"
)

// GroupUsecase manages user groups for collective task assignment. Mutations
// require an admin or manager actor.
type GroupUsecase interface {
	CreateGroup(actorID, name, color string) (*authdomain.Group, error)
	GetGroups() ([]*authdomain.Group, error)
	GetGroup(id string) (*authdomain.Group, error)
	AddMember(actorID, groupID, userID string) error
	RemoveMember(actorID, groupID, userID string) error
	DeactivateGroup(actorID, groupID string) error
}

// groupUsecase implements GroupUsecase
type groupUsecase struct {
	db  *database.Manager
	log *logrus.Logger
}

// NewGroupUsecase creates a new instance of groupUsecase
func NewGroupUsecase(db *database.Manager, log *logrus.Logger) GroupUsecase {
	return &groupUsecase{db: db, log: log}
}

// requireManager resolves the actor and rejects anyone below manager.
func requireManager(tx *gorm.DB, actorID string) (*authdomain.User, error) {
	actor, err := repository.NewUserRepository(tx).FindByID(actorID)
	if err != nil {
		return nil, apperr.Store("look up acting user", err)
	}
	if actor == nil {
		return nil, apperr.NotFound("acting user not found")
	}
	if !actor.Role.CanManageUsers() {
		return nil, apperr.Authorization("only admins and managers may manage groups")
	}
	return actor, nil
}

func (u *groupUsecase) CreateGroup(actorID, name, color string) (*authdomain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("group name is required")
	}

	var group *authdomain.Group
	err := u.db.Transaction(func(tx *gorm.DB) error {
		if _, err := requireManager(tx, actorID); err != nil {
			return err
		}

		group = &authdomain.Group{Name: name, Color: color, IsActive: true}
		if err := repository.NewGroupRepository(tx).Create(group); err != nil {
			return apperr.Store("create group", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (u *groupUsecase) GetGroups() ([]*authdomain.Group, error) {
	groups, err := repository.NewGroupRepository(u.db.Session()).FindActive()
	if err != nil {
		return nil, apperr.Store("list groups", err)
	}
	return groups, nil
}

// GetGroup returns the group with members loaded, or (nil, nil) when it does
// not exist.
func (u *groupUsecase) GetGroup(id string) (*authdomain.Group, error) {
	group, err := repository.NewGroupRepository(u.db.Session()).FindByID(id)
	if err != nil {
		return nil, apperr.Store("look up group", err)
	}
	return group, nil
}

func (u *groupUsecase) AddMember(actorID, groupID, userID string) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		if _, err := requireManager(tx, actorID); err != nil {
			return err
		}

		groups := repository.NewGroupRepository(tx)
		group, err := groups.FindByID(groupID)
		if err != nil {
			return apperr.Store("look up group", err)
		}
		if group == nil || !group.IsActive {
			return apperr.NotFound("group not found")
		}

		user, err := repository.NewUserRepository(tx).FindByID(userID)
		if err != nil {
			return apperr.Store("look up user", err)
		}
		if user == nil {
			return apperr.NotFound("user not found")
		}

		for _, m := range group.Members {
			if m.UserID == userID {
				return apperr.Validation("user is already a member of this group")
			}
		}

		if err := groups.AddMember(&authdomain.GroupMember{GroupID: group.ID, UserID: user.ID}); err != nil {
			return apperr.Store("add group member", err)
		}
		return nil
	})
}

func (u *groupUsecase) RemoveMember(actorID, groupID, userID string) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		if _, err := requireManager(tx, actorID); err != nil {
			return err
		}
		if err := repository.NewGroupRepository(tx).RemoveMember(groupID, userID); err != nil {
			return apperr.Store("remove group member", err)
		}
		return nil
	})
}

func (u *groupUsecase) DeactivateGroup(actorID, groupID string) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		if _, err := requireManager(tx, actorID); err != nil {
			return err
		}

		groups := repository.NewGroupRepository(tx)
		group, err := groups.FindByID(groupID)
		if err != nil {
			return apperr.Store("look up group", err)
		}
		if group == nil {
			return apperr.NotFound("group not found")
		}
		return groups.Deactivate(groupID)
	})
}
