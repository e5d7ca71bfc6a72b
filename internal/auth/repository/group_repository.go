package repository

import (
	"errors"
	"time"

	authdomain "taskboard-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// groupRepository implements GroupRepository using GORM
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new instance of groupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(group *authdomain.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	group.CreatedAt = time.Now()
	group.UpdatedAt = time.Now()
	return r.db.Create(group).Error
}

func (r *groupRepository) FindByID(id string) (*authdomain.Group, error) {
	var group authdomain.Group
	err := r.db.Preload("Members").Where("id = ?", id).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) FindActive() ([]*authdomain.Group, error) {
	var groups []*authdomain.Group
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *groupRepository) Update(group *authdomain.Group) error {
	group.UpdatedAt = time.Now()
	return r.db.Save(group).Error
}

func (r *groupRepository) Deactivate(id string) error {
	return r.db.Model(&authdomain.Group{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

func (r *groupRepository) AddMember(member *authdomain.GroupMember) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	member.CreatedAt = time.Now()
	return r.db.Create(member).Error
}

func (r *groupRepository) RemoveMember(groupID, userID string) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&authdomain.GroupMember{}).Error
}
