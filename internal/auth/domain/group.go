package domain

import "time"

// Group is a named collection of users used for collective task assignment.
type Group struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Color     string    `json:"color,omitempty"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Members []GroupMember `json:"members,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// GroupMember joins users to groups, unique per pair.
type GroupMember struct {
	ID      string `json:"id" gorm:"primaryKey"`
	GroupID string `json:"group_id" gorm:"uniqueIndex:idx_group_user;not null"`
	UserID  string `json:"user_id" gorm:"uniqueIndex:idx_group_user;not null"`
	User    *User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}
