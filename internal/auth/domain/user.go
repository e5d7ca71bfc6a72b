package domain

import "time"

// Role controls what a user may do. Admins and managers may administer
// other accounts; members work the board; viewers are read-only.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
	RoleViewer  Role = "viewer"
)

func (r Role) CanManageUsers() bool {
	return r == RoleAdmin || r == RoleManager
}

type User struct {
	ID                    string    `json:"id" gorm:"primaryKey"`
	Username              string    `json:"username" gorm:"uniqueIndex;not null"`
	DisplayName           string    `json:"display_name" gorm:"not null"`
	Role                  Role      `json:"role" gorm:"default:member"`
	PasswordHash          string    `json:"-"` // Never return the hash in JSON
	PasswordResetRequired bool      `json:"password_reset_required" gorm:"default:false"`
	IsActive              bool      `json:"is_active" gorm:"default:true"`
	Preferences           string    `json:"preferences,omitempty" gorm:"type:text"` // free-form JSON
	CreatedBy             string    `json:"created_by,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
