package repository

import authdomain "taskboard-backend/internal/auth/domain"

// UserRepository defines the interface for user persistence. Find methods
// return (nil, nil) when no row matches.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByID(id string) (*authdomain.User, error)
	FindByUsername(username string) (*authdomain.User, error)
	FindActiveByUsername(username string) (*authdomain.User, error)
	Update(user *authdomain.User) error
	Deactivate(id string) error
	CountByRole(role authdomain.Role) (int64, error)
}

// SessionRepository defines the interface for session persistence.
type SessionRepository interface {
	Create(session *authdomain.Session) error
	FindActiveByToken(token string) (*authdomain.Session, error)
	Update(session *authdomain.Session) error
	TouchActivity(token string) error
	DeactivateNonRememberMe(userID string) error
	DeactivateAllForUser(userID string) error
}

// GroupRepository defines the interface for group persistence.
type GroupRepository interface {
	Create(group *authdomain.Group) error
	FindByID(id string) (*authdomain.Group, error)
	FindActive() ([]*authdomain.Group, error)
	Update(group *authdomain.Group) error
	Deactivate(id string) error
	AddMember(member *authdomain.GroupMember) error
	RemoveMember(groupID, userID string) error
}
