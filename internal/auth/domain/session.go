package domain

import "time"

// ClientContext identifies where a request came from. It is stamped onto
// sessions and audit rows.
type ClientContext struct {
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Session is one login. The token is an opaque server-side bearer
// credential; a new login always creates a new row, terminal sessions are
// never reused.
type Session struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	UserID       string     `json:"user_id" gorm:"index;not null"`
	User         *User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Token        string     `json:"-" gorm:"uniqueIndex;not null"`
	RememberMe   bool       `json:"remember_me" gorm:"default:false"`
	IPAddress    string     `json:"ip_address,omitempty"`
	UserAgent    string     `json:"user_agent,omitempty"`
	LoginAt      time.Time  `json:"login_at"`
	LastActivity time.Time  `json:"last_activity"`
	LogoutAt     *time.Time `json:"logout_at,omitempty"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
}
