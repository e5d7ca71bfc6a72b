package domain

import "time"

// Column names that carry behavior on the board. A task entering
// ColumnInProgress gets its start timestamp stamped on first arrival; a task
// entering ColumnDone gets its completion timestamp, flips to completed and
// is exempt from overdue classification.
const (
	ColumnInProgress = "In Progress"
	ColumnDone       = "Done"
)

// Column is a named stage on the board. At most one *active* column may
// carry a given name; deactivated columns may leave their name free for
// reuse.
type Column struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Position  int       `json:"position" gorm:"not null;default:0"`
	WIPLimit  int       `json:"wip_limit" gorm:"default:0"` // 0 means unlimited
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
