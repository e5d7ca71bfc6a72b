package usecase

import (
	"strings"

	"gorm.io/gorm"

	boarddomain "taskboard-backend/internal/board/domain"
	"taskboard-backend/internal/board/repository"
	"taskboard-backend/pkg/apperr"
)

// defaultColumns is the board layout seeded on first start.
var defaultColumns = []boarddomain.Column{
	{Name: "Backlog", Position: 1},
	{Name: boarddomain.ColumnInProgress, Position: 2, WIPLimit: 5},
	{Name: "Review", Position: 3},
	{Name: boarddomain.ColumnDone, Position: 4},
}

// EnsureDefaultColumns seeds the default board when no active columns exist
// yet. Safe to call on every start.
func (s *Service) EnsureDefaultColumns() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		columns := repository.NewColumnRepository(tx)

		existing, err := columns.FindActive()
		if err != nil {
			return apperr.Store("list columns", err)
		}
		if len(existing) > 0 {
			return nil
		}

		for i := range defaultColumns {
			col := defaultColumns[i]
			if err := columns.Create(&col); err != nil {
				return apperr.Store("seed column", err)
			}
		}
		return nil
	})
}

// GetAllColumns lists active columns in board order.
func (m *Manager) GetAllColumns() ([]*boarddomain.Column, error) {
	columns, err := repository.NewColumnRepository(m.svc.db.Session()).FindActive()
	if err != nil {
		return nil, apperr.Store("list columns", err)
	}
	return columns, nil
}

// GetColumnByName resolves an active column by its display name, or
// (nil, nil) when no active column carries it.
func (m *Manager) GetColumnByName(name string) (*boarddomain.Column, error) {
	column, err := repository.NewColumnRepository(m.svc.db.Session()).FindActiveByName(name)
	if err != nil {
		return nil, apperr.Store("look up column", err)
	}
	return column, nil
}

// CreateColumn adds a stage to the board. Active column names are unique;
// names of deactivated columns may be reused.
func (m *Manager) CreateColumn(name string, position, wipLimit int) (*boarddomain.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("column name is required")
	}

	var column *boarddomain.Column
	err := m.svc.db.Transaction(func(tx *gorm.DB) error {
		columns := repository.NewColumnRepository(tx)

		existing, err := columns.FindActiveByName(name)
		if err != nil {
			return apperr.Store("look up column", err)
		}
		if existing != nil {
			return apperr.Validation("an active column with this name already exists")
		}

		column = &boarddomain.Column{
			Name:     name,
			Position: position,
			WIPLimit: wipLimit,
			IsActive: true,
		}
		return columns.Create(column)
	})
	if err != nil {
		return nil, err
	}
	return column, nil
}

// UpdateColumnInput is a patch for a column; nil fields are untouched.
type UpdateColumnInput struct {
	Name     *string
	Position *int
	WIPLimit *int
}

// UpdateColumn renames or reorders a column, keeping active names unique.
func (m *Manager) UpdateColumn(id string, input UpdateColumnInput) (*boarddomain.Column, error) {
	var column *boarddomain.Column

	err := m.svc.db.Transaction(func(tx *gorm.DB) error {
		columns := repository.NewColumnRepository(tx)

		var err error
		column, err = columns.FindByID(id)
		if err != nil {
			return apperr.Store("look up column", err)
		}
		if column == nil || !column.IsActive {
			return apperr.NotFound("column not found")
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return apperr.Validation("column name is required")
			}
			if name != column.Name {
				existing, err := columns.FindActiveByName(name)
				if err != nil {
					return apperr.Store("look up column", err)
				}
				if existing != nil {
					return apperr.Validation("an active column with this name already exists")
				}
				column.Name = name
			}
		}
		if input.Position != nil {
			column.Position = *input.Position
		}
		if input.WIPLimit != nil {
			column.WIPLimit = *input.WIPLimit
		}

		return columns.Update(column)
	})
	if err != nil {
		return nil, err
	}
	return column, nil
}

// DeactivateColumn retires a column. Its name becomes reusable; tasks still
// pointing at it keep their reference.
func (m *Manager) DeactivateColumn(id string) error {
	return m.svc.db.Transaction(func(tx *gorm.DB) error {
		columns := repository.NewColumnRepository(tx)

		column, err := columns.FindByID(id)
		if err != nil {
			return apperr.Store("look up column", err)
		}
		if column == nil {
			return apperr.NotFound("column not found")
		}
		return columns.Deactivate(id)
	})
}
