package dto

import (
	"github.com/go-playground/validator/v10"

	boarddomain "taskboard-backend/internal/board/domain"
)

// RegisterValidators installs the board's enum validations on gin's
// validator engine.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("taskpriority", func(fl validator.FieldLevel) bool {
		switch boarddomain.Priority(fl.Field().String()) {
		case boarddomain.PriorityLow, boarddomain.PriorityMedium,
			boarddomain.PriorityHigh, boarddomain.PriorityCritical:
			return true
		}
		return false
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
		switch boarddomain.TaskStatus(fl.Field().String()) {
		case boarddomain.TaskStatusActive, boarddomain.TaskStatusBlocked,
			boarddomain.TaskStatusCompleted, boarddomain.TaskStatusArchived:
			return true
		}
		return false
	}); err != nil {
		return err
	}

	return v.RegisterValidation("dependencytype", func(fl validator.FieldLevel) bool {
		switch boarddomain.DependencyType(fl.Field().String()) {
		case boarddomain.DependencyBlocks, boarddomain.DependencyRelatesTo,
			boarddomain.DependencyDuplicateOf:
			return true
		}
		return false
	})
}
