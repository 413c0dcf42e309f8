package task

import (
	"github.com/arifwid/opstrack/internal"
)

type CreateTaskDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date,omitempty"`
	AssignedTo  *int64 `json:"assigned_to,omitempty"`
}

func (dto CreateTaskDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Name) > 200 {
		return internal.NewValidationError("name must be at most 200 characters", internal.ErrCodeValidationFailed)
	}
	if !ValidPriority(dto.Priority) {
		return internal.NewValidationError("priority must be one of low, medium, high, critical", internal.ErrCodeInvalidEnum)
	}
	if dto.DueDate != "" {
		if _, err := internal.ParseDate("due_date", dto.DueDate); err != nil {
			return err
		}
	}
	return nil
}

type UpdateTaskDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	AssignedTo  *int64  `json:"assigned_to,omitempty"`
}

func (dto UpdateTaskDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationError("name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Priority != nil && !ValidPriority(*dto.Priority) {
		return internal.NewValidationError("priority must be one of low, medium, high, critical", internal.ErrCodeInvalidEnum)
	}
	if dto.Status != nil && !ValidStatus(*dto.Status) {
		return internal.NewValidationError("status must be one of pending, in_progress, completed, overdue", internal.ErrCodeInvalidEnum)
	}
	if dto.DueDate != nil && *dto.DueDate != "" {
		if _, err := internal.ParseDate("due_date", *dto.DueDate); err != nil {
			return err
		}
	}
	return nil
}
