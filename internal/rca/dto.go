package rca

import "github.com/arifwid/opstrack/internal"

type CreateRCADTO struct {
	IncidentID        int64  `json:"incident_id"`
	RootCause         string `json:"root_cause"`
	CorrectiveActions string `json:"corrective_actions,omitempty"`
	PreventiveActions string `json:"preventive_actions,omitempty"`
	Status            string `json:"status,omitempty"`
	AssignedTo        *int64 `json:"assigned_to,omitempty"`
}

func (dto CreateRCADTO) Validate() error {
	if dto.IncidentID == 0 {
		return internal.NewValidationError("incident_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.RootCause == "" {
		return internal.NewValidationError("root_cause is required", internal.ErrCodeValidationFailed)
	}
	if dto.Status != "" && !ValidStatus(dto.Status) {
		return internal.NewValidationError("status must be one of draft, under_review, approved, implemented", internal.ErrCodeInvalidEnum)
	}
	return nil
}

type UpdateRCADTO struct {
	RootCause         *string `json:"root_cause,omitempty"`
	CorrectiveActions *string `json:"corrective_actions,omitempty"`
	PreventiveActions *string `json:"preventive_actions,omitempty"`
	Status            *string `json:"status,omitempty"`
	AssignedTo        *int64  `json:"assigned_to,omitempty"`
}

func (dto UpdateRCADTO) Validate() error {
	if dto.RootCause != nil && *dto.RootCause == "" {
		return internal.NewValidationError("root_cause cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Status != nil && !ValidStatus(*dto.Status) {
		return internal.NewValidationError("status must be one of draft, under_review, approved, implemented", internal.ErrCodeInvalidEnum)
	}
	return nil
}
