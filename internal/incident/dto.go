package incident

import "github.com/arifwid/opstrack/internal"

type CreateIncidentDTO struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Severity     string `json:"severity"`
	IncidentDate string `json:"incident_date,omitempty"`
	AssignedTo   *int64 `json:"assigned_to,omitempty"`
}

func (dto CreateIncidentDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Description == "" {
		return internal.NewValidationError("description is required", internal.ErrCodeValidationFailed)
	}
	if !ValidSeverity(dto.Severity) {
		return internal.NewValidationError("severity must be one of low, medium, high, critical", internal.ErrCodeInvalidEnum)
	}
	if dto.IncidentDate != "" {
		if _, err := internal.ParseDate("incident_date", dto.IncidentDate); err != nil {
			return err
		}
	}
	return nil
}

type UpdateIncidentDTO struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Severity     *string `json:"severity,omitempty"`
	Status       *string `json:"status,omitempty"`
	IncidentDate *string `json:"incident_date,omitempty"`
	AssignedTo   *int64  `json:"assigned_to,omitempty"`
}

func (dto UpdateIncidentDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationError("name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Severity != nil && !ValidSeverity(*dto.Severity) {
		return internal.NewValidationError("severity must be one of low, medium, high, critical", internal.ErrCodeInvalidEnum)
	}
	if dto.Status != nil && !ValidStatus(*dto.Status) {
		return internal.NewValidationError("status must be one of open, investigating, resolved, closed", internal.ErrCodeInvalidEnum)
	}
	if dto.IncidentDate != nil && *dto.IncidentDate != "" {
		if _, err := internal.ParseDate("incident_date", *dto.IncidentDate); err != nil {
			return err
		}
	}
	return nil
}
