package deployment

import "github.com/arifwid/opstrack/internal"

type CreateDeploymentDTO struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Status         string `json:"status,omitempty"`
	DeploymentDate string `json:"deployment_date,omitempty"`
	BackupLocation string `json:"backup_location,omitempty"`
	Environment    string `json:"environment,omitempty"`
	Version        string `json:"version,omitempty"`
}

func (dto CreateDeploymentDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Status != "" && !ValidStatus(dto.Status) {
		return internal.NewValidationError("status must be one of pending, successful, failed", internal.ErrCodeInvalidEnum)
	}
	if dto.DeploymentDate != "" {
		if _, err := internal.ParseDate("deployment_date", dto.DeploymentDate); err != nil {
			return err
		}
	}
	return nil
}

type UpdateDeploymentDTO struct {
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	Status         *string `json:"status,omitempty"`
	DeploymentDate *string `json:"deployment_date,omitempty"`
	BackupLocation *string `json:"backup_location,omitempty"`
	Environment    *string `json:"environment,omitempty"`
	Version        *string `json:"version,omitempty"`
}

func (dto UpdateDeploymentDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationError("name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Status != nil && !ValidStatus(*dto.Status) {
		return internal.NewValidationError("status must be one of pending, successful, failed", internal.ErrCodeInvalidEnum)
	}
	if dto.DeploymentDate != nil && *dto.DeploymentDate != "" {
		if _, err := internal.ParseDate("deployment_date", *dto.DeploymentDate); err != nil {
			return err
		}
	}
	return nil
}
