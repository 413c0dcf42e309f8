package user

import (
	"github.com/arifwid/opstrack/internal"
	"github.com/arifwid/opstrack/internal/rbac"
)

const minPasswordLength = 8

type CreateUserDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (dto CreateUserDTO) Validate() error {
	if dto.Username == "" {
		return internal.NewValidationError("username is required", internal.ErrCodeValidationFailed)
	}
	if dto.Email == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Password) < minPasswordLength {
		return internal.NewValidationError("password must be at least 8 characters", internal.ErrCodePasswordTooShort)
	}
	if _, err := rbac.ParseRole(dto.Role); err != nil {
		return err
	}
	return nil
}

type UpdateUserDTO struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Email != nil && *dto.Email == "" {
		return internal.NewValidationError("email cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Password != nil && len(*dto.Password) < minPasswordLength {
		return internal.NewValidationError("password must be at least 8 characters", internal.ErrCodePasswordTooShort)
	}
	if dto.Role != nil {
		if _, err := rbac.ParseRole(*dto.Role); err != nil {
			return err
		}
	}
	return nil
}
