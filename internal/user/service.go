package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/arifwid/opstrack/internal/auth"
	"github.com/arifwid/opstrack/internal/core/events"
	"github.com/arifwid/opstrack/internal/rbac"
)

// PasswordHasher abstracts bcrypt so the auth service owns the cost setting.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	bus    events.Publisher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, bus events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		bus:    bus,
		logger: logger,
	}
}

// CreateUser creates a user with the role-creation matrix applied: the actor
// must be permitted to create the requested role.
func (s *Service) CreateUser(actor *auth.Actor, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("user validation failed", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	role, _ := rbac.ParseRole(dto.Role)
	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionCreate, rbac.UserResource(0, role)) {
		s.logger.Warn("user creation denied",
			"actor_id", actor.ID,
			"actor_role", actor.Role,
			"requested_role", role)
		return nil, ErrRoleDenied
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    &actor.ID,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, err
	}

	if s.bus != nil {
		_ = s.bus.Publish(context.Background(), events.NewUserCreatedEvent(u.ID, u.Username, string(u.Role), actor.ID))
	}

	s.logger.Info("user created", "user_id", u.ID, "role", u.Role, "created_by", actor.ID)
	return u, nil
}

func (s *Service) GetUser(actor *auth.Actor, id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionView, rbac.UserResource(u.ID, u.Role)) {
		return nil, ErrViewDenied
	}

	return u, nil
}

func (s *Service) ListUsers(actor *auth.Actor) ([]*User, error) {
	if !actor.Role.CanManageRecords() {
		return nil, ErrListDenied
	}
	return s.repo.List()
}

// UpdateUser applies a partial update. Role changes are only allowed when the
// actor could create the new role and the target is neither themselves nor a
// super admin.
func (s *Service) UpdateUser(actor *auth.Actor, id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionUpdate, rbac.UserResource(u.ID, u.Role)) {
		return nil, ErrEditDenied
	}

	if dto.Email != nil {
		u.Email = *dto.Email
	}

	if dto.Password != nil {
		hash, err := s.hasher.HashPassword(*dto.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if dto.Role != nil {
		newRole, _ := rbac.ParseRole(*dto.Role)
		if newRole != u.Role {
			if u.Role == rbac.RoleSuperAdmin || u.ID == actor.ID {
				return nil, ErrProtected
			}
			if !rbac.CanCreateRole(actor.Role, newRole) {
				return nil, ErrRoleDenied
			}
			u.Role = newRole
		}
	}

	u.UpdatedAt = time.Now()
	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	return u, nil
}

// DeactivateUser soft-deletes a user. Super admin accounts and the actor's own
// account are protected.
func (s *Service) DeactivateUser(actor *auth.Actor, id int64) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return ErrUserNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionDelete, rbac.UserResource(u.ID, u.Role)) {
		return ErrProtected
	}

	if err := s.repo.Deactivate(id); err != nil {
		s.logger.Error("failed to deactivate user", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("user deactivated", "user_id", id, "actor_id", actor.ID)
	return nil
}

// EnsureSuperAdmin bootstraps the first super admin account if none exists.
// Called once at seed time; a no-op afterwards.
func (s *Service) EnsureSuperAdmin(username, email, password string) (*User, error) {
	count, err := s.repo.CountByRole(rbac.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         rbac.RoleSuperAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(u); err != nil {
		return nil, err
	}

	s.logger.Info("bootstrapped super admin", "user_id", u.ID, "username", username)
	return u, nil
}
