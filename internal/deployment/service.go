package deployment

import (
	"log/slog"
	"time"

	"github.com/arifwid/opstrack/internal"
	"github.com/arifwid/opstrack/internal/auth"
	"github.com/arifwid/opstrack/internal/rbac"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateDeployment(actor *auth.Actor, dto CreateDeploymentDTO) (*Deployment, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("deployment validation failed", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	now := time.Now()
	deploymentDate := now
	if dto.DeploymentDate != "" {
		d, err := internal.ParseDate("deployment_date", dto.DeploymentDate)
		if err != nil {
			return nil, err
		}
		deploymentDate = d
	}

	status := dto.Status
	if status == "" {
		status = StatusPending
	}

	d := &Deployment{
		Name:           dto.Name,
		Description:    dto.Description,
		Status:         status,
		DeploymentDate: deploymentDate,
		BackupLocation: dto.BackupLocation,
		Environment:    dto.Environment,
		Version:        dto.Version,
		DeployedBy:     actor.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(d); err != nil {
		s.logger.Error("failed to create deployment", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	s.logger.Info("deployment created", "deployment_id", d.ID, "deployed_by", actor.ID, "environment", d.Environment)
	return d, nil
}

func (s *Service) GetDeployment(actor *auth.Actor, id int64) (*Deployment, error) {
	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrDeploymentNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionView, rbac.RecordResource(rbac.KindDeployment, d.OwnerIDs()...)) {
		return nil, ErrDeploymentViewDenied
	}

	return d, nil
}

func (s *Service) ListDeployments(actor *auth.Actor, f ListFilters) ([]*Deployment, error) {
	deployments, err := s.repo.List(actor.Scope(), f)
	if err != nil {
		s.logger.Error("failed to list deployments", "error", err, "actor_id", actor.ID)
		return nil, err
	}
	return deployments, nil
}

func (s *Service) UpdateDeployment(actor *auth.Actor, id int64, dto UpdateDeploymentDTO) (*Deployment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrDeploymentNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionUpdate, rbac.RecordResource(rbac.KindDeployment, d.OwnerIDs()...)) {
		return nil, ErrDeploymentEditDenied
	}

	if dto.Name != nil {
		d.Name = *dto.Name
	}
	if dto.Description != nil {
		d.Description = *dto.Description
	}
	if dto.Status != nil {
		d.Status = *dto.Status
	}
	if dto.BackupLocation != nil {
		d.BackupLocation = *dto.BackupLocation
	}
	if dto.Environment != nil {
		d.Environment = *dto.Environment
	}
	if dto.Version != nil {
		d.Version = *dto.Version
	}
	if dto.DeploymentDate != nil && *dto.DeploymentDate != "" {
		date, err := internal.ParseDate("deployment_date", *dto.DeploymentDate)
		if err != nil {
			return nil, err
		}
		d.DeploymentDate = date
	}
	d.UpdatedAt = time.Now()

	if err := s.repo.Update(d); err != nil {
		s.logger.Error("failed to update deployment", "error", err, "deployment_id", id)
		return nil, err
	}

	s.logger.Info("deployment updated", "deployment_id", id, "actor_id", actor.ID, "status", d.Status)
	return d, nil
}

func (s *Service) DeleteDeployment(actor *auth.Actor, id int64) error {
	d, err := s.repo.GetByID(id)
	if err != nil {
		return ErrDeploymentNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionDelete, rbac.RecordResource(rbac.KindDeployment, d.OwnerIDs()...)) {
		return ErrDeploymentEditDenied
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete deployment", "error", err, "deployment_id", id)
		return err
	}

	s.logger.Info("deployment deleted", "deployment_id", id, "actor_id", actor.ID)
	return nil
}
