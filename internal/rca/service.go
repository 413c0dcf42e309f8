package rca

import (
	"log/slog"
	"time"

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

func (s *Service) CreateRCA(actor *auth.Actor, dto CreateRCADTO) (*RCA, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("rca validation failed", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	assignedTo := actor.ID
	if dto.AssignedTo != nil {
		assignedTo = *dto.AssignedTo
	}
	if assignedTo != actor.ID {
		if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionAssign, rbac.RecordResource(rbac.KindRCA)) {
			return nil, ErrAssignDenied
		}
	}

	status := dto.Status
	if status == "" {
		status = StatusDraft
	}

	now := time.Now()
	r := &RCA{
		IncidentID:        dto.IncidentID,
		RootCause:         dto.RootCause,
		CorrectiveActions: dto.CorrectiveActions,
		PreventiveActions: dto.PreventiveActions,
		Status:            status,
		AssignedTo:        assignedTo,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(r); err != nil {
		s.logger.Warn("failed to create rca", "error", err, "incident_id", dto.IncidentID, "actor_id", actor.ID)
		return nil, err
	}

	s.logger.Info("rca created", "rca_id", r.ID, "incident_id", r.IncidentID, "assigned_to", r.AssignedTo)
	return r, nil
}

func (s *Service) GetRCA(actor *auth.Actor, id int64) (*RCA, error) {
	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrRCANotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionView, rbac.RecordResource(rbac.KindRCA, r.OwnerIDs()...)) {
		return nil, ErrRCAViewDenied
	}

	return r, nil
}

// GetRCAByIncident resolves the single rca attached to an incident.
func (s *Service) GetRCAByIncident(actor *auth.Actor, incidentID int64) (*RCA, error) {
	r, err := s.repo.GetByIncident(incidentID)
	if err != nil {
		return nil, err
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionView, rbac.RecordResource(rbac.KindRCA, r.OwnerIDs()...)) {
		return nil, ErrRCAViewDenied
	}

	return r, nil
}

func (s *Service) ListRCAs(actor *auth.Actor, f ListFilters) ([]*RCA, error) {
	rcas, err := s.repo.List(actor.Scope(), f)
	if err != nil {
		s.logger.Error("failed to list rcas", "error", err, "actor_id", actor.ID)
		return nil, err
	}
	return rcas, nil
}

func (s *Service) UpdateRCA(actor *auth.Actor, id int64, dto UpdateRCADTO) (*RCA, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrRCANotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionUpdate, rbac.RecordResource(rbac.KindRCA, r.OwnerIDs()...)) {
		return nil, ErrRCAEditDenied
	}

	if dto.RootCause != nil {
		r.RootCause = *dto.RootCause
	}
	if dto.CorrectiveActions != nil {
		r.CorrectiveActions = *dto.CorrectiveActions
	}
	if dto.PreventiveActions != nil {
		r.PreventiveActions = *dto.PreventiveActions
	}
	if dto.Status != nil {
		r.Status = *dto.Status
	}
	if dto.AssignedTo != nil && *dto.AssignedTo != r.AssignedTo {
		if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionAssign, rbac.RecordResource(rbac.KindRCA)) {
			return nil, ErrAssignDenied
		}
		r.AssignedTo = *dto.AssignedTo
	}
	r.UpdatedAt = time.Now()

	if err := s.repo.Update(r); err != nil {
		s.logger.Error("failed to update rca", "error", err, "rca_id", id)
		return nil, err
	}

	s.logger.Info("rca updated", "rca_id", id, "actor_id", actor.ID, "status", r.Status)
	return r, nil
}

func (s *Service) DeleteRCA(actor *auth.Actor, id int64) error {
	r, err := s.repo.GetByID(id)
	if err != nil {
		return ErrRCANotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionDelete, rbac.RecordResource(rbac.KindRCA, r.OwnerIDs()...)) {
		return ErrRCAEditDenied
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete rca", "error", err, "rca_id", id)
		return err
	}

	s.logger.Info("rca deleted", "rca_id", id, "actor_id", actor.ID)
	return nil
}
