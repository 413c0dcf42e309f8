package incident

import (
	"context"
	"log/slog"
	"time"

	"github.com/arifwid/opstrack/internal"
	"github.com/arifwid/opstrack/internal/auth"
	"github.com/arifwid/opstrack/internal/core/events"
	"github.com/arifwid/opstrack/internal/rbac"
)

type Service struct {
	repo   Repository
	bus    events.Publisher
	logger *slog.Logger
}

func NewService(repo Repository, bus events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

func (s *Service) CreateIncident(actor *auth.Actor, dto CreateIncidentDTO) (*Incident, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("incident validation failed", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	if dto.AssignedTo != nil && *dto.AssignedTo != actor.ID {
		if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionAssign, rbac.RecordResource(rbac.KindIncident)) {
			return nil, ErrAssignDenied
		}
	}

	now := time.Now()
	incidentDate := now
	if dto.IncidentDate != "" {
		d, err := internal.ParseDate("incident_date", dto.IncidentDate)
		if err != nil {
			return nil, err
		}
		incidentDate = d
	}

	inc := &Incident{
		Name:         dto.Name,
		Description:  dto.Description,
		Severity:     dto.Severity,
		Status:       StatusOpen,
		IncidentDate: incidentDate,
		CreatedBy:    actor.ID,
		AssignedTo:   dto.AssignedTo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	inc.NormalizeResolvedAt(now)

	if err := s.repo.Create(inc); err != nil {
		s.logger.Error("failed to create incident", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	s.logger.Info("incident created", "incident_id", inc.ID, "severity", inc.Severity, "created_by", actor.ID)
	return inc, nil
}

func (s *Service) GetIncident(actor *auth.Actor, id int64) (*Incident, error) {
	inc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrIncidentNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionView, rbac.RecordResource(rbac.KindIncident, inc.OwnerIDs()...)) {
		return nil, ErrIncidentViewDenied
	}

	return inc, nil
}

func (s *Service) ListIncidents(actor *auth.Actor, f ListFilters) ([]*Incident, error) {
	incidents, err := s.repo.List(actor.Scope(), f)
	if err != nil {
		s.logger.Error("failed to list incidents", "error", err, "actor_id", actor.ID)
		return nil, err
	}
	return incidents, nil
}

func (s *Service) UpdateIncident(actor *auth.Actor, id int64, dto UpdateIncidentDTO) (*Incident, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	inc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrIncidentNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionUpdate, rbac.RecordResource(rbac.KindIncident, inc.OwnerIDs()...)) {
		return nil, ErrIncidentEditDenied
	}

	if dto.AssignedTo != nil && *dto.AssignedTo != actor.ID {
		if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionAssign, rbac.RecordResource(rbac.KindIncident)) {
			return nil, ErrAssignDenied
		}
	}

	wasResolved := inc.Resolved()

	if dto.Name != nil {
		inc.Name = *dto.Name
	}
	if dto.Description != nil {
		inc.Description = *dto.Description
	}
	if dto.Severity != nil {
		inc.Severity = *dto.Severity
	}
	if dto.Status != nil {
		inc.Status = *dto.Status
	}
	if dto.AssignedTo != nil {
		inc.AssignedTo = dto.AssignedTo
	}
	if dto.IncidentDate != nil && *dto.IncidentDate != "" {
		date, err := internal.ParseDate("incident_date", *dto.IncidentDate)
		if err != nil {
			return nil, err
		}
		inc.IncidentDate = date
	}

	now := time.Now()
	inc.NormalizeResolvedAt(now)
	inc.UpdatedAt = now

	if err := s.repo.Update(inc); err != nil {
		s.logger.Error("failed to update incident", "error", err, "incident_id", id)
		return nil, err
	}

	if !wasResolved && inc.Resolved() {
		_ = s.bus.Publish(context.Background(), events.NewIncidentResolvedEvent(inc.ID, inc.Name, inc.Status, actor.ID))
	}

	s.logger.Info("incident updated", "incident_id", id, "actor_id", actor.ID, "status", inc.Status)
	return inc, nil
}

func (s *Service) DeleteIncident(actor *auth.Actor, id int64) error {
	inc, err := s.repo.GetByID(id)
	if err != nil {
		return ErrIncidentNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionDelete, rbac.RecordResource(rbac.KindIncident, inc.OwnerIDs()...)) {
		return ErrIncidentEditDenied
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete incident", "error", err, "incident_id", id)
		return err
	}

	s.logger.Info("incident deleted", "incident_id", id, "actor_id", actor.ID)
	return nil
}
