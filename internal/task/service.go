package task

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
	now    func() time.Time
}

func NewService(repo Repository, bus events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) CreateTask(actor *auth.Actor, dto CreateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("task validation failed", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	if dto.AssignedTo != nil && *dto.AssignedTo != actor.ID {
		if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionAssign, rbac.RecordResource(rbac.KindTask)) {
			return nil, ErrAssignDenied
		}
	}

	var dueDate *time.Time
	if dto.DueDate != "" {
		d, err := internal.ParseDate("due_date", dto.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = &d
	}

	now := s.now()
	t := &Task{
		Name:        dto.Name,
		Description: dto.Description,
		Priority:    dto.Priority,
		Status:      StatusPending,
		DueDate:     dueDate,
		CreatedBy:   actor.ID,
		AssignedTo:  dto.AssignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	t.RefreshDerivedStatus(now)

	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create task", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	s.logger.Info("task created", "task_id", t.ID, "created_by", actor.ID, "priority", t.Priority)
	return t, nil
}

func (s *Service) GetTask(actor *auth.Actor, id int64) (*Task, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionView, rbac.RecordResource(rbac.KindTask, t.OwnerIDs()...)) {
		return nil, ErrTaskViewDenied
	}

	t.RefreshDerivedStatus(s.now())
	return t, nil
}

// ListTasks applies the visibility scope, refreshes derived statuses, then
// applies the status filter. The status filter runs after the refresh so an
// overdue query never misses a task whose stored status is stale.
func (s *Service) ListTasks(actor *auth.Actor, f ListFilters) ([]*Task, error) {
	statusFilter := f.Status
	f.Status = ""

	tasks, err := s.repo.List(actor.Scope(), f)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	now := s.now()
	result := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		t.RefreshDerivedStatus(now)
		if statusFilter != "" && t.Status != statusFilter {
			continue
		}
		result = append(result, t)
	}

	return result, nil
}

func (s *Service) UpdateTask(actor *auth.Actor, id int64, dto UpdateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionUpdate, rbac.RecordResource(rbac.KindTask, t.OwnerIDs()...)) {
		return nil, ErrTaskEditDenied
	}

	if dto.AssignedTo != nil && *dto.AssignedTo != actor.ID {
		if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionAssign, rbac.RecordResource(rbac.KindTask)) {
			return nil, ErrAssignDenied
		}
	}

	now := s.now()
	if dto.Name != nil {
		t.Name = *dto.Name
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}
	if dto.Priority != nil {
		t.Priority = *dto.Priority
	}
	if dto.AssignedTo != nil {
		t.AssignedTo = dto.AssignedTo
	}
	if dto.DueDate != nil {
		dueDate, err := internal.ParseOptionalDate("due_date", dto.DueDate)
		if err != nil {
			return nil, err
		}
		t.DueDate = dueDate
	}

	wasCompleted := t.Status == StatusCompleted
	if dto.Status != nil {
		if *dto.Status == StatusCompleted {
			t.Complete(now)
		} else {
			t.Reopen(*dto.Status, now)
		}
	}
	t.RefreshDerivedStatus(now)
	t.UpdatedAt = now

	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update task", "error", err, "task_id", id)
		return nil, err
	}

	if !wasCompleted && t.Status == StatusCompleted && s.bus != nil {
		_ = s.bus.Publish(context.Background(), events.NewTaskCompletedEvent(t.ID, t.Name, actor.ID))
	}

	s.logger.Info("task updated", "task_id", id, "actor_id", actor.ID, "status", t.Status)
	return t, nil
}

func (s *Service) DeleteTask(actor *auth.Actor, id int64) error {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return ErrTaskNotFound
	}

	if !rbac.CanPerform(actor.Role, actor.ID, rbac.ActionDelete, rbac.RecordResource(rbac.KindTask, t.OwnerIDs()...)) {
		return ErrTaskEditDenied
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete task", "error", err, "task_id", id)
		return err
	}

	s.logger.Info("task deleted", "task_id", id, "actor_id", actor.ID)
	return nil
}
