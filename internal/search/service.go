package search

import (
	"log/slog"
	"strings"
	"time"

	"github.com/arifwid/opstrack/internal/asset"
	"github.com/arifwid/opstrack/internal/auth"
	"github.com/arifwid/opstrack/internal/deployment"
	"github.com/arifwid/opstrack/internal/incident"
	"github.com/arifwid/opstrack/internal/rbac"
	"github.com/arifwid/opstrack/internal/rca"
	"github.com/arifwid/opstrack/internal/task"
)

// Service fans a query out to the per-entity repositories. Every repository
// re-applies the actor's scope so one search cannot widen visibility.
type Service struct {
	tasks       task.Repository
	deployments deployment.Repository
	incidents   incident.Repository
	rcas        rca.Repository
	assets      asset.Repository
	logger      *slog.Logger

	now func() time.Time
}

func NewService(
	tasks task.Repository,
	deployments deployment.Repository,
	incidents incident.Repository,
	rcas rca.Repository,
	assets asset.Repository,
	logger *slog.Logger,
) *Service {
	return &Service{
		tasks:       tasks,
		deployments: deployments,
		incidents:   incidents,
		rcas:        rcas,
		assets:      assets,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *Service) Search(actor *auth.Actor, query, entityType string) (*Results, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if entityType == "" {
		entityType = TypeAll
	}
	if !ValidType(entityType) {
		return nil, ErrInvalidType
	}

	scope := actor.Scope()
	results := &Results{
		Query:       query,
		Tasks:       []*task.Task{},
		Deployments: []*deployment.Deployment{},
		Incidents:   []*incident.Incident{},
		RCAs:        []*rca.RCA{},
		Assets:      []*asset.Asset{},
	}

	if entityType == TypeAll || entityType == TypeTasks {
		tasks, err := s.searchTasks(scope, query)
		if err != nil {
			s.logger.Error("task search failed", "error", err, "actor_id", actor.ID)
			return nil, err
		}
		results.Tasks = tasks
	}

	if entityType == TypeAll || entityType == TypeDeployments {
		deployments, err := s.deployments.Search(scope, query)
		if err != nil {
			s.logger.Error("deployment search failed", "error", err, "actor_id", actor.ID)
			return nil, err
		}
		results.Deployments = deployments
	}

	if entityType == TypeAll || entityType == TypeIncidents {
		incidents, err := s.incidents.Search(scope, query)
		if err != nil {
			s.logger.Error("incident search failed", "error", err, "actor_id", actor.ID)
			return nil, err
		}
		results.Incidents = incidents
	}

	if entityType == TypeAll || entityType == TypeRCAs {
		rcas, err := s.rcas.Search(scope, query)
		if err != nil {
			s.logger.Error("rca search failed", "error", err, "actor_id", actor.ID)
			return nil, err
		}
		results.RCAs = rcas
	}

	if entityType == TypeAll || entityType == TypeAssets {
		assets, err := s.assets.Search(scope, query)
		if err != nil {
			s.logger.Error("asset search failed", "error", err, "actor_id", actor.ID)
			return nil, err
		}
		results.Assets = assets
	}

	results.Total = len(results.Tasks) + len(results.Deployments) +
		len(results.Incidents) + len(results.RCAs) + len(results.Assets)

	return results, nil
}

// searchTasks recomputes derived statuses so an overdue task never surfaces
// with a stale stored status.
func (s *Service) searchTasks(scope rbac.Scope, query string) ([]*task.Task, error) {
	tasks, err := s.tasks.Search(scope, query)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for _, t := range tasks {
		t.RefreshDerivedStatus(now)
	}
	return tasks, nil
}
