package report

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/arifwid/opstrack/internal/asset"
	"github.com/arifwid/opstrack/internal/auth"
	"github.com/arifwid/opstrack/internal/deployment"
	"github.com/arifwid/opstrack/internal/incident"
	"github.com/arifwid/opstrack/internal/rca"
	"github.com/arifwid/opstrack/internal/task"
)

// Service builds counts and export documents from the same scoped lists the
// entity endpoints serve, so every figure matches what the actor can see.
type Service struct {
	tasks       task.Repository
	deployments deployment.Repository
	incidents   incident.Repository
	rcas        rca.Repository
	assets      asset.Repository
	renderers   map[string]Renderer
	logger      *slog.Logger

	now func() time.Time
}

func NewService(
	tasks task.Repository,
	deployments deployment.Repository,
	incidents incident.Repository,
	rcas rca.Repository,
	assets asset.Repository,
	renderers map[string]Renderer,
	logger *slog.Logger,
) *Service {
	return &Service{
		tasks:       tasks,
		deployments: deployments,
		incidents:   incidents,
		rcas:        rcas,
		assets:      assets,
		renderers:   renderers,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *Service) Dashboard(actor *auth.Actor) (*Dashboard, error) {
	tasks, err := s.scopedTasks(actor)
	if err != nil {
		return nil, err
	}
	deployments, err := s.deployments.List(actor.Scope(), deployment.ListFilters{})
	if err != nil {
		return nil, err
	}
	incidents, err := s.incidents.List(actor.Scope(), incident.ListFilters{})
	if err != nil {
		return nil, err
	}
	rcas, err := s.rcas.List(actor.Scope(), rca.ListFilters{})
	if err != nil {
		return nil, err
	}
	assets, err := s.assets.List(actor.Scope(), asset.ListFilters{})
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Tasks:       EntitySummary{Total: len(tasks), ByStatus: map[string]int{}},
		Deployments: EntitySummary{Total: len(deployments), ByStatus: map[string]int{}},
		Incidents:   EntitySummary{Total: len(incidents), ByStatus: map[string]int{}},
		RCAs:        EntitySummary{Total: len(rcas), ByStatus: map[string]int{}},
		Assets:      AssetSummary{Total: len(assets), ByRating: map[string]int{}},
	}

	for _, t := range tasks {
		d.Tasks.ByStatus[t.Status]++
	}
	for _, dep := range deployments {
		d.Deployments.ByStatus[dep.Status]++
	}
	for _, inc := range incidents {
		d.Incidents.ByStatus[inc.Status]++
	}
	for _, r := range rcas {
		d.RCAs.ByStatus[r.Status]++
	}
	for _, a := range assets {
		if a.AssetValueRating != "" {
			d.Assets.ByRating[a.AssetValueRating]++
		}
	}

	return d, nil
}

func (s *Service) Analytics(actor *auth.Actor) (*Analytics, error) {
	tasks, err := s.scopedTasks(actor)
	if err != nil {
		return nil, err
	}
	deployments, err := s.deployments.List(actor.Scope(), deployment.ListFilters{})
	if err != nil {
		return nil, err
	}
	incidents, err := s.incidents.List(actor.Scope(), incident.ListFilters{})
	if err != nil {
		return nil, err
	}
	rcas, err := s.rcas.List(actor.Scope(), rca.ListFilters{})
	if err != nil {
		return nil, err
	}
	assets, err := s.assets.List(actor.Scope(), asset.ListFilters{})
	if err != nil {
		return nil, err
	}

	a := &Analytics{
		TaskByStatus:       map[string]int{},
		TaskByPriority:     map[string]int{},
		DeploymentByStatus: map[string]int{},
		DeploymentByEnv:    map[string]int{},
		IncidentByStatus:   map[string]int{},
		IncidentBySeverity: map[string]int{},
		RCAByStatus:        map[string]int{},
		AssetByType:        map[string]int{},
		AssetByValueRating: map[string]int{},
	}

	for _, t := range tasks {
		a.TaskByStatus[t.Status]++
		a.TaskByPriority[t.Priority]++
	}
	for _, d := range deployments {
		a.DeploymentByStatus[d.Status]++
		if d.Environment != "" {
			a.DeploymentByEnv[d.Environment]++
		}
	}
	for _, inc := range incidents {
		a.IncidentByStatus[inc.Status]++
		a.IncidentBySeverity[inc.Severity]++
	}
	for _, r := range rcas {
		a.RCAByStatus[r.Status]++
	}
	for _, as := range assets {
		if as.AssetType != "" {
			a.AssetByType[as.AssetType]++
		}
		if as.AssetValueRating != "" {
			a.AssetByValueRating[as.AssetValueRating]++
		}
	}

	return a, nil
}

// ExportRows builds the tabular document for one entity type over the actor's
// scope.
func (s *Service) ExportRows(actor *auth.Actor, entityType string) (*Document, error) {
	if !ValidExportType(entityType) {
		return nil, ErrInvalidExportType
	}

	switch entityType {
	case ExportTasks:
		tasks, err := s.scopedTasks(actor)
		if err != nil {
			return nil, err
		}
		doc := &Document{
			Title:  "Tasks",
			Header: []string{"id", "name", "priority", "status", "due_date", "created_by", "assigned_to"},
		}
		for _, t := range tasks {
			doc.Rows = append(doc.Rows, []string{
				strconv.FormatInt(t.ID, 10), t.Name, t.Priority, t.Status,
				formatOptionalTime(t.DueDate), strconv.FormatInt(t.CreatedBy, 10), formatOptionalID(t.AssignedTo),
			})
		}
		return doc, nil

	case ExportDeployments:
		deployments, err := s.deployments.List(actor.Scope(), deployment.ListFilters{})
		if err != nil {
			return nil, err
		}
		doc := &Document{
			Title:  "Deployments",
			Header: []string{"id", "name", "status", "environment", "version", "deployment_date", "deployed_by"},
		}
		for _, d := range deployments {
			doc.Rows = append(doc.Rows, []string{
				strconv.FormatInt(d.ID, 10), d.Name, d.Status, d.Environment, d.Version,
				d.DeploymentDate.Format(time.RFC3339), strconv.FormatInt(d.DeployedBy, 10),
			})
		}
		return doc, nil

	case ExportIncidents:
		incidents, err := s.incidents.List(actor.Scope(), incident.ListFilters{})
		if err != nil {
			return nil, err
		}
		doc := &Document{
			Title:  "Incidents",
			Header: []string{"id", "name", "severity", "status", "incident_date", "resolved_at", "created_by", "assigned_to"},
		}
		for _, inc := range incidents {
			doc.Rows = append(doc.Rows, []string{
				strconv.FormatInt(inc.ID, 10), inc.Name, inc.Severity, inc.Status,
				inc.IncidentDate.Format(time.RFC3339), formatOptionalTime(inc.ResolvedAt),
				strconv.FormatInt(inc.CreatedBy, 10), formatOptionalID(inc.AssignedTo),
			})
		}
		return doc, nil

	case ExportRCAs:
		rcas, err := s.rcas.List(actor.Scope(), rca.ListFilters{})
		if err != nil {
			return nil, err
		}
		doc := &Document{
			Title:  "Root Cause Analyses",
			Header: []string{"id", "incident_id", "root_cause", "status", "assigned_to"},
		}
		for _, r := range rcas {
			doc.Rows = append(doc.Rows, []string{
				strconv.FormatInt(r.ID, 10), strconv.FormatInt(r.IncidentID, 10),
				r.RootCause, r.Status, strconv.FormatInt(r.AssignedTo, 10),
			})
		}
		return doc, nil

	case ExportAssets:
		assets, err := s.assets.List(actor.Scope(), asset.ListFilters{})
		if err != nil {
			return nil, err
		}
		doc := &Document{
			Title:  "Assets",
			Header: []string{"id", "asset_id", "server_name", "host_name", "ip_address", "asset_type", "asset_value_rating", "owner_id"},
		}
		for _, a := range assets {
			doc.Rows = append(doc.Rows, []string{
				strconv.FormatInt(a.ID, 10), a.AssetID, a.ServerName, a.HostName,
				a.IPAddress, a.AssetType, a.AssetValueRating, strconv.FormatInt(a.OwnerID, 10),
			})
		}
		return doc, nil
	}

	return nil, ErrInvalidExportType
}

// Export renders the document in the requested format.
func (s *Service) Export(actor *auth.Actor, entityType, format string) (*Document, Renderer, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, nil, ErrFormatUnavailable
	}

	doc, err := s.ExportRows(actor, entityType)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("export generated", "entity_type", entityType, "format", format, "rows", len(doc.Rows), "actor_id", actor.ID)
	return doc, renderer, nil
}

// scopedTasks lists the actor's tasks with derived statuses recomputed, so
// dashboard counts line up with what the task list endpoint returns.
func (s *Service) scopedTasks(actor *auth.Actor) ([]*task.Task, error) {
	tasks, err := s.tasks.List(actor.Scope(), task.ListFilters{})
	if err != nil {
		return nil, err
	}
	now := s.now()
	for _, t := range tasks {
		t.RefreshDerivedStatus(now)
	}
	return tasks, nil
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatOptionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return fmt.Sprintf("%d", *id)
}
