package search

import (
	"github.com/arifwid/opstrack/internal"
	"github.com/arifwid/opstrack/internal/asset"
	"github.com/arifwid/opstrack/internal/deployment"
	"github.com/arifwid/opstrack/internal/incident"
	"github.com/arifwid/opstrack/internal/rca"
	"github.com/arifwid/opstrack/internal/task"
)

const (
	TypeAll         = "all"
	TypeTasks       = "tasks"
	TypeDeployments = "deployments"
	TypeIncidents   = "incidents"
	TypeRCAs        = "rcas"
	TypeAssets      = "assets"
)

func ValidType(t string) bool {
	switch t {
	case TypeAll, TypeTasks, TypeDeployments, TypeIncidents, TypeRCAs, TypeAssets:
		return true
	}
	return false
}

// Results groups matches per entity type. Absent types marshal as empty
// arrays so the response shape is stable regardless of the type filter.
type Results struct {
	Query       string                   `json:"query"`
	Tasks       []*task.Task             `json:"tasks"`
	Deployments []*deployment.Deployment `json:"deployments"`
	Incidents   []*incident.Incident     `json:"incidents"`
	RCAs        []*rca.RCA               `json:"rcas"`
	Assets      []*asset.Asset           `json:"assets"`
	Total       int                      `json:"total"`
}

var (
	ErrEmptyQuery  = internal.NewValidationError("search query cannot be empty", internal.ErrCodeEmptyQuery)
	ErrInvalidType = internal.NewValidationError("type must be one of all, tasks, deployments, incidents, rcas, assets", internal.ErrCodeInvalidEnum)
)
