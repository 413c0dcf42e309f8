package report

import (
	"io"

	"github.com/arifwid/opstrack/internal"
)

// Dashboard is the per-entity totals and status breakdowns for the actor's
// visible rows.
type Dashboard struct {
	Tasks       EntitySummary `json:"tasks"`
	Deployments EntitySummary `json:"deployments"`
	Incidents   EntitySummary `json:"incidents"`
	RCAs        EntitySummary `json:"rcas"`
	Assets      AssetSummary  `json:"assets"`
}

type EntitySummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

type AssetSummary struct {
	Total    int            `json:"total"`
	ByRating map[string]int `json:"by_rating"`
}

// Analytics is the second-dimension breakdown used by chart collaborators.
type Analytics struct {
	TaskByStatus       map[string]int `json:"task_by_status"`
	TaskByPriority     map[string]int `json:"task_by_priority"`
	DeploymentByStatus map[string]int `json:"deployment_by_status"`
	DeploymentByEnv    map[string]int `json:"deployment_by_environment"`
	IncidentByStatus   map[string]int `json:"incident_by_status"`
	IncidentBySeverity map[string]int `json:"incident_by_severity"`
	RCAByStatus        map[string]int `json:"rca_by_status"`
	AssetByType        map[string]int `json:"asset_by_type"`
	AssetByValueRating map[string]int `json:"asset_by_value_rating"`
}

// Document is the tabular form handed to a Renderer.
type Document struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Renderer turns a document into a downloadable byte stream. The CSV renderer
// lives in this package; a PDF renderer is injected from outside.
type Renderer interface {
	Render(w io.Writer, doc Document) error
	ContentType() string
	FileExtension() string
}

const (
	FormatCSV = "csv"
	FormatPDF = "pdf"

	ExportTasks       = "tasks"
	ExportDeployments = "deployments"
	ExportIncidents   = "incidents"
	ExportRCAs        = "rcas"
	ExportAssets      = "assets"
)

func ValidExportType(t string) bool {
	switch t {
	case ExportTasks, ExportDeployments, ExportIncidents, ExportRCAs, ExportAssets:
		return true
	}
	return false
}

var (
	ErrInvalidExportType = internal.NewValidationError("export type must be one of tasks, deployments, incidents, rcas, assets", internal.ErrCodeInvalidEnum)
	ErrFormatUnavailable = internal.NewValidationError("no renderer registered for the requested format", internal.ErrCodeInvalidEnum)
)
