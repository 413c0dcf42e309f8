package incident

import (
	"time"

	"github.com/arifwid/opstrack/internal"
	"github.com/arifwid/opstrack/internal/rbac"
)

type Incident struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	Description  string     `json:"description" gorm:"not null"`
	Severity     string     `json:"severity" gorm:"type:varchar(20);not null"`
	Status       string     `json:"status" gorm:"type:varchar(20);default:open"`
	IncidentDate time.Time  `json:"incident_date" gorm:"column:incident_date"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty" gorm:"column:resolved_at"`
	CreatedBy    int64      `json:"created_by" gorm:"column:created_by;not null"`
	AssignedTo   *int64     `json:"assigned_to,omitempty" gorm:"column:assigned_to"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Incident) TableName() string {
	return "incidents"
}

const (
	StatusOpen          = "open"
	StatusInvestigating = "investigating"
	StatusResolved      = "resolved"
	StatusClosed        = "closed"

	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInvestigating, StatusResolved, StatusClosed:
		return true
	}
	return false
}

func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Resolved reports whether the incident is in a terminal status.
func (i *Incident) Resolved() bool {
	return i.Status == StatusResolved || i.Status == StatusClosed
}

// NormalizeResolvedAt keeps the invariant: resolved_at is set exactly when the
// status is resolved or closed. Applied on every write.
func (i *Incident) NormalizeResolvedAt(now time.Time) {
	if i.Resolved() {
		if i.ResolvedAt == nil {
			i.ResolvedAt = &now
		}
		return
	}
	i.ResolvedAt = nil
}

func (i *Incident) OwnerIDs() []int64 {
	ids := []int64{i.CreatedBy}
	if i.AssignedTo != nil {
		ids = append(ids, *i.AssignedTo)
	}
	return ids
}

type ListFilters struct {
	Status     string
	Severity   string
	AssignedTo *int64
	From       *time.Time
	To         *time.Time
}

type Repository interface {
	Create(i *Incident) error
	GetByID(id int64) (*Incident, error)
	List(scope rbac.Scope, f ListFilters) ([]*Incident, error)
	Update(i *Incident) error
	Delete(id int64) error
	Search(scope rbac.Scope, q string) ([]*Incident, error)
}

var (
	ErrIncidentNotFound   = internal.NewNotFoundError("incident not found", internal.ErrCodeIncidentNotFound)
	ErrIncidentViewDenied = internal.NewForbiddenError("not allowed to view this incident", internal.ErrCodePermissionDenied)
	ErrIncidentEditDenied = internal.NewForbiddenError("not allowed to modify this incident", internal.ErrCodePermissionDenied)
	ErrAssignDenied       = internal.NewForbiddenError("not allowed to assign incidents to other users", internal.ErrCodePermissionDenied)
)
