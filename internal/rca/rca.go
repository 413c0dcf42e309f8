package rca

import (
	"time"

	"github.com/arifwid/opstrack/internal"
	"github.com/arifwid/opstrack/internal/rbac"
)

// RCA is the root cause analysis attached to an incident. At most one exists
// per incident; the repository enforces that inside the create transaction.
type RCA struct {
	ID                int64     `json:"id" gorm:"primaryKey"`
	IncidentID        int64     `json:"incident_id" gorm:"column:incident_id;uniqueIndex;not null"`
	RootCause         string    `json:"root_cause" gorm:"column:root_cause;not null"`
	CorrectiveActions string    `json:"corrective_actions" gorm:"column:corrective_actions"`
	PreventiveActions string    `json:"preventive_actions" gorm:"column:preventive_actions"`
	Status            string    `json:"status" gorm:"type:varchar(20);default:draft"`
	AssignedTo        int64     `json:"assigned_to" gorm:"column:assigned_to;not null"`
	CreatedAt         time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (RCA) TableName() string {
	return "rcas"
}

const (
	StatusDraft       = "draft"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusImplemented = "implemented"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusUnderReview, StatusApproved, StatusImplemented:
		return true
	}
	return false
}

func (r *RCA) OwnerIDs() []int64 {
	return []int64{r.AssignedTo}
}

type ListFilters struct {
	Status     string
	AssignedTo *int64
	IncidentID *int64
}

type Repository interface {
	Create(r *RCA) error
	GetByID(id int64) (*RCA, error)
	GetByIncident(incidentID int64) (*RCA, error)
	List(scope rbac.Scope, f ListFilters) ([]*RCA, error)
	Update(r *RCA) error
	Delete(id int64) error
	Search(scope rbac.Scope, q string) ([]*RCA, error)
}

var (
	ErrRCANotFound      = internal.NewNotFoundError("rca not found", internal.ErrCodeRCANotFound)
	ErrIncidentNotFound = internal.NewNotFoundError("incident not found", internal.ErrCodeIncidentNotFound)
	ErrDuplicateRCA     = internal.NewDuplicateError("incident already has an rca", internal.ErrCodeDuplicateRCA)
	ErrRCAViewDenied    = internal.NewForbiddenError("not allowed to view this rca", internal.ErrCodePermissionDenied)
	ErrRCAEditDenied    = internal.NewForbiddenError("not allowed to modify this rca", internal.ErrCodePermissionDenied)
	ErrAssignDenied     = internal.NewForbiddenError("not allowed to assign rcas to other users", internal.ErrCodePermissionDenied)
)
