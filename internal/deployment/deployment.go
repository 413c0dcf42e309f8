package deployment

import (
	"time"

	"github.com/arifwid/opstrack/internal"
	"github.com/arifwid/opstrack/internal/rbac"
)

type Deployment struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Description    string    `json:"description"`
	Status         string    `json:"status" gorm:"type:varchar(20);default:pending"`
	DeploymentDate time.Time `json:"deployment_date" gorm:"column:deployment_date"`
	BackupLocation string    `json:"backup_location" gorm:"column:backup_location"`
	Environment    string    `json:"environment"`
	Version        string    `json:"version"`
	DeployedBy     int64     `json:"deployed_by" gorm:"column:deployed_by;not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Deployment) TableName() string {
	return "deployments"
}

const (
	StatusPending    = "pending"
	StatusSuccessful = "successful"
	StatusFailed     = "failed"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusSuccessful, StatusFailed:
		return true
	}
	return false
}

func (d *Deployment) OwnerIDs() []int64 {
	return []int64{d.DeployedBy}
}

type ListFilters struct {
	Status      string
	Environment string
	From        *time.Time
	To          *time.Time
}

type Repository interface {
	Create(d *Deployment) error
	GetByID(id int64) (*Deployment, error)
	List(scope rbac.Scope, f ListFilters) ([]*Deployment, error)
	Update(d *Deployment) error
	Delete(id int64) error
	Search(scope rbac.Scope, q string) ([]*Deployment, error)
}

var (
	ErrDeploymentNotFound   = internal.NewNotFoundError("deployment not found", internal.ErrCodeDeploymentNotFound)
	ErrDeploymentViewDenied = internal.NewForbiddenError("not allowed to view this deployment", internal.ErrCodePermissionDenied)
	ErrDeploymentEditDenied = internal.NewForbiddenError("not allowed to modify this deployment", internal.ErrCodePermissionDenied)
)
