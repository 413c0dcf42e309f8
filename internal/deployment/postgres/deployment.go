package postgres

import (
	"strings"
	"time"

	"github.com/arifwid/opstrack/internal/deployment"
	"github.com/arifwid/opstrack/internal/rbac"
	"gorm.io/gorm"
)

// DeploymentRepository implements the deployment.Repository interface using GORM
type DeploymentRepository struct {
	db *gorm.DB
}

func NewDeploymentRepository(db *gorm.DB) deployment.Repository {
	return &DeploymentRepository{db: db}
}

func (r *DeploymentRepository) Create(d *deployment.Deployment) error {
	return r.db.Create(d).Error
}

func (r *DeploymentRepository) GetByID(id int64) (*deployment.Deployment, error) {
	var d deployment.Deployment
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, deployment.ErrDeploymentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DeploymentRepository) List(scope rbac.Scope, f deployment.ListFilters) ([]*deployment.Deployment, error) {
	q := scoped(r.db, scope)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Environment != "" {
		q = q.Where("environment = ?", f.Environment)
	}
	if f.From != nil {
		q = q.Where("deployment_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("deployment_date <= ?", *f.To)
	}

	var deployments []*deployment.Deployment
	err := q.Order("deployment_date DESC").Find(&deployments).Error
	return deployments, err
}

func (r *DeploymentRepository) Update(d *deployment.Deployment) error {
	d.UpdatedAt = time.Now()
	return r.db.Save(d).Error
}

func (r *DeploymentRepository) Delete(id int64) error {
	return r.db.Delete(&deployment.Deployment{}, id).Error
}

func (r *DeploymentRepository) Search(scope rbac.Scope, query string) ([]*deployment.Deployment, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var deployments []*deployment.Deployment
	err := scoped(r.db, scope).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(status) LIKE ? OR LOWER(backup_location) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("deployment_date DESC").
		Find(&deployments).Error
	return deployments, err
}

// scoped applies the visibility rule: members only see their own deployments.
func scoped(db *gorm.DB, scope rbac.Scope) *gorm.DB {
	q := db.Model(&deployment.Deployment{})
	if scope.Unrestricted() {
		return q
	}
	return q.Where("deployed_by = ?", scope.UserID)
}
