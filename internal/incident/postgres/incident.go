package postgres

import (
	"strings"
	"time"

	"github.com/arifwid/opstrack/internal/incident"
	"github.com/arifwid/opstrack/internal/rbac"
	"gorm.io/gorm"
)

// IncidentRepository implements the incident.Repository interface using GORM
type IncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) incident.Repository {
	return &IncidentRepository{db: db}
}

func (r *IncidentRepository) Create(i *incident.Incident) error {
	return r.db.Create(i).Error
}

func (r *IncidentRepository) GetByID(id int64) (*incident.Incident, error) {
	var i incident.Incident
	err := r.db.Where("id = ?", id).First(&i).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, incident.ErrIncidentNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *IncidentRepository) List(scope rbac.Scope, f incident.ListFilters) ([]*incident.Incident, error) {
	q := scoped(r.db, scope)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Severity != "" {
		q = q.Where("severity = ?", f.Severity)
	}
	if f.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *f.AssignedTo)
	}
	if f.From != nil {
		q = q.Where("incident_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("incident_date <= ?", *f.To)
	}

	var incidents []*incident.Incident
	err := q.Order("incident_date DESC").Find(&incidents).Error
	return incidents, err
}

func (r *IncidentRepository) Update(i *incident.Incident) error {
	i.UpdatedAt = time.Now()
	return r.db.Save(i).Error
}

func (r *IncidentRepository) Delete(id int64) error {
	return r.db.Delete(&incident.Incident{}, id).Error
}

func (r *IncidentRepository) Search(scope rbac.Scope, query string) ([]*incident.Incident, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var incidents []*incident.Incident
	err := scoped(r.db, scope).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(severity) LIKE ?",
			pattern, pattern, pattern).
		Order("incident_date DESC").
		Find(&incidents).Error
	return incidents, err
}

// scoped applies the visibility rule: members only see incidents they created
// or are assigned to.
func scoped(db *gorm.DB, scope rbac.Scope) *gorm.DB {
	q := db.Model(&incident.Incident{})
	if scope.Unrestricted() {
		return q
	}
	return q.Where("created_by = ? OR assigned_to = ?", scope.UserID, scope.UserID)
}
