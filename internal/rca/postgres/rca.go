package postgres

import (
	"strings"
	"time"

	"github.com/arifwid/opstrack/internal/incident"
	"github.com/arifwid/opstrack/internal/rbac"
	"github.com/arifwid/opstrack/internal/rca"
	"gorm.io/gorm"
)

// RCARepository implements the rca.Repository interface using GORM
type RCARepository struct {
	db *gorm.DB
}

func NewRCARepository(db *gorm.DB) rca.Repository {
	return &RCARepository{db: db}
}

// Create verifies the incident exists and has no rca yet, then inserts. The
// whole check-and-insert runs in one transaction so two concurrent creates
// cannot both pass the uniqueness check.
func (r *RCARepository) Create(record *rca.RCA) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var incidents int64
		if err := tx.Model(&incident.Incident{}).Where("id = ?", record.IncidentID).Count(&incidents).Error; err != nil {
			return err
		}
		if incidents == 0 {
			return rca.ErrIncidentNotFound
		}

		var existing int64
		if err := tx.Model(&rca.RCA{}).Where("incident_id = ?", record.IncidentID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return rca.ErrDuplicateRCA
		}

		return tx.Create(record).Error
	})
}

func (r *RCARepository) GetByID(id int64) (*rca.RCA, error) {
	var record rca.RCA
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, rca.ErrRCANotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *RCARepository) GetByIncident(incidentID int64) (*rca.RCA, error) {
	var record rca.RCA
	err := r.db.Where("incident_id = ?", incidentID).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, rca.ErrRCANotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *RCARepository) List(scope rbac.Scope, f rca.ListFilters) ([]*rca.RCA, error) {
	q := scoped(r.db, scope)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *f.AssignedTo)
	}
	if f.IncidentID != nil {
		q = q.Where("incident_id = ?", *f.IncidentID)
	}

	var records []*rca.RCA
	err := q.Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *RCARepository) Update(record *rca.RCA) error {
	record.UpdatedAt = time.Now()
	return r.db.Save(record).Error
}

func (r *RCARepository) Delete(id int64) error {
	return r.db.Delete(&rca.RCA{}, id).Error
}

func (r *RCARepository) Search(scope rbac.Scope, query string) ([]*rca.RCA, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var records []*rca.RCA
	err := scoped(r.db, scope).
		Where("LOWER(root_cause) LIKE ? OR LOWER(corrective_actions) LIKE ? OR LOWER(preventive_actions) LIKE ?",
			pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// scoped applies the visibility rule: members only see rcas assigned to them.
func scoped(db *gorm.DB, scope rbac.Scope) *gorm.DB {
	q := db.Model(&rca.RCA{})
	if scope.Unrestricted() {
		return q
	}
	return q.Where("assigned_to = ?", scope.UserID)
}
