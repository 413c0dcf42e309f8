package postgres

import (
	"strings"
	"time"

	"github.com/arifwid/opstrack/internal/rbac"
	"github.com/arifwid/opstrack/internal/task"
	"gorm.io/gorm"
)

// TaskRepository implements the task.Repository interface using GORM
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) task.Repository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(t *task.Task) error {
	return r.db.Create(t).Error
}

func (r *TaskRepository) GetByID(id int64) (*task.Task, error) {
	var t task.Task
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, task.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) List(scope rbac.Scope, f task.ListFilters) ([]*task.Task, error) {
	q := scoped(r.db, scope)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *f.AssignedTo)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var tasks []*task.Task
	err := q.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(t *task.Task) error {
	t.UpdatedAt = time.Now()
	return r.db.Save(t).Error
}

func (r *TaskRepository) Delete(id int64) error {
	return r.db.Delete(&task.Task{}, id).Error
}

// Search matches the query case-insensitively against the task text fields.
func (r *TaskRepository) Search(scope rbac.Scope, query string) ([]*task.Task, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var tasks []*task.Task
	err := scoped(r.db, scope).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(priority) LIKE ? OR LOWER(status) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// scoped applies the visibility rule: members only see tasks they created or
// are assigned to.
func scoped(db *gorm.DB, scope rbac.Scope) *gorm.DB {
	q := db.Model(&task.Task{})
	if scope.Unrestricted() {
		return q
	}
	return q.Where("created_by = ? OR assigned_to = ?", scope.UserID, scope.UserID)
}
