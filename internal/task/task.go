package task

import (
	"time"

	"github.com/arifwid/opstrack/internal"
	"github.com/arifwid/opstrack/internal/rbac"
)

type Task struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" gorm:"type:varchar(20);not null"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:pending"`
	DueDate     *time.Time `json:"due_date,omitempty" gorm:"column:due_date"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"column:completed_at"`
	CreatedBy   int64      `json:"created_by" gorm:"column:created_by;not null"`
	AssignedTo  *int64     `json:"assigned_to,omitempty" gorm:"column:assigned_to"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusOverdue    = "overdue"

	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// RefreshDerivedStatus recomputes the overdue status from the due date. The
// stored status is never ground truth for overdue: callers apply this before
// any status-dependent read. Idempotent; returns whether the status changed.
func (t *Task) RefreshDerivedStatus(now time.Time) bool {
	if t.Status == StatusCompleted {
		return false
	}

	overdue := t.DueDate != nil && t.DueDate.Before(now)
	switch {
	case overdue && t.Status != StatusOverdue:
		t.Status = StatusOverdue
		return true
	case !overdue && t.Status == StatusOverdue:
		t.Status = StatusPending
		return true
	}
	return false
}

// Complete marks the task done. completed_at is set iff status is completed.
func (t *Task) Complete(now time.Time) {
	t.Status = StatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
}

func (t *Task) Reopen(status string, now time.Time) {
	t.Status = status
	t.CompletedAt = nil
	t.UpdatedAt = now
}

// OwnerIDs are the users tied to this task for visibility and edit checks.
func (t *Task) OwnerIDs() []int64 {
	ids := []int64{t.CreatedBy}
	if t.AssignedTo != nil {
		ids = append(ids, *t.AssignedTo)
	}
	return ids
}

type ListFilters struct {
	Status     string
	Priority   string
	AssignedTo *int64
	From       *time.Time
	To         *time.Time
}

type Repository interface {
	Create(t *Task) error
	GetByID(id int64) (*Task, error)
	List(scope rbac.Scope, f ListFilters) ([]*Task, error)
	Update(t *Task) error
	Delete(id int64) error
	Search(scope rbac.Scope, q string) ([]*Task, error)
}

var (
	ErrTaskNotFound   = internal.NewNotFoundError("task not found", internal.ErrCodeTaskNotFound)
	ErrTaskViewDenied = internal.NewForbiddenError("not allowed to view this task", internal.ErrCodePermissionDenied)
	ErrTaskEditDenied = internal.NewForbiddenError("not allowed to modify this task", internal.ErrCodePermissionDenied)
	ErrAssignDenied   = internal.NewForbiddenError("not allowed to assign tasks to other users", internal.ErrCodePermissionDenied)
)
