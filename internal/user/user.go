package user

import (
	"time"

	"github.com/arifwid/opstrack/internal"
	"github.com/arifwid/opstrack/internal/rbac"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         rbac.Role `json:"role" gorm:"type:varchar(20);not null"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
	CreatedBy    *int64    `json:"created_by,omitempty" gorm:"column:created_by"`
}

func (User) TableName() string {
	return "users"
}

// Repository defines data access for users. Create and role-sensitive updates
// run inside a transaction so uniqueness races surface as ErrDuplicateUser.
type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByUsername(username string) (*User, error)
	List() ([]*User, error)
	Update(u *User) error
	Deactivate(id int64) error
	CountByRole(role rbac.Role) (int64, error)
}

var (
	ErrUserNotFound  = internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
	ErrDuplicateUser = internal.NewDuplicateError("username or email already exists", internal.ErrCodeDuplicateUser)
	ErrRoleDenied    = internal.NewForbiddenError("role may not be created by this actor", internal.ErrCodeRoleNotAssignable)
	ErrProtected     = internal.NewForbiddenError("account is protected", internal.ErrCodeProtectedAccount)
	ErrViewDenied    = internal.NewForbiddenError("not allowed to view this user", internal.ErrCodePermissionDenied)
	ErrEditDenied    = internal.NewForbiddenError("not allowed to edit this user", internal.ErrCodePermissionDenied)
	ErrListDenied    = internal.NewForbiddenError("not allowed to list users", internal.ErrCodePermissionDenied)
)
