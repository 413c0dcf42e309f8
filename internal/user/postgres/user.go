package postgres

import (
	"time"

	"github.com/arifwid/opstrack/internal/rbac"
	"github.com/arifwid/opstrack/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

// Create inserts a user, checking username and email uniqueness inside the
// same transaction so a concurrent insert surfaces as ErrDuplicateUser.
func (r *UserRepository) Create(u *user.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&user.User{}).
			Where("username = ? OR email = ?", u.Username, u.Email).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return user.ErrDuplicateUser
		}
		return tx.Create(u).Error
	})
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*user.User, error) {
	var u user.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(u *user.User) error {
	u.UpdatedAt = time.Now()
	return r.db.Save(u).Error
}

func (r *UserRepository) Deactivate(id int64) error {
	return r.db.Model(&user.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

func (r *UserRepository) CountByRole(role rbac.Role) (int64, error) {
	var count int64
	err := r.db.Model(&user.User{}).
		Where("role = ? AND is_active = ?", role, true).
		Count(&count).Error
	return count, err
}
