package postgres

import (
	"github.com/arifwid/opstrack/internal/auth"
	"github.com/arifwid/opstrack/internal/user"
	"gorm.io/gorm"
)

// AuthRepository resolves credentials and actors from the users table.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.Repository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetCredentials(username string) (string, *auth.Actor, bool, error) {
	var u user.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if err != nil {
		return "", nil, false, err
	}
	return u.PasswordHash, actorFromUser(&u), u.IsActive, nil
}

func (r *AuthRepository) GetActorByID(userID int64) (*auth.Actor, error) {
	var u user.User
	err := r.db.Where("id = ?", userID).First(&u).Error
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, auth.ErrUserInactive
	}
	return actorFromUser(&u), nil
}

func actorFromUser(u *user.User) *auth.Actor {
	return &auth.Actor{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
