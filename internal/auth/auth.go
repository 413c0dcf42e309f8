package auth

import (
	"context"
	"time"

	"github.com/arifwid/opstrack/internal"
	"github.com/arifwid/opstrack/internal/rbac"
	"github.com/golang-jwt/jwt/v5"
)

// Actor is the already-resolved (userId, role) pair every request carries.
type Actor struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     rbac.Role `json:"role"`
}

func (a *Actor) Scope() rbac.Scope {
	return rbac.ScopeFor(a.Role, a.ID)
}

type ctxKey string

const ContextActorKey ctxKey = "actor"

func ActorFromContext(ctx context.Context) (*Actor, bool) {
	a, ok := ctx.Value(ContextActorKey).(*Actor)
	return a, ok
}

func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, ContextActorKey, actor)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates bearer tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID string, role string) (token string, err error)
	GenerateRefreshToken(userID string, role string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = internal.NewUnauthorizedError("invalid username or password", internal.ErrCodeInvalidCredentials)
	ErrUserInactive       = internal.NewForbiddenError("user account is inactive", internal.ErrCodeUserInactive)
	ErrInvalidToken       = internal.NewUnauthorizedError("invalid token", internal.ErrCodeInvalidToken)
	ErrTokenExpired       = internal.NewUnauthorizedError("token has expired", internal.ErrCodeTokenExpired)
)
