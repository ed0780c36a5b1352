package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/jobboard/internal/core/domain"
)

type TokenPayload struct {
	Email string `json:"email"`
	Name  string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string, clientID string) (*TokenPayload, error)
}

type RegisterInput struct {
	FullName string      `json:"fullName" validate:"required"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required"`
	Role     domain.Role `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.Session, error)
	Login(ctx context.Context, input LoginInput) (*domain.User, *domain.Session, error)
	LoginWithGoogle(ctx context.Context, credential string) (*domain.User, *domain.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.Session, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	LogoutByRefreshToken(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, error)
	Authenticate(ctx context.Context, accessToken string) (*domain.Identity, error)
}

type SessionMaintenance interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}
