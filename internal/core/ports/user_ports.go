package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/jobboard/internal/core/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByRefreshTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	SetRefreshToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error
	PurgeExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}
