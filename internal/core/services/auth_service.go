package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vncsmyrnk/jobboard/internal/core/domain"
	"github.com/vncsmyrnk/jobboard/internal/core/ports"
)

type AuthConfig struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	BcryptCost      int
	GoogleClientID  string
}

type AuthService struct {
	userRepo            ports.UserRepository
	googleTokenVerifier ports.TokenVerifier
	jwtSecret           []byte
	accessTokenTTL      time.Duration
	refreshTokenTTL     time.Duration
	bcryptCost          int
	googleClientID      string
	logger              *zap.Logger
}

// accessClaims is the payload of an access token.
type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// NewAuthService builds the session issuer. googleTokenVerifier may be nil
// when Google sign-in is not configured.
func NewAuthService(userRepo ports.UserRepository, googleTokenVerifier ports.TokenVerifier, cfg AuthConfig, logger *zap.Logger) *AuthService {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:            userRepo,
		googleTokenVerifier: googleTokenVerifier,
		jwtSecret:           []byte(cfg.JWTSecret),
		accessTokenTTL:      cfg.AccessTokenTTL,
		refreshTokenTTL:     cfg.RefreshTokenTTL,
		bcryptCost:          cfg.BcryptCost,
		googleClientID:      cfg.GoogleClientID,
		logger:              logger,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (_ *domain.User, _ *domain.Session, err error) {
	ctx, span := tracer.Start(ctx, "AuthService.Register")
	defer func() { finishSpan(span, err) }()

	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = normalizeEmail(input.Email)
	if input.Role == "" {
		input.Role = domain.RoleStudent
	}
	if err := validateInput(input); err != nil {
		return nil, nil, err
	}
	if !input.Role.Valid() {
		return nil, nil, domain.InvalidInput("role must be one of: student employer", nil)
	}

	_, err = s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, nil, domain.Conflict("user already exists with this email", nil)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, domain.Internal("failed to look up user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, nil, domain.InvalidInput("password must be at most 72 bytes", nil)
		}
		return nil, nil, domain.Internal("failed to hash password", err)
	}

	user := &domain.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, nil, domain.Conflict("user already exists with this email", nil)
		}
		return nil, nil, domain.Internal("failed to create user", err)
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	return user, session, nil
}

func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (_ *domain.User, _ *domain.Session, err error) {
	ctx, span := tracer.Start(ctx, "AuthService.Login")
	defer func() { finishSpan(span, err) }()

	input.Email = normalizeEmail(input.Email)
	if err := validateInput(input); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.NotFound("user not found", nil)
		}
		return nil, nil, domain.Internal("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, domain.Unauthorized("invalid credentials", nil)
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))
	return user, session, nil
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, credential string) (_ *domain.User, _ *domain.Session, err error) {
	ctx, span := tracer.Start(ctx, "AuthService.LoginWithGoogle")
	defer func() { finishSpan(span, err) }()

	if s.googleTokenVerifier == nil || s.googleClientID == "" {
		return nil, nil, domain.Unauthorized("google sign-in is not configured", nil)
	}
	if credential == "" {
		return nil, nil, domain.InvalidInput("credential is required", nil)
	}

	payload, err := s.googleTokenVerifier.Verify(ctx, credential, s.googleClientID)
	if err != nil {
		return nil, nil, domain.Unauthorized("invalid google token", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(payload.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.NotFound("no account is registered for this email", nil)
		}
		return nil, nil, domain.Internal("failed to look up user", err)
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in with google", zap.String("user_id", user.ID.String()))
	return user, session, nil
}

// Refresh exchanges a valid refresh token for a new session. The presented
// refresh token is rotated and stops working.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (_ *domain.Session, err error) {
	ctx, span := tracer.Start(ctx, "AuthService.Refresh")
	defer func() { finishSpan(span, err) }()

	if refreshToken == "" {
		return nil, domain.Unauthorized("missing refresh token", nil)
	}

	user, err := s.userRepo.GetByRefreshTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorized("invalid refresh token", nil)
		}
		return nil, domain.Internal("failed to get refresh token", err)
	}

	if user.RefreshTokenExpiresAt == nil || user.RefreshTokenExpiresAt.Before(time.Now()) {
		if err := s.userRepo.ClearRefreshToken(ctx, user.ID); err != nil {
			s.logger.Warn("failed to clear expired refresh token", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
		return nil, domain.Unauthorized("refresh token expired", nil)
	}

	return s.issueSession(ctx, user)
}

// Logout clears the stored refresh token. It succeeds when the user has none
// or no longer exists.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return domain.Internal("failed to clear refresh token", err)
	}
	s.logger.Info("user logged out", zap.String("user_id", userID.String()))
	return nil
}

func (s *AuthService) LogoutByRefreshToken(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	user, err := s.userRepo.GetByRefreshTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return domain.Internal("failed to get refresh token", err)
	}

	return s.Logout(ctx, user.ID)
}

func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	identity, err := s.Authenticate(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorized("session user no longer exists", nil)
		}
		return nil, domain.Internal("failed to get user", err)
	}
	return user, nil
}

// Authenticate verifies the access token signature and expiry and returns the
// identity it carries. It does not touch the store.
func (s *AuthService) Authenticate(_ context.Context, accessToken string) (*domain.Identity, error) {
	if accessToken == "" {
		return nil, domain.Unauthorized("missing session token", nil)
	}

	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, domain.Unauthorized("invalid or expired session", err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.Unauthorized("invalid or expired session", err)
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return nil, domain.Unauthorized("invalid or expired session", nil)
	}

	return &domain.Identity{UserID: userID, Email: claims.Email, Role: role}, nil
}

// PurgeExpiredSessions clears refresh tokens that expired. It backs the
// sessionpurge command.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.userRepo.PurgeExpiredRefreshTokens(ctx, time.Now())
	if err != nil {
		return 0, domain.Internal("failed to purge expired sessions", err)
	}
	return n, nil
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	now := time.Now()

	accessToken, accessExp, err := s.generateAccessToken(user, now)
	if err != nil {
		return nil, domain.Internal("failed to generate access token", err)
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, domain.Internal("failed to generate refresh token", err)
	}
	refreshExp := now.Add(s.refreshTokenTTL)

	tokenHash := hashToken(refreshToken)
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, tokenHash, refreshExp); err != nil {
		return nil, domain.Internal("failed to store refresh token", err)
	}
	user.RefreshTokenHash = tokenHash
	user.RefreshTokenExpiresAt = &refreshExp

	return &domain.Session{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}

func (s *AuthService) generateAccessToken(user *domain.User, now time.Time) (string, time.Time, error) {
	exp := now.Add(s.accessTokenTTL)
	claims := accessClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, exp, nil
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ ports.AuthService = (*AuthService)(nil)
var _ ports.SessionMaintenance = (*AuthService)(nil)
