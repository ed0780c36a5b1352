package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/vncsmyrnk/jobboard/internal/adapters/repository/sqldb"
	"github.com/vncsmyrnk/jobboard/internal/adapters/repository/sqldb/sqldbtest"
	"github.com/vncsmyrnk/jobboard/internal/core/domain"
	"github.com/vncsmyrnk/jobboard/internal/core/ports"
)

const testSecret = "test-secret"

type testEnv struct {
	db           *sqldb.DB
	auth         *AuthService
	jobs         ports.JobService
	applications ports.ApplicationService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return setupTestEnvWith(t, nil, testAuthConfig())
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:       testSecret,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}
}

func setupTestEnvWith(t *testing.T, verifier ports.TokenVerifier, cfg AuthConfig) *testEnv {
	t.Helper()

	logger := zaptest.NewLogger(t)
	db := sqldbtest.NewSQLite(t)
	jobRepo := sqldb.NewJobRepository(db)

	return &testEnv{
		db:           db,
		auth:         NewAuthService(sqldb.NewUserRepository(db), verifier, cfg, logger),
		jobs:         NewJobService(jobRepo, logger),
		applications: NewApplicationService(jobRepo, sqldb.NewApplicationRepository(db), logger),
	}
}

// register creates an account and returns the identity its access token
// carries.
func (e *testEnv) register(t *testing.T, email string, role domain.Role) domain.Identity {
	t.Helper()

	_, session, err := e.auth.Register(context.Background(), ports.RegisterInput{
		FullName: "Test " + string(role),
		Email:    email,
		Password: "secret123",
		Role:     role,
	})
	require.NoError(t, err)

	identity, err := e.auth.Authenticate(context.Background(), session.AccessToken)
	require.NoError(t, err)
	return *identity
}

func (e *testEnv) postJob(t *testing.T, employer domain.Identity, title string) *domain.Job {
	t.Helper()

	job, err := e.jobs.Create(context.Background(), employer, validJobInput(title))
	require.NoError(t, err)
	return job
}

func validJobInput(title string) ports.CreateJobInput {
	return ports.CreateJobInput{
		Title:       title,
		CompanyName: "Acme",
		Location:    "Lisbon",
		Salary:      3000,
		Type:        domain.JobTypeInternship,
		Description: "Build and ship things",
	}
}

func requireKind(t *testing.T, err error, kind domain.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, domain.KindOf(err), "unexpected error: %v", err)
}
