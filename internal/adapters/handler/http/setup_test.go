package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/vncsmyrnk/jobboard/internal/adapters/repository/sqldb"
	"github.com/vncsmyrnk/jobboard/internal/adapters/repository/sqldb/sqldbtest"
	"github.com/vncsmyrnk/jobboard/internal/core/services"
)

type TestApp struct {
	DB      *sqldb.DB
	Handler http.Handler
	Server  *httptest.Server
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	logger := zaptest.NewLogger(t)
	db := sqldbtest.NewSQLite(t)

	jobRepo := sqldb.NewJobRepository(db)
	authService := services.NewAuthService(sqldb.NewUserRepository(db), nil, services.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}, logger)

	router := NewHandler(Handlers{
		Auth:         NewAuthHandler(authService, CookieConfig{}, logger),
		Jobs:         NewJobHandler(services.NewJobService(jobRepo, logger), logger),
		Applications: NewApplicationHandler(services.NewApplicationService(jobRepo, sqldb.NewApplicationRepository(db), logger), logger),
		Health:       NewHealthHandler(db, logger),
		Guard:        NewGuard(authService),
	}, []string{"http://localhost:5173"}, logger)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestApp{DB: db, Handler: router, Server: server}
}

// NewClient returns a client with its own cookie jar, standing in for one
// browser session.
func (app *TestApp) NewClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

type apiResponse struct {
	Status int
	Body   map[string]any
}

func (r apiResponse) object(t *testing.T, key string) map[string]any {
	t.Helper()
	obj, ok := r.Body[key].(map[string]any)
	require.True(t, ok, "response has no %q object: %v", key, r.Body)
	return obj
}

func (r apiResponse) list(t *testing.T, key string) []any {
	t.Helper()
	items, ok := r.Body[key].([]any)
	require.True(t, ok, "response has no %q list: %v", key, r.Body)
	return items
}

func (app *TestApp) do(t *testing.T, client *http.Client, method, path string, payload any) apiResponse {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, app.Server.URL+"/api/v1"+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := apiResponse{Status: resp.StatusCode}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out.Body))
	return out
}

// signUp registers an account on a fresh client and returns the client, which
// now carries the session cookies.
func (app *TestApp) signUp(t *testing.T, email, role string) *http.Client {
	t.Helper()

	client := app.NewClient(t)
	resp := app.do(t, client, http.MethodPost, "/auth/register", map[string]any{
		"fullName": "User " + email,
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	return client
}
