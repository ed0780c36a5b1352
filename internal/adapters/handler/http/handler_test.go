package http

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHiringFlow walks an employer and a student through posting, applying,
// reviewing and cleaning up.
func TestHiringFlow(t *testing.T) {
	app := setupTestApp(t)
	employer := app.signUp(t, "hr@example.com", "employer")
	student := app.signUp(t, "ana@example.com", "student")

	// Step 1: Employer posts a job
	resp := app.do(t, employer, http.MethodPost, "/jobs", map[string]any{
		"title":       "Backend Intern",
		"companyName": "Acme",
		"location":    "Lisbon",
		"salary":      3000,
		"type":        "internship",
		"description": "Build and ship things",
	})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	job := resp.object(t, "job")
	jobID := job["id"].(string)
	assert.Equal(t, "hr@example.com", job["employer"].(map[string]any)["email"])

	// Step 2: Anyone can browse it
	resp = app.do(t, app.NewClient(t), http.MethodGet, "/jobs", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, true, resp.Body["success"])
	assert.EqualValues(t, 1, resp.Body["count"])
	assert.Len(t, resp.list(t, "jobs"), 1)

	// Step 3: Student applies, twice
	resp = app.do(t, student, http.MethodPost, "/jobs/apply", map[string]any{"jobId": jobID, "coverLetter": "Hire me"})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	application := resp.object(t, "application")
	appID := application["id"].(string)
	assert.Equal(t, "pending", application["status"])

	resp = app.do(t, student, http.MethodPost, "/jobs/apply", map[string]any{"jobId": jobID})
	assert.Equal(t, http.StatusConflict, resp.Status)
	assert.Equal(t, false, resp.Body["success"])

	// Step 4: Employer reviews applicants and accepts
	resp = app.do(t, employer, http.MethodGet, "/jobs/"+jobID+"/applicants", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, resp.list(t, "applicants"), 1)

	resp = app.do(t, employer, http.MethodGet, "/applications/employer", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.EqualValues(t, 1, resp.Body["count"])

	resp = app.do(t, employer, http.MethodPut, "/applications/"+appID+"/status", map[string]any{"status": "accepted"})
	require.Equal(t, http.StatusOK, resp.Status, resp.Body)
	assert.Equal(t, "accepted", resp.object(t, "application")["status"])

	// Step 5: Student sees the outcome and withdraws
	resp = app.do(t, student, http.MethodGet, "/applications/my", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	mine := resp.list(t, "applications")
	require.Len(t, mine, 1)
	assert.Equal(t, "accepted", mine[0].(map[string]any)["status"])

	resp = app.do(t, student, http.MethodDelete, "/applications/"+appID, nil)
	require.Equal(t, http.StatusOK, resp.Status)

	resp = app.do(t, student, http.MethodGet, "/applications/my", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.EqualValues(t, 0, resp.Body["count"])
	assert.Empty(t, resp.list(t, "applications"))

	// Step 6: Employer deletes the job
	resp = app.do(t, employer, http.MethodDelete, "/jobs/"+jobID, nil)
	require.Equal(t, http.StatusOK, resp.Status)

	resp = app.do(t, student, http.MethodGet, "/jobs/"+jobID, nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestAccessControl(t *testing.T) {
	app := setupTestApp(t)
	employer := app.signUp(t, "hr@example.com", "employer")
	other := app.signUp(t, "other@example.com", "employer")
	student := app.signUp(t, "ana@example.com", "student")
	anonymous := app.NewClient(t)

	resp := app.do(t, employer, http.MethodPost, "/jobs", map[string]any{
		"title": "Backend Intern", "location": "Lisbon", "salary": 3000, "type": "internship", "description": "Build",
	})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	jobID := resp.object(t, "job")["id"].(string)

	cases := []struct {
		name   string
		client *http.Client
		method string
		path   string
		body   any
		status int
	}{
		{"anonymous cannot post jobs", anonymous, http.MethodPost, "/jobs", map[string]any{}, http.StatusUnauthorized},
		{"anonymous cannot apply", anonymous, http.MethodPost, "/jobs/apply", map[string]any{"jobId": jobID}, http.StatusUnauthorized},
		{"anonymous has no profile", anonymous, http.MethodGet, "/auth/me", nil, http.StatusUnauthorized},
		{"students cannot post jobs", student, http.MethodPost, "/jobs", map[string]any{}, http.StatusForbidden},
		{"employers cannot apply", employer, http.MethodPost, "/jobs/apply", map[string]any{"jobId": jobID}, http.StatusForbidden},
		{"students cannot list employer applications", student, http.MethodGet, "/applications/employer", nil, http.StatusForbidden},
		{"employers have no own applications", employer, http.MethodGet, "/applications/my", nil, http.StatusForbidden},
		{"other employers cannot edit", other, http.MethodPut, "/jobs/" + jobID, map[string]any{"title": "Mine"}, http.StatusForbidden},
		{"other employers cannot delete", other, http.MethodDelete, "/jobs/" + jobID, nil, http.StatusForbidden},
		{"other employers cannot see applicants", other, http.MethodGet, "/jobs/" + jobID + "/applicants", nil, http.StatusForbidden},
		{"malformed job id", anonymous, http.MethodGet, "/jobs/not-a-uuid", nil, http.StatusBadRequest},
		{"missing job", anonymous, http.MethodGet, "/jobs/" + uuid.NewString(), nil, http.StatusNotFound},
		{"invalid salary", employer, http.MethodPost, "/jobs", map[string]any{"title": "T", "location": "L", "salary": 0, "type": "internship", "description": "D"}, http.StatusBadRequest},
		{"invalid status", employer, http.MethodPut, "/applications/" + uuid.NewString() + "/status", map[string]any{"status": "hired"}, http.StatusBadRequest},
		{"unknown route", anonymous, http.MethodGet, "/nowhere", nil, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := app.do(t, tc.client, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, resp.Status, resp.Body)
			assert.Equal(t, false, resp.Body["success"])
			assert.NotEmpty(t, resp.Body["message"])
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	app := setupTestApp(t)
	client := app.signUp(t, "ana@example.com", "student")

	resp := app.do(t, client, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.Status)
	user := resp.object(t, "user")
	assert.Equal(t, "ana@example.com", user["email"])
	assert.Equal(t, "student", user["role"])
	assert.NotContains(t, user, "passwordHash")

	resp = app.do(t, client, http.MethodPost, "/auth/refresh", nil)
	require.Equal(t, http.StatusOK, resp.Status, resp.Body)

	resp = app.do(t, client, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.Status)

	resp = app.do(t, client, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)

	resp = app.do(t, client, http.MethodPost, "/auth/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)

	t.Run("should log in again", func(t *testing.T) {
		resp := app.do(t, client, http.MethodPost, "/auth/login", map[string]any{"email": "ana@example.com", "password": "secret123"})
		require.Equal(t, http.StatusOK, resp.Status)

		resp = app.do(t, client, http.MethodGet, "/auth/me", nil)
		assert.Equal(t, http.StatusOK, resp.Status)
	})

	t.Run("should reject bad credentials", func(t *testing.T) {
		resp := app.do(t, app.NewClient(t), http.MethodPost, "/auth/login", map[string]any{"email": "ana@example.com", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
	})

	t.Run("should reject a duplicate registration", func(t *testing.T) {
		resp := app.do(t, app.NewClient(t), http.MethodPost, "/auth/register", map[string]any{
			"fullName": "Ana", "email": "ana@example.com", "password": "x",
		})
		assert.Equal(t, http.StatusConflict, resp.Status)
	})
}

func TestHealth(t *testing.T) {
	app := setupTestApp(t)

	resp := app.do(t, app.NewClient(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, true, resp.Body["success"])
}
