package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/jobboard/internal/core/domain"
	"github.com/vncsmyrnk/jobboard/internal/core/ports"
)

func TestCreateJob(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	employer := env.register(t, "hr@example.com", domain.RoleEmployer)
	student := env.register(t, "ana@example.com", domain.RoleStudent)

	t.Run("should attach the posting employer", func(t *testing.T) {
		job, err := env.jobs.Create(ctx, employer, validJobInput("  Backend Intern  "))
		require.NoError(t, err)
		assert.Equal(t, "Backend Intern", job.Title)
		assert.Equal(t, employer.UserID, job.PostedBy)
		require.NotNil(t, job.Employer)
		assert.Equal(t, "hr@example.com", job.Employer.Email)
	})

	t.Run("should forbid students", func(t *testing.T) {
		_, err := env.jobs.Create(ctx, student, validJobInput("Backend Intern"))
		requireKind(t, err, domain.KindForbidden)
	})

	t.Run("should validate input", func(t *testing.T) {
		cases := map[string]func(*ports.CreateJobInput){
			"missing title":       func(in *ports.CreateJobInput) { in.Title = "   " },
			"missing location":    func(in *ports.CreateJobInput) { in.Location = "" },
			"missing description": func(in *ports.CreateJobInput) { in.Description = "" },
			"zero salary":         func(in *ports.CreateJobInput) { in.Salary = 0 },
			"negative salary":     func(in *ports.CreateJobInput) { in.Salary = -10 },
			"unknown type":        func(in *ports.CreateJobInput) { in.Type = "freelance" },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				input := validJobInput("Backend Intern")
				mutate(&input)
				_, err := env.jobs.Create(ctx, employer, input)
				requireKind(t, err, domain.KindInvalidInput)
			})
		}
	})
}

func TestListAndGetJobs(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	jobs, err := env.jobs.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)

	employer := env.register(t, "hr@example.com", domain.RoleEmployer)
	posted := env.postJob(t, employer, "Backend Intern")

	jobs, err = env.jobs.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, posted.ID, jobs[0].ID)

	t.Run("should get by id", func(t *testing.T) {
		job, err := env.jobs.GetByID(ctx, posted.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Backend Intern", job.Title)
	})

	t.Run("should reject a malformed id", func(t *testing.T) {
		_, err := env.jobs.GetByID(ctx, "not-a-uuid")
		requireKind(t, err, domain.KindInvalidInput)
	})

	t.Run("should report a missing job", func(t *testing.T) {
		_, err := env.jobs.GetByID(ctx, uuid.NewString())
		requireKind(t, err, domain.KindNotFound)
	})
}

func TestUpdateJob(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	owner := env.register(t, "hr@example.com", domain.RoleEmployer)
	other := env.register(t, "other@example.com", domain.RoleEmployer)
	posted := env.postJob(t, owner, "Backend Intern")

	t.Run("should change only the given fields", func(t *testing.T) {
		salary := int64(4500)
		location := " Remote "
		job, err := env.jobs.Update(ctx, posted.ID.String(), owner, ports.UpdateJobInput{Salary: &salary, Location: &location})
		require.NoError(t, err)
		assert.Equal(t, int64(4500), job.Salary)
		assert.Equal(t, "Remote", job.Location)
		assert.Equal(t, "Backend Intern", job.Title)

		stored, err := env.jobs.GetByID(ctx, posted.ID.String())
		require.NoError(t, err)
		assert.Equal(t, int64(4500), stored.Salary)
	})

	t.Run("should forbid other employers", func(t *testing.T) {
		title := "Hijacked"
		_, err := env.jobs.Update(ctx, posted.ID.String(), other, ports.UpdateJobInput{Title: &title})
		requireKind(t, err, domain.KindForbidden)
	})

	t.Run("should reject invalid changes", func(t *testing.T) {
		salary := int64(0)
		_, err := env.jobs.Update(ctx, posted.ID.String(), owner, ports.UpdateJobInput{Salary: &salary})
		requireKind(t, err, domain.KindInvalidInput)

		blank := "  "
		_, err = env.jobs.Update(ctx, posted.ID.String(), owner, ports.UpdateJobInput{Title: &blank})
		requireKind(t, err, domain.KindInvalidInput)
	})

	t.Run("should report a missing job before ownership", func(t *testing.T) {
		title := "Nope"
		_, err := env.jobs.Update(ctx, uuid.NewString(), other, ports.UpdateJobInput{Title: &title})
		requireKind(t, err, domain.KindNotFound)
	})
}

func TestDeleteJob(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	owner := env.register(t, "hr@example.com", domain.RoleEmployer)
	other := env.register(t, "other@example.com", domain.RoleEmployer)
	student := env.register(t, "ana@example.com", domain.RoleStudent)
	posted := env.postJob(t, owner, "Backend Intern")

	app, err := env.applications.Apply(ctx, student, ports.ApplyInput{JobID: posted.ID.String()})
	require.NoError(t, err)

	err = env.jobs.Delete(ctx, posted.ID.String(), other)
	requireKind(t, err, domain.KindForbidden)

	require.NoError(t, env.jobs.Delete(ctx, posted.ID.String(), owner))

	_, err = env.jobs.GetByID(ctx, posted.ID.String())
	requireKind(t, err, domain.KindNotFound)

	mine, err := env.applications.ListMine(ctx, student)
	require.NoError(t, err)
	assert.Empty(t, mine, "application %s should be removed with its job", app.ID)

	err = env.jobs.Delete(ctx, posted.ID.String(), owner)
	requireKind(t, err, domain.KindNotFound)
}
