package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIdentityOwns(t *testing.T) {
	employerID := uuid.New()
	job := &Job{ID: uuid.New(), PostedBy: employerID}

	assert.True(t, Identity{UserID: employerID, Role: RoleEmployer}.Owns(job))
	assert.False(t, Identity{UserID: uuid.New(), Role: RoleEmployer}.Owns(job))
	assert.False(t, Identity{UserID: employerID, Role: RoleStudent}.Owns(job))
	assert.False(t, Identity{UserID: employerID, Role: RoleEmployer}.Owns(nil))
}

func TestDomainError(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("failed to list jobs", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("wrapped: %w", err)))
	assert.NotEmpty(t, err.StackTrace())
	assert.Contains(t, err.Error(), "connection refused")

	assert.Equal(t, KindInternal, KindOf(cause))
	assert.Equal(t, KindConflict, KindOf(Conflict("you already applied to this job", nil)))
}

func TestValidValues(t *testing.T) {
	assert.True(t, RoleStudent.Valid())
	assert.False(t, Role("admin").Valid())

	assert.True(t, StatusRejected.Valid())
	assert.False(t, ApplicationStatus("Accepted").Valid())
}
