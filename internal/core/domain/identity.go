package domain

import "github.com/google/uuid"

// Identity is the caller resolved from a verified access token. Services take
// it as an explicit argument instead of reading it from request state.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func (i Identity) Is(role Role) bool {
	return i.Role == role
}

// Owns reports whether the caller is the employer that posted the job.
func (i Identity) Owns(job *Job) bool {
	return i.Role == RoleEmployer && job != nil && job.PostedBy == i.UserID
}
