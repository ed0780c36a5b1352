package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeInternship JobType = "internship"
	JobTypeContract   JobType = "contract"
)

type Job struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	CompanyName  string       `json:"companyName"`
	Location     string       `json:"location"`
	Salary       int64        `json:"salary"`
	Type         JobType      `json:"type"`
	Description  string       `json:"description"`
	Requirements string       `json:"requirements"`
	PostedBy     uuid.UUID    `json:"postedBy"`
	Employer     *UserSummary `json:"employer,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// JobSummary is attached to applications in dashboard listings.
type JobSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"companyName"`
	Location    string    `json:"location"`
	Type        JobType   `json:"type"`
	Salary      int64     `json:"salary"`
	PostedBy    uuid.UUID `json:"postedBy"`
}
