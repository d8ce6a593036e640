package types

import (
	"time"
)

type JobStatus string

const (
	JobStatusDraft    JobStatus = "draft"
	JobStatusOpen     JobStatus = "open"
	JobStatusClosed   JobStatus = "closed"
	JobStatusInReview JobStatus = "in_review"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusOpen, JobStatusClosed, JobStatusInReview:
		return true
	}
	return false
}

type Job struct {
	ID           string     `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Description  string     `db:"description" json:"description"`
	Requirements string     `db:"requirements" json:"requirements"`
	DateCreated  time.Time  `db:"date_created" json:"date_created"`
	EndDate      *time.Time `db:"end_date" json:"end_date"`
	AssignedTo   *string    `db:"assigned_to" json:"assigned_to"`
	Status       JobStatus  `db:"status" json:"status"`
	Location     string     `db:"location" json:"location"`
	Salary       *float64   `db:"salary" json:"salary"`
	Department   string     `db:"department" json:"department"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// JobDetail is a job together with its assigned hiring manager, if any.
type JobDetail struct {
	*Job
	AssignedManager *User `json:"assigned_manager"`
}

type CreateJobInput struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	EndDate      *time.Time `json:"end_date"`
	AssignedTo   *string    `json:"assigned_to"`
	Status       JobStatus  `json:"status"`
	Location     string     `json:"location"`
	Salary       *float64   `json:"salary"`
	Department   string     `json:"department"`
}

// JobUpdate is a partial job update; nil fields are left unchanged.
type JobUpdate struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Requirements *string    `json:"requirements"`
	EndDate      *time.Time `json:"end_date"`
	AssignedTo   *string    `json:"assigned_to"`
	Status       *JobStatus `json:"status"`
	Location     *string    `json:"location"`
	Salary       *float64   `json:"salary"`
	Department   *string    `json:"department"`
}

// JobFilter is decoded from the jobs list query string.
type JobFilter struct {
	Skip   uint64 `form:"skip"`
	Limit  uint64 `form:"limit"`
	Status string `form:"status"`
	Title  string `form:"title"`
}
