// Package seed loads demo users and jobs into an empty database. Running it
// twice is safe: existing usernames and job titles are left alone.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wehire/internal/apperr"
	"wehire/internal/utils"
	"wehire/pkg/types"

	"github.com/sirupsen/logrus"
)

// DefaultPassword is shared by every seeded account.
const DefaultPassword = "password123"

type Repository interface {
	UserByUsername(ctx context.Context, username string) (*types.User, error)
	Jobs(ctx context.Context, filter *types.JobFilter) ([]*types.Job, error)
}

type Signer interface {
	Signup(ctx context.Context, input *types.SignupInput) (*types.User, error)
}

type JobCreator interface {
	CreateJob(ctx context.Context, input *types.CreateJobInput) (*types.Job, error)
}

type Seeder struct {
	repo   Repository
	users  Signer
	jobs   JobCreator
	logger logrus.FieldLogger
	now    func() time.Time
}

func New(repo Repository, users Signer, jobs JobCreator, logger logrus.FieldLogger) *Seeder {
	return &Seeder{repo: repo, users: users, jobs: jobs, logger: logger, now: time.Now}
}

type seedJob struct {
	input   types.CreateJobInput
	manager string
	endIn   time.Duration
}

var users = []types.SignupInput{
	{Username: "hr_admin", Password: DefaultPassword, Role: types.UserRoleHR},
	{Username: "hiring_manager1", Password: DefaultPassword, Role: types.UserRoleHiringManager},
	{Username: "hiring_manager2", Password: DefaultPassword, Role: types.UserRoleHiringManager},
	{Username: "employee1", Password: DefaultPassword, Role: types.UserRoleEmployee},
}

var jobs = []seedJob{
	{
		input: types.CreateJobInput{
			Title:        "Senior Backend Developer",
			Description:  "We are looking for a Senior Backend Developer with experience in Go and PostgreSQL.",
			Requirements: "5+ years of backend experience, Go, PostgreSQL",
			Status:       types.JobStatusOpen,
			Location:     "San Francisco, CA",
			Salary:       utils.Float64Ptr(150000),
			Department:   "Engineering",
		},
		manager: "hiring_manager1",
		endIn:   30 * 24 * time.Hour,
	},
	{
		input: types.CreateJobInput{
			Title:        "Frontend Developer",
			Description:  "Frontend Developer with React.js experience needed for our growing team.",
			Requirements: "3+ years of experience in React.js, Experience with Redux, Knowledge of TypeScript",
			Status:       types.JobStatusOpen,
			Location:     "Remote",
			Salary:       utils.Float64Ptr(120000),
			Department:   "Engineering",
		},
		manager: "hiring_manager2",
		endIn:   15 * 24 * time.Hour,
	},
	{
		input: types.CreateJobInput{
			Title:        "Product Manager",
			Description:  "Experienced Product Manager to lead our product development efforts.",
			Requirements: "5+ years in product management, Experience with Agile methodologies",
			Status:       types.JobStatusInReview,
			Location:     "New York, NY",
			Salary:       utils.Float64Ptr(140000),
			Department:   "Product",
		},
		manager: "hiring_manager1",
		endIn:   20 * 24 * time.Hour,
	},
}

// Run seeds users first so jobs can be assigned to the seeded managers.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.SeedUsers(ctx); err != nil {
		return err
	}
	return s.SeedJobs(ctx)
}

func (s *Seeder) SeedUsers(ctx context.Context) error {
	var created int
	for _, input := range users {
		_, err := s.repo.UserByUsername(ctx, input.Username)
		if err == nil {
			continue
		}
		if !apperr.IsNotFound(err) {
			return fmt.Errorf("lookup user %s: %w", input.Username, err)
		}

		input := input
		if _, err := s.users.Signup(ctx, &input); err != nil {
			return fmt.Errorf("seed user %s: %w", input.Username, err)
		}
		created++
	}

	s.logger.WithFields(logrus.Fields{"created": created, "total": len(users)}).Info("users seeded")

	return nil
}

// SeedJobs creates each demo job, and with it the default interview
// structure, unless a job with the same title already exists.
func (s *Seeder) SeedJobs(ctx context.Context) error {
	var created int
	for _, j := range jobs {
		exists, err := s.jobExists(ctx, j.input.Title)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		input := j.input
		endDate := s.now().Add(j.endIn).UTC()
		input.EndDate = &endDate

		manager, err := s.repo.UserByUsername(ctx, j.manager)
		switch {
		case err == nil:
			input.AssignedTo = &manager.ID
		case !apperr.IsNotFound(err):
			return fmt.Errorf("lookup manager %s: %w", j.manager, err)
		}

		job, err := s.jobs.CreateJob(ctx, &input)
		if err != nil {
			return fmt.Errorf("seed job %q: %w", input.Title, err)
		}
		s.logger.WithFields(logrus.Fields{"job_id": job.ID, "title": job.Title}).Debug("seeded job")
		created++
	}

	s.logger.WithFields(logrus.Fields{"created": created, "total": len(jobs)}).Info("jobs seeded")

	return nil
}

func (s *Seeder) jobExists(ctx context.Context, title string) (bool, error) {
	matches, err := s.repo.Jobs(ctx, &types.JobFilter{Title: title})
	if err != nil {
		return false, fmt.Errorf("lookup job %q: %w", title, err)
	}
	for _, job := range matches {
		if strings.EqualFold(job.Title, title) {
			return true, nil
		}
	}
	return false, nil
}
