// Package testutil provides an in-memory stand-in for store.Store used by the
// service tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"wehire/internal/apperr"
	"wehire/internal/utils"
	"wehire/pkg/types"
)

type tables struct {
	users      []types.User
	jobs       []types.Job
	categories []types.InterviewCategory
	questions  []types.InterviewQuestion
	candidates []types.Candidate
}

func (t tables) clone() tables {
	return tables{
		users:      append([]types.User(nil), t.users...),
		jobs:       append([]types.Job(nil), t.jobs...),
		categories: append([]types.InterviewCategory(nil), t.categories...),
		questions:  append([]types.InterviewQuestion(nil), t.questions...),
		candidates: append([]types.Candidate(nil), t.candidates...),
	}
}

type failure struct {
	nth int
	err error
}

// MemStore keeps every table in memory and mirrors the constraints the
// Postgres schema enforces. InTx restores the previous state when fn fails.
type MemStore struct {
	mu sync.Mutex
	t  tables

	calls    map[string]int
	failures map[string]failure
}

func NewMemStore() *MemStore {
	return &MemStore{
		calls:    make(map[string]int),
		failures: make(map[string]failure),
	}
}

// FailOn makes the nth call (1-based) of the named write method return err.
func (m *MemStore) FailOn(method string, nth int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[method] = failure{nth: nth, err: err}
}

// Calls reports how many times the named write method ran.
func (m *MemStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// RowCounts returns the number of stored categories and questions.
func (m *MemStore) RowCounts() (categories, questions int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.t.categories), len(m.t.questions)
}

// CandidateCount returns the number of stored candidates.
func (m *MemStore) CandidateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.t.candidates)
}

func (m *MemStore) hit(method string) error {
	m.calls[method]++
	if f, ok := m.failures[method]; ok && f.nth == m.calls[method] {
		return f.err
	}
	return nil
}

func (m *MemStore) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	snapshot := m.t.clone()
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.t = snapshot
		m.mu.Unlock()

		if _, ok := apperr.As(err); ok {
			return err
		}
		return apperr.TransactionFailure("operation failed and was rolled back", err)
	}

	return nil
}

// Users

func (m *MemStore) CreateUser(ctx context.Context, user *types.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.hit("CreateUser"); err != nil {
		return err
	}
	for _, existing := range m.t.users {
		if existing.Username == user.Username {
			return apperr.Conflict("this value already exists")
		}
	}

	user.ID = utils.NewID()
	user.CreatedAt = time.Now()
	m.t.users = append(m.t.users, *user)
	return nil
}

func (m *MemStore) User(ctx context.Context, userID string) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.t.users {
		if user.ID == userID {
			return &user, nil
		}
	}
	return nil, apperr.NotFoundf("user %s not found", userID)
}

func (m *MemStore) UserByUsername(ctx context.Context, username string) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.t.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, apperr.NotFoundf("user %s not found", username)
}

func (m *MemStore) UsersByRole(ctx context.Context, role types.UserRole) ([]*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]*types.User, 0)
	for _, user := range m.t.users {
		if user.Role == role {
			user := user
			users = append(users, &user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// Jobs

func (m *MemStore) jobIndex(jobID string) int {
	for i, job := range m.t.jobs {
		if job.ID == jobID {
			return i
		}
	}
	return -1
}

func (m *MemStore) CreateJob(ctx context.Context, job *types.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.hit("CreateJob"); err != nil {
		return err
	}
	if job.AssignedTo != nil {
		found := false
		for _, user := range m.t.users {
			if user.ID == *job.AssignedTo {
				found = true
			}
		}
		if !found {
			return apperr.NotFound("referenced row not found")
		}
	}

	now := time.Now()
	job.ID = utils.NewID()
	job.UpdatedAt = now
	if job.DateCreated.IsZero() {
		job.DateCreated = now
	}
	if job.Status == "" {
		job.Status = types.JobStatusDraft
	}
	m.t.jobs = append(m.t.jobs, *job)
	return nil
}

func (m *MemStore) Job(ctx context.Context, jobID string) (*types.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.jobIndex(jobID); i >= 0 {
		job := m.t.jobs[i]
		return &job, nil
	}
	return nil, apperr.NotFoundf("job %s not found", jobID)
}

func (m *MemStore) JobExists(ctx context.Context, jobID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.jobIndex(jobID) >= 0, nil
}

func (m *MemStore) Jobs(ctx context.Context, filter *types.JobFilter) ([]*types.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobs := make([]*types.Job, 0)
	for _, job := range m.t.jobs {
		if filter != nil && filter.Status != "" && string(job.Status) != filter.Status {
			continue
		}
		if filter != nil && filter.Title != "" && !strings.Contains(strings.ToLower(job.Title), strings.ToLower(filter.Title)) {
			continue
		}
		job := job
		jobs = append(jobs, &job)
	}

	var skip, limit uint64 = 0, 100
	if filter != nil {
		skip = filter.Skip
		if filter.Limit > 0 {
			limit = filter.Limit
		}
	}
	if skip >= uint64(len(jobs)) {
		return []*types.Job{}, nil
	}
	jobs = jobs[skip:]
	if limit < uint64(len(jobs)) {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (m *MemStore) JobsByManager(ctx context.Context, managerID string) ([]*types.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobs := make([]*types.Job, 0)
	for _, job := range m.t.jobs {
		if job.AssignedTo != nil && *job.AssignedTo == managerID {
			job := job
			jobs = append(jobs, &job)
		}
	}
	return jobs, nil
}

func (m *MemStore) UpdateJob(ctx context.Context, jobID string, update *types.JobUpdate) (*types.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.hit("UpdateJob"); err != nil {
		return nil, err
	}
	i := m.jobIndex(jobID)
	if i < 0 {
		return nil, apperr.NotFoundf("job %s not found", jobID)
	}

	job := &m.t.jobs[i]
	if update.Title != nil {
		job.Title = *update.Title
	}
	if update.Description != nil {
		job.Description = *update.Description
	}
	if update.Requirements != nil {
		job.Requirements = *update.Requirements
	}
	if update.EndDate != nil {
		job.EndDate = update.EndDate
	}
	if update.AssignedTo != nil {
		job.AssignedTo = update.AssignedTo
	}
	if update.Status != nil {
		job.Status = *update.Status
	}
	if update.Location != nil {
		job.Location = *update.Location
	}
	if update.Salary != nil {
		job.Salary = update.Salary
	}
	if update.Department != nil {
		job.Department = *update.Department
	}
	job.UpdatedAt = time.Now()

	updated := *job
	return &updated, nil
}

func (m *MemStore) DeleteJob(ctx context.Context, jobID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.hit("DeleteJob"); err != nil {
		return false, apperr.TransactionFailure("operation failed and was rolled back", err)
	}
	i := m.jobIndex(jobID)
	if i < 0 {
		return false, nil
	}

	m.t.questions = filter(m.t.questions, func(q types.InterviewQuestion) bool { return q.JobID != jobID })
	m.t.categories = filter(m.t.categories, func(c types.InterviewCategory) bool { return c.JobID != jobID })
	m.t.candidates = filter(m.t.candidates, func(c types.Candidate) bool { return c.JobID != jobID })
	m.t.jobs = append(m.t.jobs[:i:i], m.t.jobs[i+1:]...)
	return true, nil
}

// Interview categories

func (m *MemStore) CreateCategory(ctx context.Context, category *types.InterviewCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.hit("CreateCategory"); err != nil {
		return err
	}
	if m.jobIndex(category.JobID) < 0 {
		return apperr.NotFound("referenced job not found")
	}
	if category.DefaultTime <= 0 {
		return apperr.ValidationField("default_time", "invalid value")
	}

	category.ID = utils.NewID()
	category.CreatedAt = time.Now()

	row := *category
	row.Questions = nil
	m.t.categories = append(m.t.categories, row)
	return nil
}

func (m *MemStore) category(categoryID string) (types.InterviewCategory, bool) {
	for _, category := range m.t.categories {
		if category.ID == categoryID {
			return category, true
		}
	}
	return types.InterviewCategory{}, false
}

func (m *MemStore) Category(ctx context.Context, categoryID string) (*types.InterviewCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if category, ok := m.category(categoryID); ok {
		return &category, nil
	}
	return nil, apperr.NotFoundf("interview category %s not found", categoryID)
}

func (m *MemStore) CategoriesByJob(ctx context.Context, jobID string) ([]*types.InterviewCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	categories := make([]*types.InterviewCategory, 0)
	for _, category := range m.t.categories {
		if category.JobID == jobID {
			category := category
			categories = append(categories, &category)
		}
	}
	return categories, nil
}

func (m *MemStore) DeleteCategory(ctx context.Context, categoryID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.hit("DeleteCategory"); err != nil {
		return false, apperr.TransactionFailure("operation failed and was rolled back", err)
	}
	if _, ok := m.category(categoryID); !ok {
		return false, nil
	}

	m.t.questions = filter(m.t.questions, func(q types.InterviewQuestion) bool { return q.CategoryID != categoryID })
	m.t.categories = filter(m.t.categories, func(c types.InterviewCategory) bool { return c.ID != categoryID })
	return true, nil
}

// Interview questions

func (m *MemStore) CreateQuestion(ctx context.Context, question *types.InterviewQuestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.hit("CreateQuestion"); err != nil {
		return err
	}
	if m.jobIndex(question.JobID) < 0 {
		return apperr.NotFound("referenced job not found")
	}
	if category, ok := m.category(question.CategoryID); !ok || category.JobID != question.JobID {
		return apperr.IntegrityViolation("question job does not match its category's job")
	}

	now := time.Now()
	question.ID = utils.NewID()
	question.CreatedAt = now
	question.UpdatedAt = now
	if question.Status == "" {
		question.Status = types.QuestionStatusActive
	}
	m.t.questions = append(m.t.questions, *question)
	return nil
}

func (m *MemStore) questionIndex(questionID string) int {
	for i, question := range m.t.questions {
		if question.ID == questionID {
			return i
		}
	}
	return -1
}

func (m *MemStore) Question(ctx context.Context, questionID string) (*types.InterviewQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.questionIndex(questionID); i >= 0 {
		question := m.t.questions[i]
		return &question, nil
	}
	return nil, apperr.NotFoundf("interview question %s not found", questionID)
}

func (m *MemStore) QuestionsByJob(ctx context.Context, jobID string) ([]*types.InterviewQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	questions := make([]*types.InterviewQuestion, 0)
	for _, question := range m.t.questions {
		if question.JobID == jobID {
			question := question
			questions = append(questions, &question)
		}
	}
	return questions, nil
}

func (m *MemStore) QuestionsByCategory(ctx context.Context, categoryID string, jobID *string) ([]*types.InterviewQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	questions := make([]*types.InterviewQuestion, 0)
	for _, question := range m.t.questions {
		if question.CategoryID != categoryID {
			continue
		}
		if jobID != nil && question.JobID != *jobID {
			continue
		}
		question := question
		questions = append(questions, &question)
	}
	return questions, nil
}

func (m *MemStore) UpdateQuestion(ctx context.Context, questionID string, update *types.QuestionUpdate) (*types.InterviewQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.hit("UpdateQuestion"); err != nil {
		return nil, err
	}
	i := m.questionIndex(questionID)
	if i < 0 {
		return nil, apperr.NotFoundf("interview question %s not found", questionID)
	}

	question := m.t.questions[i]
	if update.CategoryID != nil {
		category, ok := m.category(*update.CategoryID)
		if !ok || category.JobID != question.JobID {
			return nil, apperr.IntegrityViolation("question job does not match its category's job")
		}
		question.CategoryID = *update.CategoryID
	}
	if update.Text != nil {
		question.Text = *update.Text
	}
	if update.Status != nil {
		question.Status = *update.Status
	}
	if update.MustAsk != nil {
		question.MustAsk = *update.MustAsk
	}
	if !update.IsEmpty() {
		question.UpdatedAt = time.Now()
	}

	m.t.questions[i] = question
	return &question, nil
}

func (m *MemStore) DeleteQuestion(ctx context.Context, questionID string) (*types.InterviewQuestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.hit("DeleteQuestion"); err != nil {
		return nil, err
	}
	i := m.questionIndex(questionID)
	if i < 0 {
		return nil, apperr.NotFoundf("interview question %s not found", questionID)
	}

	question := m.t.questions[i]
	m.t.questions = append(m.t.questions[:i:i], m.t.questions[i+1:]...)
	return &question, nil
}

// Candidates

func (m *MemStore) candidateIndex(candidateID string) int {
	for i, candidate := range m.t.candidates {
		if candidate.ID == candidateID {
			return i
		}
	}
	return -1
}

func (m *MemStore) CreateCandidate(ctx context.Context, candidate *types.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.hit("CreateCandidate"); err != nil {
		return err
	}
	if m.jobIndex(candidate.JobID) < 0 {
		return apperr.NotFound("referenced job not found")
	}
	for _, existing := range m.t.candidates {
		if existing.Email == candidate.Email {
			return apperr.Conflict("this value already exists")
		}
	}

	now := time.Now()
	candidate.ID = utils.NewID()
	candidate.UpdatedAt = now
	if candidate.AppliedDate.IsZero() {
		candidate.AppliedDate = now
	}
	m.t.candidates = append(m.t.candidates, *candidate)
	return nil
}

func (m *MemStore) Candidate(ctx context.Context, candidateID string) (*types.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.candidateIndex(candidateID); i >= 0 {
		candidate := m.t.candidates[i]
		return &candidate, nil
	}
	return nil, apperr.NotFoundf("candidate %s not found", candidateID)
}

func (m *MemStore) SearchCandidates(ctx context.Context, jobID string, f *types.CandidateFilter) ([]*types.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	candidates := make([]*types.Candidate, 0)
	for _, candidate := range m.t.candidates {
		if candidate.JobID != jobID {
			continue
		}
		if f != nil {
			if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" &&
				!strings.Contains(strings.ToLower(candidate.Name), search) &&
				!strings.Contains(strings.ToLower(candidate.Email), search) &&
				!strings.Contains(strings.ToLower(candidate.Skills), search) {
				continue
			}
			if f.Status != nil && int(candidate.Status) != *f.Status {
				continue
			}
			if f.MinRating != nil && candidate.Rating < *f.MinRating {
				continue
			}
			if f.MaxRating != nil && candidate.Rating > *f.MaxRating {
				continue
			}
		}
		candidate := candidate
		candidates = append(candidates, &candidate)
	}
	return candidates, nil
}

func (m *MemStore) UpdateCandidate(ctx context.Context, candidateID string, update *types.CandidateUpdate) (*types.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.hit("UpdateCandidate"); err != nil {
		return nil, err
	}
	i := m.candidateIndex(candidateID)
	if i < 0 {
		return nil, apperr.NotFoundf("candidate %s not found", candidateID)
	}

	candidate := &m.t.candidates[i]
	if update.Name != nil {
		candidate.Name = *update.Name
	}
	if update.Email != nil {
		candidate.Email = *update.Email
	}
	if update.Phone != nil {
		candidate.Phone = *update.Phone
	}
	if update.Education != nil {
		candidate.Education = *update.Education
	}
	if update.Experience != nil {
		candidate.Experience = *update.Experience
	}
	if update.Status != nil {
		candidate.Status = *update.Status
	}
	if update.ResumeURL != nil {
		candidate.ResumeURL = update.ResumeURL
	}
	if update.CoverLetter != nil {
		candidate.CoverLetter = *update.CoverLetter
	}
	if update.Skills != nil {
		candidate.Skills = *update.Skills
	}
	if update.Rating != nil {
		candidate.Rating = *update.Rating
	}
	if update.AvatarURL != nil {
		candidate.AvatarURL = update.AvatarURL
	}
	if update.InterviewScheduled != nil {
		candidate.InterviewScheduled = *update.InterviewScheduled
	}
	if update.InterviewDate != nil {
		candidate.InterviewDate = update.InterviewDate
	}
	if update.Notes != nil {
		candidate.Notes = update.Notes
	}
	candidate.UpdatedAt = time.Now()

	updated := *candidate
	return &updated, nil
}

func (m *MemStore) DeleteCandidate(ctx context.Context, candidateID string) (*types.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.hit("DeleteCandidate"); err != nil {
		return nil, err
	}
	i := m.candidateIndex(candidateID)
	if i < 0 {
		return nil, apperr.NotFoundf("candidate %s not found", candidateID)
	}

	candidate := m.t.candidates[i]
	m.t.candidates = append(m.t.candidates[:i:i], m.t.candidates[i+1:]...)
	return &candidate, nil
}

func filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// ErrInjected is a convenience error for FailOn.
var ErrInjected = errors.New("injected storage failure")
