package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"wehire/internal/apperr"
	"wehire/internal/auth"
	"wehire/internal/candidates"
	"wehire/internal/interview"
	"wehire/internal/jobs"
	"wehire/internal/testutil"
	"wehire/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	mem     *testutil.MemStore
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mem := testutil.NewMemStore()
	authService := auth.New(mem, auth.NewTokens("test-secret", time.Hour), logger)
	interviewService := interview.New(mem, logger)
	jobService := jobs.New(mem, interviewService, logger)
	candidateService := candidates.New(mem, logger)

	srv := New(&types.Config{ServerPort: 0}, logger, authService, jobService, interviewService, candidateService)

	return &testServer{t: t, handler: srv.Handler(), mem: mem, auth: authService}
}

// login signs a user up with the given role and returns a bearer token.
func (ts *testServer) login(username string, role types.UserRole) (token string, userID string) {
	ts.t.Helper()
	ctx := context.Background()

	user, err := ts.auth.Signup(ctx, &types.SignupInput{Username: username, Password: "password123", Role: role})
	require.NoError(ts.t, err)

	issued, err := ts.auth.Login(ctx, &types.LoginInput{Username: username, Password: "password123"})
	require.NoError(ts.t, err)

	return issued.AccessToken, user.ID
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "hr_admin",
		"password": "password123",
		"role":     "HR",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "hashed_password")

	form := url.Values{"username": {"hr_admin"}, "password": {"password123"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	formRec := httptest.NewRecorder()
	ts.handler.ServeHTTP(formRec, req)
	require.Equal(t, http.StatusOK, formRec.Code, formRec.Body.String())

	token := decode[types.Token](t, formRec)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, types.UserRoleHR, token.Role)

	rec = ts.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "hr_admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodGet, "/api/jobs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	rec = ts.do(http.MethodGet, "/api/jobs", token.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJobStructureEndpoints(t *testing.T) {
	ts := newTestServer(t)
	managerToken, managerID := ts.login("hiring_manager1", types.UserRoleHiringManager)
	employeeToken, _ := ts.login("employee1", types.UserRoleEmployee)
	hrToken, _ := ts.login("hr_admin", types.UserRoleHR)

	rec := ts.do(http.MethodPost, "/api/jobs", employeeToken, map[string]any{"title": "Forbidden"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodPost, "/api/jobs", managerToken, map[string]any{
		"title":       "Senior Software Engineer",
		"assigned_to": managerID,
		"status":      "open",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	source := decode[types.Job](t, rec)

	rec = ts.do(http.MethodPost, "/api/jobs", managerToken, map[string]any{"title": "Platform Engineer"})
	require.Equal(t, http.StatusCreated, rec.Code)
	target := decode[types.Job](t, rec)

	rec = ts.do(http.MethodGet, "/api/jobs/"+source.ID+"/structure", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	structure := decode[[]types.InterviewCategory](t, rec)
	require.Len(t, structure, 3)
	assert.Equal(t, "Technical Skills", structure[0].Name)
	assert.Len(t, structure[0].Questions, 3)

	rec = ts.do(http.MethodGet, "/api/jobs/"+source.ID, employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[types.JobDetail](t, rec)
	require.NotNil(t, detail.AssignedManager)
	assert.Equal(t, "hiring_manager1", detail.AssignedManager.Username)

	rec = ts.do(http.MethodPost, "/api/jobs/"+target.ID+"/structure/clone", managerToken, map[string]any{
		"source_job_id":   source.ID,
		"clone_questions": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cloned := decode[[]types.InterviewCategory](t, rec)
	assert.Len(t, cloned, 3)

	rec = ts.do(http.MethodGet, "/api/jobs/"+target.ID+"/questions", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]types.InterviewQuestion](t, rec), 18)

	rec = ts.do(http.MethodPost, "/api/jobs/"+target.ID+"/structure/clone", managerToken, map[string]any{"source_job_id": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Moving a source question into a target category crosses jobs.
	question := structure[0].Questions[0]
	rec = ts.do(http.MethodPatch, "/api/interview/questions/"+question.ID, managerToken, map[string]any{"category_id": cloned[0].ID})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apperr.CodeIntegrityViolation, decode[errorResponse](t, rec).Code)

	rec = ts.do(http.MethodPatch, "/api/interview/questions/"+question.ID, managerToken, map[string]any{"status": "rejected"})
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decode[types.InterviewQuestion](t, rec)
	assert.Equal(t, "rejected", patched.Status)
	assert.Equal(t, question.Text, patched.Text)

	rec = ts.do(http.MethodGet, "/api/jobs/"+target.ID+"/categories/"+cloned[0].ID, employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[types.InterviewCategory](t, rec)
	assert.Len(t, view.Questions, 3)

	rec = ts.do(http.MethodDelete, "/api/interview/categories/"+cloned[0].ID, managerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodDelete, "/api/interview/categories/"+cloned[0].ID, managerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/api/interview/categories/"+cloned[0].ID+"/questions", employeeToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodDelete, "/api/jobs/"+target.ID, managerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodDelete, "/api/jobs/"+target.ID, hrToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/api/jobs/"+target.ID+"/categories", employeeToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCandidateEndpoints(t *testing.T) {
	ts := newTestServer(t)
	managerToken, _ := ts.login("hiring_manager1", types.UserRoleHiringManager)

	rec := ts.do(http.MethodPost, "/api/jobs", managerToken, map[string]any{"title": "Data Scientist"})
	require.Equal(t, http.StatusCreated, rec.Code)
	job := decode[types.Job](t, rec)

	ids := make([]string, 0, 2)
	for _, email := range []string{"ada@example.com", "alan@example.com"} {
		rec = ts.do(http.MethodPost, "/api/candidates", managerToken, map[string]any{
			"name":   strings.Split(email, "@")[0],
			"email":  email,
			"rating": 4,
			"job_id": job.ID,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		ids = append(ids, decode[types.Candidate](t, rec).ID)
	}

	rec = ts.do(http.MethodGet, "/api/candidates/job/"+job.ID+"?search=ada&min_rating=3", managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]types.Candidate](t, rec), 1)

	rec = ts.do(http.MethodGet, "/api/candidates/job/"+job.ID+"?status=abc", managerToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/api/candidates/bulk-status-update", managerToken, map[string]any{
		"candidate_ids": append(ids, "missing"),
		"new_status":    2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]types.Candidate](t, rec), 2)

	rec = ts.do(http.MethodGet, "/api/candidates/"+ids[0], managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.CandidateStatusHired, decode[types.Candidate](t, rec).Status)
}

func TestStripTrailingSlash(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/jobs/?limit=5", "", nil)
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/api/jobs?limit=5", rec.Header().Get("Location"))
}
