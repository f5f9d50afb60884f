package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/timetrack/timetrack-go/internal/middleware"
	"github.com/timetrack/timetrack-go/internal/model"
	"github.com/timetrack/timetrack-go/internal/repository"
	"github.com/timetrack/timetrack-go/internal/service"
)

// In-memory repositories backing the full HTTP stack under test.

type memStore struct {
	users    map[int64]model.User
	projects map[int64]model.Project
	tasks    map[int64]model.Task
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[int64]model.User),
		projects: make(map[int64]model.Project),
		tasks:    make(map[int64]model.Task),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type memUsers struct{ s *memStore }

func (m memUsers) Create(_ context.Context, u *model.User) error {
	for _, e := range m.s.users {
		if e.UserName == u.UserName {
			return repository.ErrDuplicateUsername
		}
	}
	u.ID = m.s.id()
	m.s.users[u.ID] = *u
	return nil
}

func (m memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (m memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.s.users {
		if u.UserName == username {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m memUsers) List(_ context.Context) ([]model.User, error) {
	var users []model.User
	for _, u := range m.s.users {
		users = append(users, u)
	}
	return users, nil
}

func (m memUsers) Update(_ context.Context, u *model.User) error {
	if _, ok := m.s.users[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	m.s.users[u.ID] = *u
	return nil
}

func (m memUsers) Delete(_ context.Context, id int64) error {
	if _, ok := m.s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.s.users, id)
	return nil
}

type memProjects struct{ s *memStore }

func (m memProjects) Create(_ context.Context, p *model.Project) error {
	p.ID = m.s.id()
	m.s.projects[p.ID] = *p
	return nil
}

func (m memProjects) GetByID(_ context.Context, id int64) (*model.Project, error) {
	p, ok := m.s.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	return &p, nil
}

func (m memProjects) GetByName(_ context.Context, name string) (*model.Project, error) {
	for _, p := range m.s.projects {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, repository.ErrProjectNotFound
}

func (m memProjects) List(_ context.Context) ([]model.Project, error) {
	var projects []model.Project
	for _, p := range m.s.projects {
		projects = append(projects, p)
	}
	return projects, nil
}

func (m memProjects) Update(_ context.Context, p *model.Project) error {
	if _, ok := m.s.projects[p.ID]; !ok {
		return repository.ErrProjectNotFound
	}
	m.s.projects[p.ID] = *p
	return nil
}

func (m memProjects) Delete(_ context.Context, id int64) error {
	if _, ok := m.s.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(m.s.projects, id)
	return nil
}

type memTasks struct{ s *memStore }

func (m memTasks) Create(_ context.Context, t *model.Task) error {
	t.ID = m.s.id()
	m.s.tasks[t.ID] = *t
	return nil
}

func (m memTasks) GetByID(_ context.Context, id int64) (*model.Task, error) {
	t, ok := m.s.tasks[id]
	if !ok {
		return nil, repository.ErrTaskNotFound
	}
	return &t, nil
}

func (m memTasks) ListByUser(_ context.Context, userID int64) ([]model.TaskWithProject, error) {
	var tasks []model.TaskWithProject
	for _, t := range m.s.tasks {
		if t.UserID != userID {
			continue
		}
		tasks = append(tasks, model.TaskWithProject{
			Task:        t,
			ProjectName: m.s.projects[t.ProjectID].Name,
		})
	}
	return tasks, nil
}

func (m memTasks) Update(_ context.Context, t *model.Task) error {
	if _, ok := m.s.tasks[t.ID]; !ok {
		return repository.ErrTaskNotFound
	}
	m.s.tasks[t.ID] = *t
	return nil
}

func (m memTasks) Delete(_ context.Context, id int64) error {
	if _, ok := m.s.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(m.s.tasks, id)
	return nil
}

func (m memTasks) DeleteByUser(_ context.Context, userID int64) error {
	for id, t := range m.s.tasks {
		if t.UserID == userID {
			delete(m.s.tasks, id)
		}
	}
	return nil
}

func (m memTasks) DeleteByProject(_ context.Context, projectID int64) error {
	for id, t := range m.s.tasks {
		if t.ProjectID == projectID {
			delete(m.s.tasks, id)
		}
	}
	return nil
}

const testSecret = "test-secret"

// newTestRouter wires the same routing tree as cmd/api/main.go, backed
// by in-memory repositories.
func newTestRouter() chi.Router {
	store := newMemStore()
	users := memUsers{store}
	projects := memProjects{store}
	tasks := memTasks{store}

	authHandler := NewAuthHandler(service.NewAuthService(users, testSecret, 30*time.Minute))
	userHandler := NewUserHandler(service.NewUserService(users, tasks))
	projectHandler := NewProjectHandler(service.NewProjectService(projects, tasks))
	taskHandler := NewTaskHandler(service.NewTaskService(tasks, projects))

	r := chi.NewRouter()
	r.Post("/token", authHandler.HandleToken)

	r.Get("/users", userHandler.HandleList)
	r.Post("/users", userHandler.HandleCreate)
	r.Get("/users/{user_id}", userHandler.HandleGet)
	r.Patch("/users/{user_id}", userHandler.HandleUpdate)
	r.Delete("/users/{user_id}", userHandler.HandleDelete)

	r.Get("/projects", projectHandler.HandleList)
	r.Post("/projects", projectHandler.HandleCreate)
	r.Get("/projects/{project_id}", projectHandler.HandleGet)
	r.Patch("/projects/{project_id}", projectHandler.HandleUpdate)
	r.Delete("/projects/{project_id}", projectHandler.HandleDelete)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(testSecret, users))
		r.Get("/users/me", authHandler.HandleMe)

		r.Get("/tasks", taskHandler.HandleList)
		r.Post("/tasks", taskHandler.HandleCreate)
		r.Patch("/tasks/{task_id}", taskHandler.HandleUpdate)
		r.Delete("/tasks/{task_id}", taskHandler.HandleDelete)
	})

	return r
}

func doJSON(t *testing.T, router chi.Router, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestRegisterLoginTrackScenario(t *testing.T) {
	router := newTestRouter()

	// Register.
	rec, user := doJSON(t, router, http.MethodPost, "/users", "",
		`{"user_name":"alice","email":"a@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	userID := int64(user["id"].(float64))
	require.NotZero(t, userID)
	require.NotContains(t, user, "password")

	// Exchange credentials for a token (form-encoded).
	form := url.Values{"username": {"alice"}, "password": {"pw1"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	tokenRec := httptest.NewRecorder()
	router.ServeHTTP(tokenRec, req)
	require.Equal(t, http.StatusOK, tokenRec.Code)

	var tokenResp model.TokenResponse
	require.NoError(t, json.Unmarshal(tokenRec.Body.Bytes(), &tokenResp))
	require.Equal(t, "bearer", tokenResp.TokenType)
	require.NotEmpty(t, tokenResp.AccessToken)
	require.Equal(t, "alice", tokenResp.User.Username)
	token := tokenResp.AccessToken

	// The token resolves to the registered principal.
	rec, me := doJSON(t, router, http.MethodGet, "/users/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(userID), me["id"])
	require.Equal(t, "alice", me["user_name"])
	require.Equal(t, "a@x.com", me["email"])

	// A project to log work against.
	rec, project := doJSON(t, router, http.MethodPost, "/projects", "", `{"name":"website"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	projectID := strconv.Itoa(int(project["id"].(float64)))

	// Log a task; ownership comes from the token, not the payload.
	rec, task := doJSON(t, router, http.MethodPost, "/tasks", token,
		`{"project_id":`+projectID+`,"user_id":9999,"start_time":"09:00:00","end_time":"09:30:00","task_date":"2024-03-01","duration":30,"description":"x"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, float64(userID), task["user_id"])
	require.Equal(t, "website", task["project_name"])

	// Listing is scoped to the caller.
	listReq := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	listReq.Header.Set("Authorization", "Bearer "+token)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)

	var tasks []model.TaskResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	require.Equal(t, userID, tasks[0].UserID)

	// Partial update touches only the supplied field.
	rec, patched := doJSON(t, router, http.MethodPatch, "/users/"+strconv.Itoa(int(userID)), "",
		`{"email":"new@x.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "new@x.com", patched["email"])
	require.Equal(t, "alice", patched["user_name"])
}

func TestTasksRequireBearer(t *testing.T) {
	router := newTestRouter()

	rec, _ := doJSON(t, router, http.MethodGet, "/tasks", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/tasks", "", `{"project_id":1}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeletedUserTokenRejected(t *testing.T) {
	router := newTestRouter()

	rec, user := doJSON(t, router, http.MethodPost, "/users", "",
		`{"user_name":"bob","email":"b@x.com","password":"pw2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	userID := strconv.Itoa(int(user["id"].(float64)))

	form := url.Values{"username": {"bob"}, "password": {"pw2"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	tokenRec := httptest.NewRecorder()
	router.ServeHTTP(tokenRec, req)
	require.Equal(t, http.StatusOK, tokenRec.Code)

	var tokenResp model.TokenResponse
	require.NoError(t, json.Unmarshal(tokenRec.Body.Bytes(), &tokenResp))

	rec, _ = doJSON(t, router, http.MethodDelete, "/users/"+userID, "", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Token is still cryptographically valid but the subject is gone.
	rec, _ = doJSON(t, router, http.MethodGet, "/users/me", tokenResp.AccessToken, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateUserConflict(t *testing.T) {
	router := newTestRouter()

	rec, _ := doJSON(t, router, http.MethodPost, "/users", "",
		`{"user_name":"alice","email":"a@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := doJSON(t, router, http.MethodPost, "/users", "",
		`{"user_name":"alice","email":"other@x.com","password":"pw2"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, body, "error")
}

func TestGetUserNotFound(t *testing.T) {
	router := newTestRouter()

	rec, _ := doJSON(t, router, http.MethodGet, "/users/42", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
