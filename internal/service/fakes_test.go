package service

import (
	"context"

	"github.com/timetrack/timetrack-go/internal/model"
	"github.com/timetrack/timetrack-go/internal/repository"
)

// journal records the order of mutating repository calls so tests can
// assert cascade ordering.
type journal struct {
	entries []string
}

func (j *journal) record(op string) {
	if j != nil {
		j.entries = append(j.entries, op)
	}
}

type fakeUserRepo struct {
	users   map[int64]model.User
	nextID  int64
	journal *journal
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.UserName == user.UserName {
			return repository.ErrDuplicateUsername
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.UserName == username {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	var users []model.User
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	f.journal.record("users.delete")
	return nil
}

type fakeProjectRepo struct {
	projects map[int64]model.Project
	nextID   int64
	journal  *journal
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[int64]model.Project)}
}

func (f *fakeProjectRepo) Create(_ context.Context, project *model.Project) error {
	f.nextID++
	project.ID = f.nextID
	f.projects[project.ID] = *project
	return nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id int64) (*model.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	return &p, nil
}

func (f *fakeProjectRepo) GetByName(_ context.Context, name string) (*model.Project, error) {
	for _, p := range f.projects {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, repository.ErrProjectNotFound
}

func (f *fakeProjectRepo) List(_ context.Context) ([]model.Project, error) {
	var projects []model.Project
	for _, p := range f.projects {
		projects = append(projects, p)
	}
	return projects, nil
}

func (f *fakeProjectRepo) Update(_ context.Context, project *model.Project) error {
	if _, ok := f.projects[project.ID]; !ok {
		return repository.ErrProjectNotFound
	}
	f.projects[project.ID] = *project
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(f.projects, id)
	f.journal.record("projects.delete")
	return nil
}

type fakeTaskRepo struct {
	tasks    map[int64]model.Task
	projects *fakeProjectRepo
	nextID   int64
	journal  *journal
}

func newFakeTaskRepo(projects *fakeProjectRepo) *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]model.Task), projects: projects}
}

func (f *fakeTaskRepo) Create(_ context.Context, task *model.Task) error {
	f.nextID++
	task.ID = f.nextID
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id int64) (*model.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrTaskNotFound
	}
	return &t, nil
}

func (f *fakeTaskRepo) ListByUser(_ context.Context, userID int64) ([]model.TaskWithProject, error) {
	var tasks []model.TaskWithProject
	for _, t := range f.tasks {
		if t.UserID != userID {
			continue
		}
		name := ""
		if f.projects != nil {
			if p, ok := f.projects.projects[t.ProjectID]; ok {
				name = p.Name
			}
		}
		tasks = append(tasks, model.TaskWithProject{Task: t, ProjectName: name})
	}
	return tasks, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *model.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return repository.ErrTaskNotFound
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) DeleteByUser(_ context.Context, userID int64) error {
	for id, t := range f.tasks {
		if t.UserID == userID {
			delete(f.tasks, id)
		}
	}
	f.journal.record("tasks.deleteByUser")
	return nil
}

func (f *fakeTaskRepo) DeleteByProject(_ context.Context, projectID int64) error {
	for id, t := range f.tasks {
		if t.ProjectID == projectID {
			delete(f.tasks, id)
		}
	}
	f.journal.record("tasks.deleteByProject")
	return nil
}
