package service

import (
	"context"
	"errors"

	"github.com/timetrack/timetrack-go/internal/model"
	"github.com/timetrack/timetrack-go/internal/repository"
)

var (
	ErrProjectNameRequired = errors.New("name is required")
	ErrProjectNameTaken    = errors.New("project already exists")
	ErrProjectNotFound     = errors.New("project not found")
)

// ProjectService handles project lifecycle business logic.
type ProjectService struct {
	projects ProjectRepository
	tasks    TaskRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects ProjectRepository, tasks TaskRepository) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks}
}

// Create adds a new project. Name uniqueness is enforced only by this
// pre-check; the store carries no constraint.
func (s *ProjectService) Create(ctx context.Context, req model.CreateProjectRequest) (model.ProjectResponse, error) {
	if req.Name == "" {
		return model.ProjectResponse{}, ErrProjectNameRequired
	}

	if _, err := s.projects.GetByName(ctx, req.Name); err == nil {
		return model.ProjectResponse{}, ErrProjectNameTaken
	} else if !errors.Is(err, repository.ErrProjectNotFound) {
		return model.ProjectResponse{}, err
	}

	project := &model.Project{Name: req.Name}
	if err := s.projects.Create(ctx, project); err != nil {
		return model.ProjectResponse{}, err
	}

	return project.Response(), nil
}

// Get retrieves a single project by ID.
func (s *ProjectService) Get(ctx context.Context, id int64) (model.ProjectResponse, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return model.ProjectResponse{}, ErrProjectNotFound
		}
		return model.ProjectResponse{}, err
	}
	return project.Response(), nil
}

// List retrieves all projects.
func (s *ProjectService) List(ctx context.Context) ([]model.ProjectResponse, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.ProjectResponse, len(projects))
	for i := range projects {
		result[i] = projects[i].Response()
	}
	return result, nil
}

// Update applies a partial update to a project.
func (s *ProjectService) Update(ctx context.Context, id int64, req model.UpdateProjectRequest) (model.ProjectResponse, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return model.ProjectResponse{}, ErrProjectNotFound
		}
		return model.ProjectResponse{}, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return model.ProjectResponse{}, err
	}

	return project.Response(), nil
}

// Delete removes a project and, first, every task referencing it.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if _, err := s.projects.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	if err := s.tasks.DeleteByProject(ctx, id); err != nil {
		return err
	}

	err := s.projects.Delete(ctx, id)
	if errors.Is(err, repository.ErrProjectNotFound) {
		return ErrProjectNotFound
	}
	return err
}
