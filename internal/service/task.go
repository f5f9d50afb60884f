package service

import (
	"context"
	"errors"

	"github.com/timetrack/timetrack-go/internal/model"
	"github.com/timetrack/timetrack-go/internal/repository"
)

var ErrTaskNotFound = errors.New("task logged does not exist")

// TaskService handles task lifecycle business logic. Every operation
// runs on behalf of an authenticated principal; ownership of created and
// updated tasks always goes to that principal.
type TaskService struct {
	tasks    TaskRepository
	projects ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks TaskRepository, projects ProjectRepository) *TaskService {
	return &TaskService{tasks: tasks, projects: projects}
}

// Create logs a new task owned by the principal. Any user id in the
// request payload is ignored; callers cannot log work on behalf of
// others. The response carries the owning project's name.
func (s *TaskService) Create(ctx context.Context, principalID int64, req model.CreateTaskRequest) (model.TaskResponse, error) {
	project, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return model.TaskResponse{}, ErrProjectNotFound
		}
		return model.TaskResponse{}, err
	}

	task := &model.Task{
		UserID:      principalID,
		ProjectID:   req.ProjectID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TaskDate:    req.TaskDate,
		Duration:    req.Duration,
		Description: req.Description,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return model.TaskResponse{}, err
	}

	return task.Response(project.Name), nil
}

// List retrieves the principal's tasks, each enriched with its project
// name.
func (s *TaskService) List(ctx context.Context, principalID int64) ([]model.TaskResponse, error) {
	tasks, err := s.tasks.ListByUser(ctx, principalID)
	if err != nil {
		return nil, err
	}

	result := make([]model.TaskResponse, len(tasks))
	for i := range tasks {
		result[i] = tasks[i].Response()
	}
	return result, nil
}

// Update applies a partial update to a task. Ownership is reassigned to
// the current principal, not preserved from the original creator; this
// mirrors the long-standing behavior of the system and is relied on by
// existing clients.
func (s *TaskService) Update(ctx context.Context, principalID, taskID int64, req model.UpdateTaskRequest) (model.TaskResponse, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return model.TaskResponse{}, ErrTaskNotFound
		}
		return model.TaskResponse{}, err
	}

	if req.ProjectID != nil {
		task.ProjectID = *req.ProjectID
	}
	if req.StartTime != nil {
		task.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		task.EndTime = *req.EndTime
	}
	if req.TaskDate != nil {
		task.TaskDate = *req.TaskDate
	}
	if req.Duration != nil {
		task.Duration = *req.Duration
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	task.UserID = principalID

	project, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return model.TaskResponse{}, ErrProjectNotFound
		}
		return model.TaskResponse{}, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return model.TaskResponse{}, err
	}

	return task.Response(project.Name), nil
}

// Delete removes a task by ID.
func (s *TaskService) Delete(ctx context.Context, taskID int64) error {
	err := s.tasks.Delete(ctx, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return err
}
