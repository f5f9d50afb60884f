package model

// Task represents a logged unit of work. StartTime and EndTime use
// "HH:MM:SS", TaskDate uses "YYYY-MM-DD"; Duration is minutes.
type Task struct {
	ID          int64
	UserID      int64
	ProjectID   int64
	StartTime   string
	EndTime     string
	TaskDate    string
	Duration    int
	Description string
}

// TaskWithProject pairs a task with its project's name, as produced by
// the task list join.
type TaskWithProject struct {
	Task
	ProjectName string
}

// Response converts a TaskWithProject to its API representation.
func (t *TaskWithProject) Response() TaskResponse {
	return t.Task.Response(t.ProjectName)
}

// CreateTaskRequest represents a task creation request. The owner is
// never taken from the payload; it is always the authenticated caller.
type CreateTaskRequest struct {
	ProjectID   int64  `json:"project_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TaskDate    string `json:"task_date"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
}

// UpdateTaskRequest represents a partial task update.
type UpdateTaskRequest struct {
	ProjectID   *int64  `json:"project_id"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	TaskDate    *string `json:"task_date"`
	Duration    *int    `json:"duration"`
	Description *string `json:"description"`
}

// TaskResponse represents task data for API responses, enriched with the
// owning project's name.
type TaskResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	ProjectID   int64  `json:"project_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TaskDate    string `json:"task_date"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
	ProjectName string `json:"project_name"`
}

// Response converts a Task to its API representation with the given
// project name attached.
func (t *Task) Response(projectName string) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		ProjectID:   t.ProjectID,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		TaskDate:    t.TaskDate,
		Duration:    t.Duration,
		Description: t.Description,
		ProjectName: projectName,
	}
}
