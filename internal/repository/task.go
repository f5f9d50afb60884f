package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/timetrack/timetrack-go/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository handles task persistence operations.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// task_date is formatted in SQL so DATE columns come back as plain
// YYYY-MM-DD strings even with parseTime=true on the connection.
const taskColumns = `id, user_id, project_id, start_time, end_time,
	DATE_FORMAT(task_date, '%Y-%m-%d'), duration, description`

// Create inserts a new task and sets the generated ID on the struct.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `INSERT INTO tasks (user_id, project_id, start_time, end_time, task_date, duration, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		task.UserID, task.ProjectID, task.StartTime, task.EndTime,
		task.TaskDate, task.Duration, task.Description,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetByID retrieves a task by its ID.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	task := &model.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.UserID, &task.ProjectID, &task.StartTime,
		&task.EndTime, &task.TaskDate, &task.Duration, &task.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// ListByUser retrieves all tasks owned by a user, each joined with the
// owning project's name, in store-native order.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]model.TaskWithProject, error) {
	query := `SELECT t.id, t.user_id, t.project_id, t.start_time, t.end_time,
			DATE_FORMAT(t.task_date, '%Y-%m-%d'), t.duration, t.description, p.name
		FROM tasks t
		JOIN projects p ON t.project_id = p.id
		WHERE t.user_id = ?`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.TaskWithProject
	for rows.Next() {
		var t model.TaskWithProject
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.ProjectID, &t.StartTime, &t.EndTime,
			&t.TaskDate, &t.Duration, &t.Description, &t.ProjectName,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// Update overwrites all mutable fields of the given task, including the
// owner. Partial-field merging happens in the service layer.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	query := `UPDATE tasks SET user_id = ?, project_id = ?, start_time = ?, end_time = ?,
		task_date = ?, duration = ?, description = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		task.UserID, task.ProjectID, task.StartTime, task.EndTime,
		task.TaskDate, task.Duration, task.Description, task.ID,
	)
	return err
}

// Delete removes a task by ID.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// DeleteByUser removes all tasks owned by a user. Deleting no rows is
// not an error; a user may simply have no tasks.
func (r *TaskRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ?`, userID)
	return err
}

// DeleteByProject removes all tasks referencing a project.
func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, projectID)
	return err
}
