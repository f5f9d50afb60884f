package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/timetrack/timetrack-go/internal/model"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectRepository handles project persistence operations.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project and sets the generated ID on the struct.
// Name uniqueness is a service-level pre-check; the table carries no
// constraint.
func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	result, err := r.db.ExecContext(ctx, `INSERT INTO projects (name) VALUES (?)`, project.Name)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	project.ID = id
	return nil
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	query := `SELECT id, name, created_at FROM projects WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByName retrieves a project by its name.
func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*model.Project, error) {
	query := `SELECT id, name, created_at FROM projects WHERE name = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, name))
}

// List retrieves all projects in store-native order.
func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM projects`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// Update overwrites the stored name for the given project.
func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	_, err := r.db.ExecContext(ctx, `UPDATE projects SET name = ? WHERE id = ?`, project.Name, project.ID)
	return err
}

// Delete removes a project by ID. The caller must have removed the
// project's tasks first to satisfy the foreign key constraint.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}

	return nil
}

func (r *ProjectRepository) scanOne(row *sql.Row) (*model.Project, error) {
	project := &model.Project{}
	err := row.Scan(&project.ID, &project.Name, &project.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}
