package model

import "time"

// Project represents a project row in the database.
type Project struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// CreateProjectRequest represents a project creation request.
type CreateProjectRequest struct {
	Name string `json:"name"`
}

// UpdateProjectRequest represents a partial project update.
type UpdateProjectRequest struct {
	Name *string `json:"name"`
}

// ProjectResponse represents project data for API responses.
type ProjectResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Response converts a Project to its API representation.
func (p *Project) Response() ProjectResponse {
	return ProjectResponse{ID: p.ID, Name: p.Name}
}
