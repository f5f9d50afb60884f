package handler

import (
	"errors"
	"net/http"

	"github.com/timetrack/timetrack-go/internal/model"
	"github.com/timetrack/timetrack-go/internal/service"
)

// ProjectHandler handles HTTP requests for project CRUD.
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// HandleList handles GET /projects requests.
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

// HandleGet handles GET /projects/{project_id} requests.
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "project_id")
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse("invalid project id"))
		return
	}

	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// HandleCreate handles POST /projects requests.
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	project, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNameRequired):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse(err.Error()))
		case errors.Is(err, service.ErrProjectNameTaken):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// HandleUpdate handles PATCH /projects/{project_id} requests.
func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "project_id")
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse("invalid project id"))
		return
	}

	var req model.UpdateProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	project, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// HandleDelete handles DELETE /projects/{project_id} requests. The
// project's tasks are removed first, then the project.
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "project_id")
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse("invalid project id"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
