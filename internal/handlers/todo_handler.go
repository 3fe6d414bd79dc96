package handlers

import (
	"net/http"

	"github.com/taskvault/taskvault/internal/apperr"
	"github.com/taskvault/taskvault/internal/middleware"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/service"
)

type TodoHandler struct {
	service *service.TodoService
}

func NewTodoHandler(service *service.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// owner returns the authenticated subject; the router only mounts these
// handlers behind the bearer guard, so a nil identity is a wiring bug.
func owner(w http.ResponseWriter, r *http.Request) (*models.Identity, bool) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		apperr.Write(w, r, apperr.Unauthorized(apperr.CodeTokenMissing, "missing or malformed authorization header"))
		return nil, false
	}
	return identity, true
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := owner(w, r)
	if !ok {
		return
	}

	var req models.CreateTodoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	todo, err := h.service.Create(r.Context(), identity.UserID, &req)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := owner(w, r)
	if !ok {
		return
	}

	todos, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := owner(w, r)
	if !ok {
		return
	}

	todo, err := h.service.Get(r.Context(), r.PathValue("id"), identity.UserID)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := owner(w, r)
	if !ok {
		return
	}

	var req models.UpdateTodoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	todo, err := h.service.Update(r.Context(), r.PathValue("id"), identity.UserID, &req)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := owner(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Delete(r.Context(), r.PathValue("id"), identity.UserID)
	if err != nil {
		apperr.Write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
