package handler

import (
	"net/http"

	"time-control-api/internal/models"
	"time-control-api/internal/service"

	"github.com/go-chi/chi/v5"
)

type userCreateRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userPatchRequest struct {
	Name     models.Optional[string] `json:"name"`
	Password models.Optional[string] `json:"password"`
	Role     models.Optional[string] `json:"role"`
	Active   models.Optional[bool]   `json:"active"`
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll()
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeList(w, users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.users.Get(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, user)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body userCreateRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.users.Create(service.UserCreate{
		Email:    body.Email,
		Name:     body.Name,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var body userPatchRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.users.Update(id, service.UserPatch{
		Name:     body.Name,
		Password: body.Password,
		Role:     body.Role,
		Active:   body.Active,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, user)
}
