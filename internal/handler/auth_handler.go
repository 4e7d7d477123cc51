package handler

import (
	"net/http"

	"time-control-api/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, user, err := h.auth.Login(body.Email, body.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, loginResponse{Token: token, User: user})
}
