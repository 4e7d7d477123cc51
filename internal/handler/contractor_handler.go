package handler

import (
	"net/http"

	"time-control-api/internal/models"
	"time-control-api/internal/service"

	"github.com/go-chi/chi/v5"
)

type contractorCreateRequest struct {
	Name string `json:"name"`
}

type contractorPatchRequest struct {
	Name   models.Optional[string] `json:"name"`
	Active models.Optional[bool]   `json:"active"`
}

func (h *Handler) ListContractors(w http.ResponseWriter, r *http.Request) {
	contractors, err := h.contractors.GetAll(parseBoolQuery(r, "only_active"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeList(w, contractors)
}

func (h *Handler) GetContractor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	contractor, err := h.contractors.Get(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, contractor)
}

func (h *Handler) CreateContractor(w http.ResponseWriter, r *http.Request) {
	var body contractorCreateRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	contractor, err := h.contractors.Create(body.Name)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, contractor)
}

func (h *Handler) UpdateContractor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var body contractorPatchRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	contractor, err := h.contractors.Update(id, service.ContractorPatch{
		Name:   body.Name,
		Active: body.Active,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, contractor)
}

func (h *Handler) DeleteContractor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	contractor, err := h.contractors.Delete(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, contractor)
}
