package handler

import (
	"net/http"

	"time-control-api/internal/models"
	"time-control-api/internal/service"

	"github.com/go-chi/chi/v5"
)

type companyCreateRequest struct {
	Name string `json:"name"`
}

type companyPatchRequest struct {
	Name   models.Optional[string] `json:"name"`
	IsMain models.Optional[bool]   `json:"is_main"`
	Active models.Optional[bool]   `json:"active"`
}

func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companies.GetAll(parseBoolQuery(r, "only_active"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeList(w, companies)
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	company, err := h.companies.Get(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, company)
}

func (h *Handler) ListCompanyResources(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resources, err := h.companies.GetResources(id, parseBoolQuery(r, "only_active"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeList(w, resources)
}

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var body companyCreateRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	company, err := h.companies.Create(body.Name)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, company)
}

func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var body companyPatchRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	company, err := h.companies.Update(id, service.CompanyPatch{
		Name:   body.Name,
		IsMain: body.IsMain,
		Active: body.Active,
	}, userFrom(r.Context()).IsAdmin())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, company)
}

func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	company, err := h.companies.Delete(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, company)
}
