package handler

import (
	"net/http"

	"time-control-api/internal/models"
	"time-control-api/internal/service"

	"github.com/go-chi/chi/v5"
)

type resourceCreateRequest struct {
	Name         string  `json:"name"`
	CompanyID    uint    `json:"company_id"`
	ResourceType string  `json:"resource_type"`
	Category     *string `json:"category"`
}

type resourcePatchRequest struct {
	Name         models.Optional[string] `json:"name"`
	CompanyID    models.Optional[uint]   `json:"company_id"`
	ResourceType models.Optional[string] `json:"resource_type"`
	Category     models.Optional[string] `json:"category"`
	Active       models.Optional[bool]   `json:"active"`
}

func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.resources.GetAll(parseBoolQuery(r, "only_active"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeList(w, resources)
}

func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resource, err := h.resources.Get(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, resource)
}

func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var body resourceCreateRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resource, err := h.resources.Create(service.ResourceCreate{
		Name:         body.Name,
		CompanyID:    body.CompanyID,
		ResourceType: body.ResourceType,
		Category:     body.Category,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, resource)
}

func (h *Handler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var body resourcePatchRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resource, err := h.resources.Update(id, service.ResourcePatch{
		Name:         body.Name,
		CompanyID:    body.CompanyID,
		ResourceType: body.ResourceType,
		Category:     body.Category,
		Active:       body.Active,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, resource)
}

func (h *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resource, err := h.resources.Delete(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, resource)
}
