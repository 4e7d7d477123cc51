package handler

import (
	"net/http"
	"time"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
	"time-control-api/internal/service"
	"time-control-api/pkg/clock"

	"github.com/go-chi/chi/v5"
)

type workSiteCreateRequest struct {
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	UserIDs   []uint  `json:"user_ids"`
	StartDate *string `json:"start_date"`
}

type workSitePatchRequest struct {
	Name      models.Optional[string] `json:"name"`
	Code      models.Optional[string] `json:"code"`
	UserIDs   models.Optional[[]uint] `json:"user_ids"`
	StartDate models.Optional[string] `json:"start_date"`
	EndDate   models.Optional[string] `json:"end_date"`
}

func (h *Handler) ListWorkSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.workSites.GetAll(parseBoolQuery(r, "only_open"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeList(w, sites)
}

// ListMyWorkSites returns the sites the session user is assigned to.
func (h *Handler) ListMyWorkSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.workSites.GetMine(userFrom(r.Context()).ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeList(w, sites)
}

func (h *Handler) GetWorkSite(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	site, err := h.workSites.Get(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, site)
}

func (h *Handler) CreateWorkSite(w http.ResponseWriter, r *http.Request) {
	var body workSiteCreateRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var startDate *time.Time
	if body.StartDate != nil {
		parsed, err := clock.ParseDate(*body.StartDate)
		if err != nil {
			writeError(w, r, h.logger, apperr.NewValidation(msgBadDate))
			return
		}
		startDate = &parsed
	}

	site, err := h.workSites.Create(service.WorkSiteCreate{
		Name:      body.Name,
		Code:      body.Code,
		UserIDs:   body.UserIDs,
		StartDate: startDate,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, site)
}

func (h *Handler) UpdateWorkSite(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var body workSitePatchRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	patch := service.WorkSitePatch{
		Name:    body.Name,
		Code:    body.Code,
		UserIDs: body.UserIDs,
	}
	if patch.StartDate, err = optionalDate(body.StartDate); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if patch.EndDate, err = optionalDate(body.EndDate); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	site, err := h.workSites.Update(id, patch)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, site)
}
