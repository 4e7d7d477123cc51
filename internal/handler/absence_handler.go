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

type absenceCreateRequest struct {
	ResourceID uint    `json:"resource_id"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date"`
}

type absencePatchRequest struct {
	ResourceID models.Optional[uint]   `json:"resource_id"`
	StartDate  models.Optional[string] `json:"start_date"`
	EndDate    models.Optional[string] `json:"end_date"`
}

// absenceAPI is what both generic service instantiations expose.
type absenceAPI interface {
	Create(data service.AbsenceCreate) (*models.AbsenceView, error)
	Get(id uint) (*models.AbsenceView, error)
	GetAllBy(resourceID uint, onlyActive bool, period *models.Period) ([]*models.AbsenceView, error)
	Update(id uint, patch service.AbsencePatch) (*models.AbsenceView, error)
	Delete(id uint) (uint, error)
}

func (h *Handler) listAbsences(w http.ResponseWriter, r *http.Request, api absenceAPI) {
	resourceID, err := parseUintQuery(r, "resource_id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	views, err := api.GetAllBy(resourceID, parseBoolQuery(r, "only_active"), period)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeList(w, views)
}

func (h *Handler) getAbsence(w http.ResponseWriter, r *http.Request, api absenceAPI) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	view, err := api.Get(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, view)
}

func (h *Handler) createAbsence(w http.ResponseWriter, r *http.Request, api absenceAPI) {
	var body absenceCreateRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	startDate, err := clock.ParseDate(body.StartDate)
	if err != nil {
		writeError(w, r, h.logger, apperr.NewValidation(msgBadDate))
		return
	}

	var endDate *time.Time
	if body.EndDate != nil {
		parsed, err := clock.ParseDate(*body.EndDate)
		if err != nil {
			writeError(w, r, h.logger, apperr.NewValidation(msgBadDate))
			return
		}
		endDate = &parsed
	}

	view, err := api.Create(service.AbsenceCreate{
		ResourceID: body.ResourceID,
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, view)
}

func (h *Handler) updateAbsence(w http.ResponseWriter, r *http.Request, api absenceAPI) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var body absencePatchRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	patch := service.AbsencePatch{ResourceID: body.ResourceID}
	if patch.StartDate, err = optionalDate(body.StartDate); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if patch.EndDate, err = optionalDate(body.EndDate); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	view, err := api.Update(id, patch)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, view)
}

func (h *Handler) deleteAbsence(w http.ResponseWriter, r *http.Request, api absenceAPI) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	deletedID, err := api.Delete(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, map[string]uint{"id": deletedID})
}

func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	h.listAbsences(w, r, h.vacations)
}

func (h *Handler) GetVacation(w http.ResponseWriter, r *http.Request) {
	h.getAbsence(w, r, h.vacations)
}

func (h *Handler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	h.createAbsence(w, r, h.vacations)
}

func (h *Handler) UpdateVacation(w http.ResponseWriter, r *http.Request) {
	h.updateAbsence(w, r, h.vacations)
}

func (h *Handler) DeleteVacation(w http.ResponseWriter, r *http.Request) {
	h.deleteAbsence(w, r, h.vacations)
}

func (h *Handler) ListSickLeaves(w http.ResponseWriter, r *http.Request) {
	h.listAbsences(w, r, h.sickLeaves)
}

func (h *Handler) GetSickLeave(w http.ResponseWriter, r *http.Request) {
	h.getAbsence(w, r, h.sickLeaves)
}

func (h *Handler) CreateSickLeave(w http.ResponseWriter, r *http.Request) {
	h.createAbsence(w, r, h.sickLeaves)
}

func (h *Handler) UpdateSickLeave(w http.ResponseWriter, r *http.Request) {
	h.updateAbsence(w, r, h.sickLeaves)
}

func (h *Handler) DeleteSickLeave(w http.ResponseWriter, r *http.Request) {
	h.deleteAbsence(w, r, h.sickLeaves)
}
