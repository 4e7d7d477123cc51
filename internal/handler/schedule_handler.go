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

type scheduleCreateRequest struct {
	CompanyID            uint    `json:"company_id"`
	StartTime            string  `json:"start_time"`
	EndTime              string  `json:"end_time"`
	DayCorrectionMinutes int     `json:"day_correction_minutes"`
	ValidFrom            string  `json:"valid_from"`
	ValidTo              *string `json:"valid_to"`
}

type schedulePatchRequest struct {
	StartTime            models.Optional[string] `json:"start_time"`
	EndTime              models.Optional[string] `json:"end_time"`
	DayCorrectionMinutes models.Optional[int]    `json:"day_correction_minutes"`
	ValidFrom            models.Optional[string] `json:"valid_from"`
	ValidTo              models.Optional[string] `json:"valid_to"`
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	companyID, err := parseUintQuery(r, "company_id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if companyID == 0 {
		writeError(w, r, h.logger, apperr.NewValidation(msgBadParam))
		return
	}

	schedules, err := h.schedules.GetByCompany(companyID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeList(w, schedules)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	schedule, err := h.schedules.Get(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, schedule)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var body scheduleCreateRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	validFrom, err := clock.ParseDate(body.ValidFrom)
	if err != nil {
		writeError(w, r, h.logger, apperr.NewValidation(msgBadDate))
		return
	}

	var validTo *time.Time
	if body.ValidTo != nil {
		parsed, err := clock.ParseDate(*body.ValidTo)
		if err != nil {
			writeError(w, r, h.logger, apperr.NewValidation(msgBadDate))
			return
		}
		validTo = &parsed
	}

	schedule, err := h.schedules.Create(service.ScheduleCreate{
		CompanyID:            body.CompanyID,
		StartTime:            body.StartTime,
		EndTime:              body.EndTime,
		DayCorrectionMinutes: body.DayCorrectionMinutes,
		ValidFrom:            validFrom,
		ValidTo:              validTo,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, schedule)
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var body schedulePatchRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	patch := service.SchedulePatch{
		StartTime:            body.StartTime,
		EndTime:              body.EndTime,
		DayCorrectionMinutes: body.DayCorrectionMinutes,
	}
	if patch.ValidFrom, err = optionalDate(body.ValidFrom); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if patch.ValidTo, err = optionalDate(body.ValidTo); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	schedule, err := h.schedules.Update(id, patch)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, schedule)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	deletedID, err := h.schedules.Delete(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, map[string]uint{"id": deletedID})
}
