package handler

import (
	"net/http"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
	"time-control-api/internal/service"
	"time-control-api/pkg/clock"

	"github.com/go-chi/chi/v5"
)

type timeEntryCreateRequest struct {
	WorkSiteID uint    `json:"work_site_id"`
	ResourceID uint    `json:"resource_id"`
	WorkDate   string  `json:"work_date"`
	StartTime  string  `json:"start_time"`
	EndTime    *string `json:"end_time"`
	Comment    *string `json:"comment"`
}

type timeEntryPatchRequest struct {
	ResourceID    models.Optional[uint]   `json:"resource_id"`
	AppliedRuleID models.Optional[uint]   `json:"applied_rule_id"`
	StartTime     models.Optional[string] `json:"start_time"`
	EndTime       models.Optional[string] `json:"end_time"`
	Comment       models.Optional[string] `json:"comment"`
}

type fixWorkedMinutesRequest struct {
	WorkedMinutes int `json:"worked_minutes"`
}

func (h *Handler) ListTimeEntries(w http.ResponseWriter, r *http.Request) {
	workSiteID, err := parseUintQuery(r, "work_site_id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	companyID, err := parseUintQuery(r, "company_id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	views, err := h.timeEntries.GetAllBy(userFrom(r.Context()), workSiteID, companyID, period)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeList(w, views)
}

func (h *Handler) GetTimeEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	view, err := h.timeEntries.Get(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, view)
}

func (h *Handler) CreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	var body timeEntryCreateRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	workDate, err := clock.ParseDate(body.WorkDate)
	if err != nil {
		writeError(w, r, h.logger, apperr.NewValidation(msgBadDate))
		return
	}

	view, err := h.timeEntries.Create(service.TimeEntryCreate{
		WorkSiteID: body.WorkSiteID,
		ResourceID: body.ResourceID,
		WorkDate:   workDate,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
		Comment:    body.Comment,
		UserID:     userFrom(r.Context()).ID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, view)
}

func (h *Handler) UpdateTimeEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var body timeEntryPatchRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	view, err := h.timeEntries.Update(id, service.TimeEntryPatch{
		ResourceID:    body.ResourceID,
		AppliedRuleID: body.AppliedRuleID,
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		Comment:       body.Comment,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, view)
}

func (h *Handler) FixTimeEntryWorkedMinutes(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var body fixWorkedMinutesRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	view, err := h.timeEntries.FixWorkedMinutes(id, body.WorkedMinutes)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, view)
}

func (h *Handler) DeleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	deletedID, err := h.timeEntries.Delete(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, map[string]uint{"id": deletedID})
}
