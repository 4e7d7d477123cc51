package handler

import (
	"net/http"
	"time"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
	"time-control-api/internal/repository"
	"time-control-api/internal/service"
	"time-control-api/pkg/clock"

	"github.com/go-chi/chi/v5"
)

type workRuleCreateRequest struct {
	WorkSiteID           uint    `json:"work_site_id"`
	CompanyID            uint    `json:"company_id"`
	DayCorrectionMinutes int     `json:"day_correction_minutes"`
	ValidFrom            string  `json:"valid_from"`
	ValidTo              *string `json:"valid_to"`
}

type workRulePatchRequest struct {
	DayCorrectionMinutes models.Optional[int]    `json:"day_correction_minutes"`
	ValidFrom            models.Optional[string] `json:"valid_from"`
	ValidTo              models.Optional[string] `json:"valid_to"`
}

func (h *Handler) ListWorkRules(w http.ResponseWriter, r *http.Request) {
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

	views, err := h.workRules.GetAllBy(repository.WorkRuleFilters{
		WorkSiteID: workSiteID,
		CompanyID:  companyID,
		Period:     period,
		OnlyActive: parseBoolQuery(r, "only_active"),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeList(w, views)
}

// ResolveWorkRule exposes rule resolution directly so a client can pre-fill a
// day before recording it.
func (h *Handler) ResolveWorkRule(w http.ResponseWriter, r *http.Request) {
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
	date, err := parseDateQuery(r, "date")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	view, err := h.workRules.Resolve(workSiteID, companyID, date)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, view)
}

func (h *Handler) GetWorkRule(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	view, err := h.workRules.Get(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, view)
}

func (h *Handler) CreateWorkRule(w http.ResponseWriter, r *http.Request) {
	var body workRuleCreateRequest
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

	view, err := h.workRules.Create(service.WorkRuleCreate{
		WorkSiteID:           body.WorkSiteID,
		CompanyID:            body.CompanyID,
		DayCorrectionMinutes: body.DayCorrectionMinutes,
		ValidFrom:            validFrom,
		ValidTo:              validTo,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, view)
}

func (h *Handler) UpdateWorkRule(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var body workRulePatchRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	patch := service.WorkRulePatch{DayCorrectionMinutes: body.DayCorrectionMinutes}
	if patch.ValidFrom, err = optionalDate(body.ValidFrom); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if patch.ValidTo, err = optionalDate(body.ValidTo); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	view, err := h.workRules.Update(id, patch)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, view)
}

func (h *Handler) DeleteWorkRule(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	deletedID, err := h.workRules.Delete(id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, map[string]uint{"id": deletedID})
}

// optionalDate converts an optional date string into an optional time,
// preserving the absent/null/value distinction.
func optionalDate(raw models.Optional[string]) (models.Optional[time.Time], error) {
	if !raw.Set {
		return models.Optional[time.Time]{}, nil
	}
	if !raw.Valid {
		return models.Null[time.Time](), nil
	}
	parsed, err := clock.ParseDate(raw.Value)
	if err != nil {
		return models.Optional[time.Time]{}, apperr.NewValidation(msgBadDate)
	}
	return models.Some(parsed), nil
}
