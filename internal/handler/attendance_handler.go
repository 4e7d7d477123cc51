package handler

import (
	"net/http"

	"time-control-api/internal/apperr"
	"time-control-api/internal/models"
	"time-control-api/internal/service"
	"time-control-api/pkg/clock"

	"github.com/go-chi/chi/v5"
)

type attendanceCreateRequest struct {
	WorkSiteID   uint   `json:"work_site_id"`
	CompanyID    uint   `json:"company_id"`
	ContractorID uint   `json:"contractor_id"`
	Date         string `json:"date"`
	WorkersCount int    `json:"workers_count"`
}

type attendancePatchRequest struct {
	WorkersCount int `json:"workers_count"`
}

// attendanceAPI is what both generic service instantiations expose; the
// handlers are written once against it.
type attendanceAPI interface {
	Create(data service.AttendanceCreate) (*models.AttendanceView, error)
	Get(id uint) (*models.AttendanceView, error)
	GetAllBy(user *models.User, workSiteID, partyID uint, period *models.Period) ([]*models.AttendanceView, error)
	Update(id uint, workersCount int) (*models.AttendanceView, error)
	Delete(id uint) (uint, error)
}

func (h *Handler) listAttendance(w http.ResponseWriter, r *http.Request, api attendanceAPI, partyParam string) {
	workSiteID, err := parseUintQuery(r, "work_site_id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	partyID, err := parseUintQuery(r, partyParam)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	views, err := api.GetAllBy(userFrom(r.Context()), workSiteID, partyID, period)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeList(w, views)
}

func (h *Handler) getAttendance(w http.ResponseWriter, r *http.Request, api attendanceAPI) {
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

func (h *Handler) createAttendance(w http.ResponseWriter, r *http.Request, api attendanceAPI, pickParty func(attendanceCreateRequest) uint) {
	var body attendanceCreateRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	date, err := clock.ParseDate(body.Date)
	if err != nil {
		writeError(w, r, h.logger, apperr.NewValidation(msgBadDate))
		return
	}

	view, err := api.Create(service.AttendanceCreate{
		WorkSiteID:   body.WorkSiteID,
		PartyID:      pickParty(body),
		Date:         date,
		WorkersCount: body.WorkersCount,
		UserID:       userFrom(r.Context()).ID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, view)
}

func (h *Handler) updateAttendance(w http.ResponseWriter, r *http.Request, api attendanceAPI) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var body attendancePatchRequest
	if err := decode(r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	view, err := api.Update(id, body.WorkersCount)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, view)
}

func (h *Handler) deleteAttendance(w http.ResponseWriter, r *http.Request, api attendanceAPI) {
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

func (h *Handler) ListCompanyAttendance(w http.ResponseWriter, r *http.Request) {
	h.listAttendance(w, r, h.companyAttendance, "company_id")
}

func (h *Handler) GetCompanyAttendance(w http.ResponseWriter, r *http.Request) {
	h.getAttendance(w, r, h.companyAttendance)
}

func (h *Handler) CreateCompanyAttendance(w http.ResponseWriter, r *http.Request) {
	h.createAttendance(w, r, h.companyAttendance, func(body attendanceCreateRequest) uint {
		return body.CompanyID
	})
}

func (h *Handler) UpdateCompanyAttendance(w http.ResponseWriter, r *http.Request) {
	h.updateAttendance(w, r, h.companyAttendance)
}

func (h *Handler) DeleteCompanyAttendance(w http.ResponseWriter, r *http.Request) {
	h.deleteAttendance(w, r, h.companyAttendance)
}

func (h *Handler) ListContractorAttendance(w http.ResponseWriter, r *http.Request) {
	h.listAttendance(w, r, h.contractorAttendance, "contractor_id")
}

func (h *Handler) GetContractorAttendance(w http.ResponseWriter, r *http.Request) {
	h.getAttendance(w, r, h.contractorAttendance)
}

func (h *Handler) CreateContractorAttendance(w http.ResponseWriter, r *http.Request) {
	h.createAttendance(w, r, h.contractorAttendance, func(body attendanceCreateRequest) uint {
		return body.ContractorID
	})
}

func (h *Handler) UpdateContractorAttendance(w http.ResponseWriter, r *http.Request) {
	h.updateAttendance(w, r, h.contractorAttendance)
}

func (h *Handler) DeleteContractorAttendance(w http.ResponseWriter, r *http.Request) {
	h.deleteAttendance(w, r, h.contractorAttendance)
}
