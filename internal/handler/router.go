package handler

import (
	"net/http"

	"time-control-api/internal/models"
	"time-control-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Handler bundles the engines behind the REST surface.
type Handler struct {
	auth                 *service.AuthService
	users                *service.UserService
	workSites            *service.WorkSiteService
	companies            *service.CompanyService
	contractors          *service.ContractorService
	resources            *service.ResourceService
	workRules            *service.WorkRuleService
	schedules            *service.ScheduleService
	timeEntries          *service.TimeEntryService
	companyAttendance    *service.AttendanceService[models.CompanyAttendance, *models.CompanyAttendance]
	contractorAttendance *service.AttendanceService[models.ContractorAttendance, *models.ContractorAttendance]
	vacations            *service.AbsenceService[models.Vacation, *models.Vacation]
	sickLeaves           *service.AbsenceService[models.SickLeave, *models.SickLeave]
	logger               *logrus.Logger
}

type Services struct {
	Auth                 *service.AuthService
	Users                *service.UserService
	WorkSites            *service.WorkSiteService
	Companies            *service.CompanyService
	Contractors          *service.ContractorService
	Resources            *service.ResourceService
	WorkRules            *service.WorkRuleService
	Schedules            *service.ScheduleService
	TimeEntries          *service.TimeEntryService
	CompanyAttendance    *service.AttendanceService[models.CompanyAttendance, *models.CompanyAttendance]
	ContractorAttendance *service.AttendanceService[models.ContractorAttendance, *models.ContractorAttendance]
	Vacations            *service.AbsenceService[models.Vacation, *models.Vacation]
	SickLeaves           *service.AbsenceService[models.SickLeave, *models.SickLeave]
}

func NewHandler(services Services, logger *logrus.Logger) *Handler {
	return &Handler{
		auth:                 services.Auth,
		users:                services.Users,
		workSites:            services.WorkSites,
		companies:            services.Companies,
		contractors:          services.Contractors,
		resources:            services.Resources,
		workRules:            services.WorkRules,
		schedules:            services.Schedules,
		timeEntries:          services.TimeEntries,
		companyAttendance:    services.CompanyAttendance,
		contractorAttendance: services.ContractorAttendance,
		vacations:            services.Vacations,
		sickLeaves:           services.SickLeaves,
		logger:               logger,
	}
}

// Router mounts the whole API under /api/v1. Everything except the login
// endpoint requires a session; mutation of master data requires admin.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(h.logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(Protect(h.auth, h.logger))

			r.Route("/time-entries", func(r chi.Router) {
				r.Get("/", h.ListTimeEntries)
				r.Post("/", h.CreateTimeEntry)
				r.Get("/{id}", h.GetTimeEntry)
				r.Patch("/{id}", h.UpdateTimeEntry)
				r.Delete("/{id}", h.DeleteTimeEntry)
				r.Patch("/{id}/fix-worked-minutes", h.FixTimeEntryWorkedMinutes)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.ListCompanyAttendance)
				r.Post("/", h.CreateCompanyAttendance)
				r.Get("/{id}", h.GetCompanyAttendance)
				r.Patch("/{id}", h.UpdateCompanyAttendance)
				r.Delete("/{id}", h.DeleteCompanyAttendance)
			})

			r.Route("/contractor-attendance", func(r chi.Router) {
				r.Get("/", h.ListContractorAttendance)
				r.Post("/", h.CreateContractorAttendance)
				r.Get("/{id}", h.GetContractorAttendance)
				r.Patch("/{id}", h.UpdateContractorAttendance)
				r.Delete("/{id}", h.DeleteContractorAttendance)
			})

			r.Route("/work-rules", func(r chi.Router) {
				r.Get("/", h.ListWorkRules)
				r.Get("/resolve", h.ResolveWorkRule)
				r.Get("/{id}", h.GetWorkRule)

				r.Group(func(r chi.Router) {
					r.Use(AdminOnly(h.logger))
					r.Post("/", h.CreateWorkRule)
					r.Patch("/{id}", h.UpdateWorkRule)
					r.Delete("/{id}", h.DeleteWorkRule)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", h.ListSchedules)
				r.Get("/{id}", h.GetSchedule)

				r.Group(func(r chi.Router) {
					r.Use(AdminOnly(h.logger))
					r.Post("/", h.CreateSchedule)
					r.Patch("/{id}", h.UpdateSchedule)
					r.Delete("/{id}", h.DeleteSchedule)
				})
			})

			r.Route("/work-sites", func(r chi.Router) {
				r.Get("/", h.ListWorkSites)
				r.Get("/mine", h.ListMyWorkSites)
				r.Get("/{id}", h.GetWorkSite)

				r.Group(func(r chi.Router) {
					r.Use(AdminOnly(h.logger))
					r.Post("/", h.CreateWorkSite)
					r.Patch("/{id}", h.UpdateWorkSite)
				})
			})

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", h.ListCompanies)
				r.Get("/{id}", h.GetCompany)
				r.Get("/{id}/resources", h.ListCompanyResources)
				r.Patch("/{id}", h.UpdateCompany)

				r.Group(func(r chi.Router) {
					r.Use(AdminOnly(h.logger))
					r.Post("/", h.CreateCompany)
					r.Delete("/{id}", h.DeleteCompany)
				})
			})

			r.Route("/contractors", func(r chi.Router) {
				r.Get("/", h.ListContractors)
				r.Get("/{id}", h.GetContractor)

				r.Group(func(r chi.Router) {
					r.Use(AdminOnly(h.logger))
					r.Post("/", h.CreateContractor)
					r.Patch("/{id}", h.UpdateContractor)
					r.Delete("/{id}", h.DeleteContractor)
				})
			})

			r.Route("/resources", func(r chi.Router) {
				r.Get("/", h.ListResources)
				r.Get("/{id}", h.GetResource)

				r.Group(func(r chi.Router) {
					r.Use(AdminOnly(h.logger))
					r.Post("/", h.CreateResource)
					r.Patch("/{id}", h.UpdateResource)
					r.Delete("/{id}", h.DeleteResource)
				})
			})

			r.Route("/vacations", func(r chi.Router) {
				r.Get("/", h.ListVacations)
				r.Post("/", h.CreateVacation)
				r.Get("/{id}", h.GetVacation)
				r.Patch("/{id}", h.UpdateVacation)
				r.Delete("/{id}", h.DeleteVacation)
			})

			r.Route("/sick-leaves", func(r chi.Router) {
				r.Get("/", h.ListSickLeaves)
				r.Post("/", h.CreateSickLeave)
				r.Get("/{id}", h.GetSickLeave)
				r.Patch("/{id}", h.UpdateSickLeave)
				r.Delete("/{id}", h.DeleteSickLeave)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(AdminOnly(h.logger))
				r.Get("/", h.ListUsers)
				r.Post("/", h.CreateUser)
				r.Get("/{id}", h.GetUser)
				r.Patch("/{id}", h.UpdateUser)
			})
		})
	})

	return r
}
