package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"time-control-api/internal/config"
	"time-control-api/internal/handler"
	"time-control-api/internal/models"
	"time-control-api/internal/repository"
	"time-control-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logger.Info("Initializing config...")
	cfg := config.GetAppConfig()
	logger.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database: ", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get database instance: ", err)
	}

	// SQLite keeps foreign keys off unless asked.
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logger.Fatal("Failed to enable foreign keys: ", err)
	}

	userRepo, err := repository.NewUserRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create user repository")
	}
	workSiteRepo, err := repository.NewWorkSiteRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create work site repository")
	}
	companyRepo, err := repository.NewCompanyRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create company repository")
	}
	contractorRepo, err := repository.NewContractorRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create contractor repository")
	}
	resourceRepo, err := repository.NewResourceRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create resource repository")
	}
	workRuleRepo, err := repository.NewWorkRuleRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create work rule repository")
	}
	scheduleRepo, err := repository.NewScheduleRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create schedule repository")
	}
	timeEntryRepo, err := repository.NewTimeEntryRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create time entry repository")
	}
	companyAttendanceRepo, err := repository.NewAttendanceRepository[models.CompanyAttendance, *models.CompanyAttendance](db, "company_id", "Company")
	if err != nil {
		logger.WithError(err).Fatal("Failed to create company attendance repository")
	}
	contractorAttendanceRepo, err := repository.NewAttendanceRepository[models.ContractorAttendance, *models.ContractorAttendance](db, "contractor_id", "Contractor")
	if err != nil {
		logger.WithError(err).Fatal("Failed to create contractor attendance repository")
	}
	vacationRepo, err := repository.NewAbsenceRepository[models.Vacation, *models.Vacation](db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create vacation repository")
	}
	sickLeaveRepo, err := repository.NewAbsenceRepository[models.SickLeave, *models.SickLeave](db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create sick leave repository")
	}

	exists := service.NewExistence(workSiteRepo, companyRepo, contractorRepo, resourceRepo, workRuleRepo)
	guard := service.NewAuthorizationGuard(workSiteRepo)
	resolver := service.NewRuleResolver(workRuleRepo, scheduleRepo)

	authService := service.NewAuthService(db, userRepo, cfg)
	if err := authService.SeedAdmin(cfg); err != nil {
		logger.WithError(err).Fatal("Failed to seed bootstrap admin")
	}

	services := handler.Services{
		Auth:                 authService,
		Users:                service.NewUserService(db, userRepo),
		WorkSites:            service.NewWorkSiteService(db, workSiteRepo, userRepo, exists),
		Companies:            service.NewCompanyService(db, companyRepo, resourceRepo, exists),
		Contractors:          service.NewContractorService(db, contractorRepo, exists),
		Resources:            service.NewResourceService(db, resourceRepo, exists),
		WorkRules:            service.NewWorkRuleService(db, workRuleRepo, resolver, exists),
		Schedules:            service.NewScheduleService(db, scheduleRepo, exists),
		TimeEntries:          service.NewTimeEntryService(db, timeEntryRepo, resolver, guard, exists),
		CompanyAttendance:    service.NewCompanyAttendanceService(db, companyAttendanceRepo, guard, exists),
		ContractorAttendance: service.NewContractorAttendanceService(db, contractorAttendanceRepo, guard, exists),
		Vacations:            service.NewVacationService(db, vacationRepo, exists),
		SickLeaves:           service.NewSickLeaveService(db, sickLeaveRepo, exists),
	}

	api := handler.NewHandler(services, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}

	logger.Info("Server stopped")
}
