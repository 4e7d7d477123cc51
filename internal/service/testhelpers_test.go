package service

import (
	"path/filepath"
	"testing"
	"time"

	"time-control-api/internal/models"
	"time-control-api/internal/repository"
	"time-control-api/pkg/clock"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full engine stack against a throwaway sqlite database.
type testEnv struct {
	db *gorm.DB

	users       *repository.UserRepository
	workSites   *repository.WorkSiteRepository
	companies   *repository.CompanyRepository
	contractors *repository.ContractorRepository
	resources   *repository.ResourceRepository
	workRules   *repository.WorkRuleRepository
	schedules   *repository.ScheduleRepository

	exists   *Existence
	guard    *AuthorizationGuard
	resolver *RuleResolver

	timeEntries          *TimeEntryService
	companyAttendance    *AttendanceService[models.CompanyAttendance, *models.CompanyAttendance]
	contractorAttendance *AttendanceService[models.ContractorAttendance, *models.ContractorAttendance]
	vacations            *AbsenceService[models.Vacation, *models.Vacation]
	sickLeaves           *AbsenceService[models.SickLeave, *models.SickLeave]
	workSiteService      *WorkSiteService
	workRuleService      *WorkRuleService
	scheduleService      *ScheduleService
	companyService       *CompanyService
	resourceService      *ResourceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("database instance: %v", err)
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	env := &testEnv{db: db}

	if env.users, err = repository.NewUserRepository(db); err != nil {
		t.Fatalf("user repository: %v", err)
	}
	if env.workSites, err = repository.NewWorkSiteRepository(db); err != nil {
		t.Fatalf("work site repository: %v", err)
	}
	if env.companies, err = repository.NewCompanyRepository(db); err != nil {
		t.Fatalf("company repository: %v", err)
	}
	if env.contractors, err = repository.NewContractorRepository(db); err != nil {
		t.Fatalf("contractor repository: %v", err)
	}
	if env.resources, err = repository.NewResourceRepository(db); err != nil {
		t.Fatalf("resource repository: %v", err)
	}
	if env.workRules, err = repository.NewWorkRuleRepository(db); err != nil {
		t.Fatalf("work rule repository: %v", err)
	}
	if env.schedules, err = repository.NewScheduleRepository(db); err != nil {
		t.Fatalf("schedule repository: %v", err)
	}
	timeEntryRepo, err := repository.NewTimeEntryRepository(db)
	if err != nil {
		t.Fatalf("time entry repository: %v", err)
	}
	companyAttendanceRepo, err := repository.NewAttendanceRepository[models.CompanyAttendance, *models.CompanyAttendance](db, "company_id", "Company")
	if err != nil {
		t.Fatalf("company attendance repository: %v", err)
	}
	contractorAttendanceRepo, err := repository.NewAttendanceRepository[models.ContractorAttendance, *models.ContractorAttendance](db, "contractor_id", "Contractor")
	if err != nil {
		t.Fatalf("contractor attendance repository: %v", err)
	}
	vacationRepo, err := repository.NewAbsenceRepository[models.Vacation, *models.Vacation](db)
	if err != nil {
		t.Fatalf("vacation repository: %v", err)
	}
	sickLeaveRepo, err := repository.NewAbsenceRepository[models.SickLeave, *models.SickLeave](db)
	if err != nil {
		t.Fatalf("sick leave repository: %v", err)
	}

	env.exists = NewExistence(env.workSites, env.companies, env.contractors, env.resources, env.workRules)
	env.guard = NewAuthorizationGuard(env.workSites)
	env.resolver = NewRuleResolver(env.workRules, env.schedules)

	env.timeEntries = NewTimeEntryService(db, timeEntryRepo, env.resolver, env.guard, env.exists)
	env.companyAttendance = NewCompanyAttendanceService(db, companyAttendanceRepo, env.guard, env.exists)
	env.contractorAttendance = NewContractorAttendanceService(db, contractorAttendanceRepo, env.guard, env.exists)
	env.vacations = NewVacationService(db, vacationRepo, env.exists)
	env.sickLeaves = NewSickLeaveService(db, sickLeaveRepo, env.exists)
	env.workSiteService = NewWorkSiteService(db, env.workSites, env.users, env.exists)
	env.workRuleService = NewWorkRuleService(db, env.workRules, env.resolver, env.exists)
	env.scheduleService = NewScheduleService(db, env.schedules, env.exists)
	env.companyService = NewCompanyService(db, env.companies, env.resources, env.exists)
	env.resourceService = NewResourceService(db, env.resources, env.exists)

	return env
}

func (env *testEnv) createUser(t *testing.T, email, role string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: email, PasswordHash: "x", Role: role, Active: true}
	if err := env.users.Create(env.db, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (env *testEnv) createSite(t *testing.T, name, code string, users ...*models.User) *models.WorkSite {
	t.Helper()
	site := &models.WorkSite{Name: name, Code: code, Open: true}
	if err := env.workSites.Create(env.db, site); err != nil {
		t.Fatalf("create work site: %v", err)
	}
	if len(users) > 0 {
		if err := env.workSites.ReplaceUsers(env.db, site, users); err != nil {
			t.Fatalf("assign users: %v", err)
		}
	}
	return site
}

func (env *testEnv) createCompany(t *testing.T, name string, isMain bool) *models.Company {
	t.Helper()
	company := &models.Company{Name: name, IsMain: isMain, Active: true}
	if err := env.companies.Create(env.db, company); err != nil {
		t.Fatalf("create company: %v", err)
	}
	return company
}

func (env *testEnv) createContractor(t *testing.T, name string) *models.Contractor {
	t.Helper()
	contractor := &models.Contractor{Name: name, Active: true}
	if err := env.contractors.Create(env.db, contractor); err != nil {
		t.Fatalf("create contractor: %v", err)
	}
	return contractor
}

func (env *testEnv) createResource(t *testing.T, name string, company *models.Company) *models.Resource {
	t.Helper()
	resource := &models.Resource{Name: name, CompanyID: company.ID, ResourceType: models.ResourceWorker, Active: true}
	if err := env.resources.Create(env.db, resource); err != nil {
		t.Fatalf("create resource: %v", err)
	}
	resource.Company = *company
	return resource
}

func (env *testEnv) createRule(t *testing.T, site *models.WorkSite, company *models.Company, correction int, validFrom string, validTo *string) *models.WorkRule {
	t.Helper()
	rule := &models.WorkRule{
		WorkSiteID:           site.ID,
		CompanyID:            company.ID,
		DayCorrectionMinutes: correction,
		ValidFrom:            date(t, validFrom),
	}
	if validTo != nil {
		to := date(t, *validTo)
		rule.ValidTo = &to
	}
	if err := env.workRules.Create(env.db, rule); err != nil {
		t.Fatalf("create work rule: %v", err)
	}
	return rule
}

func (env *testEnv) createSchedule(t *testing.T, company *models.Company, start, end string, correction int, validFrom string) *models.Schedule {
	t.Helper()
	schedule := &models.Schedule{
		CompanyID:            company.ID,
		StartTime:            start,
		EndTime:              end,
		DayCorrectionMinutes: correction,
		ValidFrom:            date(t, validFrom),
	}
	if err := env.schedules.Create(env.db, schedule); err != nil {
		t.Fatalf("create schedule: %v", err)
	}
	return schedule
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := clock.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}

func strPtr(value string) *string {
	return &value
}

func timePtr(value time.Time) *time.Time {
	return &value
}
