package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"time-control-api/internal/config"
	"time-control-api/internal/models"
	"time-control-api/internal/repository"
	"time-control-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
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

	userRepo, err := repository.NewUserRepository(db)
	if err != nil {
		t.Fatalf("user repository: %v", err)
	}
	workSiteRepo, err := repository.NewWorkSiteRepository(db)
	if err != nil {
		t.Fatalf("work site repository: %v", err)
	}
	companyRepo, err := repository.NewCompanyRepository(db)
	if err != nil {
		t.Fatalf("company repository: %v", err)
	}
	contractorRepo, err := repository.NewContractorRepository(db)
	if err != nil {
		t.Fatalf("contractor repository: %v", err)
	}
	resourceRepo, err := repository.NewResourceRepository(db)
	if err != nil {
		t.Fatalf("resource repository: %v", err)
	}
	workRuleRepo, err := repository.NewWorkRuleRepository(db)
	if err != nil {
		t.Fatalf("work rule repository: %v", err)
	}
	scheduleRepo, err := repository.NewScheduleRepository(db)
	if err != nil {
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

	cfg := &config.AppConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		AdminEmail:    "admin@obra.es",
		AdminPassword: "Seguro123",
	}

	exists := service.NewExistence(workSiteRepo, companyRepo, contractorRepo, resourceRepo, workRuleRepo)
	guard := service.NewAuthorizationGuard(workSiteRepo)
	resolver := service.NewRuleResolver(workRuleRepo, scheduleRepo)

	auth := service.NewAuthService(db, userRepo, cfg)
	if err := auth.SeedAdmin(cfg); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	h := NewHandler(Services{
		Auth:                 auth,
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
	}, logger)

	server := httptest.NewServer(h.Router())
	t.Cleanup(server.Close)

	return server, db
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope
}

func login(t *testing.T, server *httptest.Server, email, password string) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status %d", resp.StatusCode)
	}

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("success envelope", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login", "", map[string]string{
			"email":    "admin@obra.es",
			"password": "Seguro123",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d", resp.StatusCode)
		}
		envelope := decodeEnvelope(t, resp)
		if envelope["status"] != "success" {
			t.Fatalf("expected success envelope, got %+v", envelope)
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/auth/login", "", map[string]string{
			"email":    "admin@obra.es",
			"password": "mala",
		})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status %d", resp.StatusCode)
		}
		envelope := decodeEnvelope(t, resp)
		if envelope["status"] != "fail" || envelope["message"] == "" {
			t.Fatalf("expected fail envelope with message, got %+v", envelope)
		}
	})
}

func TestProtectedRoutes(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/work-sites", "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status %d", resp.StatusCode)
		}
	})

	token := login(t, server, "admin@obra.es", "Seguro123")

	t.Run("list envelope carries results", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/work-sites", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d", resp.StatusCode)
		}
		envelope := decodeEnvelope(t, resp)
		if envelope["status"] != "success" {
			t.Fatalf("expected success, got %+v", envelope)
		}
		if _, ok := envelope["results"]; !ok {
			t.Fatalf("list responses must carry results, got %+v", envelope)
		}
	})

	t.Run("request id header", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/work-sites", token, nil)
		if resp.Header.Get("X-Request-Id") == "" {
			t.Fatal("expected X-Request-Id header")
		}
	})
}

func TestAdminOnlyRoutes(t *testing.T) {
	server, _ := newTestServer(t)
	adminToken := login(t, server, "admin@obra.es", "Seguro123")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/users", adminToken, map[string]string{
		"email":    "capataz@obra.es",
		"name":     "Capataz",
		"password": "Seguro123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user status %d", resp.StatusCode)
	}

	userToken := login(t, server, "capataz@obra.es", "Seguro123")

	t.Run("non-admin cannot create companies", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/companies", userToken, map[string]string{
			"name": "Encofrados SL",
		})
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("status %d", resp.StatusCode)
		}
	})

	t.Run("non-admin cannot list users", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, server.URL+"/api/v1/users", userToken, nil)
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("status %d", resp.StatusCode)
		}
	})
}

func TestTimeEntryEndToEnd(t *testing.T) {
	server, _ := newTestServer(t)
	token := login(t, server, "admin@obra.es", "Seguro123")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/v1/work-sites", token, map[string]interface{}{
		"name": "North yard",
		"code": "WS1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create site status %d", resp.StatusCode)
	}
	site := decodeEnvelope(t, resp)["data"].(map[string]interface{})
	siteID := uint(site["id"].(float64))

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/companies", token, map[string]string{
		"name": "Encofrados SL",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create company status %d", resp.StatusCode)
	}
	company := decodeEnvelope(t, resp)["data"].(map[string]interface{})
	companyID := uint(company["id"].(float64))

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/resources", token, map[string]interface{}{
		"name":          "Luis",
		"company_id":    companyID,
		"resource_type": "worker",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create resource status %d", resp.StatusCode)
	}
	resource := decodeEnvelope(t, resp)["data"].(map[string]interface{})
	resourceID := uint(resource["id"].(float64))

	resp = doJSON(t, http.MethodPost, server.URL+"/api/v1/time-entries", token, map[string]interface{}{
		"work_site_id": siteID,
		"resource_id":  resourceID,
		"work_date":    "2024-03-01",
		"start_time":   "08:00",
		"end_time":     "17:00",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create time entry status %d", resp.StatusCode)
	}
	entry := decodeEnvelope(t, resp)["data"].(map[string]interface{})
	if entry["start_time"] != "08:00" || entry["work_date"] != "2024-03-01" {
		t.Fatalf("unexpected entry %+v", entry)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/v1/time-entries?work_site_id="+
		strconvUint(siteID), token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status %d", resp.StatusCode)
	}
	envelope := decodeEnvelope(t, resp)
	if envelope["results"].(float64) != 1 {
		t.Fatalf("expected 1 result, got %+v", envelope["results"])
	}
}

func strconvUint(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}
