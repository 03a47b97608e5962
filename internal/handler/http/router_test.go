package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/jwt"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/statestore"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/storage"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/repository/memory"
	attendanceService "github.com/Oyono-Mathias/Om-suivi-sub000/internal/service/attendance"
	employeeService "github.com/Oyono-Mathias/Om-suivi-sub000/internal/service/employee"
	leaveService "github.com/Oyono-Mathias/Om-suivi-sub000/internal/service/leave"
	payrollService "github.com/Oyono-Mathias/Om-suivi-sub000/internal/service/payroll"
	scheduleService "github.com/Oyono-Mathias/Om-suivi-sub000/internal/service/schedule"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	workerID          = "11111111-1111-4111-8111-111111111111"
	colleagueID       = "22222222-2222-4222-8222-222222222222"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testAPI struct {
	router      *chi.Mux
	fileStorage *storage.LocalStorage
	admin       string
	worker      string
	colleague   string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	salary := decimal.NewFromInt(300000)
	hired := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	employees := memory.NewEmployeeRepository(
		employee.Profile{
			ID:                workerID,
			FullName:          "Jean Mballa",
			MonthlyBaseSalary: &salary,
			Currency:          "XAF",
			HireDate:          &hired,
			Role:              user.RoleEmployee,
			IsActive:          true,
		},
		employee.Profile{ID: colleagueID, FullName: "Awa Fotso", Currency: "XAF", Role: user.RoleEmployee, IsActive: true},
	)
	entries := memory.NewTimeEntryRepository()
	overrides := memory.NewOverrideRepository()
	shifts := memory.NewShiftRepository()
	payrollRepo := memory.NewPayrollRepository()

	fileStorage, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/files")
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")

	timeEntrySvc := attendanceService.NewTimeEntryService(entries, employees, shifts, payrollRepo, statestore.NewMemoryStore(), time.UTC)
	overrideSvc := attendanceService.NewOverrideService(overrides, employees)
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo, employees, entries, overrides, shifts, memory.Transactor{},
		payrollService.NewCalculator(leaveService.NewAccrualCalculator(), slog.Default()),
		fileStorage, 2, time.UTC,
	)

	api := &testAPI{fileStorage: fileStorage}
	api.router = NewRouter(
		RouterConfig{AllowedOrigins: []string{"http://localhost:3000"}, Env: "test", Version: "test", LogLevel: slog.LevelError},
		jwtService,
		NewTimeEntryHandler(timeEntrySvc),
		NewOverrideHandler(overrideSvc),
		NewShiftHandler(scheduleService.NewShiftService(shifts)),
		NewEmployeeHandler(employeeService.NewEmployeeService(employees)),
		NewPayrollHandler(payrollSvc),
		NewLeaveHandler(leaveService.NewLeaveService(employees, payrollRepo, leaveService.NewAccrualCalculator())),
		NewFileHandler(fileStorage),
	)

	api.admin = issueToken(t, jwtService, user.Identity{UserID: "u-admin", Role: user.RoleAdmin})
	api.worker = issueToken(t, jwtService, user.Identity{UserID: "u-worker", EmployeeID: workerID, Role: user.RoleEmployee})
	api.colleague = issueToken(t, jwtService, user.Identity{UserID: "u-colleague", EmployeeID: colleagueID, Role: user.RoleEmployee})
	return api
}

func issueToken(t *testing.T, jwtService jwt.Service, identity user.Identity) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken(identity)
	require.NoError(t, err)
	return token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestRouter_RequiresToken(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/shifts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/shifts", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other := issueToken(t, jwt.NewJWTService("another-secret", "1h"), user.Identity{UserID: "u-x", Role: user.RoleAdmin})
	w = api.do(t, http.MethodGet, "/api/v1/shifts", other, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_Heartbeat(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestShiftHandler_AdminManagesShifts(t *testing.T) {
	api := newTestAPI(t)

	body := map[string]string{"name": "Day", "start_time": "08:00", "end_time": "16:00"}
	w := api.do(t, http.MethodPost, "/api/v1/shifts", api.worker, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/shifts", api.admin, body)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "Day", created.Name)

	w = api.do(t, http.MethodGet, "/api/v1/shifts", api.worker, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &list))
	assert.Len(t, list, 1)

	w = api.do(t, http.MethodPost, "/api/v1/shifts", api.admin, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(t, http.MethodDelete, "/api/v1/shifts/"+created.ID, api.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/shifts/"+created.ID, api.worker, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShiftHandler_ValidationError(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/shifts", api.admin, map[string]string{"name": "Bad", "start_time": "25:00", "end_time": "16:00"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "start_time")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts", strings.NewReader("{not json"))
	req.Header.Set("Authorization", "Bearer "+api.admin)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimeEntryHandler_ClockFlow(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/time-entries/clock-in", api.worker, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var entry struct {
		ID         string `json:"id"`
		EmployeeID string `json:"employee_id"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &entry))
	assert.Equal(t, workerID, entry.EmployeeID)
	assert.Equal(t, "open", entry.Status)

	w = api.do(t, http.MethodPost, "/api/v1/time-entries/clock-in", api.worker, map[string]interface{}{})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/time-entries/open", api.worker, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/time-entries/clock-out", api.worker, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &entry))
	assert.Equal(t, "closed", entry.Status)

	w = api.do(t, http.MethodPost, "/api/v1/time-entries/clock-out", api.worker, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/time-entries/me", api.worker, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &mine))
	assert.Len(t, mine.Data, 1)

	w = api.do(t, http.MethodGet, "/api/v1/time-entries/"+entry.ID, api.colleague, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/time-entries", api.worker, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/time-entries?employee_id="+workerID, api.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodDelete, "/api/v1/time-entries/"+entry.ID, api.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeEntryHandler_ClockInRequiresEmployee(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/time-entries/clock-in", api.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/time-entries/clock-in", api.worker, map[string]interface{}{"latitude": 4.05})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEmployeeHandler_Profiles(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/employees/me", api.worker, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		ID           string `json:"id"`
		PayrollReady bool   `json:"payroll_ready"`
	}
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &me))
	assert.Equal(t, workerID, me.ID)
	assert.True(t, me.PayrollReady)

	w = api.do(t, http.MethodGet, "/api/v1/employees/"+workerID, api.colleague, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/employees", api.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Data []map[string]interface{} `json:"data"`
		Meta struct {
			TotalItems int64 `json:"total_items"`
		} `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&listed))
	assert.Len(t, listed.Data, 2)
	assert.Equal(t, int64(2), listed.Meta.TotalItems)

	w = api.do(t, http.MethodPut, "/api/v1/employees/"+colleagueID, api.admin, map[string]interface{}{"monthly_base_salary": "-5"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(t, http.MethodPut, "/api/v1/employees/"+colleagueID, api.admin, map[string]interface{}{"monthly_base_salary": "250000", "hire_date": "2023-06-01"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOverrideHandler_SetListDelete(t *testing.T) {
	api := newTestAPI(t)
	base := "/api/v1/employees/" + workerID + "/overrides"

	w := api.do(t, http.MethodPut, base, api.worker, map[string]string{"date": "2025-03-05", "status": "sick_leave"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodPut, base, api.admin, map[string]string{"date": "2025-03-05", "status": "sick_leave"})
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, base+"?month=3&year=2025", api.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "sick_leave", list[0]["status"])

	w = api.do(t, http.MethodDelete, base+"/2025-03-05", api.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodDelete, base+"/2025-03-05", api.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayrollHandler_AccessRules(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/payroll/settings", api.worker, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var settings struct {
		IsDefault bool `json:"is_default"`
	}
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &settings))
	assert.True(t, settings.IsDefault)

	w = api.do(t, http.MethodPut, "/api/v1/payroll/settings", api.worker, map[string]interface{}{"geofence_radius": 100})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/payroll/preview?employee_id="+workerID+"&month=3&year=2025", api.colleague, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/payroll/preview?month=13&year=2025", api.worker, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/payroll/summary?month=3&year=2025", api.worker, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/payroll/export?month=3&year=2025&format=csv", api.admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/payroll/export?month=3&year=2025&format=pdf", api.admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPayrollHandler_GenerateAndExport(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/payroll/generate", api.admin, map[string]interface{}{"period_month": 3, "period_year": 2025})
	require.Equal(t, http.StatusCreated, w.Code)

	var generated struct {
		Generated []struct {
			ID         string `json:"id"`
			EmployeeID string `json:"employee_id"`
		} `json:"generated"`
		Skipped []struct {
			EmployeeID string `json:"employee_id"`
			Reason     string `json:"reason"`
		} `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &generated))
	require.Len(t, generated.Generated, 1)
	assert.Equal(t, workerID, generated.Generated[0].EmployeeID)
	require.Len(t, generated.Skipped, 1)
	assert.Equal(t, colleagueID, generated.Skipped[0].EmployeeID)

	recordID := generated.Generated[0].ID

	w = api.do(t, http.MethodGet, "/api/v1/payroll/records/"+recordID, api.worker, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/payroll/records/"+recordID, api.colleague, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/payroll/export?month=3&year=2025&format=csv", api.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payroll_2025-03.csv")
	assert.Contains(t, w.Body.String(), "Jean Mballa")

	w = api.do(t, http.MethodPost, "/api/v1/payroll/records/finalize", api.admin, map[string]interface{}{"record_ids": []string{recordID}})
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodDelete, "/api/v1/payroll/records/"+recordID, api.admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/payroll/summary?month=3&year=2025", api.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		TotalEmployees int `json:"total_employees"`
		PaidCount      int `json:"paid_count"`
	}
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &summary))
	assert.Equal(t, 1, summary.TotalEmployees)
	assert.Equal(t, 1, summary.PaidCount)
}

func TestLeaveHandler_Balance(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/leave/balance", api.worker, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var balance struct {
		EmployeeID string `json:"employee_id"`
	}
	require.NoError(t, json.Unmarshal(decodeResponse(t, w).Data, &balance))
	assert.Equal(t, workerID, balance.EmployeeID)

	w = api.do(t, http.MethodGet, "/api/v1/leave/balance?employee_id="+workerID, api.colleague, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/leave/balance?employee_id="+colleagueID, api.admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestFileHandler_Download(t *testing.T) {
	api := newTestAPI(t)

	_, err := api.fileStorage.Upload(context.Background(), strings.NewReader("a,b\n1,2\n"), "payroll/2025-03/export.csv", "text/csv")
	require.NoError(t, err)

	w := api.do(t, http.MethodGet, "/files/payroll/2025-03/export.csv", api.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a,b\n1,2\n", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "export.csv")

	w = api.do(t, http.MethodGet, "/files/payroll/2025-03/export.csv", api.worker, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodGet, "/files/payroll/2025-03/missing.csv", api.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
