package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenmartialarts/shopshift-api/pkg/auth"
	"github.com/greenmartialarts/shopshift-api/pkg/database"
	"github.com/greenmartialarts/shopshift-api/pkg/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&database.APIKey{}, &database.APIUsage{}, &database.MasterUser{},
		&database.ScheduleRecord{}, &database.PunchEvent{},
	))

	h := &Handler{DB: db}
	return NewRouter(h, RouterConfig{}), db
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func apiKeyHeader(t *testing.T) map[string]string {
	t.Helper()
	t.Setenv("API_MASTER_SECRET", "test-secret")
	return map[string]string{"Authorization": "Bearer " + auth.GenerateHMACKey("tester")}
}

func sampleInput() models.ScheduleInput {
	return models.ScheduleInput{
		ShopID:   "corner-deli",
		ShopName: "Corner Deli",
		OperatingHours: []models.DayHoursInput{
			{Weekday: 1, Open: "09:00", Close: "17:00"},
		},
		Employees: []models.EmployeeInput{
			{ID: "emp1", Name: "Alice", MaxWeeklyMinutes: 180, Availability: []models.AvailabilityInput{
				{Weekday: 1, Start: "09:00", End: "12:00"},
			}},
			{ID: "emp2", Name: "Bob", MaxWeeklyMinutes: 300},
		},
	}
}

func TestGenerateSchedule(t *testing.T) {
	r, db := newTestRouter(t)

	w := postJSON(t, r, "/api/schedule", sampleInput(), apiKeyHeader(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ScheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.GenerationID)
	assert.Empty(t, resp.Gaps)
	require.Len(t, resp.Assignments, 2)
	assert.Equal(t, "emp1", resp.Assignments[0].EmployeeID)
	assert.True(t, resp.Assignments[0].InAvailability)
	assert.Equal(t, "emp2", resp.Assignments[1].EmployeeID)
	assert.False(t, resp.Assignments[1].InAvailability)
	assert.Equal(t, models.IncentiveOutsideAvailability, resp.Assignments[1].IncentiveReason)
	assert.True(t, resp.Report.Valid)

	// The schedule was persisted and usage recorded.
	var record database.ScheduleRecord
	require.NoError(t, db.Where("shop_id = ?", "corner-deli").First(&record).Error)
	assert.Equal(t, resp.GenerationID, record.GenerationID)
	assert.True(t, record.FullyCovered)

	var usage database.APIUsage
	require.NoError(t, db.First(&usage).Error)
	assert.Equal(t, 1, usage.RequestCount)
	assert.Equal(t, 2, usage.TotalEmployees)
}

func TestGenerateSchedule_CalendarEvents(t *testing.T) {
	r, _ := newTestRouter(t)

	input := sampleInput()
	input.WeekStart = "2026-03-01"
	w := postJSON(t, r, "/api/schedule", input, apiKeyHeader(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ScheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.CalendarEvents, 2)
	assert.Equal(t, "Corner Deli shift: Alice", resp.CalendarEvents[0].Summary)
}

func TestGenerateSchedule_RejectsBadBounds(t *testing.T) {
	r, _ := newTestRouter(t)

	input := sampleInput()
	input.Employees[0].MinWeeklyMinutes = 600
	input.Employees[0].MaxWeeklyMinutes = 120

	w := postJSON(t, r, "/api/schedule", input, apiKeyHeader(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateSchedule_RequiresAPIKey(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/api/schedule", sampleInput(), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateInput(t *testing.T) {
	r, _ := newTestRouter(t)
	headers := apiKeyHeader(t)

	w := postJSON(t, r, "/api/validate", sampleInput(), headers)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Valid bool `json:"valid"`
		Stats struct {
			GapCount     int  `json:"gap_count"`
			FullyCovered bool `json:"fully_covered"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.True(t, resp.Stats.FullyCovered)
}

func TestValidateInput_DuplicateEmployee(t *testing.T) {
	r, _ := newTestRouter(t)

	input := sampleInput()
	input.Employees = append(input.Employees, input.Employees[0])

	w := postJSON(t, r, "/api/validate", input, apiKeyHeader(t))
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Valid bool   `json:"valid"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Contains(t, resp.Error, "Duplicate employee ID")
}

func TestPunchFlow(t *testing.T) {
	r, db := newTestRouter(t)
	headers := apiKeyHeader(t)

	w := postJSON(t, r, "/api/punch-token", gin.H{
		"shop_id":     "corner-deli",
		"employee_id": "emp1",
	}, headers)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tokenResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokenResp))
	require.NotEmpty(t, tokenResp.Token)

	// The scanner posts the token without any API key.
	w = postJSON(t, r, "/punch", gin.H{"token": tokenResp.Token, "kind": "in"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var event database.PunchEvent
	require.NoError(t, db.First(&event).Error)
	assert.Equal(t, "corner-deli", event.ShopID)
	assert.Equal(t, "emp1", event.EmployeeID)
	assert.Equal(t, "in", event.Kind)
}

func TestPunch_RejectsBadKind(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/punch", gin.H{"token": "whatever", "kind": "lunch"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPunch_RejectsBadToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/punch", gin.H{"token": "not-a-token", "kind": "in"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
