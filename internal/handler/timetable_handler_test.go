package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/univent/timetable-api/internal/dto"
	"github.com/univent/timetable-api/internal/models"
)

type timetableServiceMock struct {
	gridUniverse   string
	exportUniverse string
	exportFormat   string
}

func (m *timetableServiceMock) Grid(ctx context.Context, universeID string) (*dto.TimetableGrid, error) {
	m.gridUniverse = universeID
	return &dto.TimetableGrid{
		UniverseID: universeID,
		TotalSlots: 3,
		Days:       make([]dto.TimetableDay, models.DaysPerWeek),
		Timeslots:  models.Timeslots(),
	}, nil
}

func (m *timetableServiceMock) Export(ctx context.Context, universeID, format string) ([]byte, string, error) {
	m.exportUniverse = universeID
	m.exportFormat = format
	return []byte("Time,Monday\n"), "text/csv", nil
}

func TestTimetableGrid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &timetableServiceMock{}
	handler := &TimetableHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodGet, "/timetable?universe_id=u1", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Grid(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "u1", mockSvc.gridUniverse)
	require.Contains(t, w.Body.String(), `"total_slots":3`)
}

func TestTimetableGridRequiresUniverse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &TimetableHandler{service: &timetableServiceMock{}}

	req, _ := http.NewRequest(http.MethodGet, "/timetable", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Grid(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableExportDefaultsToCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &timetableServiceMock{}
	handler := &TimetableHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodGet, "/timetable/export?universe_id=u1", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "csv", mockSvc.exportFormat)
	require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "timetable-u1.csv")
}
