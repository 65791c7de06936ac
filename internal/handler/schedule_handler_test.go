package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/univent/timetable-api/internal/dto"
	appErrors "github.com/univent/timetable-api/pkg/errors"
)

type scheduleServiceMock struct {
	captured    dto.GenerateScheduleRequest
	generateErr error
	cleared     dto.ClearScheduleRequest
}

func (m *scheduleServiceMock) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResult, error) {
	m.captured = req
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return &dto.GenerateScheduleResult{
		Message:           "Schedule generated: 12 lessons placed",
		SlotsCreated:      12,
		CoursesConsidered: 4,
	}, nil
}

func (m *scheduleServiceMock) Clear(ctx context.Context, req dto.ClearScheduleRequest) (*dto.ClearScheduleResult, error) {
	m.cleared = req
	return &dto.ClearScheduleResult{Message: "Schedule cleared", SlotsRemoved: 12}, nil
}

func TestScheduleGenerateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleServiceMock{}
	handler := &ScheduleHandler{service: mockSvc}

	body := []byte(`{"universe_id":"u1"}`)
	req, _ := http.NewRequest(http.MethodPost, "/schedule/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "u1", mockSvc.captured.UniverseID)

	var envelope struct {
		Data dto.GenerateScheduleResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, 12, envelope.Data.SlotsCreated)
}

func TestScheduleGenerateMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleHandler{service: &scheduleServiceMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/schedule/generate", bytes.NewReader([]byte(`{"universe_id":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleGenerateNoCourses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleServiceMock{
		generateErr: appErrors.Clone(appErrors.ErrPreconditionFailed, "no courses to schedule"),
	}
	handler := &ScheduleHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodPost, "/schedule/generate", bytes.NewReader([]byte(`{"universe_id":"u1"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusPreconditionFailed, w.Code)
	require.Contains(t, w.Body.String(), "no courses to schedule")
}

func TestScheduleClearSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleServiceMock{}
	handler := &ScheduleHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodPost, "/schedule/clear", bytes.NewReader([]byte(`{"universe_id":"u1"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Clear(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "u1", mockSvc.cleared.UniverseID)
}
