package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univent/timetable-api/internal/dto"
	"github.com/univent/timetable-api/internal/service"
	appErrors "github.com/univent/timetable-api/pkg/errors"
	"github.com/univent/timetable-api/pkg/response"
)

type scheduleGenerator interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResult, error)
	Clear(ctx context.Context, req dto.ClearScheduleRequest) (*dto.ClearScheduleResult, error)
}

// ScheduleHandler exposes the generate and clear operations.
type ScheduleHandler struct {
	service scheduleGenerator
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Generate godoc
// @Summary Generate the weekly timetable for a scheduling universe
// @Description Replaces the universe's slot set atomically. Courses short of their quota appear in the shortfall list.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generate payload"
// @Success 200 {object} response.Envelope
// @Router /schedule/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Clear godoc
// @Summary Clear all generated slots for a scheduling universe
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.ClearScheduleRequest true "Clear payload"
// @Success 200 {object} response.Envelope
// @Router /schedule/clear [post]
func (h *ScheduleHandler) Clear(c *gin.Context) {
	var req dto.ClearScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid clear payload"))
		return
	}
	result, err := h.service.Clear(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
