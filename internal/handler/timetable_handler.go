package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/univent/timetable-api/internal/dto"
	"github.com/univent/timetable-api/internal/service"
	appErrors "github.com/univent/timetable-api/pkg/errors"
	"github.com/univent/timetable-api/pkg/response"
)

type timetableReader interface {
	Grid(ctx context.Context, universeID string) (*dto.TimetableGrid, error)
	Export(ctx context.Context, universeID, format string) ([]byte, string, error)
}

// TimetableHandler exposes the read-side weekly grid.
type TimetableHandler struct {
	service timetableReader
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Grid godoc
// @Summary Get the weekly timetable grid
// @Tags Timetable
// @Produce json
// @Param universe_id query string true "Scheduling universe"
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) Grid(c *gin.Context) {
	universeID := strings.TrimSpace(c.Query("universe_id"))
	if universeID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "universe_id is required"))
		return
	}
	grid, err := h.service.Grid(c.Request.Context(), universeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// Export godoc
// @Summary Export the weekly timetable as CSV or PDF
// @Tags Timetable
// @Produce text/csv
// @Produce application/pdf
// @Param universe_id query string true "Scheduling universe"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} binary
// @Router /timetable/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	universeID := strings.TrimSpace(c.Query("universe_id"))
	if universeID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "universe_id is required"))
		return
	}
	format := strings.ToLower(c.DefaultQuery("format", "csv"))

	payload, contentType, err := h.service.Export(c.Request.Context(), universeID, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("timetable-%s.%s", universeID, format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, payload)
}
