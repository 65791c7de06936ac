package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/univent/timetable-api/internal/models"
	appErrors "github.com/univent/timetable-api/pkg/errors"
)

type roomRepository interface {
	List(ctx context.Context, filter models.RoomFilter) ([]models.Room, int, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
}

// CreateRoomRequest represents payload for creating rooms.
type CreateRoomRequest struct {
	UniverseID   string `json:"universe_id" validate:"required"`
	Name         string `json:"name" validate:"required,max=200"`
	Capacity     int    `json:"capacity" validate:"required,min=1"`
	Type         string `json:"type" validate:"required,max=100"`
	Availability string `json:"availability" validate:"omitempty,max=100"`
}

// UpdateRoomRequest represents payload for updating rooms.
type UpdateRoomRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Capacity     int    `json:"capacity" validate:"required,min=1"`
	Type         string `json:"type" validate:"required,max=100"`
	Availability string `json:"availability" validate:"omitempty,max=100"`
}

// RoomService orchestrates room operations.
type RoomService struct {
	repo      roomRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService constructs a RoomService.
func NewRoomService(repo roomRepository, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, validator: validate, logger: logger}
}

// List returns rooms plus pagination data.
func (s *RoomService) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, *models.Pagination, error) {
	rooms, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns a room by id.
func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	return room, nil
}

// Create registers a new room.
func (s *RoomService) Create(ctx context.Context, req CreateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	if err := validateAvailability(req.Availability); err != nil {
		return nil, err
	}

	room := &models.Room{
		UniverseID:   strings.TrimSpace(req.UniverseID),
		Name:         strings.TrimSpace(req.Name),
		Capacity:     req.Capacity,
		Type:         strings.TrimSpace(req.Type),
		Availability: strings.TrimSpace(req.Availability),
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}
	return room, nil
}

// Update modifies an existing room.
func (s *RoomService) Update(ctx context.Context, id string, req UpdateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	if err := validateAvailability(req.Availability); err != nil {
		return nil, err
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	room.Name = strings.TrimSpace(req.Name)
	room.Capacity = req.Capacity
	room.Type = strings.TrimSpace(req.Type)
	room.Availability = strings.TrimSpace(req.Availability)

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update room")
	}
	return room, nil
}

// Delete removes a room record.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete room")
	}
	return nil
}

// validateAvailability accepts the empty encoding (always open) or a
// comma-separated per-day bitmap where each entry holds only '1'/'0'
// slot flags.
func validateAvailability(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	days := strings.Split(trimmed, ",")
	if len(days) > models.DaysPerWeek {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("availability lists %d days, at most %d allowed", len(days), models.DaysPerWeek))
	}
	for i, mask := range days {
		if len(mask) == 0 || len(mask) > models.SlotsPerDay {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("availability day %d must hold between 1 and %d slot flags", i+1, models.SlotsPerDay))
		}
		for _, flag := range mask {
			if flag != '0' && flag != '1' {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("availability day %d contains %q, only '0' and '1' are allowed", i+1, string(flag)))
			}
		}
	}
	return nil
}
