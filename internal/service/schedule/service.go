package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/schedule"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/jwt"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
)

type shiftServiceImpl struct {
	shiftRepo schedule.ShiftRepository
}

func NewShiftService(shiftRepo schedule.ShiftRepository) schedule.ShiftService {
	return &shiftServiceImpl{shiftRepo: shiftRepo}
}

func requireAdmin(ctx context.Context) (user.Identity, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return user.Identity{}, err
	}
	if !identity.IsAdmin() {
		return user.Identity{}, user.ErrAdminPrivilegeRequired
	}
	return identity, nil
}

// CreateShift implements schedule.ShiftService.
func (s *shiftServiceImpl) CreateShift(ctx context.Context, req schedule.CreateShiftRequest) (schedule.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftResponse{}, err
	}
	identity, err := requireAdmin(ctx)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}

	created, err := s.shiftRepo.Create(ctx, schedule.Shift{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return schedule.ShiftResponse{}, err
	}

	slog.Info("shift created", "shift_id", created.ID, "name", created.Name, "by", identity.UserID)
	return schedule.NewShiftResponse(created), nil
}

// GetShift implements schedule.ShiftService.
func (s *shiftServiceImpl) GetShift(ctx context.Context, id string) (schedule.ShiftResponse, error) {
	if !validator.IsValidUUID(id) {
		return schedule.ShiftResponse{}, schedule.ErrShiftNotFound
	}
	shift, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}
	return schedule.NewShiftResponse(shift), nil
}

// ListShifts implements schedule.ShiftService.
func (s *shiftServiceImpl) ListShifts(ctx context.Context) ([]schedule.ShiftResponse, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	resp := make([]schedule.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		resp = append(resp, schedule.NewShiftResponse(sh))
	}
	return resp, nil
}

// UpdateShift implements schedule.ShiftService.
func (s *shiftServiceImpl) UpdateShift(ctx context.Context, req schedule.UpdateShiftRequest) (schedule.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftResponse{}, err
	}
	if _, err := requireAdmin(ctx); err != nil {
		return schedule.ShiftResponse{}, err
	}

	current, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}

	start, end := current.StartTime, current.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if start == end {
		return schedule.ShiftResponse{}, validator.ValidationErrors{{Field: "end_time", Message: "must differ from start_time"}}
	}

	if err := s.shiftRepo.Update(ctx, req); err != nil {
		return schedule.ShiftResponse{}, err
	}

	updated, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return schedule.ShiftResponse{}, fmt.Errorf("failed to reload shift: %w", err)
	}
	return schedule.NewShiftResponse(updated), nil
}

// DeleteShift implements schedule.ShiftService.
func (s *shiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return s.shiftRepo.Delete(ctx, id)
}
