package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/schedule"
	"github.com/google/uuid"
)

type ShiftRepository struct {
	mu     sync.RWMutex
	shifts map[string]schedule.Shift
}

func NewShiftRepository(seed ...schedule.Shift) *ShiftRepository {
	r := &ShiftRepository{shifts: make(map[string]schedule.Shift)}
	for _, s := range seed {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		r.shifts[s.ID] = s
	}
	return r
}

func (r *ShiftRepository) nameTaken(name, exceptID string) bool {
	for _, s := range r.shifts {
		if s.Name == name && s.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *ShiftRepository) Create(_ context.Context, shift schedule.Shift) (schedule.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(shift.Name, "") {
		return schedule.Shift{}, schedule.ErrShiftNameExists
	}
	now := time.Now()
	shift.ID = uuid.NewString()
	shift.CreatedAt, shift.UpdatedAt = now, now
	r.shifts[shift.ID] = shift
	return shift, nil
}

func (r *ShiftRepository) GetByID(_ context.Context, id string) (schedule.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.shifts[id]
	if !ok {
		return schedule.Shift{}, schedule.ErrShiftNotFound
	}
	return s, nil
}

func (r *ShiftRepository) List(_ context.Context) ([]schedule.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Shift, 0, len(r.shifts))
	for _, s := range r.shifts {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *ShiftRepository) Update(_ context.Context, req schedule.UpdateShiftRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.shifts[req.ID]
	if !ok {
		return schedule.ErrShiftNotFound
	}
	if req.Name != nil {
		if r.nameTaken(*req.Name, s.ID) {
			return schedule.ErrShiftNameExists
		}
		s.Name = *req.Name
	}
	if req.StartTime != nil {
		s.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		s.EndTime = *req.EndTime
	}
	s.UpdatedAt = time.Now()
	r.shifts[s.ID] = s
	return nil
}

func (r *ShiftRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shifts[id]; !ok {
		return schedule.ErrShiftNotFound
	}
	delete(r.shifts, id)
	return nil
}
