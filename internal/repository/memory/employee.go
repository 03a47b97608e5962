package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
	"github.com/google/uuid"
)

type EmployeeRepository struct {
	mu       sync.RWMutex
	profiles map[string]employee.Profile
}

func NewEmployeeRepository(seed ...employee.Profile) *EmployeeRepository {
	r := &EmployeeRepository{profiles: make(map[string]employee.Profile)}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		r.profiles[p.ID] = p
	}
	return r
}

func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return employee.Profile{}, employee.ErrEmployeeNotFound
	}
	return p, nil
}

func (r *EmployeeRepository) GetByUserID(_ context.Context, userID string) (employee.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.UserID != nil && *p.UserID == userID {
			return p, nil
		}
	}
	return employee.Profile{}, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepository) Create(_ context.Context, profile employee.Profile) (employee.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.profiles {
		if profile.Email != nil && p.Email != nil && strings.EqualFold(*p.Email, *profile.Email) {
			return employee.Profile{}, employee.ErrEmailExists
		}
		if profile.UserID != nil && p.UserID != nil && *p.UserID == *profile.UserID {
			return employee.Profile{}, employee.ErrUserAlreadyLinked
		}
	}

	now := time.Now()
	profile.ID = uuid.NewString()
	profile.CreatedAt, profile.UpdatedAt = now, now
	r.profiles[profile.ID] = profile
	return profile, nil
}

func (r *EmployeeRepository) Update(_ context.Context, req employee.UpdateProfileRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[req.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}

	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.MonthlyBaseSalary != nil {
		salary := *req.MonthlyBaseSalary
		p.MonthlyBaseSalary = &salary
	}
	if req.Currency != nil {
		p.Currency = strings.ToUpper(*req.Currency)
	}
	if req.HireDate != nil {
		p.HireDate = parseDatePtr(*req.HireDate)
	}
	if req.LeaveStartDate != nil {
		p.LeaveStartDate = parseDatePtr(*req.LeaveStartDate)
	}
	if req.Profession != nil {
		if *req.Profession == "" {
			p.Profession = nil
		} else {
			profession := *req.Profession
			p.Profession = &profession
		}
	}
	if req.Role != nil {
		p.Role = user.Role(*req.Role)
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.UpdatedAt = time.Now()

	r.profiles[p.ID] = p
	return nil
}

func parseDatePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, ok := validator.IsValidDate(s)
	if !ok {
		return nil
	}
	return &d
}

func (r *EmployeeRepository) sorted(keep func(employee.Profile) bool) []employee.Profile {
	var out []employee.Profile
	for _, p := range r.profiles {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *EmployeeRepository) List(_ context.Context, filter employee.ProfileFilter) ([]employee.Profile, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.sorted(func(p employee.Profile) bool {
		if filter.ActiveOnly && !p.IsActive {
			return false
		}
		if filter.Search != nil && *filter.Search != "" {
			needle := strings.ToLower(*filter.Search)
			email := ""
			if p.Email != nil {
				email = *p.Email
			}
			return strings.Contains(strings.ToLower(p.FullName), needle) || strings.Contains(strings.ToLower(email), needle)
		}
		return true
	})
	return paginate(matches, filter.Page, filter.Limit, 20), int64(len(matches)), nil
}

func (r *EmployeeRepository) GetActive(_ context.Context, ids []string) ([]employee.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.sorted(func(p employee.Profile) bool {
		return p.IsActive && (len(ids) == 0 || wanted[p.ID])
	}), nil
}

func paginate[T any](items []T, page, limit, defaultLimit int) []T {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
