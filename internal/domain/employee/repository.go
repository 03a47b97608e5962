package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	Create(ctx context.Context, profile Profile) (Profile, error)
	Update(ctx context.Context, req UpdateProfileRequest) error
	List(ctx context.Context, filter ProfileFilter) ([]Profile, int64, error)
	GetActive(ctx context.Context, ids []string) ([]Profile, error)
}
