package employee

import "context"

// EmployeeService defines business logic for employee profiles
type EmployeeService interface {
	// GetMyProfile returns the profile linked to the caller's token
	GetMyProfile(ctx context.Context) (ProfileResponse, error)

	// GetProfile retrieves a profile by ID (admin, or the employee themself)
	GetProfile(ctx context.Context, id string) (ProfileResponse, error)

	CreateProfile(ctx context.Context, req CreateProfileRequest) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (ProfileResponse, error)
	ListProfiles(ctx context.Context, filter ProfileFilter) (ListProfileResponse, error)
}
