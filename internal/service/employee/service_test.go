package employee

import (
	"context"
	"testing"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/auth"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/jwt"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextAs(t *testing.T, identity user.Identity) context.Context {
	t.Helper()
	ja := jwt.NewJWTService("test-secret", "1h").JWTAuth()
	ctx, err := jwt.NewContext(context.Background(), ja, identity)
	require.NoError(t, err)
	return ctx
}

func ptr[T any](v T) *T { return &v }

func TestCreateProfile_Defaults(t *testing.T) {
	svc := NewEmployeeService(memory.NewEmployeeRepository())
	admin := contextAs(t, user.Identity{UserID: "u-admin", Role: user.RoleAdmin})

	resp, err := svc.CreateProfile(admin, employee.CreateProfileRequest{
		FullName: "  Paul Mbarga ",
		Email:    ptr("Paul@Example.com"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Paul Mbarga", resp.FullName)
	assert.Equal(t, "paul@example.com", *resp.Email)
	assert.Equal(t, employee.DefaultCurrency, resp.Currency)
	assert.Equal(t, string(user.RoleEmployee), resp.Role)
	assert.True(t, resp.IsActive)
	assert.False(t, resp.PayrollReady)

	_, err = svc.CreateProfile(admin, employee.CreateProfileRequest{FullName: "Other", Email: ptr("paul@example.com")})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestCreateProfile_PayrollReady(t *testing.T) {
	svc := NewEmployeeService(memory.NewEmployeeRepository())
	admin := contextAs(t, user.Identity{UserID: "u-admin", Role: user.RoleAdmin})

	salary := decimal.NewFromInt(250000)
	resp, err := svc.CreateProfile(admin, employee.CreateProfileRequest{
		FullName:          "Amina Ngo",
		MonthlyBaseSalary: &salary,
		Currency:          "xaf",
		HireDate:          ptr("2020-01-15"),
	})
	require.NoError(t, err)
	assert.True(t, resp.PayrollReady)
	assert.Equal(t, "XAF", resp.Currency)
	assert.Equal(t, "2020-01-15", *resp.HireDate)
}

func TestCreateProfile_Rejections(t *testing.T) {
	svc := NewEmployeeService(memory.NewEmployeeRepository())
	worker := contextAs(t, user.Identity{UserID: "u-w", EmployeeID: "x", Role: user.RoleEmployee})
	admin := contextAs(t, user.Identity{UserID: "u-admin", Role: user.RoleAdmin})

	_, err := svc.CreateProfile(worker, employee.CreateProfileRequest{FullName: "A"})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	var verrs validator.ValidationErrors
	_, err = svc.CreateProfile(admin, employee.CreateProfileRequest{FullName: "A", HireDate: ptr("2020-05-01"), LeaveStartDate: ptr("2020-01-01")})
	assert.ErrorAs(t, err, &verrs)

	negative := decimal.NewFromInt(-1)
	_, err = svc.CreateProfile(admin, employee.CreateProfileRequest{FullName: "A", MonthlyBaseSalary: &negative})
	assert.ErrorAs(t, err, &verrs)
}

func TestGetProfile_Access(t *testing.T) {
	id := "11111111-1111-4111-8111-111111111111"
	repo := memory.NewEmployeeRepository(employee.Profile{ID: id, FullName: "Amina Ngo", IsActive: true})
	svc := NewEmployeeService(repo)

	self := contextAs(t, user.Identity{UserID: "u-1", EmployeeID: id, Role: user.RoleEmployee})
	other := contextAs(t, user.Identity{UserID: "u-2", EmployeeID: "22222222-2222-4222-8222-222222222222", Role: user.RoleEmployee})
	admin := contextAs(t, user.Identity{UserID: "u-admin", Role: user.RoleAdmin})

	resp, err := svc.GetProfile(self, id)
	require.NoError(t, err)
	assert.Equal(t, "Amina Ngo", resp.FullName)

	_, err = svc.GetProfile(other, id)
	assert.ErrorIs(t, err, employee.ErrUnauthorized)

	_, err = svc.GetProfile(admin, "33333333-3333-4333-8333-333333333333")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	me, err := svc.GetMyProfile(self)
	require.NoError(t, err)
	assert.Equal(t, id, me.ID)

	_, err = svc.GetMyProfile(admin)
	assert.ErrorIs(t, err, auth.ErrEmployeeNotLinked)
}

func TestUpdateProfile(t *testing.T) {
	id := "11111111-1111-4111-8111-111111111111"
	hire := mustDate(t, "2020-01-15")
	repo := memory.NewEmployeeRepository(employee.Profile{ID: id, FullName: "Amina Ngo", HireDate: &hire, Currency: "XAF", IsActive: true})
	svc := NewEmployeeService(repo)
	admin := contextAs(t, user.Identity{UserID: "u-admin", Role: user.RoleAdmin})

	salary := decimal.NewFromInt(300000)
	resp, err := svc.UpdateProfile(admin, employee.UpdateProfileRequest{ID: id, MonthlyBaseSalary: &salary, IsActive: ptr(false)})
	require.NoError(t, err)
	assert.True(t, resp.MonthlyBaseSalary.Equal(salary))
	assert.False(t, resp.IsActive)

	var verrs validator.ValidationErrors
	_, err = svc.UpdateProfile(admin, employee.UpdateProfileRequest{ID: id, LeaveStartDate: ptr("2019-12-31")})
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.UpdateProfile(admin, employee.UpdateProfileRequest{ID: "33333333-3333-4333-8333-333333333333", FullName: ptr("X")})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListProfiles(t *testing.T) {
	repo := memory.NewEmployeeRepository(
		employee.Profile{FullName: "Amina Ngo", IsActive: true},
		employee.Profile{FullName: "Paul Mbarga", IsActive: true},
		employee.Profile{FullName: "Jean Retired", IsActive: false},
	)
	svc := NewEmployeeService(repo)
	admin := contextAs(t, user.Identity{UserID: "u-admin", Role: user.RoleAdmin})

	resp, err := svc.ListProfiles(admin, employee.ProfileFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.TotalCount)
	assert.Equal(t, 20, resp.Limit)

	resp, err = svc.ListProfiles(admin, employee.ProfileFilter{Search: ptr("mbar")})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Paul Mbarga", resp.Data[0].FullName)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, ok := validator.IsValidDate(s)
	require.True(t, ok)
	return d
}
