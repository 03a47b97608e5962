package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_CreateAndGet(t *testing.T) {
	db := openTestDatabase(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	salary := decimal.NewFromInt(300000)
	hired := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	email := "jean@example.com"

	created, err := repo.Create(ctx, employee.Profile{
		FullName:          "Jean Mballa",
		Email:             &email,
		MonthlyBaseSalary: &salary,
		Currency:          "XAF",
		HireDate:          &hired,
		Role:              user.RoleEmployee,
		IsActive:          true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jean Mballa", got.FullName)
	require.NotNil(t, got.MonthlyBaseSalary)
	assert.True(t, salary.Equal(*got.MonthlyBaseSalary))
	require.NotNil(t, got.HireDate)
	assert.Equal(t, "2020-01-15", got.HireDate.Format("2006-01-02"))
	assert.Empty(t, got.MissingPayrollFields())

	_, err = repo.Create(ctx, employee.Profile{FullName: "Duplicate", Email: &email, Currency: "XAF", Role: user.RoleEmployee})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	_, err = repo.GetByID(ctx, "99999999-9999-4999-8999-999999999999")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_UpdateAndListActive(t *testing.T) {
	db := openTestDatabase(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	a := createEmployee(t, db, "Awa Fotso")
	b := createEmployee(t, db, "Paul Nkeng")

	inactive := false
	require.NoError(t, repo.Update(ctx, employee.UpdateProfileRequest{ID: b.ID, IsActive: &inactive}))

	active, err := repo.GetActive(ctx, nil)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a.ID, active[0].ID)

	active, err = repo.GetActive(ctx, []string{b.ID})
	require.NoError(t, err)
	assert.Empty(t, active)

	profiles, total, err := repo.List(ctx, employee.ProfileFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, profiles, 2)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := openTestDatabase(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	var createdID string
	err := postgresql.NewTransactor(db).WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err := repo.Create(txCtx, employee.Profile{FullName: "Ghost", Currency: "XAF", Role: user.RoleEmployee, IsActive: true})
		if err != nil {
			return err
		}
		createdID = created.ID
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NotEmpty(t, createdID)

	_, err = repo.GetByID(ctx, createdID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
