package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/database"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var tables = []string{
	"payroll_records",
	"payroll_settings",
	"attendance_overrides",
	"time_entries",
	"shifts",
	"employees",
	"app_state",
}

// openTestDatabase connects to TEST_DATABASE_URL, migrates it and empties every table.
func openTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, database.RunMigrations(db.SQLDB()))

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "truncate %s", table)
	}
	return db
}

func createEmployee(t *testing.T, db *database.DB, name string) employee.Profile {
	t.Helper()

	created, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Profile{
		FullName: name,
		Currency: employee.DefaultCurrency,
		Role:     user.RoleEmployee,
		IsActive: true,
	})
	require.NoError(t, err)
	return created
}
