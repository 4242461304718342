//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// writeSampleCSV drops a small CSV of recent samples for import tests.
func writeSampleCSV(t *testing.T) string {
	t.Helper()
	now := time.Now().UTC()
	csvPath := filepath.Join(t.TempDir(), "samples.csv")
	content := fmt.Sprintf("type,value,timestamp,source\nsteps,12000,%s,deviceSensor\nsleepHours,5.0,%s,userInput\n",
		now.Add(-2*time.Hour).Format(time.RFC3339),
		now.Add(-1*time.Hour).Format(time.RFC3339))
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0o644))
	return csvPath
}

// runStoreFlow exercises migrate, import, status and project against the
// backend configured via environment variables.
func runStoreFlow(t *testing.T) {
	t.Helper()

	err := runLifetickCommand(t, "store", "migrate")
	require.NoError(t, err)

	err = runLifetickCommand(t, "import", writeSampleCSV(t))
	require.NoError(t, err)

	err = runLifetickCommand(t, "store", "status")
	require.NoError(t, err)

	err = runLifetickCommand(t, "project", "--baseline", "81", "--age", "40")
	require.NoError(t, err)

	err = runLifetickCommand(t, "impact", "--period", "day")
	require.NoError(t, err)
}

// TestLifetickWithMySQL tests the lifetick CLI with a MySQL backend.
func TestLifetickWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "lifetick",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/lifetick?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("LIFETICK_STORE_BACKEND", "mysql")
	_ = os.Setenv("LIFETICK_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("LIFETICK_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("LIFETICK_STORE_DB_CONNECT") }()

	runStoreFlow(t)
}

// TestLifetickWithPostgres tests the lifetick CLI with a PostgreSQL backend.
func TestLifetickWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("LIFETICK_STORE_BACKEND", "postgresql")
	_ = os.Setenv("LIFETICK_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("LIFETICK_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("LIFETICK_STORE_DB_CONNECT") }()

	runStoreFlow(t)
}
