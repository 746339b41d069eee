//go:build database

package integration

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestGitsignalsWithMySQL tests the gitsignals CLI with a MySQL history backend.
func TestGitsignalsWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "gitsignals",
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

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/gitsignals?parseTime=true", host, port.Port())

	runDatabaseCycle(t, "mysql", connStr)
}

// TestGitsignalsWithPostgres tests the gitsignals CLI with a PostgreSQL history backend.
func TestGitsignalsWithPostgres(t *testing.T) {
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

	runDatabaseCycle(t, "postgresql", connStr)
}

// runDatabaseCycle exercises score, trend, status, and clear against a SQL backend.
func runDatabaseCycle(t *testing.T, backend, connStr string) {
	t.Helper()
	binary := getGitsignalsBinary()
	metricsPath := writeMetricsFixture(t, t.TempDir())

	baseArgs := []string{
		"--history-backend", backend,
		"--history-db-connect", connStr,
		"--emoji", "no",
		"--color", "no",
	}

	out := runDatabaseCommand(t, binary, append([]string{"score", metricsPath, "--date", "2026-08-20"}, baseArgs...)...)
	assert.Contains(t, out, "acme/fastcli")

	out = runDatabaseCommand(t, binary, append([]string{"score", metricsPath, "--date", "2026-08-27"}, baseArgs...)...)
	assert.Contains(t, out, "+0.0")

	out = runDatabaseCommand(t, binary, append([]string{"trend", "acme/fastcli", "--date", "2026-08-27"}, baseArgs...)...)
	assert.Contains(t, out, "2026-08-20")

	out = runDatabaseCommand(t, binary, append([]string{"history", "status"}, baseArgs...)...)
	assert.Contains(t, out, "Snapshots: 2")

	out = runDatabaseCommand(t, binary, append([]string{"history", "clear"}, baseArgs...)...)
	assert.Contains(t, out, "cleared")
}

func runDatabaseCommand(t *testing.T, binary string, args ...string) string {
	t.Helper()
	cmd := exec.Command(binary, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	require.NoError(t, err, "command failed: %s\noutput: %s", cmd.String(), buf.String())
	return buf.String()
}
