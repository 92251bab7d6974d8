package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/recipe-api/internal/db"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/services"
)

func TestExecute_Usage(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no command", args: nil, wantErr: "usage"},
		{name: "unknown command", args: []string{"flush"}, wantErr: `unknown command "flush"`},
		{name: "unknown global flag", args: []string{"-x", "migrate"}, wantErr: "usage"},
		{name: "superuser without email", args: []string{"create-superuser", "-password", "secret"}, wantErr: "-email and -password are required"},
		{name: "superuser without password", args: []string{"create-superuser", "-email", "a@b.c"}, wantErr: "-email and -password are required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(context.Background(), tt.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseSuperuserFlags(t *testing.T) {
	f, err := parseSuperuserFlags([]string{"-email", "admin@example.com", "-password", "secret"})
	require.NoError(t, err)
	assert.Equal(t, superuserFlags{email: "admin@example.com", password: "secret", name: "Admin"}, f)
}

func TestLoadDBConfig(t *testing.T) {
	os.Clearenv()
	path := filepath.Join(t.TempDir(), "config.env")
	require.NoError(t, os.WriteFile(path, []byte("POSTGRES_HOST=db\nPOSTGRES_WAIT_INTERVAL_MS=50\n"), 0o600))

	cfg, err := loadDBConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.Host)
	assert.Equal(t, "5432", cfg.Port)
	assert.Equal(t, 30, cfg.WaitAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.WaitInterval)

	os.Setenv("POSTGRES_WAIT_ATTEMPTS", "many")
	_, err = loadDBConfig(path)
	assert.ErrorContains(t, err, "POSTGRES_WAIT_ATTEMPTS")
}

func TestExecute_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "user"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	defer container.Terminate(ctx)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	os.Clearenv()
	os.Setenv("POSTGRES_HOST", host)
	os.Setenv("POSTGRES_PORT", port.Port())
	os.Setenv("POSTGRES_DB", "testdb")
	os.Setenv("POSTGRES_WAIT_INTERVAL_MS", "200")

	var out bytes.Buffer
	require.NoError(t, execute(ctx, []string{"-c", "nonexistent.env", "wait-for-db"}, &out))
	assert.Contains(t, out.String(), "Database available!")

	// Migrations are idempotent
	require.NoError(t, execute(ctx, []string{"migrate"}, &out))
	require.NoError(t, execute(ctx, []string{"migrate"}, &out))

	out.Reset()
	require.NoError(t, execute(ctx, []string{"create-superuser", "-email", "root@Example.com", "-password", "secret123", "-name", "Root"}, &out))
	assert.Equal(t, "Superuser root@example.com created.\n", out.String())

	err = execute(ctx, []string{"create-superuser", "-email", "root@example.com", "-password", "secret123"}, &out)
	assert.ErrorIs(t, err, services.ErrUserAlreadyExists)

	cfg, err := loadDBConfig("nonexistent.env")
	require.NoError(t, err)
	conn, err := db.Connect(ctx, cfg)
	require.NoError(t, err)
	defer conn.Close()

	user, err := repositories.NewUserReadRepository(conn, nil).GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsActive)
	assert.Equal(t, "Root", user.Name)
}
