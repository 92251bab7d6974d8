package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/db"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var conn *sqlx.DB
	for i := 0; i < 10; i++ {
		conn, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)

	require.NoError(t, db.Migrate(context.Background(), conn))

	teardown := func() {
		conn.Close()
		container.Terminate(context.Background())
	}

	return conn, teardown
}

// createUser inserts a user directly and returns its id.
func createUser(t *testing.T, conn *sqlx.DB, email string) int64 {
	t.Helper()

	var id int64
	err := conn.Get(&id, `INSERT INTO users (email, name, password_hash) VALUES ($1, 'Test', 'hash') RETURNING id`, email)
	require.NoError(t, err)
	return id
}

// txFrom returns a TxGetter that always yields tx.
func txFrom(tx *sqlx.Tx) TxGetter {
	return func(ctx context.Context) *sqlx.Tx { return tx }
}

func labelNames(labels []models.LabelDB) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return names
}
