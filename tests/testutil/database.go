package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/dimitrije/notes/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "notes"
	pgPassword = "notes"
	pgDatabase = "notes_test"
)

// Tables lists every table in the schema, children first.
var Tables = []string{"refresh_tokens", "items", "workspaces", "users"}

// Postgres is a migrated database running in a throwaway container. One is
// started per test package and reset between tests.
type Postgres struct {
	DB        *database.DB
	container testcontainers.Container
}

func StartPostgres(ctx context.Context) (*Postgres, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			// postgres restarts once after initdb, so the line appears twice
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	pg := &Postgres{container: container}
	if err := pg.connect(ctx); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	return pg, nil
}

func (p *Postgres) connect(ctx context.Context) error {
	endpoint, err := p.container.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		return fmt.Errorf("resolve postgres endpoint: %w", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", pgUser, pgPassword, endpoint, pgDatabase)
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}

	p.DB = &database.DB{Pool: pool}
	if err := p.DB.Migrate(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Reset empties every table so the next test starts from a clean schema.
func (p *Postgres) Reset(ctx context.Context) error {
	for _, table := range Tables {
		if _, err := p.DB.Pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

func (p *Postgres) Stop(ctx context.Context) error {
	if p.DB != nil {
		p.DB.Pool.Close()
	}
	return p.container.Terminate(ctx)
}
