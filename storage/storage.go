package storage

import (
	"context"
	"database/sql"
	"embed"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rsmanito/expense-cards/config"
	"github.com/rsmanito/expense-cards/storage/postgres"
)

type Storage struct {
	*postgres.Queries
	pool *pgxpool.Pool
}

//go:embed migrations/*.sql
var embedMigrations embed.FS

func (s *Storage) Migrate(cfg *config.Config) {
	log.Default().Println("Migrating database")

	db, err := sql.Open(
		"postgres",
		cfg.DB_CONN_URL,
	)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		panic(err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		panic(err)
	}

	log.Default().Println("Database migrated")
}

// Close releases the connection pool.
func (s *Storage) Close() {
	s.pool.Close()
}

// New connects to postgres, applies pending migrations and returns a Storage.
func New(cfg *config.Config) *Storage {
	pool, err := pgxpool.New(
		context.Background(),
		cfg.DB_CONN_URL,
	)
	if err != nil {
		panic(err)
	}

	err = pool.Ping(context.Background())
	if err != nil {
		panic(err)
	}

	st := &Storage{
		Queries: postgres.New(pool),
		pool:    pool,
	}
	st.Migrate(cfg)

	return st
}
