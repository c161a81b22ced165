package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	_ "github.com/lib/pq"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type Repository struct {
	DB *sql.DB
}

// New opens postgres through otelsql so every statement is traced, and
// returns the repositories backed by it.
func New(cfg *config.Config) (*Repository, MutationRepository, CheckoutRepository, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSpanOptions(otelsql.SpanOptions{DisableErrSkip: true}),
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	ctx, cancel := utils.WithDBTimeout(context.Background())
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	postgresInstance := &Repository{DB: db}

	if err := postgresInstance.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	return postgresInstance, NewMutationRepository(db), NewCheckoutRepository(db), nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS cart_mutations (
		id          UUID PRIMARY KEY,
		session_key VARCHAR(128) NOT NULL,
		kind        VARCHAR(32) NOT NULL,
		product_id  VARCHAR(64) NOT NULL DEFAULT '',
		status      VARCHAR(16) NOT NULL,
		error       TEXT NOT NULL DEFAULT '',
		idempotency_key VARCHAR(255) NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	ALTER TABLE cart_mutations ADD COLUMN IF NOT EXISTS idempotency_key VARCHAR(255) NOT NULL DEFAULT '';
	CREATE INDEX IF NOT EXISTS idx_cart_mutations_session ON cart_mutations (session_key, created_at DESC);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_mutations_confirmed_key
		ON cart_mutations (session_key, idempotency_key)
		WHERE status = 'confirmed' AND idempotency_key <> '';

	CREATE TABLE IF NOT EXISTS checkouts (
		id           UUID PRIMARY KEY,
		session_key  VARCHAR(128) NOT NULL,
		method       VARCHAR(32) NOT NULL,
		status       VARCHAR(16) NOT NULL,
		amount       NUMERIC(12, 2) NOT NULL,
		currency     VARCHAR(3) NOT NULL,
		reference    VARCHAR(255) NOT NULL DEFAULT '',
		redirect_url TEXT NOT NULL DEFAULT '',
		email        VARCHAR(255) NOT NULL DEFAULT '',
		shipping     JSONB NOT NULL,
		error        TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_checkouts_reference ON checkouts (reference);
`

// Migrate creates the journal tables when they are missing.
func (p *Repository) Migrate(ctx context.Context) error {
	if _, err := p.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
