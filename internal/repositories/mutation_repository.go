package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

// MutationRepository journals cart and favorites changes sent upstream.
type MutationRepository interface {
	CreateMutation(ctx context.Context, mutation *models.Mutation) error
	UpdateMutationStatus(ctx context.Context, id string, status models.MutationStatus, errMsg string) error
	ListMutations(ctx context.Context, sessionKey string, limit int) ([]*models.Mutation, error)
	// FindConfirmedMutation returns sql.ErrNoRows when no confirmed change of
	// the session was sent with key.
	FindConfirmedMutation(ctx context.Context, sessionKey, key string) (*models.Mutation, error)
}

const mutationColumns = `id, session_key, kind, product_id, status, error, idempotency_key, created_at, updated_at`

type mutationRepository struct {
	DB *sql.DB
}

func NewMutationRepository(db *sql.DB) MutationRepository {
	return &mutationRepository{DB: db}
}

func (r *mutationRepository) CreateMutation(ctx context.Context, mutation *models.Mutation) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_mutations (id, session_key, kind, product_id, status, error, idempotency_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, mutation.ID, mutation.SessionKey, mutation.Kind, mutation.ProductID, mutation.Status, mutation.Error, mutation.IdempotencyKey).
		Scan(&mutation.CreatedAt, &mutation.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert mutation: %w", err)
	}

	return nil
}

func (r *mutationRepository) UpdateMutationStatus(ctx context.Context, id string, status models.MutationStatus, errMsg string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_mutations SET status = $1, error = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, errMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update mutation status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *mutationRepository) ListMutations(ctx context.Context, sessionKey string, limit int) ([]*models.Mutation, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + mutationColumns + `
		FROM cart_mutations
		WHERE session_key = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, sessionKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list mutations: %w", err)
	}
	defer rows.Close()

	mutations := []*models.Mutation{}

	for rows.Next() {
		m, err := scanMutation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mutation: %w", err)
		}

		mutations = append(mutations, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mutations: %w", err)
	}

	return mutations, nil
}

func (r *mutationRepository) FindConfirmedMutation(ctx context.Context, sessionKey, key string) (*models.Mutation, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + mutationColumns + `
		FROM cart_mutations
		WHERE session_key = $1 AND idempotency_key = $2 AND status = $3
		LIMIT 1
	`

	m, err := scanMutation(r.DB.QueryRowContext(dbCtx, query, sessionKey, key, models.MutationConfirmed))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to find mutation: %w", err)
	}

	return m, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMutation(row scanner) (*models.Mutation, error) {
	m := &models.Mutation{}

	if err := row.Scan(&m.ID, &m.SessionKey, &m.Kind, &m.ProductID, &m.Status, &m.Error, &m.IdempotencyKey, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}

	return m, nil
}
