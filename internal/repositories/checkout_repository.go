package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

type CheckoutRepository interface {
	CreateCheckout(ctx context.Context, checkout *models.Checkout) error
	GetCheckoutByID(ctx context.Context, id string) (*models.Checkout, error)
	GetCheckoutByReference(ctx context.Context, reference string) (*models.Checkout, error)
	UpdateCheckoutReference(ctx context.Context, id, reference, redirectURL string) error
	// UpdateCheckoutStatus only moves a pending checkout; it returns
	// sql.ErrNoRows when the checkout is missing or already resolved.
	UpdateCheckoutStatus(ctx context.Context, id string, status models.CheckoutStatus, errMsg string) error
}

type checkoutRepository struct {
	DB *sql.DB
}

func NewCheckoutRepository(db *sql.DB) CheckoutRepository {
	return &checkoutRepository{DB: db}
}

const checkoutColumns = `id, session_key, method, status, amount, currency, reference, redirect_url, email, shipping, error, created_at, updated_at`

func (r *checkoutRepository) CreateCheckout(ctx context.Context, checkout *models.Checkout) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	shipping, err := json.Marshal(checkout.Shipping)
	if err != nil {
		return fmt.Errorf("failed to encode shipping: %w", err)
	}

	query := `
		INSERT INTO checkouts (id, session_key, method, status, amount, currency, reference, redirect_url, email, shipping, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = r.DB.QueryRowContext(dbCtx, query,
		checkout.ID, checkout.SessionKey, checkout.Method, checkout.Status, checkout.Amount, checkout.Currency,
		checkout.Reference, checkout.RedirectURL, checkout.Email, shipping, checkout.Error,
	).Scan(&checkout.CreatedAt, &checkout.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert checkout: %w", err)
	}

	return nil
}

func (r *checkoutRepository) GetCheckoutByID(ctx context.Context, id string) (*models.Checkout, error) {
	return r.getOne(ctx, `SELECT `+checkoutColumns+` FROM checkouts WHERE id = $1`, id)
}

func (r *checkoutRepository) GetCheckoutByReference(ctx context.Context, reference string) (*models.Checkout, error) {
	return r.getOne(ctx, `SELECT `+checkoutColumns+` FROM checkouts WHERE reference = $1 ORDER BY created_at DESC LIMIT 1`, reference)
}

func (r *checkoutRepository) getOne(ctx context.Context, query string, arg string) (*models.Checkout, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	checkout := &models.Checkout{}
	var shipping []byte

	err := r.DB.QueryRowContext(dbCtx, query, arg).Scan(
		&checkout.ID, &checkout.SessionKey, &checkout.Method, &checkout.Status, &checkout.Amount, &checkout.Currency,
		&checkout.Reference, &checkout.RedirectURL, &checkout.Email, &shipping, &checkout.Error,
		&checkout.CreatedAt, &checkout.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get the checkout: %w", err)
	}

	if err := json.Unmarshal(shipping, &checkout.Shipping); err != nil {
		return nil, fmt.Errorf("failed to decode shipping: %w", err)
	}

	return checkout, nil
}

func (r *checkoutRepository) UpdateCheckoutReference(ctx context.Context, id, reference, redirectURL string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE checkouts SET reference = $1, redirect_url = $2, updated_at = $3
		WHERE id = $4
	`

	return r.exec(dbCtx, query, reference, redirectURL, time.Now().UTC(), id)
}

func (r *checkoutRepository) UpdateCheckoutStatus(ctx context.Context, id string, status models.CheckoutStatus, errMsg string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE checkouts SET status = $1, error = $2, updated_at = $3
		WHERE id = $4 AND status = 'pending'
	`

	return r.exec(dbCtx, query, status, errMsg, time.Now().UTC(), id)
}

func (r *checkoutRepository) exec(ctx context.Context, query string, args ...any) error {

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update checkout: %w", err)
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
