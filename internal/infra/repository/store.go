package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// DefaultTimeout bounds a store call when the caller passes no budget.
const DefaultTimeout = 5 * time.Second

// store is embedded by every gorm repository. Each call gets its own
// deadline so a stuck connection surfaces as store_unavailable.
type store struct {
	db      *gorm.DB
	timeout time.Duration
}

func newStore(db *gorm.DB, timeout time.Duration) store {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return store{db: db, timeout: timeout}
}

func (s store) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return s.db.WithContext(ctx), cancel
}

// storeErr passes business errors through and wraps everything else.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return httperr.Unavailable(op, err)
}

// isDuplicateKey recognises unique and exclusion violations from either
// driver, translated or raw.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" || pgErr.Code == "23P01"
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
