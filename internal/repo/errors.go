package repo

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/domain"
)

// classify maps store failures onto the domain taxonomy.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTransient):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// the referenced account or item is gone
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		pgconn.Timeout(err),
		pgconn.SafeToRetry(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTransient, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrConflict)
		case pgErr.Code == pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsInsufficientResources(pgErr.Code),
			pgErr.Code == pgerrcode.QueryCanceled,
			pgErr.Code == pgerrcode.AdminShutdown,
			pgErr.Code == pgerrcode.SerializationFailure,
			pgErr.Code == pgerrcode.DeadlockDetected:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrTransient, err)
		}
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTransient, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isTransient(err error) bool {
	return errors.Is(err, domain.ErrTransient)
}

func domainIsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
