package repo

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"
)

const defaultTimeout = 5 * time.Second

type GormRepo struct {
	DB      *gorm.DB
	Timeout time.Duration
}

func New(db *gorm.DB, timeout time.Duration) *GormRepo {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &GormRepo{DB: db, Timeout: timeout}
}

func (r *GormRepo) timeout() time.Duration {
	if r.Timeout <= 0 {
		return defaultTimeout
	}
	return r.Timeout
}

// write runs fn once under the store timeout.
func (r *GormRepo) write(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()
	return classify(op, fn(r.DB.WithContext(ctx)))
}

// read runs an idempotent fn, retrying once when the failure is transient.
func (r *GormRepo) read(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	backoff := retry.WithMaxRetries(1, retry.NewExponential(50*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := r.write(ctx, op, fn)
		if isTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
