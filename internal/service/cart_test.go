package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/events"
)

// TestAddToCartConcurrent checks the service under concurrent callers. The
// SQLite store serializes them on one connection; the statement-level race is
// covered by TestPostgresConcurrentUpsert in internal/repo (integration tag).
func TestAddToCartConcurrent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	env := newTestEnv(t)
	sqlDB, err := env.repo.DB.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	ctx := context.Background()
	p := env.signup(t, "wes@example.com")
	item := env.newItem(t, p)

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.carts.AddToCart(ctx, p, item.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rows, err := env.carts.Cart(ctx, p)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(n), rows[0].Quantity)
	assert.Equal(t, item.ID, rows[0].ItemID)
}

func TestAddToCartRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.signup(t, "wes@example.com")

	_, err := env.carts.AddToCart(ctx, nil, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = env.carts.AddToCart(ctx, p, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rows, err := env.carts.Cart(ctx, p)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRemoveFromCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signup(t, "wes@example.com")
	other := env.signup(t, "kait@example.com")
	item := env.newItem(t, owner)

	row, err := env.carts.AddToCart(ctx, owner, item.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, env.carts.RemoveFromCart(ctx, nil, row.ID), domain.ErrUnauthenticated)
	assert.ErrorIs(t, env.carts.RemoveFromCart(ctx, other, row.ID), domain.ErrForbidden)

	rows, err := env.carts.Cart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, rows, 1, "foreign removal leaves the row")

	require.NoError(t, env.carts.RemoveFromCart(ctx, owner, row.ID))
	assert.ErrorIs(t, env.carts.RemoveFromCart(ctx, owner, row.ID), domain.ErrNotFound)

	assert.Contains(t, env.pub.topics, events.TopicCart)
}

func TestDecrementCartItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.signup(t, "wes@example.com")
	item := env.newItem(t, p)

	_, err := env.carts.AddToCart(ctx, p, item.ID)
	require.NoError(t, err)
	row, err := env.carts.AddToCart(ctx, p, item.ID)
	require.NoError(t, err)
	require.Equal(t, uint(2), row.Quantity)

	_, err = env.carts.DecrementCartItem(ctx, randomPrincipal(), row.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := env.carts.DecrementCartItem(ctx, p, row.ID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, uint(1), out.Quantity)

	out, err = env.carts.DecrementCartItem(ctx, p, row.ID)
	require.NoError(t, err)
	assert.Nil(t, out)

	_, err = env.carts.DecrementCartItem(ctx, p, row.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
