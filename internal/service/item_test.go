package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/domain"
)

func TestItemOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signup(t, "wes@example.com")
	other := env.signup(t, "kait@example.com")
	editor := env.grant(t, env.signup(t, "editor@example.com"), domain.PermissionItemUpdate)
	item := env.newItem(t, owner)
	assert.Equal(t, owner.ID, item.OwnerID)

	title := "Better belt"
	_, err := env.items.UpdateItem(ctx, other, item.ID, ItemPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := env.items.UpdateItem(ctx, editor, item.ID, ItemPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)

	price := int64(-1)
	_, err = env.items.UpdateItem(ctx, owner, item.ID, ItemPatch{Price: &price})
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.ErrorIs(t, env.items.DeleteItem(ctx, editor, item.ID), domain.ErrForbidden)

	_, err = env.carts.AddToCart(ctx, other, item.ID)
	require.NoError(t, err)

	require.NoError(t, env.items.DeleteItem(ctx, owner, item.ID))
	rows, err := env.carts.Cart(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.ErrorIs(t, env.items.DeleteItem(ctx, owner, item.ID), domain.ErrNotFound)
}

func TestCreateItemValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.signup(t, "wes@example.com")

	_, err := env.items.CreateItem(ctx, nil, ItemInput{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = env.items.CreateItem(ctx, p, ItemInput{Title: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = env.items.CreateItem(ctx, p, ItemInput{Title: "x", Price: -5})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
