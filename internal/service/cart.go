package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/Skotchmaster/storefront/internal/authz"
	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/metrics"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type CartService struct {
	Store  CartStore
	Items  ItemStore
	Events events.Publisher
}

func (s *CartService) Cart(ctx context.Context, p *domain.Principal) ([]models.CartItem, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	items, err := s.Store.ListCart(ctx, p.ID)
	if err != nil {
		return nil, oops.Code("CART_LIST_FAILED").With("account_id", p.ID.String()).Wrap(err)
	}
	return items, nil
}

// AddToCart inserts the item with quantity 1 or increments the existing row.
func (s *CartService) AddToCart(ctx context.Context, p *domain.Principal, itemID uuid.UUID) (*models.CartItem, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	l := logging.FromContext(ctx).With("svc", "cart.add", "account_id", p.ID, "item_id", itemID)

	if _, err := s.Items.GetItem(ctx, itemID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.Warn("add_to_cart_failed", "status", 404, "reason", "item not found")
		}
		return nil, oops.Code("CART_ITEM_LOOKUP_FAILED").With("item_id", itemID.String()).Wrap(err)
	}

	row, err := s.Store.UpsertCartItem(ctx, p.ID, itemID)
	metrics.CartUpserts.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		logging.Error(l, "add_to_cart_failed", err, "status", 500)
		return nil, oops.Code("CART_UPSERT_FAILED").With("item_id", itemID.String()).Wrap(err)
	}

	events.Emit(ctx, s.Events, events.TopicCart, p.ID.String(), events.Event{
		Type:      events.CartItemAdded,
		AccountID: p.ID.String(),
		Subject:   itemID.String(),
		Data:      map[string]any{"quantity": row.Quantity},
	})
	l.Info("add_to_cart_ok", "quantity", row.Quantity)
	return row, nil
}

// ownedRow loads a cart row and checks that p owns it.
func (s *CartService) ownedRow(ctx context.Context, p *domain.Principal, cartItemID uuid.UUID) (*models.CartItem, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	row, err := s.Store.GetCartItem(ctx, cartItemID)
	if err != nil {
		return nil, oops.Code("CART_ROW_LOOKUP_FAILED").With("cart_item_id", cartItemID.String()).Wrap(err)
	}
	if row.AccountID != p.ID {
		return nil, oops.Code("CART_NOT_OWNER").With("cart_item_id", cartItemID.String()).Wrap(domain.ErrForbidden)
	}
	return row, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, p *domain.Principal, cartItemID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "cart.remove", "cart_item_id", cartItemID)

	row, err := s.ownedRow(ctx, p, cartItemID)
	if err != nil {
		l.Warn("remove_from_cart_failed", "error", err)
		return err
	}
	deleted, err := s.Store.DeleteCartItem(ctx, cartItemID, p.ID)
	if err != nil {
		return oops.Code("CART_DELETE_FAILED").With("cart_item_id", cartItemID.String()).Wrap(err)
	}
	if !deleted {
		return oops.Code("CART_DELETE_RACE").With("cart_item_id", cartItemID.String()).Wrap(domain.ErrNotFound)
	}

	events.Emit(ctx, s.Events, events.TopicCart, p.ID.String(), events.Event{
		Type:      events.CartItemRemoved,
		AccountID: p.ID.String(),
		Subject:   row.ItemID.String(),
	})
	l.Info("remove_from_cart_ok")
	return nil
}

// DecrementCartItem returns nil when the row was removed.
func (s *CartService) DecrementCartItem(ctx context.Context, p *domain.Principal, cartItemID uuid.UUID) (*models.CartItem, error) {
	row, err := s.ownedRow(ctx, p, cartItemID)
	if err != nil {
		return nil, err
	}
	out, err := s.Store.DecrementCartItem(ctx, cartItemID, p.ID)
	if err != nil {
		return nil, oops.Code("CART_DECREMENT_FAILED").With("cart_item_id", cartItemID.String()).Wrap(err)
	}

	data := map[string]any{"quantity": 0}
	if out != nil {
		data["quantity"] = out.Quantity
	}
	events.Emit(ctx, s.Events, events.TopicCart, p.ID.String(), events.Event{
		Type:      events.CartItemDecremented,
		AccountID: p.ID.String(),
		Subject:   row.ItemID.String(),
		Data:      data,
	})
	return out, nil
}
