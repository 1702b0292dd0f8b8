package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/Skotchmaster/storefront/internal/authz"
	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type ItemInput struct {
	Title       string
	Description string
	Price       int64
	Image       string
	LargeImage  string
}

// ItemPatch leaves nil fields unchanged.
type ItemPatch struct {
	Title       *string
	Description *string
	Price       *int64
}

type ItemService struct {
	Items  ItemStore
	Events events.Publisher
}

func (s *ItemService) CreateItem(ctx context.Context, p *domain.Principal, in ItemInput) (*models.Item, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, oops.Code("ITEM_INVALID").Wrap(fmt.Errorf("title is required: %w", domain.ErrValidation))
	}
	if in.Price < 0 {
		return nil, oops.Code("ITEM_INVALID").Wrap(fmt.Errorf("price must not be negative: %w", domain.ErrValidation))
	}

	item := &models.Item{
		OwnerID:     p.ID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		LargeImage:  in.LargeImage,
	}
	if err := s.Items.CreateItem(ctx, item); err != nil {
		return nil, oops.Code("ITEM_CREATE_FAILED").Wrap(err)
	}

	s.emit(ctx, events.ItemCreated, p, item.ID)
	logging.FromContext(ctx).Info("item_created", "svc", "items.create", "item_id", item.ID, "owner_id", p.ID)
	return item, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, p *domain.Principal, id uuid.UUID, patch ItemPatch) (*models.Item, error) {
	if err := authz.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	item, err := s.Items.GetItem(ctx, id)
	if err != nil {
		return nil, oops.Code("ITEM_LOOKUP_FAILED").With("item_id", id.String()).Wrap(err)
	}
	if err := authz.RequireOwnerOrPermission(p, item.OwnerID, domain.PermissionAdmin, domain.PermissionItemUpdate); err != nil {
		return nil, oops.Code("ITEM_UPDATE_DENIED").With("item_id", id.String()).Wrap(err)
	}

	fields := map[string]any{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, oops.Code("ITEM_INVALID").Wrap(fmt.Errorf("title is required: %w", domain.ErrValidation))
		}
		fields["title"] = title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, oops.Code("ITEM_INVALID").Wrap(fmt.Errorf("price must not be negative: %w", domain.ErrValidation))
		}
		fields["price"] = *patch.Price
	}

	updated, err := s.Items.UpdateItem(ctx, id, fields)
	if err != nil {
		return nil, oops.Code("ITEM_UPDATE_FAILED").With("item_id", id.String()).Wrap(err)
	}
	s.emit(ctx, events.ItemUpdated, p, id)
	return updated, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, p *domain.Principal, id uuid.UUID) error {
	if err := authz.RequireAuthenticated(p); err != nil {
		return err
	}
	item, err := s.Items.GetItem(ctx, id)
	if err != nil {
		return oops.Code("ITEM_LOOKUP_FAILED").With("item_id", id.String()).Wrap(err)
	}
	if err := authz.RequireOwnerOrPermission(p, item.OwnerID, domain.PermissionAdmin, domain.PermissionItemDelete); err != nil {
		return oops.Code("ITEM_DELETE_DENIED").With("item_id", id.String()).Wrap(err)
	}
	if err := s.Items.DeleteItem(ctx, id); err != nil {
		return oops.Code("ITEM_DELETE_FAILED").With("item_id", id.String()).Wrap(err)
	}
	s.emit(ctx, events.ItemDeleted, p, id)
	return nil
}

func (s *ItemService) emit(ctx context.Context, typ string, p *domain.Principal, id uuid.UUID) {
	events.Emit(ctx, s.Events, events.TopicItem, id.String(), events.Event{
		Type:      typ,
		AccountID: p.ID.String(),
		Subject:   id.String(),
	})
}
