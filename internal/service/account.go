package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/Skotchmaster/storefront/internal/authz"
	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type AccountService struct {
	Accounts AccountStore
	Events   events.Publisher
}

func (s *AccountService) ListAccounts(ctx context.Context, p *domain.Principal) ([]models.Account, error) {
	if err := authz.RequirePermission(p, domain.PermissionAdmin, domain.PermissionPermissionUpdate); err != nil {
		return nil, oops.Code("ACCOUNTS_LIST_DENIED").Wrap(err)
	}
	accounts, err := s.Accounts.ListAccounts(ctx)
	if err != nil {
		return nil, oops.Code("ACCOUNTS_LIST_FAILED").Wrap(err)
	}
	return accounts, nil
}

// UpdatePermissions replaces the target's permission set exactly.
func (s *AccountService) UpdatePermissions(ctx context.Context, p *domain.Principal, accountID uuid.UUID, perms []domain.Permission) (*models.Account, error) {
	l := logging.FromContext(ctx).With("svc", "accounts.update_permissions", "target_id", accountID)

	if err := authz.RequirePermission(p, domain.PermissionAdmin, domain.PermissionPermissionUpdate); err != nil {
		l.Warn("update_permissions_denied", "reason", err.Error())
		return nil, oops.Code("PERMISSIONS_UPDATE_DENIED").Wrap(err)
	}
	normalized, err := domain.NormalizePermissions(perms)
	if err != nil {
		return nil, oops.Code("PERMISSIONS_INVALID").Wrap(err)
	}
	acc, err := s.Accounts.UpdatePermissions(ctx, accountID, normalized)
	if err != nil {
		return nil, oops.Code("PERMISSIONS_UPDATE_FAILED").With("target_id", accountID.String()).Wrap(err)
	}

	events.Emit(ctx, s.Events, events.TopicUser, accountID.String(), events.Event{
		Type:      events.UserPermissionsChange,
		AccountID: p.ID.String(),
		Subject:   accountID.String(),
		Data:      map[string]any{"permissions": normalized},
	})
	l.Info("update_permissions_ok", "by", p.ID, "permissions", normalized)
	return acc, nil
}
