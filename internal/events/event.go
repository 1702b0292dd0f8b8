package events

import (
	"context"
	"time"

	"github.com/Skotchmaster/storefront/pkg/logging"
)

type Event struct {
	Type      string         `json:"type"`
	AccountID string         `json:"account_id,omitempty"`
	Subject   string         `json:"subject,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	At        time.Time      `json:"at"`
}

const (
	UserSignedUp          = "user_signed_up"
	UserSignedIn          = "user_signed_in"
	UserPasswordReset     = "user_password_reset"
	UserPermissionsChange = "user_permissions_changed"
	CartItemAdded         = "cart_item_added"
	CartItemRemoved       = "cart_item_removed"
	CartItemDecremented   = "cart_item_decremented"
	ItemCreated           = "item_created"
	ItemUpdated           = "item_updated"
	ItemDeleted           = "item_deleted"
)

// Emit publishes ev and logs, rather than returns, a delivery failure.
func Emit(ctx context.Context, p Publisher, topic, key string, ev Event) {
	if p == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if err := p.PublishEvent(ctx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "type", ev.Type, "error", err)
	}
}
