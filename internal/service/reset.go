package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/samber/oops"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/metrics"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/notify"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

const DefaultResetTTL = time.Hour

type ResetService struct {
	Accounts AccountStore
	Hasher   PasswordHasher
	Sessions *SessionService
	Notifier notify.Notifier
	Events   events.Publisher

	ResetURLBase string
	TTL          time.Duration
	Now          func() time.Time
}

func (s *ResetService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *ResetService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultResetTTL
	}
	return s.TTL
}

func (s *ResetService) link(token string) string {
	return s.ResetURLBase + "/reset?resetToken=" + url.QueryEscape(token)
}

// Request stores a fresh reset token for email and mails the link. An unknown
// email is domain.ErrNotFound. The token stays persisted when mailing fails.
func (s *ResetService) Request(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "auth.reset_request")
	email = domain.NormalizeEmail(email)

	err := s.request(ctx, email)
	metrics.ResetRequests.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			l.Warn("reset_request_failed", "status", 404, "reason", "unknown email")
		case errors.Is(err, domain.ErrValidation):
			l.Warn("reset_request_failed", "status", 400, "reason", err.Error())
		default:
			logging.Error(l, "reset_request_failed", err, "status", 500)
		}
		return err
	}
	l.Info("reset_requested")
	return nil
}

func (s *ResetService) request(ctx context.Context, email string) error {
	if email == "" {
		return oops.Code("RESET_INVALID").Wrap(fmt.Errorf("email is required: %w", domain.ErrValidation))
	}
	token, err := tokens.NewResetToken()
	if err != nil {
		return oops.Code("RESET_TOKEN_FAILED").Wrap(err)
	}
	acc, err := s.Accounts.SetResetToken(ctx, email, tokens.Sha256Hex(token), s.now().Add(s.ttl()))
	if err != nil {
		return oops.Code("RESET_REQUEST_FAILED").Wrap(err)
	}
	if err := s.Notifier.Send(ctx, notify.ResetMessage(acc.Email, s.link(token))); err != nil {
		return oops.Code("RESET_NOTIFY_FAILED").With("account_id", acc.ID.String()).Wrap(err)
	}
	return nil
}

// Validate returns the account holding token, or domain.ErrInvalidToken.
func (s *ResetService) Validate(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, oops.Code("RESET_TOKEN_INVALID").Wrap(domain.ErrInvalidToken)
	}
	acc, err := s.Accounts.FindAccountByResetToken(ctx, tokens.Sha256Hex(token), s.now())
	if err != nil {
		return nil, oops.Code("RESET_TOKEN_INVALID").Wrap(err)
	}
	return acc, nil
}

// Consume sets a new password and clears the reset token in one conditional
// update, then signs the account in.
func (s *ResetService) Consume(ctx context.Context, token, password, confirm string) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "auth.reset_consume")

	sess, err := s.consume(ctx, token, password, confirm)
	metrics.ResetConsumptions.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			l.Warn("reset_consume_failed", "status", 400, "reason", err.Error())
		case errors.Is(err, domain.ErrInvalidToken):
			l.Warn("reset_consume_failed", "status", 400, "reason", "invalid or expired token")
		default:
			logging.Error(l, "reset_consume_failed", err, "status", 500)
		}
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicUser, sess.Account.ID.String(), events.Event{
		Type:      events.UserPasswordReset,
		AccountID: sess.Account.ID.String(),
	})
	l.Info("reset_consumed", "account_id", sess.Account.ID)
	return sess, nil
}

func (s *ResetService) consume(ctx context.Context, token, password, confirm string) (*Session, error) {
	if password != confirm {
		return nil, oops.Code("RESET_MISMATCH").Wrap(domain.ErrMismatch)
	}
	if password == "" {
		return nil, oops.Code("RESET_INVALID").Wrap(fmt.Errorf("password is required: %w", domain.ErrValidation))
	}
	acc, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	pwHash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("RESET_INVALID").Wrap(err)
	}
	if err := s.Accounts.ConsumeResetToken(ctx, acc.ID, tokens.Sha256Hex(token), s.now(), pwHash); err != nil {
		return nil, oops.Code("RESET_CONSUME_FAILED").With("account_id", acc.ID.String()).Wrap(err)
	}
	acc.PasswordHash = pwHash
	acc.ResetTokenHash = nil
	acc.ResetTokenExpiresAt = nil

	sess, err := s.Sessions.issue(acc)
	if err != nil {
		return nil, oops.Code("SESSION_ISSUE_FAILED").Wrap(err)
	}
	return sess, nil
}
