package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/samber/oops"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/metrics"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type Session struct {
	Account   *models.Account
	Token     string
	ExpiresAt time.Time
}

type SessionService struct {
	Accounts AccountStore
	Hasher   PasswordHasher
	Tokens   TokenIssuer
	Events   events.Publisher

	dummyOnce sync.Once
	dummyHash string
}

// dummy returns a real hash to verify against when the account is unknown,
// so unknown emails and wrong passwords take the same time.
func (s *SessionService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash("storefront-dummy-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func (s *SessionService) issue(acc *models.Account) (*Session, error) {
	token, exp, err := s.Tokens.Issue(acc.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Account: acc, Token: token, ExpiresAt: exp}, nil
}

func (s *SessionService) Signup(ctx context.Context, email, password, name string) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")
	email = domain.NormalizeEmail(email)

	sess, err := s.signup(ctx, email, password, name)
	metrics.Signups.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			l.Warn("signup_failed", "status", 400, "reason", err.Error())
		case errors.Is(err, domain.ErrConflict):
			l.Warn("signup_failed", "status", 409, "reason", "email already registered")
		default:
			logging.Error(l, "signup_failed", err, "status", 500)
		}
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicUser, sess.Account.ID.String(), events.Event{
		Type:      events.UserSignedUp,
		AccountID: sess.Account.ID.String(),
	})
	l.Info("signup_ok", "account_id", sess.Account.ID)
	return sess, nil
}

func (s *SessionService) signup(ctx context.Context, email, password, name string) (*Session, error) {
	if email == "" {
		return nil, oops.Code("SIGNUP_INVALID").Wrap(fmt.Errorf("email is required: %w", domain.ErrValidation))
	}
	pwHash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("SIGNUP_INVALID").Wrap(err)
	}
	acc := &models.Account{
		Email:        email,
		Name:         name,
		PasswordHash: pwHash,
		Permissions:  domain.DefaultPermissions(),
	}
	if err := s.Accounts.CreateAccount(ctx, acc); err != nil {
		return nil, oops.Code("SIGNUP_FAILED").With("email", email).Wrap(err)
	}
	sess, err := s.issue(acc)
	if err != nil {
		return nil, oops.Code("SESSION_ISSUE_FAILED").With("account_id", acc.ID.String()).Wrap(err)
	}
	return sess, nil
}

// Signin reports domain.ErrNotFound for an unknown email and
// domain.ErrInvalidCredentials for a wrong password.
func (s *SessionService) Signin(ctx context.Context, email, password string) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signin")
	email = domain.NormalizeEmail(email)

	acc, err := s.Accounts.FindAccountByEmail(ctx, email)
	if err != nil {
		metrics.Signins.WithLabelValues("error").Inc()
		if errors.Is(err, domain.ErrNotFound) {
			s.Hasher.Verify(password, s.dummy())
			l.Warn("signin_failed", "status", 401, "reason", "unknown email")
			return nil, oops.Code("SIGNIN_UNKNOWN_EMAIL").Wrap(err)
		}
		logging.Error(l, "signin_failed", err, "status", 500)
		return nil, oops.Code("SIGNIN_FAILED").Wrap(err)
	}

	if !s.Hasher.Verify(password, acc.PasswordHash) {
		metrics.Signins.WithLabelValues("error").Inc()
		l.Warn("signin_failed", "status", 401, "reason", "invalid password", "account_id", acc.ID)
		return nil, oops.Code("SIGNIN_INVALID_CREDENTIALS").With("account_id", acc.ID.String()).Wrap(domain.ErrInvalidCredentials)
	}

	sess, err := s.issue(acc)
	if err != nil {
		metrics.Signins.WithLabelValues("error").Inc()
		logging.Error(l, "signin_failed", err, "status", 500)
		return nil, oops.Code("SESSION_ISSUE_FAILED").Wrap(err)
	}
	metrics.Signins.WithLabelValues("ok").Inc()
	events.Emit(ctx, s.Events, events.TopicUser, acc.ID.String(), events.Event{
		Type:      events.UserSignedIn,
		AccountID: acc.ID.String(),
	})
	l.Info("signin_ok", "account_id", acc.ID)
	return sess, nil
}

// Signout is stateless: issued tokens stay valid until they expire.
func (s *SessionService) Signout(ctx context.Context, p *domain.Principal) {
	l := logging.FromContext(ctx).With("svc", "auth.signout")
	if p != nil {
		l.Info("signout", "account_id", p.ID)
	}
}

// ResolvePrincipal returns nil without error for an anonymous caller: no
// token, an invalid token, or a token whose account no longer exists.
func (s *SessionService) ResolvePrincipal(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, nil
	}
	id, err := s.Tokens.Verify(token)
	if err != nil {
		logging.FromContext(ctx).Debug("session_rejected", "reason", "invalid token")
		return nil, nil
	}
	acc, err := s.Accounts.FindAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, oops.Code("SESSION_RESOLVE_FAILED").With("account_id", id.String()).Wrap(err)
	}
	return acc, nil
}

// Me reloads the caller's account; nil for anonymous callers.
func (s *SessionService) Me(ctx context.Context, p *domain.Principal) (*models.Account, error) {
	if p == nil {
		return nil, nil
	}
	acc, err := s.Accounts.FindAccountByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, oops.Code("ME_FAILED").Wrap(err)
	}
	return acc, nil
}
