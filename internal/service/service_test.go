package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/notify"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/testutil"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fakeMailer struct {
	mu   sync.Mutex
	msgs []notify.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

// lastToken extracts the reset token from the most recent mail.
func (f *fakeMailer) lastToken(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.msgs)
	body := f.msgs[len(f.msgs)-1].Body
	_, rest, ok := strings.Cut(body, "resetToken=")
	require.True(t, ok, body)
	token, _, _ := strings.Cut(rest, "\n")
	return token
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []any
}

func (r *recordingPublisher) PublishEvent(_ context.Context, topic, _ string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
	r.events = append(r.events, event)
	return nil
}

type testEnv struct {
	repo     *repo.GormRepo
	clock    *clock
	mail     *fakeMailer
	pub      *recordingPublisher
	sessions *SessionService
	resets   *ResetService
	carts    *CartService
	accounts *AccountService
	items    *ItemService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	r := repo.New(testutil.NewDB(t), 2*time.Second)
	c := &clock{t: time.Now().UTC().Truncate(time.Second)}
	tok, err := tokens.NewService([]byte("test-secret"), 365*24*time.Hour, c.Now)
	require.NoError(t, err)
	hasher := &hash.Hasher{Cost: bcrypt.MinCost}
	mail := &fakeMailer{}
	pub := &recordingPublisher{}

	sessions := &SessionService{Accounts: r, Hasher: hasher, Tokens: tok, Events: pub}
	return &testEnv{
		repo:     r,
		clock:    c,
		mail:     mail,
		pub:      pub,
		sessions: sessions,
		resets: &ResetService{
			Accounts:     r,
			Hasher:       hasher,
			Sessions:     sessions,
			Notifier:     mail,
			Events:       pub,
			ResetURLBase: "http://localhost:7777",
			TTL:          time.Hour,
			Now:          c.Now,
		},
		carts:    &CartService{Store: r, Items: r, Events: pub},
		accounts: &AccountService{Accounts: r, Events: pub},
		items:    &ItemService{Items: r, Events: pub},
	}
}

func (env *testEnv) signup(t *testing.T, email string) *domain.Principal {
	t.Helper()
	sess, err := env.sessions.Signup(context.Background(), email, "wes", "Wes")
	require.NoError(t, err)
	return sess.Account.Principal()
}

func (env *testEnv) grant(t *testing.T, p *domain.Principal, perms ...domain.Permission) *domain.Principal {
	t.Helper()
	acc, err := env.repo.UpdatePermissions(context.Background(), p.ID, perms)
	require.NoError(t, err)
	return acc.Principal()
}

func (env *testEnv) newItem(t *testing.T, owner *domain.Principal) *models.Item {
	t.Helper()
	item, err := env.items.CreateItem(context.Background(), owner, ItemInput{Title: "Belt", Description: "leather", Price: 1500})
	require.NoError(t, err)
	return item
}

func randomPrincipal() *domain.Principal {
	return &domain.Principal{ID: uuid.New(), Permissions: domain.DefaultPermissions()}
}

var errBoom = errors.New("boom")
