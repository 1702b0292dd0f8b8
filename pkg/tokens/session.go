package tokens

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/domain"
)

// SessionClaims carries the owning account id in sub and the issue time in iat.
type SessionClaims struct {
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret []byte, ttl time.Duration, now func() time.Time) (*Service, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty signing secret")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	if now == nil {
		now = time.Now
	}
	return &Service{secret: secret, ttl: ttl, now: now}, nil
}

func (s *Service) TTL() time.Duration { return s.ttl }

// Issue returns a signed token for accountID and its expiry.
func (s *Service) Issue(accountID uuid.UUID) (string, time.Time, error) {
	iat := s.now().UTC().Truncate(time.Second)
	exp := iat.Add(s.ttl)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, exp, nil
}

// Verify returns the account id encoded in token. Every failure is domain.ErrInvalidToken.
func (s *Service) Verify(token string) (uuid.UUID, error) {
	var claims SessionClaims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil || !tkn.Valid {
		return uuid.Nil, domain.ErrInvalidToken
	}
	if claims.IssuedAt == nil || s.now().Sub(claims.IssuedAt.Time) > s.ttl {
		return uuid.Nil, domain.ErrInvalidToken
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return id, nil
}

// NewResetToken returns 20 random bytes, hex encoded.
func NewResetToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func Sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
