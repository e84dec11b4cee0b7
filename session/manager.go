package session

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nelindogu/userdir/internal/config"
	apperrors "github.com/nelindogu/userdir/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Manager signs and verifies the HS256 session-cookie token.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{
		secret: []byte(cfg.GetSessionSecret()),
		ttl:    cfg.GetSessionTTL(),
	}
}

// Issue creates a signed token carrying the identity claims.
func (m *Manager) Issue(identity Identity) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"name":  identity.Name,
		"email": identity.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
		"jti":   uuid.New().String(),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature and expiry and returns the identity it
// carries. Any failure maps to a sentinel error so callers can treat the
// request as anonymous without inspecting jwt internals.
func (m *Manager) Verify(tokenString string) (Identity, error) {
	token, err := jwtlib.Parse(tokenString, func(t *jwtlib.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
	)
	if err != nil {
		if apperrors.Is(err, jwtlib.ErrTokenExpired) {
			return Identity{}, apperrors.ErrSessionExpired
		}
		return Identity{}, apperrors.ErrSessionInvalid
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, apperrors.ErrSessionInvalid
	}

	return Identity{
		Name:  claimString(claims, "name"),
		Email: claimString(claims, "email"),
	}, nil
}

func claimString(claims jwtlib.MapClaims, key string) string {
	value, ok := claims[key].(string)
	if !ok {
		return ""
	}
	return value
}
