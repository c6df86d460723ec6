package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-social/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

type TokenKind string

const (
	TokenKindAccess      TokenKind = "access"
	TokenKindRefresh     TokenKind = "refresh"
	TokenKindActivation  TokenKind = "activation"
	TokenKindEmailChange TokenKind = "email_change"
)

type TokenClaims struct {
	UserID   uint64 `json:"user_id"`
	NewEmail string `json:"new_email,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies the four token kinds. Every kind signs
// with its own secret and carries its own TTL.
type TokenCodec struct {
	secrets map[TokenKind][]byte
	ttls    map[TokenKind]time.Duration
}

func NewTokenCodec(cfg *config.Config) *TokenCodec {
	return &TokenCodec{
		secrets: map[TokenKind][]byte{
			TokenKindAccess:      []byte(cfg.AccessTokenSecret),
			TokenKindRefresh:     []byte(cfg.RefreshTokenSecret),
			TokenKindActivation:  []byte(cfg.ActivationTokenSecret),
			TokenKindEmailChange: []byte(cfg.EmailChangeTokenSecret),
		},
		ttls: map[TokenKind]time.Duration{
			TokenKindAccess:      cfg.AccessTokenTTL,
			TokenKindRefresh:     cfg.RefreshTokenTTL,
			TokenKindActivation:  cfg.ActivationTokenTTL,
			TokenKindEmailChange: cfg.EmailChangeTokenTTL,
		},
	}
}

func (c *TokenCodec) Issue(kind TokenKind, userID uint64) (string, error) {
	return c.sign(kind, &TokenClaims{UserID: userID})
}

// IssueEmailChange binds the requested address into the token so the
// confirmation step needs no server-side state.
func (c *TokenCodec) IssueEmailChange(userID uint64, newEmail string) (string, error) {
	return c.sign(TokenKindEmailChange, &TokenClaims{UserID: userID, NewEmail: newEmail})
}

func (c *TokenCodec) sign(kind TokenKind, claims *TokenClaims) (string, error) {
	secret, ok := c.secrets[kind]
	if !ok {
		return "", fmt.Errorf("unknown token kind: %s", kind)
	}

	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttls[kind])),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (c *TokenCodec) Verify(kind TokenKind, tokenString string) (*TokenClaims, error) {
	secret, ok := c.secrets[kind]
	if !ok {
		return nil, fmt.Errorf("unknown token kind: %s", kind)
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
