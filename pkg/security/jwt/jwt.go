package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/artem13815/captable/pkg/auth"
)

// TokenKind is the value of the custom "type" claim.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Generator struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewGenerator(secret, issuer string, accessTTL, refreshTTL time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Claims carries the registered claims plus the token kind. The subject is
// the user's email.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type"`
}

// Pair signs a fresh access/refresh couple for the user.
func (g *Generator) Pair(ctx context.Context, user auth.User) (auth.TokenPair, error) {
	access, err := g.sign(user.Email, KindAccess, g.accessTTL)
	if err != nil {
		return auth.TokenPair{}, err
	}
	refresh, err := g.sign(user.Email, KindRefresh, g.refreshTTL)
	if err != nil {
		return auth.TokenPair{}, err
	}
	return auth.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (g *Generator) sign(email string, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: string(kind),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Verify parses a token and returns the subject email. It fails closed:
// signature mismatch, expiry, malformed payload, wrong issuer or wrong kind
// all yield ErrInvalidToken.
func (g *Generator) Verify(tokenStr string, kind TokenKind) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return "", ErrInvalidToken
	}
	if g.issuer != "" && claims.Issuer != g.issuer {
		return "", ErrInvalidToken
	}
	if claims.TokenType != string(kind) {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// VerifyRefresh implements auth.TokenIssuer.
func (g *Generator) VerifyRefresh(ctx context.Context, token string) (string, error) {
	return g.Verify(token, KindRefresh)
}
