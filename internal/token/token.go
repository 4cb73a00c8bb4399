// Package token issues and verifies the HS256 access tokens shared by the
// ledger server and ledgerctl.
package token

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the caller identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// Lifetime is the span between issue and expiry. It is 0 when either claim
// is missing.
func (c *Claims) Lifetime() time.Duration {
	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(c.IssuedAt.Time)
}

// GenerateToken signs an HS256 access token for identity valid for
// validityDuration.
func GenerateToken(identity string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: identity,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetClaimsFromToken validates tokenString. Expired tokens yield
// common.ErrTokenExpired, everything else that fails validation yields
// common.ErrInvalidToken.
func GetClaimsFromToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// GetIdentityFromToken validates tokenString and returns the identity it was
// issued for.
func GetIdentityFromToken(tokenString string, secretKey []byte) (string, error) {
	claims, err := GetClaimsFromToken(tokenString, secretKey)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// PeekIdentity returns the identity a token was issued for without checking
// its signature or expiry. Clients use it to learn who they act as; servers
// must use GetClaimsFromToken.
func PeekIdentity(tokenString string) (string, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", common.ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", common.ErrInvalidToken
	}
	return claims.UserID, nil
}
