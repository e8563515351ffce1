// Package auth implements the token authority and the access guard that
// gate every storage operation. Tokens are HS256 JWTs signed with one
// symmetric key loaded at process start; there is no revocation list, so a
// token stays valid for its whole lifetime (accepted trade-off).
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/privafile/privafile/internal/common"
)

// Claims is the decoded token payload. Subject carries the user id;
// IssuedAt and ExpiresAt come from the registered claim set.
type Claims struct {
	jwt.RegisteredClaims
}

// Authority issues and verifies identity tokens. It holds only the signing
// key and is safe for concurrent use.
type Authority struct {
	key []byte
}

func NewAuthority(key []byte) *Authority {
	return &Authority{key: key}
}

// Issue returns a signed token for subject, valid for ttl from now.
func (a *Authority) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString(a.key)
}

// Verify parses and validates a token string. It returns
// common.ErrTokenExpired when the expiry has passed and
// common.ErrInvalidToken for any parse or signature failure. Expiry is
// checked against the wall clock even if the parser accepted the token.
func (a *Authority) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return a.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrTokenExpired
	}

	return claims, nil
}
