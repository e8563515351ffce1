package auth

import (
	"strings"

	"github.com/privafile/privafile/internal/common"
)

// Authenticate resolves a raw authorization header value into a verified
// user id. It is applied before every protected operation; no catalog
// lookup happens here, only token verification.
func (a *Authority) Authenticate(headerValue string) (string, error) {
	if headerValue == "" {
		return "", common.ErrMissingCredential
	}

	if !strings.HasPrefix(headerValue, common.BearerPrefix) {
		return "", common.ErrMalformedCredential
	}

	tokenString := strings.TrimPrefix(headerValue, common.BearerPrefix)
	if tokenString == "" {
		return "", common.ErrMalformedCredential
	}

	claims, err := a.Verify(tokenString)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}
