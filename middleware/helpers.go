package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

const jwtClaimSubject = "sub"

// GetSubjectFromContext extracts the token subject placed there by
// Authenticate.
func GetSubjectFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(claimsContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("token claims not found in context or invalid type")
	}

	subClaim, ok := claims[jwtClaimSubject]
	if !ok {
		return "", fmt.Errorf("missing %q claim in token", jwtClaimSubject)
	}

	subject, ok := subClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for %q claim: expected string, got %T", jwtClaimSubject, subClaim)
	}
	if subject == "" {
		return "", fmt.Errorf("empty %q claim in token", jwtClaimSubject)
	}

	return subject, nil
}
