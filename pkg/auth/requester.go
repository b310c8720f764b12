package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Requester is the identity carried by a bearer token, decoded locally
// without a network round-trip. Expired is true when the token is
// well-formed but past its exp claim; callers requiring identity must
// treat that as unauthenticated.
type Requester struct {
	UserID    string
	Expired   bool
	ExpiresAt time.Time
}

var unverifiedParser = jwt.NewParser()

// TokenFromRequest pulls the raw token from the Authorization header or,
// for transports that cannot set headers (WebSocket upgrades), from the
// access_token query parameter.
func TokenFromRequest(r *http.Request) string {
	hdr := r.Header.Get("Authorization")
	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return r.URL.Query().Get("access_token")
}

// DecodeRequester extracts subject and expiry from a token without
// enforcing claim validity, so an expired token still yields who it
// belonged to. Returns nil on a missing or malformed token, or one
// without subject or expiry claims.
func DecodeRequester(token string) *Requester {
	if token == "" {
		return nil
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := unverifiedParser.ParseUnverified(token, claims); err != nil {
		return nil
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil
	}

	exp := claims.ExpiresAt.Time
	return &Requester{
		UserID:    claims.Subject,
		Expired:   exp.Before(time.Now()),
		ExpiresAt: exp,
	}
}

// RequesterFromRequest combines token extraction and decoding.
func RequesterFromRequest(r *http.Request) *Requester {
	return DecodeRequester(TokenFromRequest(r))
}
