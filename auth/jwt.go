// Package auth implements audience-keyed JWT issuance and verification for
// the dispatcher's callers (SEP-10 challenge tokens, SEP-24 interactive and
// more-info tokens, anchor-platform callback/custody/platform tokens).
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stellar/go/keypair"
)

// Audience names one of the token families the dispatcher issues or
// accepts, each signed with its own secret.
type Audience string

const (
	AudienceSEP10            Audience = "sep10"
	AudienceSEP24Interactive Audience = "sep24-interactive"
	AudienceSEP24MoreInfo    Audience = "sep24-more-info"
	AudienceCallback         Audience = "callback"
	AudiencePlatform         Audience = "platform"
	AudienceCustody          Audience = "custody"
)

// Claims is the standard claim set carried by every token this package
// issues, regardless of audience.
type Claims struct {
	Subject   string
	Audience  Audience
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Aud Audience `json:"dispatcher_aud"`
}

// Registry issues and verifies JWTs, keyed by Audience, each bound to its
// own HS256 secret, so a token minted for one audience (e.g. wallet
// callbacks) can never verify against another (e.g. operator tooling).
type Registry struct {
	secrets map[Audience][]byte
	issuer  string
	expiry  time.Duration
}

// NewRegistry constructs a Registry. secrets must contain an entry for every
// Audience the dispatcher will issue or verify tokens for.
func NewRegistry(issuer string, expiry time.Duration, secrets map[Audience][]byte) *Registry {
	return &Registry{secrets: secrets, issuer: issuer, expiry: expiry}
}

// Issue signs a new token for the given audience and subject. For
// AudienceSEP10, subject is a Stellar account address (G...) and is
// validated with keypair.ParseAddress before signing, the same check the
// SEP-10 challenge flow performs against a client account.
func (r *Registry) Issue(aud Audience, subject string) (string, error) {
	secret, ok := r.secrets[aud]
	if !ok {
		return "", fmt.Errorf("auth: no secret registered for audience %q", aud)
	}
	if aud == AudienceSEP10 {
		if _, err := keypair.ParseAddress(subject); err != nil {
			return "", fmt.Errorf("auth: sep10 subject %q is not a valid Stellar account address: %w", subject, err)
		}
	}

	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    r.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(r.expiry)),
		},
		Aud: aud,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify parses and validates a token against the secret registered for
// aud, returning its claims.
func (r *Registry) Verify(aud Audience, raw string) (*Claims, error) {
	secret, ok := r.secrets[aud]
	if !ok {
		return nil, fmt.Errorf("auth: no secret registered for audience %q", aud)
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(r.issuer))
	if err != nil {
		return nil, fmt.Errorf("auth: token verification failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("auth: token is invalid")
	}
	if claims.Aud != aud {
		return nil, fmt.Errorf("auth: token audience %q does not match expected %q", claims.Aud, aud)
	}
	if aud == AudienceSEP10 {
		if _, err := keypair.ParseAddress(claims.Subject); err != nil {
			return nil, fmt.Errorf("auth: sep10 token subject %q is not a valid Stellar account address: %w", claims.Subject, err)
		}
	}

	return &Claims{
		Subject:   claims.Subject,
		Audience:  claims.Aud,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
