package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"habit-tracker-go/internal/models"
)

// Claims is the verified token payload the rest of the service cares about.
type Claims struct {
	Subject  string
	Name     string
	Nickname string
	Email    string
	Picture  string
}

// Profile returns the profile fields embedded in the token.
func (c Claims) Profile() models.ProfileData {
	return models.ProfileData{
		Name:     c.Name,
		Nickname: c.Nickname,
		Email:    c.Email,
		Picture:  c.Picture,
	}
}

// Verifier validates RS256 bearer tokens against the provider's key set and
// the configured issuer and audience.
type Verifier struct {
	issuer    string
	audience  string
	keys      *KeySetCache
	log       *zap.Logger
	logClaims bool
}

// NewVerifier builds a verifier for the given provider domain. The key-set
// cache is owned by the verifier and shared across requests.
func NewVerifier(domain, audience string, logClaims bool, log *zap.Logger) *Verifier {
	return &Verifier{
		issuer:    fmt.Sprintf("https://%s/", domain),
		audience:  audience,
		keys:      NewKeySetCache(fmt.Sprintf("https://%s/.well-known/jwks.json", domain)),
		log:       log,
		logClaims: logClaims,
	}
}

// Keys exposes the cache handle for explicit invalidation.
func (v *Verifier) Keys() *KeySetCache { return v.keys }

// Verify checks signature, issuer, audience and expiry. Every failure mode is
// reported as ErrInvalidCredentials; the underlying cause is logged, never
// returned to the caller.
func (v *Verifier) Verify(ctx context.Context, token string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)

	payload := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(token, payload, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrKeyNotFound
		}
		return v.keys.Key(ctx, kid)
	})
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			v.log.Warn("token key id not in key set")
		} else {
			v.log.Warn("token verification failed", zap.Error(err))
		}
		return Claims{}, ErrInvalidCredentials
	}

	claims := Claims{
		Subject:  stringClaim(payload, "sub"),
		Name:     stringClaim(payload, "name"),
		Nickname: stringClaim(payload, "nickname"),
		Email:    stringClaim(payload, "email"),
		Picture:  stringClaim(payload, "picture"),
	}
	if claims.Subject == "" {
		v.log.Warn("token has no subject")
		return Claims{}, ErrInvalidCredentials
	}

	if v.logClaims {
		// Sensitive: full payload logging is opt-in and should stay off in
		// production.
		v.log.Info("jwt payload", zap.Any("claims", map[string]any(payload)))
	} else {
		v.log.Debug("jwt validated", zap.String("sub", claims.Subject))
	}
	return claims, nil
}

func stringClaim(m jwt.MapClaims, key string) string {
	v, _ := m[key].(string)
	return v
}
