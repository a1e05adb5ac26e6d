package plaid

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"horizon-server/src/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/plaid/plaid-go/v41/plaid"
)

// Follows https://plaid.com/docs/api/webhooks/webhook-verification/

const maxWebhookAge = 5 * time.Minute

var ErrWebhookRejected = errors.New("webhook rejected")

type KeyFetcher func(ctx context.Context, kid string) (*plaid.JWKPublicKey, error)

// WebhookVerifier checks the Plaid-Verification JWT that signs every
// webhook body.
type WebhookVerifier struct {
	fetchKey KeyFetcher
	cache    *db.Cache
	now      func() time.Time
}

func NewWebhookVerifier(fetchKey KeyFetcher, cache *db.Cache) *WebhookVerifier {
	return &WebhookVerifier{fetchKey: fetchKey, cache: cache, now: time.Now}
}

// WebhookKeyFetcher asks Plaid for the verification key with the given kid.
func (p *Provider) WebhookKeyFetcher() KeyFetcher {
	return func(ctx context.Context, kid string) (*plaid.JWKPublicKey, error) {
		req := *plaid.NewWebhookVerificationKeyGetRequest(kid)
		resp, _, err := p.client.PlaidApi.WebhookVerificationKeyGet(ctx).
			WebhookVerificationKeyGetRequest(req).
			Execute()
		if err != nil {
			return nil, describeError(err)
		}
		key := resp.GetKey()
		return &key, nil
	}
}

func (v *WebhookVerifier) Verify(ctx context.Context, body []byte, header http.Header) error {
	tokenString := header.Get("Plaid-Verification")
	if tokenString == "" {
		return fmt.Errorf("%w: missing Plaid-Verification header", ErrWebhookRejected)
	}

	parser := jwt.NewParser(
		jwt.WithLeeway(30*time.Second),
		jwt.WithTimeFunc(v.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
	)

	// Decode JWT header (unverified) to extract kid
	unverified, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return fmt.Errorf("%w: parse unverified token: %v", ErrWebhookRejected, err)
	}
	if unverified.Method.Alg() != jwt.SigningMethodES256.Alg() {
		return fmt.Errorf("%w: unexpected alg %q (want ES256)", ErrWebhookRejected, unverified.Method.Alg())
	}
	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		return fmt.Errorf("%w: missing kid in JWT header", ErrWebhookRejected)
	}

	jwk, err := v.key(ctx, kid)
	if err != nil {
		return fmt.Errorf("get JWK: %w", err)
	}
	pubKey, err := jwkToECDSAPublicKey(jwk)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWebhookRejected, err)
	}

	claims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return pubKey, nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("%w: invalid token: %v", ErrWebhookRejected, err)
	}

	iat, err := claims.GetIssuedAt()
	if err != nil || iat == nil {
		return fmt.Errorf("%w: missing iat", ErrWebhookRejected)
	}
	if v.now().Sub(iat.Time) > maxWebhookAge {
		return fmt.Errorf("%w: token too old (>5m)", ErrWebhookRejected)
	}

	wantHash, ok := claims["request_body_sha256"].(string)
	if !ok || wantHash == "" {
		return fmt.Errorf("%w: missing request_body_sha256", ErrWebhookRejected)
	}
	sum := sha256.Sum256(body)
	gotHex := hex.EncodeToString(sum[:])
	if subtle.ConstantTimeCompare([]byte(gotHex), []byte(strings.ToLower(wantHash))) != 1 {
		return fmt.Errorf("%w: body hash mismatch", ErrWebhookRejected)
	}

	return nil
}

// key returns the verification key for kid. A key Plaid has marked expired
// is dropped from the cache and fetched again.
func (v *WebhookVerifier) key(ctx context.Context, kid string) (*plaid.JWKPublicKey, error) {
	cacheKey := "jwk:" + kid
	if cached, ok := v.cache.Get(cacheKey); ok {
		if key, ok := cached.(*plaid.JWKPublicKey); ok {
			if !keyExpired(key) {
				return key, nil
			}
			v.cache.Del(cacheKey)
		}
	}
	key, err := v.fetchKey(ctx, kid)
	if err != nil {
		return nil, err
	}
	if keyExpired(key) {
		return nil, fmt.Errorf("%w: key %s expired", ErrWebhookRejected, kid)
	}
	if key.Kid == kid {
		v.cache.Set(cacheKey, key)
	}
	return key, nil
}

func keyExpired(key *plaid.JWKPublicKey) bool {
	return key.ExpiredAt.Get() != nil
}

func jwkToECDSAPublicKey(jwk *plaid.JWKPublicKey) (*ecdsa.PublicKey, error) {
	if jwk == nil || jwk.X == "" || jwk.Y == "" ||
		jwk.Kty != "EC" ||
		jwk.Crv != "P-256" {
		return nil, errors.New("invalid/unsupported JWK")
	}
	xBytes, err := base64.RawURLEncoding.DecodeString(jwk.X)
	if err != nil {
		return nil, fmt.Errorf("decode x: %w", err)
	}
	yBytes, err := base64.RawURLEncoding.DecodeString(jwk.Y)
	if err != nil {
		return nil, fmt.Errorf("decode y: %w", err)
	}
	return &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(xBytes),
		Y:     new(big.Int).SetBytes(yBytes),
	}, nil
}
