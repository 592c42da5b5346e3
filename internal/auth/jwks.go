// Package auth validates bearer tokens issued by the external identity
// provider and exposes the verified claims to request handlers.
package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sync"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

// ErrKeyNotFound means the token's key id has no match in the provider's
// current key set. Kept distinct from ErrInvalidCredentials so the mismatch
// can be seen in server logs.
var ErrKeyNotFound = errors.New("invalid authorization header")

// ErrInvalidCredentials is the single error every verification failure
// collapses into. Callers never learn which check failed.
var ErrInvalidCredentials = errors.New("could not validate credentials")

//go:embed jwks_schema.json
var jwksSchemaJSON []byte

// KeySetCache fetches the provider's published signing keys once and keeps
// them until Invalidate is called. There is no TTL; key rotation requires an
// explicit invalidation.
type KeySetCache struct {
	url    string
	client *http.Client
	schema *gojsonschema.Schema

	mu   sync.Mutex
	keys map[string]*rsa.PublicKey
}

// NewKeySetCache builds a cache for the key set published at url
// (.../.well-known/jwks.json).
func NewKeySetCache(url string) *KeySetCache {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jwksSchemaJSON))
	if err != nil {
		panic(err)
	}
	return &KeySetCache{
		url:    url,
		client: &http.Client{},
		schema: schema,
	}
}

// Key returns the public key whose id matches kid, fetching the key set on
// first use. A kid absent from the set yields ErrKeyNotFound.
func (c *KeySetCache) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.keys == nil {
		keys, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.keys = keys
	}

	key, ok := c.keys[kid]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return key, nil
}

// Invalidate drops the cached keys so the next verification refetches them.
func (c *KeySetCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = nil
}

func (c *KeySetCache) fetch(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch key set: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch key set: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	res, err := c.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("key set not valid JSON: %w", err)
	}
	if !res.Valid() {
		return nil, fmt.Errorf("key set failed schema validation: %v", res.Errors())
	}

	var doc struct {
		Keys []struct {
			Kty string `json:"kty"`
			Kid string `json:"kid"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		// Non-RSA entries may sit in the published set; they are skipped, not
		// treated as an error.
		if k.Kty != "RSA" {
			continue
		}
		pub, err := parseRSAKey(k.N, k.E)
		if err != nil {
			return nil, fmt.Errorf("parse key %s: %w", k.Kid, err)
		}
		keys[k.Kid] = pub
	}
	return keys, nil
}

func parseRSAKey(n, e string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, err
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: int(new(big.Int).SetBytes(eb).Int64()),
	}, nil
}
