package usecase

import (
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/marketplace-labs/briefdesk/pkg/domain/model"
)

const (
	authCacheTTL   = 5 * time.Minute
	keySetCacheTTL = 1 * time.Hour
)

type cachedBuyer struct {
	buyer     *model.Buyer
	expiresAt time.Time
}

// authCache remembers validated tokens and the provider key set
type authCache struct {
	cache sync.Map

	mu            sync.RWMutex
	keys          jwk.Set
	keysExpiresAt time.Time
}

func newAuthCache() *authCache {
	return &authCache{}
}

func (c *authCache) get(key string) (*model.Buyer, bool) {
	val, ok := c.cache.Load(key)
	if !ok {
		return nil, false
	}

	cached := val.(*cachedBuyer)
	if time.Now().After(cached.expiresAt) {
		c.cache.Delete(key)
		return nil, false
	}

	return cached.buyer, true
}

// set keeps a buyer until the token expires or the TTL passes, whichever is
// first
func (c *authCache) set(key string, buyer *model.Buyer, tokenExpiry time.Time) {
	expiresAt := time.Now().Add(authCacheTTL)
	if !tokenExpiry.IsZero() && tokenExpiry.Before(expiresAt) {
		expiresAt = tokenExpiry
	}
	c.cache.Store(key, &cachedBuyer{buyer: buyer, expiresAt: expiresAt})
}

func (c *authCache) keySet() (jwk.Set, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.keys == nil || time.Now().After(c.keysExpiresAt) {
		return nil, false
	}
	return c.keys, true
}

func (c *authCache) setKeySet(set jwk.Set) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = set
	c.keysExpiresAt = time.Now().Add(keySetCacheTTL)
}
