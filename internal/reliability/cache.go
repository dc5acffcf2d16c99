// Package reliability – Cache
//
// This file implements the cache-aside batch resolution of courier
// reliability statistics for a page of orders. For each unique phone number
// the Cache consults the Store first and only calls the Gateway on a miss,
// bounding gateway traffic to at most one call per unique customer per page.
// Fetched statistics are stored until the next local midnight: the upstream
// number is a slowly-changing daily aggregate, so a value fetched now is
// valid for the rest of today.
package reliability

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
)

// Defaults for Cache construction.
const (
	// DefaultWorkers bounds the concurrent gateway calls for one batch.
	DefaultWorkers = 4
	// DefaultCallTimeout caps a single gateway call so one slow upstream
	// request cannot stall a whole page.
	DefaultCallTimeout = 5 * time.Second

	// cacheKeyPrefix namespaces reliability entries in a shared store.
	cacheKeyPrefix = "courier_rate_"
)

// NormalizePhone canonicalizes a phone identifier for both row extraction
// and cache-key derivation. Extraction and lookup must agree on this, so
// every path goes through here.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// CacheKey derives the store key for a normalized phone identifier. The
// phone is hashed so keys have a uniform shape and raw numbers never appear
// in the store; the hash only needs to be stable, not cryptographic.
func CacheKey(phone string) string {
	sum := md5.Sum([]byte(phone))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// Cache resolves success-rate statistics for batches of phone numbers using
// a Store as a cache-aside layer in front of a Gateway.
//
// A zero worker limit or call timeout is replaced with the package default.
// Cache is safe for concurrent use; concurrent requests that miss on the
// same key are collapsed into a single gateway call via singleflight.
type Cache struct {
	store Store
	gw    Gateway

	// Workers bounds concurrent gateway calls per batch.
	Workers int
	// CallTimeout is the per-gateway-call deadline.
	CallTimeout time.Duration

	group singleflight.Group

	// now is overridable for tests (TTL derivation).
	now func() time.Time
}

// NewCache constructs a Cache over the given store and gateway with default
// concurrency and timeout settings.
func NewCache(store Store, gw Gateway) *Cache {
	return &Cache{
		store:       store,
		gw:          gw,
		Workers:     DefaultWorkers,
		CallTimeout: DefaultCallTimeout,
		now:         time.Now,
	}
}

// ResolveBatch resolves a statistic per unique phone number.
//
// Identifiers are normalized and deduplicated first; empty ones are skipped
// and never produce an entry. Hits are served from the store. Misses fan out
// to the gateway with bounded concurrency, and successful fetches are stored
// with a TTL reaching to the next local midnight.
//
// Failures never abort the batch: a gateway error leaves that phone absent
// from the result (unknown tier downstream) and is not cached, so the next
// request retries. Store read errors degrade to misses; store write errors
// are logged and ignored.
func (c *Cache) ResolveBatch(ctx context.Context, phones []string) map[string]domain.SuccessRate {
	lg := zerolog.Ctx(ctx)
	if lg.GetLevel() == zerolog.Disabled {
		lg = &log.Logger
	}

	result := make(map[string]domain.SuccessRate)

	// Dedup while preserving first-seen order for the miss fan-out.
	seen := make(map[string]struct{}, len(phones))
	var misses []string
	for _, raw := range phones {
		phone := NormalizePhone(raw)
		if phone == "" {
			continue
		}
		if _, dup := seen[phone]; dup {
			continue
		}
		seen[phone] = struct{}{}

		value, ok, err := c.store.Get(ctx, CacheKey(phone))
		if err != nil {
			// A broken store must not take the listing down; fall through
			// to the gateway as if the key were absent.
			lg.Debug().Err(err).Msg("reliability store read failed, treating as miss")
			storeErrors.Inc()
			ok = false
		}
		if ok {
			cacheHits.Inc()
			result[phone] = value
			continue
		}
		cacheMisses.Inc()
		misses = append(misses, phone)
	}

	if len(misses) == 0 {
		return result
	}

	workers := c.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, phone := range misses {
		g.Go(func() error {
			value, err := c.fetch(gctx, phone)
			if err != nil {
				gatewayErrors.Inc()
				lg.Warn().Err(err).Msg("courier history lookup failed")
				// Isolated failure: the row renders as unknown.
				return nil
			}
			mu.Lock()
			result[phone] = value
			mu.Unlock()
			return nil
		})
	}
	// Goroutines always return nil; Wait only synchronizes.
	_ = g.Wait()

	return result
}

// fetch performs the gateway call for one phone and writes the result to the
// store. Calls for the same key from concurrent batches are collapsed with
// singleflight, so a stampede of simultaneous page loads still yields one
// upstream request per phone.
func (c *Cache) fetch(ctx context.Context, phone string) (domain.SuccessRate, error) {
	key := CacheKey(phone)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		timeout := c.CallTimeout
		if timeout <= 0 {
			timeout = DefaultCallTimeout
		}
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		value, err := c.gw.SuccessRate(callCtx, phone)
		if err != nil {
			// Deliberately not cached: a failed lookup must not masquerade
			// as a valid zero statistic.
			return nil, err
		}

		if err := c.store.Set(ctx, key, value, untilMidnight(c.now())); err != nil {
			storeErrors.Inc()
			log.Warn().Err(err).Msg("reliability store write failed")
		}
		return value, nil
	})
	if err != nil {
		return domain.SuccessRate{}, err
	}
	return v.(domain.SuccessRate), nil
}

// untilMidnight returns the duration from now to the start of the next
// calendar day in now's location.
func untilMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}
