package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CachingExtractor memoizes extraction results keyed by the full request
// content, so re-scoring the same resume (e.g. against the same job
// description with different weight profiles) never re-pays the API call.
type CachingExtractor struct {
	inner Extractor
	ttl   time.Duration
	cap   int

	mu      sync.Mutex
	entries map[string]cacheEntry

	// nowFunc allows test injection of time.
	nowFunc func() time.Time
}

type cacheEntry struct {
	result   *Result
	storedAt time.Time
}

// NewCachingExtractor wraps inner with a TTL+capacity cache. A non-positive
// ttl means entries never expire; a non-positive capacity defaults to 256.
func NewCachingExtractor(inner Extractor, ttl time.Duration, capacity int) *CachingExtractor {
	if capacity <= 0 {
		capacity = 256
	}
	return &CachingExtractor{
		inner:   inner,
		ttl:     ttl,
		cap:     capacity,
		entries: make(map[string]cacheEntry),
		nowFunc: time.Now,
	}
}

func (c *CachingExtractor) Extract(ctx context.Context, req Request) (*Result, error) {
	key := cacheKey(req)

	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && !c.expired(entry) {
		c.mu.Unlock()
		zap.L().Debug("extraction cache hit", zap.String("candidate", req.CandidateName))
		return entry.result, nil
	}
	c.mu.Unlock()

	result, err := c.inner.Extract(ctx, req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if len(c.entries) >= c.cap {
		c.evictOldest()
	}
	c.entries[key] = cacheEntry{result: result, storedAt: c.nowFunc()}
	c.mu.Unlock()

	return result, nil
}

// Len returns the number of cached entries, expired or not.
func (c *CachingExtractor) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *CachingExtractor) expired(e cacheEntry) bool {
	return c.ttl > 0 && c.nowFunc().Sub(e.storedAt) >= c.ttl
}

// evictOldest removes the single oldest entry. Capacity overruns are off by
// at most one, so a full scan per insert is fine at this size.
func (c *CachingExtractor) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for k, e := range c.entries {
		if first || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt = k, e.storedAt
			first = false
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func cacheKey(req Request) string {
	h := sha256.New()
	for _, part := range []string{req.CandidateName, req.JobDescription, req.AdditionalContext, req.ResumeText} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
