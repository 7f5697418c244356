package ecfr

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/domain"
	"github.com/benjaminclauss/eCFR-Analyzer/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ECFRClient = (*CachingClient)(nil)

// CachingClient wraps an ECFRClient with a read-through cache for title XML
// keyed by (date, title, narrowing params). Many references within one run
// share the same title and date; the single-flight group guarantees one
// upstream fetch per key under concurrent access. Cached documents live for
// the lifetime of the client, which is one batch run.
type CachingClient struct {
	driven.ECFRClient

	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]string
}

// NewCachingClient wraps inner with title-XML caching.
func NewCachingClient(inner driven.ECFRClient) *CachingClient {
	return &CachingClient{
		ECFRClient: inner,
		cache:      make(map[string]string),
	}
}

// FetchTitleXML returns the cached document for the key when present and
// fetches it exactly once otherwise.
func (c *CachingClient) FetchTitleXML(ctx context.Context, date string, ref domain.CFRReference) (string, error) {
	key := fmt.Sprintf("%s|%d|%s|%s|%s|%s", date, ref.Title, ref.Subtitle, ref.Chapter, ref.Subchapter, ref.Part)

	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		xmlText, err := c.ECFRClient.FetchTitleXML(ctx, date, ref)
		if err != nil {
			// Errors are not cached; a later caller retries the fetch.
			return "", err
		}
		c.mu.Lock()
		c.cache[key] = xmlText
		c.mu.Unlock()
		return xmlText, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
