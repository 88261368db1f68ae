// Package assetcatalog implements dispatcher.AssetService: a process-wide,
// periodically refreshed table of supported asset codes and their decimal
// precision. The catalog is read-only from the dispatcher's perspective and
// may be cached process-wide with periodic refresh.
package assetcatalog

import (
	"context"
	"sync"
	"time"
)

// Source fetches the current precision-by-asset-code table, e.g. from a
// stellar.toml CURRENCIES list or a static config file.
type Source func(ctx context.Context) (map[string]int, error)

// Catalog caches the table returned by a Source, refreshing it on a fixed
// interval in the background rather than refetching on the next call, so a
// cold fetch never blocks request handling.
type Catalog struct {
	mu         sync.RWMutex
	precision  map[string]int
	source     Source
	refreshTTL time.Duration

	stop chan struct{}
	once sync.Once
}

// NewCatalog constructs a Catalog, performing one synchronous fetch from
// source before returning so the first request never races an empty cache.
func NewCatalog(ctx context.Context, source Source, refreshTTL time.Duration) (*Catalog, error) {
	c := &Catalog{source: source, refreshTTL: refreshTTL, stop: make(chan struct{})}
	table, err := source(ctx)
	if err != nil {
		return nil, err
	}
	c.precision = table
	return c, nil
}

// Precision implements dispatcher.AssetService.
func (c *Catalog) Precision(_ context.Context, asset string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.precision[asset]
	return p, ok
}

// StartRefreshing launches a background goroutine that refetches the table
// from Source every refreshTTL until Close is called. Fetch errors are
// swallowed and the previous table is kept, since the catalog should
// tolerate transient upstream failures rather than surface refresh hiccups
// to request handling.
func (c *Catalog) StartRefreshing(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(c.refreshTTL)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if table, err := c.source(ctx); err == nil {
					c.mu.Lock()
					c.precision = table
					c.mu.Unlock()
				}
			case <-c.stop:
				return
			}
		}
	}()
}

// Close stops the background refresh loop. Safe to call multiple times.
func (c *Catalog) Close() {
	c.once.Do(func() { close(c.stop) })
}

// StaticSource returns a Source that always yields the same table, for
// tests and deployments with a fixed asset list.
func StaticSource(table map[string]int) Source {
	return func(_ context.Context) (map[string]int, error) {
		cp := make(map[string]int, len(table))
		for k, v := range table {
			cp[k] = v
		}
		return cp, nil
	}
}
