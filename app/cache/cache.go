package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hafizhr/kliping/app/artifact"
	"github.com/hafizhr/kliping/app/catalog"
	"github.com/hafizhr/kliping/app/news"
	"github.com/hafizhr/kliping/app/trending"
)

// Freshness windows per category. An artifact younger than its window is
// served as-is; older ones trigger re-acquisition.
var defaultTTLs = map[artifact.Category]time.Duration{
	artifact.CategoryNews:     1 * time.Hour,
	artifact.CategoryCatalog:  2 * time.Hour,
	artifact.CategoryTrending: 3 * time.Hour,
}

// Cache gates every read path on artifact freshness: a fresh artifact is
// deserialized and served without touching any acquirer; a stale or missing
// one commissions a new run whose output is persisted before being
// returned. A per-category mutex serializes refreshes so a reader never
// observes a partially written artifact.
type Cache struct {
	store    *artifact.Store
	news     NewsAcquirer
	catalog  CatalogAcquirer
	trending TrendingAcquirer
	ttls     map[artifact.Category]time.Duration
	locks    map[artifact.Category]*sync.Mutex
}

func New(store *artifact.Store, newsAcq NewsAcquirer, catalogAcq CatalogAcquirer, trendingAcq TrendingAcquirer) *Cache {
	locks := make(map[artifact.Category]*sync.Mutex, len(defaultTTLs))
	for category := range defaultTTLs {
		locks[category] = &sync.Mutex{}
	}

	return &Cache{
		store:    store,
		news:     newsAcq,
		catalog:  catalogAcq,
		trending: trendingAcq,
		ttls:     defaultTTLs,
		locks:    locks,
	}
}

// News serves the freshness-gated news batch (TTL 1h).
func (c *Cache) News(ctx context.Context) ([]news.Record, error) {
	c.locks[artifact.CategoryNews].Lock()
	defer c.locks[artifact.CategoryNews].Unlock()

	if path, ok := c.freshArtifact(artifact.CategoryNews); ok {
		records, err := c.store.ReadNews(path)
		if err == nil {
			return records, nil
		}
		slog.Warn("Failed to read cached news artifact, re-acquiring", "path", path, "error", err)
	}

	return c.refreshNews(ctx)
}

// Catalog serves the freshness-gated catalog batch (TTL 2h).
func (c *Cache) Catalog(ctx context.Context) ([]catalog.Record, error) {
	c.locks[artifact.CategoryCatalog].Lock()
	defer c.locks[artifact.CategoryCatalog].Unlock()

	if path, ok := c.freshArtifact(artifact.CategoryCatalog); ok {
		records, err := c.store.ReadCatalog(path)
		if err == nil {
			return records, nil
		}
		slog.Warn("Failed to read cached catalog artifact, re-acquiring", "path", path, "error", err)
	}

	return c.refreshCatalog(ctx)
}

// Trending serves the freshness-gated trending entries (TTL 3h).
func (c *Cache) Trending(ctx context.Context) ([]trending.Entry, error) {
	c.locks[artifact.CategoryTrending].Lock()
	defer c.locks[artifact.CategoryTrending].Unlock()

	if path, ok := c.freshArtifact(artifact.CategoryTrending); ok {
		entries, err := c.store.ReadTrending(path)
		if err == nil {
			return entries, nil
		}
		slog.Warn("Failed to read cached trending artifact, re-acquiring", "path", path, "error", err)
	}

	return c.refreshTrending(ctx)
}

// RefreshAll re-acquires every category unconditionally, bypassing the
// freshness windows, and always persists the results.
func (c *Cache) RefreshAll(ctx context.Context) (Counts, error) {
	var counts Counts

	c.locks[artifact.CategoryNews].Lock()
	records, err := c.refreshNews(ctx)
	c.locks[artifact.CategoryNews].Unlock()
	if err != nil {
		return counts, err
	}
	counts.News = len(records)

	c.locks[artifact.CategoryCatalog].Lock()
	items, err := c.refreshCatalog(ctx)
	c.locks[artifact.CategoryCatalog].Unlock()
	if err != nil {
		return counts, err
	}
	counts.Catalog = len(items)

	c.locks[artifact.CategoryTrending].Lock()
	entries, err := c.refreshTrending(ctx)
	c.locks[artifact.CategoryTrending].Unlock()
	if err != nil {
		return counts, err
	}
	counts.Trending = len(entries)

	return counts, nil
}

// Status reports artifact existence and last modification per category.
func (c *Cache) Status() (Status, error) {
	status := make(Status, len(c.ttls))

	for category := range c.ttls {
		_, modTime, ok, err := c.store.Latest(category)
		if err != nil {
			return nil, err
		}

		entry := CategoryStatus{Available: ok}
		if ok {
			entry.LastUpdate = &modTime
		}
		status[string(category)] = entry
	}

	return status, nil
}

// freshArtifact returns the newest artifact path when it is inside the
// category's freshness window.
func (c *Cache) freshArtifact(category artifact.Category) (string, bool) {
	path, modTime, ok, err := c.store.Latest(category)
	if err != nil {
		slog.Warn("Artifact lookup failed", "category", category, "error", err)
		return "", false
	}
	if !ok {
		return "", false
	}

	age := time.Since(modTime)
	if age >= c.ttls[category] {
		slog.Info("Artifact stale, re-acquiring", "category", category, "age", age)
		return "", false
	}

	slog.Debug("Serving cached artifact", "category", category, "path", path, "age", age)
	return path, true
}

func (c *Cache) refreshNews(ctx context.Context) ([]news.Record, error) {
	records := c.news.Run(ctx)

	if _, err := c.store.WriteNews(records); err != nil {
		return nil, fmt.Errorf("news persistence failed: %w", err)
	}

	return records, nil
}

func (c *Cache) refreshCatalog(ctx context.Context) ([]catalog.Record, error) {
	records, err := c.catalog.Run(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := c.store.WriteCatalog(records); err != nil {
		return nil, fmt.Errorf("catalog persistence failed: %w", err)
	}

	return records, nil
}

func (c *Cache) refreshTrending(ctx context.Context) ([]trending.Entry, error) {
	entries, err := c.trending.Run(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := c.store.WriteTrending(entries); err != nil {
		return nil, fmt.Errorf("trending persistence failed: %w", err)
	}

	return entries, nil
}
