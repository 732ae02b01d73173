package lookup

import (
	"context"
	"log"
	"strconv"
	"sync"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

// Fetcher is the slice of the API client the cache needs.
type Fetcher interface {
	GetLookups(ctx context.Context, category model.LookupCategory) ([]model.LookupItem, error)
	GetCitiesByDistrict(ctx context.Context, districtID *int) ([]model.LookupItem, error)
}

type entry struct {
	items   []model.LookupItem
	err     error
	loaded  bool
	loading bool
}

// Cache holds reference data per category for the lifetime of the app.
// A category is fetched at most once while a request for it is in
// flight, and at most once overall unless a fetch failed. Failed
// fetches keep any stale items around so the UI can keep rendering.
type Cache struct {
	client Fetcher
	logger *log.Logger

	mu      sync.RWMutex
	entries map[model.LookupCategory]*entry
	// cities are cached per district id, with "all" for the unscoped list.
	cities map[string]*entry
}

func NewCache(client Fetcher, logger *log.Logger) *Cache {
	return &Cache{
		client:  client,
		logger:  logger,
		entries: make(map[model.LookupCategory]*entry),
		cities:  make(map[string]*entry),
	}
}

// Fetch loads a category unless it is already cached or being loaded.
// It blocks for the duration of the request; callers that must not
// block run it in a goroutine and poll Loading.
func (c *Cache) Fetch(ctx context.Context, category model.LookupCategory) {
	c.mu.Lock()
	e, ok := c.entries[category]
	if !ok {
		e = &entry{}
		c.entries[category] = e
	}
	if e.loading || (e.loaded && e.err == nil) {
		c.mu.Unlock()
		return
	}
	e.loading = true
	c.mu.Unlock()

	items, err := c.client.GetLookups(ctx, category)

	c.mu.Lock()
	defer c.mu.Unlock()
	e.loading = false
	e.loaded = true
	if err != nil {
		e.err = err
		c.logger.Printf("[WARN] lookup fetch %s failed: %v", category, err)
		return
	}
	e.items = items
	e.err = nil
}

// FetchCities loads the city list of one district (nil for all cities)
// with the same dedup and stale-keep behavior as Fetch.
func (c *Cache) FetchCities(ctx context.Context, districtID *int) {
	key := cityKey(districtID)

	c.mu.Lock()
	e, ok := c.cities[key]
	if !ok {
		e = &entry{}
		c.cities[key] = e
	}
	if e.loading || (e.loaded && e.err == nil) {
		c.mu.Unlock()
		return
	}
	e.loading = true
	c.mu.Unlock()

	items, err := c.client.GetCitiesByDistrict(ctx, districtID)

	c.mu.Lock()
	defer c.mu.Unlock()
	e.loading = false
	e.loaded = true
	if err != nil {
		e.err = err
		c.logger.Printf("[WARN] city fetch for district %s failed: %v", key, err)
		return
	}
	e.items = items
	e.err = nil
}

// Items returns the cached items of a category, or nil when it has
// never loaded successfully. The result is a copy: cached reference data
// is only ever replaced wholesale, so callers may sort or trim freely.
func (c *Cache) Items(category model.LookupCategory) []model.LookupItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[category]; ok {
		return append([]model.LookupItem(nil), e.items...)
	}
	return nil
}

// Loading reports whether a fetch for the category is in flight.
func (c *Cache) Loading(category model.LookupCategory) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[category]; ok {
		return e.loading
	}
	return false
}

// Err returns the error of the most recent failed fetch, nil after a
// success or before any attempt.
func (c *Cache) Err(category model.LookupCategory) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[category]; ok {
		return e.err
	}
	return nil
}

// Cities returns the cached city list of a district, nil if unloaded.
// Like Items, the result is a copy of the cache entry.
func (c *Cache) Cities(districtID *int) []model.LookupItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.cities[cityKey(districtID)]; ok {
		return append([]model.LookupItem(nil), e.items...)
	}
	return nil
}

// CitiesLoading reports whether a city fetch for the district is in flight.
func (c *Cache) CitiesLoading(districtID *int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.cities[cityKey(districtID)]; ok {
		return e.loading
	}
	return false
}

// Find returns the cached item with the given id, if present.
func (c *Cache) Find(category model.LookupCategory, id int) (model.LookupItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[category]
	if !ok {
		return model.LookupItem{}, false
	}
	for _, item := range e.items {
		if item.ID == id {
			return item, true
		}
	}
	return model.LookupItem{}, false
}

// Preload fetches several categories concurrently and waits for all of
// them. Individual failures are cached per category, not returned.
func (c *Cache) Preload(ctx context.Context, categories ...model.LookupCategory) {
	var wg sync.WaitGroup
	for _, category := range categories {
		wg.Add(1)
		go func(cat model.LookupCategory) {
			defer wg.Done()
			c.Fetch(ctx, cat)
		}(category)
	}
	wg.Wait()
}

func cityKey(districtID *int) string {
	if districtID == nil {
		return "all"
	}
	return strconv.Itoa(*districtID)
}
