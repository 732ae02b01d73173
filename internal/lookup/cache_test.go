package lookup

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

type fakeFetcher struct {
	mu          sync.Mutex
	lookupCalls map[model.LookupCategory]int
	cityCalls   map[string]int
	items       []model.LookupItem
	err         error
	block       chan struct{} // when non-nil, GetLookups waits on it
	inFlight    int32
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		lookupCalls: make(map[model.LookupCategory]int),
		cityCalls:   make(map[string]int),
		items:       []model.LookupItem{{ID: 1, NameEn: "Commercial"}},
	}
}

func (f *fakeFetcher) GetLookups(ctx context.Context, category model.LookupCategory) ([]model.LookupItem, error) {
	f.mu.Lock()
	f.lookupCalls[category]++
	block := f.block
	items, err := f.items, f.err
	f.mu.Unlock()

	atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	if block != nil {
		<-block
	}
	return items, err
}

func (f *fakeFetcher) GetCitiesByDistrict(ctx context.Context, districtID *int) ([]model.LookupItem, error) {
	key := "all"
	if districtID != nil {
		key = string(rune('0' + *districtID))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cityCalls[key]++
	return f.items, f.err
}

func discard() *log.Logger { return log.New(io.Discard, "", 0) }

func TestFetchIsCachedAfterSuccess(t *testing.T) {
	f := newFakeFetcher()
	c := NewCache(f, discard())
	ctx := context.Background()

	c.Fetch(ctx, model.LookupCourts)
	c.Fetch(ctx, model.LookupCourts)
	c.Fetch(ctx, model.LookupCourts)

	if n := f.lookupCalls[model.LookupCourts]; n != 1 {
		t.Fatalf("backend called %d times, want 1", n)
	}
	if items := c.Items(model.LookupCourts); len(items) != 1 || items[0].NameEn != "Commercial" {
		t.Fatalf("cached items: %+v", items)
	}
}

func TestConcurrentFetchIsDeduplicated(t *testing.T) {
	f := newFakeFetcher()
	f.block = make(chan struct{})
	c := NewCache(f, discard())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		c.Fetch(ctx, model.LookupStates)
		close(done)
	}()

	// Wait until the first fetch is inside the backend call.
	for atomic.LoadInt32(&f.inFlight) == 0 {
		time.Sleep(time.Millisecond)
	}
	if !c.Loading(model.LookupStates) {
		t.Fatal("Loading should report true while the fetch is in flight")
	}

	// These must bounce off the in-flight request without blocking.
	c.Fetch(ctx, model.LookupStates)
	c.Fetch(ctx, model.LookupStates)

	close(f.block)
	<-done

	if n := f.lookupCalls[model.LookupStates]; n != 1 {
		t.Fatalf("backend called %d times, want 1", n)
	}
	if c.Loading(model.LookupStates) {
		t.Fatal("Loading should be false after the fetch settles")
	}
}

func TestFailureKeepsStaleItemsAndAllowsRetry(t *testing.T) {
	f := newFakeFetcher()
	c := NewCache(f, discard())
	ctx := context.Background()

	c.Fetch(ctx, model.LookupCaseType)

	f.mu.Lock()
	f.err = errors.New("backend down")
	f.items = nil
	f.mu.Unlock()

	c.Fetch(ctx, model.LookupCaseType) // cached, no call
	if n := f.lookupCalls[model.LookupCaseType]; n != 1 {
		t.Fatalf("cached category refetched: %d calls", n)
	}

	// Force a failure path through a fresh category.
	c.Fetch(ctx, model.LookupDistrict)
	if c.Err(model.LookupDistrict) == nil {
		t.Fatal("expected cached error after failed fetch")
	}

	// A failed category is retried on the next Fetch.
	f.mu.Lock()
	f.err = nil
	f.items = []model.LookupItem{{ID: 9, NameEn: "Riyadh District"}}
	f.mu.Unlock()

	c.Fetch(ctx, model.LookupDistrict)
	if c.Err(model.LookupDistrict) != nil {
		t.Fatalf("error not cleared after successful retry: %v", c.Err(model.LookupDistrict))
	}
	if items := c.Items(model.LookupDistrict); len(items) != 1 || items[0].ID != 9 {
		t.Fatalf("items after retry: %+v", items)
	}
	if n := f.lookupCalls[model.LookupDistrict]; n != 2 {
		t.Fatalf("backend called %d times for failed category, want 2", n)
	}
}

func TestCitiesCachedPerDistrict(t *testing.T) {
	f := newFakeFetcher()
	c := NewCache(f, discard())
	ctx := context.Background()

	one, two := 1, 2
	c.FetchCities(ctx, &one)
	c.FetchCities(ctx, &one)
	c.FetchCities(ctx, &two)
	c.FetchCities(ctx, nil)
	c.FetchCities(ctx, nil)

	if n := f.cityCalls["1"]; n != 1 {
		t.Fatalf("district 1 fetched %d times, want 1", n)
	}
	if n := f.cityCalls["2"]; n != 1 {
		t.Fatalf("district 2 fetched %d times, want 1", n)
	}
	if n := f.cityCalls["all"]; n != 1 {
		t.Fatalf("unscoped city list fetched %d times, want 1", n)
	}
	if c.Cities(&one) == nil {
		t.Fatal("district 1 cities missing from cache")
	}
}

func TestFindLocatesCachedItem(t *testing.T) {
	f := newFakeFetcher()
	c := NewCache(f, discard())
	c.Fetch(context.Background(), model.LookupCourts)

	item, ok := c.Find(model.LookupCourts, 1)
	if !ok || item.NameEn != "Commercial" {
		t.Fatalf("Find(1) = %+v, %v", item, ok)
	}
	if _, ok := c.Find(model.LookupCourts, 99); ok {
		t.Fatal("Find(99) should miss")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	f := newFakeFetcher()
	f.items = []model.LookupItem{
		{ID: 1, NameEn: "Commercial", OrderNumber: 2},
		{ID: 2, NameEn: "Administrative", OrderNumber: 1},
	}
	c := NewCache(f, discard())
	ctx := context.Background()
	c.Fetch(ctx, model.LookupCourts)
	one := 1
	c.FetchCities(ctx, &one)

	// Callers sort and trim the returned slices in place; the cache entry
	// must not move underneath other readers.
	items := c.Items(model.LookupCourts)
	items[0], items[1] = items[1], items[0]
	items[0].NameEn = "Scribbled"

	again := c.Items(model.LookupCourts)
	if again[0].ID != 1 || again[0].NameEn != "Commercial" {
		t.Fatalf("cache entry mutated through the returned slice: %+v", again)
	}

	cities := c.Cities(&one)
	cities[0].NameEn = "Scribbled"
	if got := c.Cities(&one); got[0].NameEn == "Scribbled" {
		t.Fatalf("city entry mutated through the returned slice: %+v", got)
	}
}
