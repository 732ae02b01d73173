package cases

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

// Backend is the slice of the API client the service needs.
type Backend interface {
	GetCases(ctx context.Context, criteria model.FilterCriteria, page model.PageData) (model.CasePage, error)
	GetCase(ctx context.Context, id int) (model.CaseDetails, error)
	CreateCase(ctx context.Context, req model.CaseRequest) (model.CaseDetails, error)
	UpdateCase(ctx context.Context, id int, req model.CaseRequest) (model.CaseDetails, error)
	DeleteCase(ctx context.Context, id int) error
}

// Service caches case pages per filter+page combination. Identical
// queries are answered from the cache, concurrent identical queries
// share one backend request, and any successful mutation drops the
// whole cache so the next render refetches.
type Service struct {
	client Backend
	logger *log.Logger

	mu       sync.Mutex
	cache    map[string]model.CasePage
	inflight map[string]chan struct{}
	// gen rises on every invalidation; a response fetched under an older
	// gen is returned to its caller but never cached.
	gen uint64

	creating bool
	updating bool
	deleting bool
}

func NewService(client Backend, logger *log.Logger) *Service {
	return &Service{
		client:   client,
		logger:   logger,
		cache:    make(map[string]model.CasePage),
		inflight: make(map[string]chan struct{}),
	}
}

// Query returns the page for the given criteria, from cache when
// possible. The second return value reports a cache hit.
func (s *Service) Query(ctx context.Context, criteria model.FilterCriteria, page model.PageData) (model.CasePage, bool, error) {
	key := cacheKey(criteria, page)

	for {
		s.mu.Lock()
		if cached, ok := s.cache[key]; ok {
			s.mu.Unlock()
			return cached, true, nil
		}
		if ch, ok := s.inflight[key]; ok {
			s.mu.Unlock()
			select {
			case <-ch:
			case <-ctx.Done():
				return model.CasePage{}, false, ctx.Err()
			}
			// The other request settled; loop to read its cached result,
			// or fetch ourselves if it failed.
			continue
		}
		ch := make(chan struct{})
		s.inflight[key] = ch
		gen := s.gen
		s.mu.Unlock()

		result, err := s.client.GetCases(ctx, criteria, page)

		s.mu.Lock()
		delete(s.inflight, key)
		close(ch)
		if err == nil && gen == s.gen {
			s.cache[key] = result
		}
		s.mu.Unlock()

		if err != nil {
			return model.CasePage{}, false, err
		}
		return result, false, nil
	}
}

// Get fetches full details of one case. Details are not cached; the
// detail view always shows fresh data.
func (s *Service) Get(ctx context.Context, id int) (model.CaseDetails, error) {
	return s.client.GetCase(ctx, id)
}

// Create submits a new case and invalidates the listing cache on
// success. Failures leave the cache untouched.
func (s *Service) Create(ctx context.Context, req model.CaseRequest) (model.CaseDetails, error) {
	s.setCreating(true)
	defer s.setCreating(false)

	details, err := s.client.CreateCase(ctx, req)
	if err != nil {
		return model.CaseDetails{}, err
	}
	s.logger.Printf("[INFO] created case %d (%s)", details.ID, details.Name)
	s.Invalidate()
	return details, nil
}

// Update replaces a case and invalidates the listing cache on success.
func (s *Service) Update(ctx context.Context, id int, req model.CaseRequest) (model.CaseDetails, error) {
	s.setUpdating(true)
	defer s.setUpdating(false)

	details, err := s.client.UpdateCase(ctx, id, req)
	if err != nil {
		return model.CaseDetails{}, err
	}
	s.logger.Printf("[INFO] updated case %d", id)
	s.Invalidate()
	return details, nil
}

// Delete removes a case and invalidates the listing cache on success.
// The cached pages are not edited in place; the next Query refetches.
func (s *Service) Delete(ctx context.Context, id int) error {
	s.setDeleting(true)
	defer s.setDeleting(false)

	if err := s.client.DeleteCase(ctx, id); err != nil {
		return err
	}
	s.logger.Printf("[INFO] deleted case %d", id)
	s.Invalidate()
	return nil
}

// Invalidate drops every cached page and marks in-flight responses
// stale so they will not repopulate the cache.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.cache = make(map[string]model.CasePage)
}

// Creating reports whether a create request is in flight.
func (s *Service) Creating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creating
}

// Updating reports whether an update request is in flight.
func (s *Service) Updating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updating
}

// Deleting reports whether a delete request is in flight.
func (s *Service) Deleting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleting
}

func (s *Service) setCreating(v bool) {
	s.mu.Lock()
	s.creating = v
	s.mu.Unlock()
}

func (s *Service) setUpdating(v bool) {
	s.mu.Lock()
	s.updating = v
	s.mu.Unlock()
}

func (s *Service) setDeleting(v bool) {
	s.mu.Lock()
	s.deleting = v
	s.mu.Unlock()
}

// cacheKey canonically encodes one filters+page combination. Field
// order is fixed so equal queries always produce equal keys.
func cacheKey(criteria model.FilterCriteria, page model.PageData) string {
	var b strings.Builder
	opt := func(name string, v *string) {
		b.WriteString(name)
		b.WriteByte('=')
		if v != nil {
			b.WriteString(*v)
		}
		b.WriteByte('&')
	}
	fmt.Fprintf(&b, "size=%d&page=%d&", page.Size, page.Page)
	opt("searchKey", criteria.SearchKey)
	opt("sort", criteria.Sort)
	opt("fromPeriod", criteria.FromPeriod)
	opt("toPeriod", criteria.ToPeriod)
	opt("finalResultId", criteria.FinalResultID)
	opt("lawsuitTypeId", criteria.LawsuitTypeID)
	opt("courtId", criteria.CourtID)
	opt("state", criteria.State)
	return b.String()
}
