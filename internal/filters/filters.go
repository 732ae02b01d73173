// Package filters owns the case-listing filter criteria and pagination
// cursor. It is the single writer for both: every mutation goes through a
// store method, and a filter change always resets pagination to the first
// page in the same transition so a narrowed result set never shows a
// stale page offset.
package filters

import (
	"sync"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

// Update is a partial filter change. Only non-nil fields are applied;
// setting a criterion to the unset state is done via a pointer to nil
// (e.g. Update{State: &noState} with noState == nil is not expressible,
// so Clear* flags exist for the two clearable UI controls).
type Update struct {
	SearchKey     **string
	Sort          **string
	FromPeriod    **string
	ToPeriod      **string
	FinalResultID **string
	LawsuitTypeID **string
	CourtID       **string
	State         **string
	Size          *int
}

// Listener is notified after every state transition with fresh snapshots.
type Listener func(criteria model.FilterCriteria, page model.PageData)

// Store holds the current filter criteria and page cursor.
type Store struct {
	mu          sync.RWMutex
	defaultSize int
	criteria    model.FilterCriteria
	page        model.PageData
	listeners   []Listener
}

// NewStore creates a store with the default criteria for the given page size.
func NewStore(pageSize int) *Store {
	criteria := model.DefaultFilterCriteria(pageSize)
	return &Store{
		defaultSize: criteria.Size,
		criteria:    criteria,
		page:        model.PageData{Page: 1, Size: criteria.Size},
	}
}

// Subscribe registers a listener for state transitions. Listeners run
// synchronously inside the mutating call, after the store is updated.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Criteria returns a snapshot of the current filter criteria.
func (s *Store) Criteria() model.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// Page returns a snapshot of the current pagination cursor.
func (s *Store) Page() model.PageData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// Apply merges the given partial update into the criteria and resets the
// page cursor to 1. The merge and the reset are one transition: consumers
// observing the store never see new filters with an old page.
func (s *Store) Apply(u Update) {
	s.mu.Lock()
	if u.SearchKey != nil {
		s.criteria.SearchKey = *u.SearchKey
	}
	if u.Sort != nil {
		s.criteria.Sort = *u.Sort
	}
	if u.FromPeriod != nil {
		s.criteria.FromPeriod = *u.FromPeriod
	}
	if u.ToPeriod != nil {
		s.criteria.ToPeriod = *u.ToPeriod
	}
	if u.FinalResultID != nil {
		s.criteria.FinalResultID = *u.FinalResultID
	}
	if u.LawsuitTypeID != nil {
		s.criteria.LawsuitTypeID = *u.LawsuitTypeID
	}
	if u.CourtID != nil {
		s.criteria.CourtID = *u.CourtID
	}
	if u.State != nil {
		s.criteria.State = *u.State
	}
	if u.Size != nil && *u.Size > 0 {
		s.criteria.Size = *u.Size
		s.page.Size = *u.Size
	}
	s.criteria.Page = 1
	s.page.Page = 1
	criteria, page, listeners := s.criteria, s.page, s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(criteria, page)
	}
}

// Reset restores the construction-time default criteria object exactly,
// including the page size even when Apply changed it since.
func (s *Store) Reset() {
	s.mu.Lock()
	s.criteria = model.DefaultFilterCriteria(s.defaultSize)
	s.page = model.PageData{Page: 1, Size: s.criteria.Size}
	criteria, page, listeners := s.criteria, s.page, s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(criteria, page)
	}
}

// SetPage advances the pagination cursor without touching the filters.
// This is the only way to change pages without the implicit reset; the
// table's pagination control uses it.
func (s *Store) SetPage(page model.PageData) {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Size < 1 {
		page.Size = model.DefaultPageSize
	}
	s.mu.Lock()
	s.page = page
	criteria, snapshot, listeners := s.criteria, s.page, s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(criteria, snapshot)
	}
}

// Set helpers for the UI's clearable selects: a nil value clears the
// criterion (back to unset), a non-nil value applies it. Each resets the
// page like any other filter change.

func (s *Store) SetSearchKey(v *string)     { s.Apply(Update{SearchKey: &v}) }
func (s *Store) SetState(v *string)         { s.Apply(Update{State: &v}) }
func (s *Store) SetCourtID(v *string)       { s.Apply(Update{CourtID: &v}) }
func (s *Store) SetLawsuitTypeID(v *string) { s.Apply(Update{LawsuitTypeID: &v}) }
func (s *Store) SetFinalResultID(v *string) { s.Apply(Update{FinalResultID: &v}) }
func (s *Store) SetPeriod(from, to *string) {
	s.Apply(Update{FromPeriod: &from, ToPeriod: &to})
}
