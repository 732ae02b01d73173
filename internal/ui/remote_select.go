package ui

import (
	"context"
	"sync"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/api"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/debounce"
)

// SelectOption is one entry in a remote-search select.
type SelectOption struct {
	ID    int
	Label string
}

// SearchFunc resolves a settled search term to options.
type SearchFunc func(ctx context.Context, term string) ([]SelectOption, error)

// RemoteSelect drives a searchable multi-select backed by a remote
// endpoint. Typing is debounced; each settled term replaces the whole
// option list. Responses from superseded terms are dropped, a failed
// search clears the options, and an empty term shows none.
type RemoteSelect struct {
	search    SearchFunc
	debouncer *debounce.Debouncer
	onUpdate  func() // called after options change, from the fetch goroutine

	mu       sync.Mutex
	gen      uint64
	options  []SelectOption
	selected map[int]SelectOption
	loading  bool
	lastErr  error
}

// NewRemoteSelect creates a select around a search function. onUpdate
// fires after every option-list change so the owner can redraw.
func NewRemoteSelect(ctx context.Context, search SearchFunc, onUpdate func()) *RemoteSelect {
	rs := &RemoteSelect{
		search:   search,
		onUpdate: onUpdate,
		selected: make(map[int]SelectOption),
	}
	rs.debouncer = debounce.New(debounce.DefaultDelay, func(term string) {
		rs.runSearch(ctx, term)
	})
	return rs
}

// SetTerm feeds one keystroke's worth of input into the debouncer.
func (rs *RemoteSelect) SetTerm(term string) {
	rs.debouncer.Set(term)
}

// Close stops the debouncer; a pending settle is dropped.
func (rs *RemoteSelect) Close() {
	rs.debouncer.Stop()
}

// runSearch resolves one settled term. Exported behavior is tested
// through this path directly, bypassing the debounce delay.
func (rs *RemoteSelect) runSearch(ctx context.Context, term string) {
	rs.mu.Lock()
	rs.gen++
	gen := rs.gen
	if term == "" {
		rs.options = nil
		rs.loading = false
		rs.lastErr = nil
		rs.mu.Unlock()
		rs.notify()
		return
	}
	rs.loading = true
	rs.mu.Unlock()
	rs.notify()

	options, err := rs.search(ctx, term)

	rs.mu.Lock()
	if gen != rs.gen {
		// A newer term settled while this one was in flight.
		rs.mu.Unlock()
		return
	}
	rs.loading = false
	if err != nil {
		rs.options = nil
		rs.lastErr = err
	} else {
		rs.options = options
		rs.lastErr = nil
	}
	rs.mu.Unlock()
	rs.notify()
}

func (rs *RemoteSelect) notify() {
	if rs.onUpdate != nil {
		rs.onUpdate()
	}
}

// Options returns the current option list.
func (rs *RemoteSelect) Options() []SelectOption {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]SelectOption(nil), rs.options...)
}

// Loading reports whether a search is in flight.
func (rs *RemoteSelect) Loading() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.loading
}

// Err returns the error of the most recent failed search.
func (rs *RemoteSelect) Err() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.lastErr
}

// Toggle flips the selection state of an option. Selections persist
// across searches; only the option list is replaced per term.
func (rs *RemoteSelect) Toggle(option SelectOption) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if _, ok := rs.selected[option.ID]; ok {
		delete(rs.selected, option.ID)
	} else {
		rs.selected[option.ID] = option
	}
}

// Selected returns the chosen options. Order is not guaranteed;
// callers sort if they need stable display.
func (rs *RemoteSelect) Selected() []SelectOption {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]SelectOption, 0, len(rs.selected))
	for _, option := range rs.selected {
		out = append(out, option)
	}
	return out
}

// IsSelected reports whether an option id is chosen.
func (rs *RemoteSelect) IsSelected(id int) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	_, ok := rs.selected[id]
	return ok
}

// consultantSearch adapts the consultant endpoint to a SearchFunc.
func consultantSearch(client *api.Client, language string) SearchFunc {
	return func(ctx context.Context, term string) ([]SelectOption, error) {
		consultants, err := client.SearchConsultants(ctx, term, api.DefaultSearchLimit)
		if err != nil {
			return nil, err
		}
		options := make([]SelectOption, 0, len(consultants))
		for _, c := range consultants {
			options = append(options, SelectOption{ID: c.ID, Label: c.DisplayName(language)})
		}
		return options, nil
	}
}

// litigantSearch adapts the litigant endpoint to a SearchFunc.
func litigantSearch(client *api.Client, language string) SearchFunc {
	return func(ctx context.Context, term string) ([]SelectOption, error) {
		litigants, err := client.SearchLitigants(ctx, term, api.DefaultSearchLimit)
		if err != nil {
			return nil, err
		}
		options := make([]SelectOption, 0, len(litigants))
		for _, l := range litigants {
			options = append(options, SelectOption{ID: l.ID, Label: l.DisplayName(language)})
		}
		return options, nil
	}
}
