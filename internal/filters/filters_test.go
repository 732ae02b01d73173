package filters

import (
	"reflect"
	"testing"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

func strptr(s string) *string { return &s }

func TestAnyFilterChangeResetsPage(t *testing.T) {
	s := NewStore(7)
	s.SetPage(model.PageData{Page: 5, Size: 7})

	s.SetState(strptr("CLOSED"))

	if got := s.Page().Page; got != 1 {
		t.Fatalf("page after filter change = %d, want 1", got)
	}

	// Every subsequent change resets again, regardless of prior page.
	s.SetPage(model.PageData{Page: 3, Size: 7})
	s.SetCourtID(strptr("12"))
	if got := s.Page().Page; got != 1 {
		t.Fatalf("page after second filter change = %d, want 1", got)
	}
}

func TestFiltersAccumulateAcrossUpdates(t *testing.T) {
	s := NewStore(7)
	s.SetPage(model.PageData{Page: 3, Size: 7})

	s.SetState(strptr("CLOSED"))
	s.SetCourtID(strptr("12"))

	c := s.Criteria()
	if c.State == nil || *c.State != "CLOSED" {
		t.Fatalf("state = %v, want CLOSED", c.State)
	}
	if c.CourtID == nil || *c.CourtID != "12" {
		t.Fatalf("courtId = %v, want 12", c.CourtID)
	}
	if s.Page().Page != 1 {
		t.Fatalf("page = %d, want 1", s.Page().Page)
	}
}

func TestResetRestoresDefaultsExactly(t *testing.T) {
	s := NewStore(7)
	s.SetSearchKey(strptr("contract"))
	s.SetState(strptr("IN_PROGRESS"))
	s.SetPeriod(strptr("2025-01-01"), strptr("2025-06-30"))
	size := 20
	s.Apply(Update{Size: &size})
	s.SetPage(model.PageData{Page: 9, Size: 20})

	s.Reset()

	want := model.DefaultFilterCriteria(7)
	if !reflect.DeepEqual(s.Criteria(), want) {
		t.Fatalf("criteria after reset = %+v, want %+v", s.Criteria(), want)
	}
	if s.Page() != (model.PageData{Page: 1, Size: 7}) {
		t.Fatalf("page after reset = %+v", s.Page())
	}
}

func TestSetPageDoesNotTouchFilters(t *testing.T) {
	s := NewStore(7)
	s.SetState(strptr("UNDER_REVIEW"))

	s.SetPage(model.PageData{Page: 4, Size: 7})

	if s.Page().Page != 4 {
		t.Fatalf("page = %d, want 4", s.Page().Page)
	}
	if c := s.Criteria(); c.State == nil || *c.State != "UNDER_REVIEW" {
		t.Fatalf("state lost on pagination: %v", c.State)
	}
}

func TestClearingACriterionAlsoResetsPage(t *testing.T) {
	s := NewStore(7)
	s.SetState(strptr("CLOSED"))
	s.SetPage(model.PageData{Page: 2, Size: 7})

	s.SetState(nil)

	if c := s.Criteria(); c.State != nil {
		t.Fatalf("state = %v, want nil", c.State)
	}
	if s.Page().Page != 1 {
		t.Fatalf("page = %d, want 1", s.Page().Page)
	}
}

func TestListenersSeeFilterAndPageTogether(t *testing.T) {
	s := NewStore(7)
	s.SetPage(model.PageData{Page: 6, Size: 7})

	var gotCriteria model.FilterCriteria
	var gotPage model.PageData
	calls := 0
	s.Subscribe(func(c model.FilterCriteria, p model.PageData) {
		gotCriteria, gotPage = c, p
		calls++
	})

	s.SetCourtID(strptr("3"))

	if calls != 1 {
		t.Fatalf("listener calls = %d, want 1", calls)
	}
	if gotCriteria.CourtID == nil || *gotCriteria.CourtID != "3" {
		t.Fatalf("listener saw criteria %+v", gotCriteria)
	}
	if gotPage.Page != 1 {
		t.Fatalf("listener saw page %d with new filters, want 1", gotPage.Page)
	}
}
