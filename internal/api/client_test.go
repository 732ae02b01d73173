package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(ClientConfig{
		BaseURL:     srv.URL,
		Environment: "test",
		AppVersion:  "0.0.1",
		Email:       "consultant@example.com",
		Language:    "en",
	}, log.New(io.Discard, "", 0))
	return client, srv
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		json.NewEncoder(w).Encode(map[string]interface{}{"payload": []model.LookupItem{}})
	})

	if _, err := client.GetLookups(context.Background(), model.LookupCourts); err != nil {
		t.Fatalf("GetLookups: %v", err)
	}

	checks := map[string]string{
		"X-Environment":   "test",
		"X-App-Version":   "0.0.1",
		"Email":           "consultant@example.com",
		"Accept-Language": "en",
		"Skiploader":      "yes",
	}
	for header, want := range checks {
		if v := got.Get(header); v != want {
			t.Errorf("header %s = %q, want %q", header, v, want)
		}
	}
	if got.Get("X-Request-Id") == "" {
		t.Error("missing X-Request-ID correlation header")
	}
}

func TestEnvelopeUnwrap(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"payload": [{"id": 1, "nameEn": "Commercial Court", "nameAr": "المحكمة التجارية"}]}`)
	})

	items, err := client.GetLookups(context.Background(), model.LookupCourts)
	if err != nil {
		t.Fatalf("GetLookups: %v", err)
	}
	if len(items) != 1 || items[0].NameEn != "Commercial Court" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetLookups(context.Background(), model.LookupCourts)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestGetRetriesOnceOnServerError(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, `{"payload": []}`)
	})

	if _, err := client.GetLookups(context.Background(), model.LookupCourts); err != nil {
		t.Fatalf("GetLookups after retry: %v", err)
	}
	if calls != 2 {
		t.Fatalf("server saw %d calls, want 2 (one retry)", calls)
	}
}

func TestDeleteIsNeverRetried(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	if err := client.DeleteCase(context.Background(), 7); err == nil {
		t.Fatal("expected delete error")
	}
	if calls != 1 {
		t.Fatalf("server saw %d calls for a destructive operation, want 1", calls)
	}
}

func TestGetCasesQueryEncoding(t *testing.T) {
	var gotQuery map[string][]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]interface{}{"payload": model.CasePage{}})
	})

	state := "CLOSED"
	courtID := "12"
	criteria := model.DefaultFilterCriteria(7)
	criteria.State = &state
	criteria.CourtID = &courtID

	_, err := client.GetCases(context.Background(), criteria, model.PageData{Page: 3, Size: 7})
	if err != nil {
		t.Fatalf("GetCases: %v", err)
	}

	want := map[string]string{
		"size":    "7",
		"page":    "2", // backend pages are 0-based
		"state":   "CLOSED",
		"courtId": "12",
	}
	for k, v := range want {
		if got := gotQuery[k]; len(got) != 1 || got[0] != v {
			t.Errorf("query %s = %v, want %q", k, got, v)
		}
	}
	// Unset criteria must not appear at all.
	for _, absent := range []string{"searchKey", "sort", "fromPeriod", "toPeriod", "finalResultId", "lawsuitTypeId"} {
		if _, ok := gotQuery[absent]; ok {
			t.Errorf("unset criterion %s leaked into the query", absent)
		}
	}
}

func TestSearchEmptyTermUsesDefaultListing(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		io.WriteString(w, `{"payload": []}`)
	})

	if _, err := client.SearchConsultants(context.Background(), "", 0); err != nil {
		t.Fatalf("SearchConsultants: %v", err)
	}
	if !strings.HasSuffix(gotPath, "/consultants") {
		t.Fatalf("path = %s, want plain /consultants listing", gotPath)
	}
	if gotQuery["size"][0] != "10" || gotQuery["page"][0] != "0" {
		t.Fatalf("default listing query = %v", gotQuery)
	}

	if _, err := client.SearchConsultants(context.Background(), "omar", 50); err != nil {
		t.Fatalf("SearchConsultants: %v", err)
	}
	if !strings.HasSuffix(gotPath, "/consultants/search") {
		t.Fatalf("path = %s, want /consultants/search", gotPath)
	}
	if gotQuery["query"][0] != "omar" || gotQuery["limit"][0] != "50" {
		t.Fatalf("search query = %v", gotQuery)
	}
}
