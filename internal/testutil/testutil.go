// Package testutil holds HTTP fakes shared by package tests.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// Insert is one row posted to the fake table API.
type Insert struct {
	Table string
	Row   map[string]any
}

// Query is one select request received by the fake table API.
type Query struct {
	Path  string
	Query url.Values
}

// Supabase fakes the PostgREST select/insert endpoints. Rows inserted into
// "authors" become visible to later name lookups.
type Supabase struct {
	*httptest.Server

	mu      sync.Mutex
	authors map[string]string
	inserts []Insert
	queries []Query
	// FailTable makes inserts into that table return 500.
	FailTable string
}

func NewSupabase(t testing.TB, authors map[string]string) *Supabase {
	t.Helper()
	f := &Supabase{authors: make(map[string]string)}
	for name, id := range authors {
		f.authors[name] = id
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

func (f *Supabase) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	switch r.Method {
	case http.MethodGet:
		f.queries = append(f.queries, Query{Path: r.URL.Path, Query: r.URL.Query()})
		rows := []map[string]string{}
		if name, ok := strings.CutPrefix(r.URL.Query().Get("name"), "eq."); ok {
			if id, found := f.authors[name]; found {
				rows = append(rows, map[string]string{"id": id})
			}
		}
		_ = json.NewEncoder(w).Encode(rows)
	case http.MethodPost:
		if table == f.FailTable {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"code":"XX000","message":"internal error"}`))
			return
		}
		b, _ := io.ReadAll(r.Body)
		var row map[string]any
		if err := json.Unmarshal(b, &row); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.inserts = append(f.inserts, Insert{Table: table, Row: row})
		if table == "authors" {
			name, _ := row["name"].(string)
			id, _ := row["id"].(string)
			f.authors[name] = id
		}
		w.WriteHeader(http.StatusCreated)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Inserts returns all inserted rows in order.
func (f *Supabase) Inserts() []Insert {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Insert(nil), f.inserts...)
}

// Queries returns all select requests in order.
func (f *Supabase) Queries() []Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Query(nil), f.queries...)
}

// Rows returns the rows inserted into table.
func (f *Supabase) Rows(table string) []map[string]any {
	var out []map[string]any
	for _, in := range f.Inserts() {
		if in.Table == table {
			out = append(out, in.Row)
		}
	}
	return out
}

// NewOpenLibrary serves search.json from a title -> JSON docs map. Titles not
// in the map get an empty docs list.
func NewOpenLibrary(t testing.TB, docsByTitle map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		docs, ok := docsByTitle[r.URL.Query().Get("title")]
		if !ok {
			docs = "[]"
		}
		_, _ = w.Write([]byte(`{"docs": ` + docs + `}`))
	}))
	t.Cleanup(server.Close)
	return server
}
