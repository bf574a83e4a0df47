package wiki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(handler http.HandlerFunc) (*Client, func()) {
	srv := httptest.NewServer(handler)
	c := NewClient("test-agent")
	c.apiBase = srv.URL
	return c, srv.Close
}

func TestSearchZipsTitlesWithURLs(t *testing.T) {
	c, done := testClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("expected user agent set, got %q", got)
		}
		if got := r.URL.Query().Get("action"); got != "opensearch" {
			t.Errorf("expected opensearch action, got %q", got)
		}
		w.Write([]byte(`["go",["Go","Golang"],["",""],` + //nolint:errcheck
			`["https://en.wikipedia.org/wiki/Go","https://en.wikipedia.org/wiki/Golang"]]`))
	})
	defer done()

	results, err := c.Search(context.Background(), "go", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %+v", results)
	}
	if results[0].Title != "Go" || results[0].Snippet != "https://en.wikipedia.org/wiki/Go" {
		t.Errorf("unexpected first result %+v", results[0])
	}
}

func TestSearchRejectsMalformedResponse(t *testing.T) {
	c, done := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["go",["Only two elements"]]`)) //nolint:errcheck
	})
	defer done()

	if _, err := c.Search(context.Background(), "go", 10); err == nil {
		t.Error("expected error for short response array")
	}
}

func TestFetchMarkup(t *testing.T) {
	c, done := testClient(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("action") != "parse" || q.Get("redirects") != "1" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(`{"parse":{"text":{"*":"<p>Hello</p>"}}}`)) //nolint:errcheck
	})
	defer done()

	markup, err := c.FetchMarkup(context.Background(), "Greeting")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if markup != "<p>Hello</p>" {
		t.Errorf("expected rendered markup, got %q", markup)
	}
}

func TestFetchMarkupSurfacesAPIError(t *testing.T) {
	c, done := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"info":"The page you specified doesn't exist."}}`)) //nolint:errcheck
	})
	defer done()

	if _, err := c.FetchMarkup(context.Background(), "Missing"); err == nil {
		t.Error("expected error surfaced from API response")
	}
}

func TestFetchMarkupRejectsHTTPError(t *testing.T) {
	c, done := testClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	defer done()

	if _, err := c.FetchMarkup(context.Background(), "X"); err == nil {
		t.Error("expected error for non-200 status")
	}
}
