package sources

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
)

func TestGNewsFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("country"); got != "in" {
			t.Errorf("country = %q", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "k" {
			t.Errorf("apikey = %q", got)
		}
		w.Write([]byte(`{"articles":[
			{"title":"First headline","description":"<p>desc one</p>","url":"https://a.example/1"},
			{"title":"Second headline","description":"desc two","url":"https://a.example/2"}
		]}`))
	}))
	defer server.Close()

	g := NewGNews("k", "in")
	g.BaseURL = server.URL

	items, err := g.Fetch(5)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
	if items[0].Desc != "desc one" {
		t.Errorf("markup not stripped: %q", items[0].Desc)
	}
	if items[1].URL != "https://a.example/2" {
		t.Errorf("url = %q", items[1].URL)
	}
}

func TestNewsAPIFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error"}`))
	}))
	defer server.Close()

	n := NewNewsAPI("bad-key", "in")
	n.BaseURL = server.URL

	if _, err := n.Fetch(5); err == nil {
		t.Error("expected error on 401")
	}
}

func TestFetchFirstFallsThrough(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles":[{"title":"works","description":"","url":"https://b.example"}]}`))
	}))
	defer good.Close()

	g := NewGNews("k", "in")
	g.BaseURL = bad.URL
	n := NewNewsAPI("k", "in")
	n.BaseURL = good.URL

	items, name, err := FetchFirst([]Provider{g, n}, 5, log.New(io.Discard))
	if err != nil {
		t.Fatalf("FetchFirst: %v", err)
	}
	if name != "newsapi" {
		t.Errorf("provider = %q", name)
	}
	if len(items) != 1 || items[0].Title != "works" {
		t.Errorf("items = %+v", items)
	}
}

func TestFetchFirstAllFail(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	g := NewGNews("k", "in")
	g.BaseURL = bad.URL

	if _, _, err := FetchFirst([]Provider{g}, 5, log.New(io.Discard)); err == nil {
		t.Error("expected error when every provider fails")
	}
}

func TestStripMarkup(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain text", "plain text"},
		{"<b>bold</b> and <a href='x'>link</a>", "bold and link"},
		{"spaced   out\n text", "spaced out text"},
		{"<script>alert(1)</script>visible", "visible"},
	}
	for _, tc := range cases {
		if got := StripMarkup(tc.in); got != tc.want {
			t.Errorf("StripMarkup(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
