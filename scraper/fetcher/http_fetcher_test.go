package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rental-comps/utils"
)

func TestHTTPFetcherSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent/1.0" {
			t.Errorf("User-Agent: got %q, want %q", got, "test-agent/1.0")
		}
		if got := r.Header.Get("Accept-Language"); got != "en-US" {
			t.Errorf("Accept-Language: got %q, want %q", got, "en-US")
		}
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, utils.NewLogger())
	body, err := f.Fetch(context.Background(), srv.URL, map[string]string{
		"User-Agent":      "test-agent/1.0",
		"Accept-Language": "en-US",
	})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if body != "<html>ok</html>" {
		t.Errorf("body: got %q", body)
	}
}

func TestHTTPFetcherErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5*time.Second, utils.NewLogger())
	if _, err := f.Fetch(context.Background(), srv.URL, nil); err == nil {
		t.Error("expected an error for a 403 response")
	}
}

func TestHTTPFetcherCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewHTTPFetcher(time.Second, utils.NewLogger())
	if _, err := f.Fetch(ctx, "http://127.0.0.1:1", nil); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestHTTPFetcherCancelledMidRequest(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	f := NewHTTPFetcher(10*time.Second, utils.NewLogger())
	start := time.Now()
	if _, err := f.Fetch(ctx, srv.URL, nil); err == nil {
		t.Fatal("expected an error when the context is cancelled mid-request")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Fetch returned after %v; want it to stop on cancellation", elapsed)
	}
}

func TestFetchFuncAdapter(t *testing.T) {
	var f Fetcher = FetchFunc(func(_ context.Context, url string, _ map[string]string) (string, error) {
		return "page:" + url, nil
	})
	got, err := f.Fetch(context.Background(), "x", nil)
	if err != nil || got != "page:x" {
		t.Errorf("Fetch = %q, %v; want %q, nil", got, err, "page:x")
	}
}
