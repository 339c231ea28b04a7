package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientFetchProjects(t *testing.T) {
	t.Parallel()

	var gotPath, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"phases": []}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	data, err := client.FetchProjects(context.Background())
	if err != nil {
		t.Fatalf("FetchProjects() error = %v", err)
	}
	if string(data) != `[{"phases": []}]` {
		t.Errorf("body = %q, want the raw document", data)
	}
	if gotPath != "/projects.json" {
		t.Errorf("path = %q, want /projects.json", gotPath)
	}
	if gotAgent != "arcsafe-feed" {
		t.Errorf("User-Agent = %q, want arcsafe-feed", gotAgent)
	}
}

func TestClientFetchHideoutPath(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	// Trailing slashes on the base URL must not double up.
	client := NewClient(server.URL+"/", nil)
	if _, err := client.FetchHideout(context.Background(), "scrappy"); err != nil {
		t.Fatalf("FetchHideout() error = %v", err)
	}
	if gotPath != "/hideout/scrappy.json" {
		t.Errorf("path = %q, want /hideout/scrappy.json", gotPath)
	}
}

func TestClientFetchErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	if _, err := client.FetchProjects(context.Background()); err == nil {
		t.Error("expected an error for a 404 response")
	} else if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("error = %v, want the status code mentioned", err)
	}
}

func TestClientFetchRespectsContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	client := NewClient(server.URL, nil)
	if _, err := client.FetchProjects(ctx); err == nil {
		t.Error("expected an error once the context deadline passed")
	}
}

func TestNewClientDefaults(t *testing.T) {
	t.Parallel()

	client := NewClient("", nil)
	if client.baseURL == "" {
		t.Error("empty baseURL should select the default mirror")
	}
	if client.httpClient == nil || client.httpClient.Timeout == 0 {
		t.Error("nil httpClient should get a default with a timeout")
	}
}
