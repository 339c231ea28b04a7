package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/raider-tools/arcsafe/internal/defs"
)

// defaultFetchTimeout bounds a single document fetch when the caller
// does not supply its own http.Client.
const defaultFetchTimeout = 15 * time.Second

// Client fetches raw feed documents from the dataset mirror.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryPolicy
}

// NewClient creates a feed client for the given base URL. An empty
// baseURL selects the default dataset mirror, and a nil httpClient gets
// a default client with a request timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defs.DataBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		retry:      defaultRetryPolicy,
	}
}

// SetRetryPolicy replaces the transient-failure retry policy.
func (c *Client) SetRetryPolicy(p RetryPolicy) {
	c.retry = p
}

// FetchHideout retrieves the raw workstation document for one hideout
// file slug, e.g. "scrappy".
func (c *Client) FetchHideout(ctx context.Context, slug string) ([]byte, error) {
	return c.fetch(ctx, defs.HideoutDir+"/"+slug+".json")
}

// FetchProjects retrieves the raw expedition projects document.
func (c *Client) FetchProjects(ctx context.Context) ([]byte, error) {
	return c.fetch(ctx, defs.ProjectsFile)
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	var data []byte
	err := retryFetch(ctx, c.retry, func() error {
		var ferr error
		data, ferr = c.fetchOnce(ctx, path)
		return ferr
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) fetchOnce(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &permanentError{err: fmt.Errorf("feed: create request for %s: %w", path, err)}
	}
	req.Header.Set("User-Agent", "arcsafe-feed")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: fetch %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("feed: fetch %s: unexpected status %d", path, resp.StatusCode)
		// The mirror answers client errors the same way every time.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, &permanentError{err: err}
		}
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed: read %s: %w", path, err)
	}
	return data, nil
}
