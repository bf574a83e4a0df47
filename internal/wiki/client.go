// Package wiki is the MediaWiki API client: article search, rendered
// markup fetch, and raw image fetch.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const apiEndpoint = "https://en.wikipedia.org/w/api.php"

// SearchResult is one search hit. Snippet carries the article URL, which
// is what the opensearch endpoint returns alongside each title.
type SearchResult struct {
	Title   string
	Snippet string
}

type Client struct {
	client    *http.Client
	userAgent string
	apiBase   string
}

func NewClient(userAgent string) *Client {
	return &Client{
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: userAgent,
		apiBase:   apiEndpoint,
	}
}

// Search runs an opensearch query and zips the returned titles with their
// article URLs.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	params := url.Values{
		"action":    {"opensearch"},
		"search":    {query},
		"limit":     {fmt.Sprint(limit)},
		"namespace": {"0"},
		"format":    {"json"},
	}

	body, err := c.get(ctx, c.apiBase+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	defer body.Close()

	// The opensearch response is a positional array:
	// [query, [titles...], [descriptions...], [urls...]]
	var raw []json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("unexpected search response shape")
	}

	var titles, urls []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return nil, fmt.Errorf("parsing search titles: %w", err)
	}
	if err := json.Unmarshal(raw[3], &urls); err != nil {
		return nil, fmt.Errorf("parsing search urls: %w", err)
	}

	results := make([]SearchResult, 0, len(titles))
	for i, title := range titles {
		snippet := ""
		if i < len(urls) {
			snippet = urls[i]
		}
		results = append(results, SearchResult{Title: title, Snippet: snippet})
	}
	return results, nil
}

// FetchMarkup fetches the rendered HTML for an article title, following
// redirects.
func (c *Client) FetchMarkup(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":    {"parse"},
		"format":    {"json"},
		"prop":      {"text"},
		"page":      {title},
		"redirects": {"1"},
	}

	body, err := c.get(ctx, c.apiBase+"?"+params.Encode())
	if err != nil {
		return "", err
	}
	defer body.Close()

	var resp struct {
		Parse struct {
			Text struct {
				Content string `json:"*"`
			} `json:"text"`
		} `json:"parse"`
		Error struct {
			Info string `json:"info"`
		} `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return "", fmt.Errorf("parsing article response: %w", err)
	}
	if resp.Error.Info != "" {
		return "", fmt.Errorf("article fetch failed: %s", resp.Error.Info)
	}
	if resp.Parse.Text.Content == "" {
		return "", fmt.Errorf("article %q has no rendered text", title)
	}
	return resp.Parse.Text.Content, nil
}

// FetchImage downloads raw image bytes. Decoding is the caller's concern.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	body, err := c.get(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}
