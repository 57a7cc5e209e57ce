package clash

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"warboard/internal/models"
	"warboard/internal/providers"
	"warboard/internal/structures"

	json "github.com/goccy/go-json"
)

const (
	maxResponseSize = 4 << 20 // 4 MB
	searchLimit     = 20
)

// WarFetcher is the "get current war" host operation.
type WarFetcher interface {
	GetWar(ctx context.Context, tag string) models.FetchResult
}

// ClanSearcher looks clans up by name.
type ClanSearcher interface {
	SearchClans(ctx context.Context, name string) ([]models.ClanSummary, error)
}

// APIError is a non-200 answer of the clan API. Code is 0 for transport
// failures.
type APIError struct {
	Code   int
	Reason string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clan api (%d): %s", e.Code, e.Reason)
}

var (
	_ WarFetcher   = (*Client)(nil)
	_ ClanSearcher = (*Client)(nil)
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  providers.Logger
}

var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad parameters.",
	http.StatusForbidden:           "Access denied.",
	http.StatusNotFound:            "Not found.",
	http.StatusTooManyRequests:     "Request throttled.",
	http.StatusInternalServerError: "Unknown error.",
	http.StatusServiceUnavailable:  "In maintenance.",
}

func statusMessage(code int) string {
	if msg, ok := statusMessages[code]; ok {
		return msg
	}
	return fmt.Sprintf("Unexpected status %d.", code)
}

func (c *Client) warURL(tag string) string {
	return c.baseURL + "/clans/" + url.PathEscape(tag) + "/currentwar"
}

func (c *Client) searchURL(name string) string {
	q := url.Values{}
	q.Set("name", name)
	q.Set("limit", strconv.Itoa(searchLimit))
	return c.baseURL + "/clans?" + q.Encode()
}

// get performs an authorized GET and returns the status and the bounded body.
func (c *Client) get(ctx context.Context, target string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return http.StatusBadRequest, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) GetWar(ctx context.Context, tag string) models.FetchResult {
	code, body, err := c.get(ctx, c.warURL(tag))
	if err != nil {
		return models.Failed(code, fmt.Sprintf("request war for %s: %s", tag, err))
	}

	switch code {
	case http.StatusOK:
		var snapshot models.WarSnapshot
		if err = json.Unmarshal(body, &snapshot); err != nil {
			return models.Failed(code, fmt.Sprintf("decode war response: %s", err))
		}
		return models.Found(&snapshot)
	case http.StatusNotFound:
		return models.NotFound()
	}

	c.logger.Debugf(providers.TypePoller, "War API answered %d for %s: %s", code, tag, strings.TrimSpace(string(body)))
	return models.Failed(code, statusMessage(code))
}

// SearchClans returns the API's hits for name in the API's order.
func (c *Client) SearchClans(ctx context.Context, name string) ([]models.ClanSummary, error) {
	code, body, err := c.get(ctx, c.searchURL(name))
	if err != nil {
		return nil, &APIError{Code: code, Reason: fmt.Sprintf("search %q: %s", name, err)}
	}
	if code != http.StatusOK {
		c.logger.Debugf(providers.TypeGet, "Search API answered %d for %q: %s", code, name, strings.TrimSpace(string(body)))
		return nil, &APIError{Code: code, Reason: statusMessage(code)}
	}

	var res models.ClanSearchResponse
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return res.Items, nil
}

func NewClient(conf *structures.Config, logger providers.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.Clash.BaseUrl, "/"),
		token:   conf.Clash.Token,
		http:    &http.Client{Timeout: conf.Clash.Timeout},
		logger:  logger,
	}
}
