// Package transport implements the connect.Client contract against
// the 1Password Connect REST API.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/opconnect/itemsync/internal/logging"
	"github.com/opconnect/itemsync/internal/secure"
	"github.com/opconnect/itemsync/pkg/connect"
)

const defaultTimeout = 30 * time.Second

// Config configures the HTTP client.
type Config struct {
	// Host is the Connect server base URL, e.g. "https://connect.example.com".
	Host string
	// Token is the protected bearer token.
	Token *secure.Buffer
	// Version is the itemsync release, used in the User-Agent header.
	Version string
	// Timeout bounds each request; zero means 30s.
	Timeout time.Duration
	// Logger is optional.
	Logger *logging.Logger
}

// Client talks to one Connect server. It implements connect.Client.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	token      *secure.Buffer
	userAgent  string
	logger     *logging.Logger
}

// New creates a Connect HTTP client.
func New(cfg Config) (*Client, error) {
	if cfg.Host == "" || cfg.Token == nil {
		return nil, connect.NewAccessDeniedError("server hostname or auth token not defined")
	}

	base, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid Connect host %q: %w", cfg.Host, err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.New(false, true)
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
		token:      cfg.Token,
		userAgent:  fmt.Sprintf("itemsync/%s Go/%s", version, strings.TrimPrefix(runtime.Version(), "go")),
		logger:     logger,
	}, nil
}

// FindItemByID fetches an item by its machine identifier.
func (c *Client) FindItemByID(ctx context.Context, vaultID, itemID string) (*connect.Item, error) {
	var item connect.Item
	err := c.do(ctx, http.MethodGet, []string{"vaults", vaultID, "items", itemID}, nil, nil, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemByTitle fetches an item by exact title match within a vault.
func (c *Client) FindItemByTitle(ctx context.Context, vaultID, title string) (*connect.Item, error) {
	query := url.Values{}
	query.Set("filter", fmt.Sprintf("title eq %q", title))

	var matches []connect.Item
	err := c.do(ctx, http.MethodGet, []string{"vaults", vaultID, "items"}, query, nil, &matches)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, connect.NewNotFoundError(fmt.Sprintf("no item with title %q in vault %s", title, vaultID))
	}
	if len(matches) > 1 {
		return nil, connect.NewAPIError(0,
			"more than one item matched the given title, adjust the search query")
	}

	// The filter endpoint returns summaries; fetch the full item.
	return c.FindItemByID(ctx, vaultID, matches[0].ID)
}

// CreateItem stores a new item in the vault.
func (c *Client) CreateItem(ctx context.Context, vaultID string, item *connect.Item) (*connect.Item, error) {
	var created connect.Item
	err := c.do(ctx, http.MethodPost, []string{"vaults", vaultID, "items"}, nil, item, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateItem replaces an existing item's properties.
func (c *Client) UpdateItem(ctx context.Context, vaultID string, item *connect.Item) (*connect.Item, error) {
	var updated connect.Item
	err := c.do(ctx, http.MethodPut, []string{"vaults", vaultID, "items", item.ID}, nil, item, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteItem removes an item from the vault.
func (c *Client) DeleteItem(ctx context.Context, vaultID, itemID string) error {
	return c.do(ctx, http.MethodDelete, []string{"vaults", vaultID, "items", itemID}, nil, nil, nil)
}

// ListVaults returns every vault the token grants access to.
func (c *Client) ListVaults(ctx context.Context) ([]connect.Vault, error) {
	var vaults []connect.Vault
	err := c.do(ctx, http.MethodGet, []string{"vaults"}, nil, nil, &vaults)
	if err != nil {
		return nil, err
	}
	return vaults, nil
}

// do sends one request and decodes the response into out (which may
// be nil). Failure statuses are classified into the connect error
// taxonomy.
func (c *Client) do(ctx context.Context, method string, path []string, query url.Values, body, out any) error {
	endpoint := c.baseURL.JoinPath(append([]string{"v1"}, path...)...)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if err := c.authorize(req); err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("%s %s", method, endpoint.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode server response: %w", err)
	}
	return nil
}

// authorize attaches the bearer token, decrypting it only for the
// lifetime of this call.
func (c *Client) authorize(req *http.Request) error {
	locked, err := c.token.Open()
	if err != nil {
		return connect.NewAccessDeniedError("auth token unavailable: " + err.Error())
	}
	defer locked.Destroy()

	req.Header.Set("Authorization", "Bearer "+locked.String())
	return nil
}

// classifyResponse maps a failure response onto the error taxonomy,
// preferring the server's own message and status when the body is a
// well-formed error document.
func classifyResponse(resp *http.Response) error {
	status := resp.StatusCode
	message := ""

	var errBody struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(resp.Body)
	if err == nil && json.Unmarshal(raw, &errBody) == nil {
		if errBody.Status != 0 {
			status = errBody.Status
		}
		message = errBody.Message
	}

	return connect.ErrorFromStatus(status, message)
}
