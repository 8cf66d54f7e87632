// Package rest implements the backend contracts over HTTP against the
// memory map API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"memorymap/internal/backend"
)

const (
	// refreshWindow is how close to expiry a session token gets
	// refreshed before being used.
	refreshWindow = time.Hour
)

// APIError is an error response from the backend API. Error returns the
// backend's message verbatim so callers can surface it to users.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Config configures a Client.
type Config struct {
	// BaseURL is the backend's base URL, e.g. http://localhost:8473.
	BaseURL string
	// APIKey is sent on every request in the apikey header.
	APIKey string
	// SessionFile is where the session is persisted across restarts.
	// Empty disables persistence.
	SessionFile string
	// HTTPClient is optional; http.DefaultClient is used when nil.
	HTTPClient *http.Client
}

// Client talks to the memory map API. It implements backend.Auth and
// backend.Storage directly; Bundle exposes the full surface. A Client
// is safe for concurrent use.
type Client struct {
	baseURL     string
	apiKey      string
	sessionFile string
	httpClient  *http.Client

	mu      sync.Mutex
	session *backend.Session
}

// New creates a Client. BaseURL and APIKey are required.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("backend API key is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		sessionFile: cfg.SessionFile,
		httpClient:  httpClient,
	}
	c.loadSession()
	return c, nil
}

// FromEnv creates a Client from MEMORYMAP_URL and MEMORYMAP_ANON_KEY.
func FromEnv() (*Client, error) {
	return New(Config{
		BaseURL:     os.Getenv("MEMORYMAP_URL"),
		APIKey:      os.Getenv("MEMORYMAP_ANON_KEY"),
		SessionFile: os.Getenv("MEMORYMAP_SESSION_FILE"),
	})
}

// Bundle returns the client wrapped in the backend.Client surface.
func (c *Client) Bundle() *backend.Client {
	return &backend.Client{
		Auth:     c,
		Storage:  c,
		Profiles: profilesClient{c: c},
		Memories: memoriesClient{c: c},
	}
}

// doJSON performs an API request with the default JSON and apikey
// headers. When authed is true and a session exists, its token is sent
// as a Bearer credential. A non-2xx response decodes into an APIError.
func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, contentType string, authed bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if contentType == "" {
		contentType = "application/json"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	if authed {
		if token, ok := c.sessionToken(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		message := resp.Status
		code := ""
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Error != "" {
			message = errBody.Error
			code = errBody.Code
		}
		return &APIError{Status: resp.StatusCode, Code: code, Message: message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// postJSON marshals body as JSON and sends it.
func (c *Client) postJSON(ctx context.Context, path string, body any, authed bool, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	return c.doJSON(ctx, http.MethodPost, path, bytes.NewReader(encoded), "application/json", authed, out)
}
