// Package sleepy provides a Go client for the device API of a sleepy status
// server. A device reports what it is currently doing by POSTing its id,
// display name and a free-form status string to /api/device/set.
//
// Example usage:
//
//	client, err := sleepy.NewClient("https://sleepy.example.com")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.SetToken(os.Getenv("SLEEPY_TOKEN"))
//	err = client.SetStatus(ctx, sleepy.Status{
//		ID:       "laptop-1",
//		ShowName: "laptop",
//		Using:    true,
//		Status:   "nvim ~/src",
//	})
package sleepy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Configuration constants
const (
	defaultRequestTimeout = 30 * time.Second
	deviceSetPath         = "/api/device/set"
	maxResponseBody       = 4096
)

// UserAgent is sent with every request. Overridden at build time by the CLI.
var UserAgent = "sleepy-hyprland/dev"

// ErrInvalidURL is returned by NewClient for empty or non-HTTP server URLs.
var ErrInvalidURL = errors.New("invalid sleepy server URL")

// Status is the JSON body accepted by /api/device/set.
type Status struct {
	ID       string `json:"id"`
	ShowName string `json:"show_name"`
	Using    bool   `json:"using"`
	Status   string `json:"status"`
}

// PushResult describes the outcome of a single status push.
type PushResult struct {
	DeviceID   string    `json:"device_id"`
	DeviceName string    `json:"device_name"`
	Status     string    `json:"status"`
	Success    bool      `json:"success"`
	HTTPStatus int       `json:"http_status,omitempty"` // 0 when no response was received
	Error      string    `json:"error,omitempty"`
	PushedAt   time.Time `json:"pushed_at"`
}

// StatusError is returned when the server answers with anything but 200 OK.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("sleepy server returned HTTP %d", e.Code)
	}
	return fmt.Sprintf("sleepy server returned HTTP %d: %s", e.Code, e.Body)
}

// Client sends status updates to one sleepy server. Each Client owns its own
// transport, so Close releases every connection it opened.
type Client struct {
	serverURL     string
	transport     *http.Transport
	httpClient    *http.Client
	DebugMode     bool
	CustomHeaders map[string]string
}

// NewClient creates a client for the server at serverURL (scheme and host,
// optionally a path prefix). A trailing slash is ignored.
func NewClient(serverURL string) (*Client, error) {
	serverURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if serverURL == "" {
		return nil, fmt.Errorf("%w: server_url not provided\n\nSet server_url in the sleepy section of the config file.\n\nExample: https://sleepy.example.com", ErrInvalidURL)
	}

	u, err := url.Parse(serverURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: must start with http:// or https://\n\nProvided: %s", ErrInvalidURL, serverURL)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		serverURL: serverURL,
		transport: transport,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   defaultRequestTimeout,
		},
		CustomHeaders: make(map[string]string),
	}, nil
}

// Close releases idle connections held by the client's transport.
func (c *Client) Close() error {
	c.transport.CloseIdleConnections()
	return nil
}

// debugLog prints debug messages if debug mode is enabled
func (c *Client) debugLog(format string, args ...interface{}) {
	if c.DebugMode {
		color.Cyan("[SLEEPY DEBUG] "+format, args...)
	}
}

// Endpoint returns the full URL status updates are posted to.
func (c *Client) Endpoint() string {
	return c.serverURL + deviceSetPath
}

// SetStatus posts status to the server. It returns a *StatusError when the
// server responds with a status other than 200.
func (c *Client) SetStatus(ctx context.Context, status Status) error {
	if err := validateStatus(status); err != nil {
		return fmt.Errorf("invalid status: %w", err)
	}

	jsonData, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	c.debugLog("Payload: %s", string(jsonData))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	for key, value := range c.CustomHeaders {
		req.Header.Set(key, value)
	}

	c.debugLog("Sending POST request to %s", c.Endpoint())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	c.debugLog("Response status: %d, body: %s", resp.StatusCode, string(body))

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}

// validateStatus checks the fields the server requires.
func validateStatus(status Status) error {
	if status.ID == "" {
		return fmt.Errorf("id is required")
	}
	if status.ShowName == "" {
		return fmt.Errorf("show_name is required")
	}
	return nil
}

// SetToken sets the bearer token sent in the Authorization header. An empty
// token removes the header.
func (c *Client) SetToken(token string) {
	if token == "" {
		delete(c.CustomHeaders, "Authorization")
		return
	}
	c.SetHeader("Authorization", "Bearer "+token)
}

// SetHeader sets a custom HTTP header to be included in every request.
func (c *Client) SetHeader(key, value string) {
	c.CustomHeaders[key] = value
}

// SetTimeout sets the HTTP request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}
