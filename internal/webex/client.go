// Package webex provides a rate-limited client for the Webex messaging REST API.
package webex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Webex REST API base URL.
	BaseURL = "https://webexapis.com/v1"

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// HandshakeTimeout bounds the one-time readiness check (GetMe) that
	// precedes any room or message work.
	HandshakeTimeout = 60 * time.Second

	// RateLimit is 10 requests per second, matching the documented
	// per-token throttle.
	RateLimit = 10.0

	// MaxMessagePage is the provider cap on messages per listing call.
	MaxMessagePage = 100

	// MaxRoomPage is the provider cap on rooms per listing call.
	MaxRoomPage = 1000
)

// Client is a rate-limited HTTP client for the Webex API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates a new Webex API client authenticated with the given
// bearer token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		token:      token,
		baseURL:    BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do issues a single authenticated request and decodes the JSON response
// into out. Non-2xx statuses are mapped to the sentinel errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encoding request: %v", ErrAPIError, err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Success
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrAPIError, err)
	}
	return nil
}

// GetMe fetches the authenticated user. It doubles as the readiness
// handshake: a failure here means the credential or the service is unusable
// and the whole run should abort.
func (c *Client) GetMe(ctx context.Context) (*Person, error) {
	var me Person
	if err := c.do(ctx, http.MethodGet, "/people/me", nil, nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// ListRoomsWithReadStatus fetches up to max recent rooms including the
// caller's read-state fields, most recently active first.
//
// Rooms are returned as raw objects because field names vary across API
// versions (lastActivityDate vs lastActivity, lastSeenDate vs
// lastSeenActivityDate); normalization is the caller's concern.
func (c *Client) ListRoomsWithReadStatus(ctx context.Context, max int) ([]map[string]any, error) {
	if max <= 0 || max > MaxRoomPage {
		max = MaxRoomPage
	}
	q := url.Values{
		"max":        {strconv.Itoa(max)},
		"sortBy":     {"lastactivity"},
		"readStatus": {"true"},
	}

	var result struct {
		Items []map[string]any `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/rooms", q, nil, &result); err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	return result.Items, nil
}

// GetRoomReadStatus fetches a single room including the caller's
// read-state fields, as a raw object (see ListRoomsWithReadStatus).
func (c *Client) GetRoomReadStatus(ctx context.Context, roomID string) (map[string]any, error) {
	q := url.Values{"readStatus": {"true"}}

	var room map[string]any
	if err := c.do(ctx, http.MethodGet, "/rooms/"+url.PathEscape(roomID), q, nil, &room); err != nil {
		return nil, fmt.Errorf("fetching room %s: %w", roomID, err)
	}
	return room, nil
}

// ListMessages fetches up to max recent messages for a room. Order is
// whatever the provider returns; callers re-sort.
func (c *Client) ListMessages(ctx context.Context, roomID string, max int) ([]Message, error) {
	if max <= 0 || max > MaxMessagePage {
		max = MaxMessagePage
	}
	q := url.Values{
		"roomId": {roomID},
		"max":    {strconv.Itoa(max)},
	}

	var result struct {
		Items []Message `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/messages", q, nil, &result); err != nil {
		return nil, fmt.Errorf("listing messages for room %s: %w", roomID, err)
	}
	return result.Items, nil
}

// createMessageRequest is the message-creation payload. Exactly one of
// RoomID or ToPersonEmail is set.
type createMessageRequest struct {
	RoomID        string `json:"roomId,omitempty"`
	ToPersonEmail string `json:"toPersonEmail,omitempty"`
	Markdown      string `json:"markdown"`
}

// CreateMessage submits one markdown message to the target. A single
// attempt, never retried: a duplicate message from a blind retry is worse
// than a visible failure.
func (c *Client) CreateMessage(ctx context.Context, target Target, markdown string) (*SentMessage, error) {
	if target.RoomID == "" && target.PersonEmail == "" {
		return nil, fmt.Errorf("%w: empty recipient", ErrAPIError)
	}
	req := createMessageRequest{
		RoomID:        target.RoomID,
		ToPersonEmail: target.PersonEmail,
		Markdown:      markdown,
	}

	var sent SentMessage
	if err := c.do(ctx, http.MethodPost, "/messages", nil, req, &sent); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}
	return &sent, nil
}
