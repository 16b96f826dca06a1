package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/five82/svxdash/internal/api"
	"github.com/five82/svxdash/internal/talker"
)

// Client talks to a remote svxdash API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:8080"
	defaultUserAgent = "svxdash/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client for a host:port or URL.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// LogQuery configures /api/log requests. Zero values use the server defaults.
type LogQuery struct {
	Lines int
	Order talker.Order
}

type logResponse struct {
	Success    bool           `json:"success"`
	Error      string         `json:"error"`
	LogEntries []talker.Entry `json:"logEntries"`
}

// FetchLog retrieves the annotated log window.
func (c *Client) FetchLog(ctx context.Context, query LogQuery) ([]talker.Entry, error) {
	values := url.Values{}
	if query.Lines > 0 {
		values.Set("lines", strconv.Itoa(query.Lines))
	}
	values.Set("order", query.Order.String())

	var payload logResponse
	rel := &url.URL{Path: "/api/log", RawQuery: values.Encode()}
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload.LogEntries, nil
}

// Talkers is the /api/talkers payload.
type Talkers struct {
	Active []api.Session `json:"active"`
	Recent []api.Session `json:"recent"`
}

// FetchTalkers retrieves open and recently finished sessions.
func (c *Client) FetchTalkers(ctx context.Context) (Talkers, error) {
	var payload Talkers
	if err := c.doURL(ctx, http.MethodGet, &url.URL{Path: "/api/talkers"}, nil, &payload); err != nil {
		return Talkers{}, err
	}
	return payload, nil
}

// SendDTMF writes digits to the reflector's DTMF control.
func (c *Client) SendDTMF(ctx context.Context, digits string) error {
	return c.post(ctx, "/api/dtmf", map[string]string{"dtmf": digits})
}

// SetPTT sets push-to-talk, "1" to key up and "0" to release.
func (c *Client) SetPTT(ctx context.Context, value string) error {
	return c.post(ctx, "/api/ptt", map[string]string{"ptt": value})
}

// SystemAction runs restart, stop, shutdown or reboot on the remote host.
func (c *Client) SystemAction(ctx context.Context, action string) error {
	return c.post(ctx, "/api/system/"+url.PathEscape(action), nil)
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	return c.doURL(ctx, http.MethodPost, &url.URL{Path: path}, body, &payload)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return statusError(rel, resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError surfaces the server's {"error": ...} message when there is one.
func statusError(rel *url.URL, resp *http.Response) error {
	var failure struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<10)).Decode(&failure); err == nil && failure.Error != "" {
		return fmt.Errorf("api %s returned status %d: %s", rel.Path, resp.StatusCode, failure.Error)
	}
	return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api address %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
