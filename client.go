package webfront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Result is the single shape every backend call resolves to. A call never
// surfaces a raw transport error to its caller: failures of any kind are
// folded into Success=false plus a human-readable Error.
type Result struct {
	Success    bool
	Data       json.RawMessage
	Error      string
	StatusCode int
}

// Decode unmarshals the normalized payload into v.
func (r Result) Decode(v any) error {
	if !r.Success {
		return fmt.Errorf("cannot decode failed result: %s", r.Error)
	}
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

// Client issues requests against the community REST backend. Each call is
// attempted exactly once; retry policy belongs to callers.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
	Debug      bool
}

type ClientOption func(*Client) *Client

// WithHTTPClient overrides the transport, mostly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) *Client {
		if hc != nil {
			c.httpClient = hc
		}
		return c
	}
}

// WithClientLogger overrides the default logger.
func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) *Client {
		if logger != nil {
			c.logger = logger
		}
		return c
	}
}

// NewClient creates a backend client rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

const genericRequestError = "Network error"

func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body any) Result {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			c.logger.Error("encode request body: %v", err)
			return Result{Success: false, Error: genericRequestError}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		c.logger.Error("build request %s %s: %v", method, path, err)
		return Result{Success: false, Error: genericRequestError}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request %s %s failed: %v", method, path, err)
		return Result{Success: false, Error: genericRequestError}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("read response %s %s: %v", method, path, err)
		return Result{Success: false, Error: genericRequestError, StatusCode: resp.StatusCode}
	}

	if c.Debug {
		c.logger.Debug("%s %s -> %d %s", method, path, resp.StatusCode, string(raw))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{
			Success:    false,
			Error:      errorMessage(raw, fmt.Sprintf("request failed with status %d", resp.StatusCode)),
			StatusCode: resp.StatusCode,
		}
	}

	return Result{
		Success:    true,
		Data:       normalizeEnvelope(raw),
		StatusCode: resp.StatusCode,
	}
}

// normalizeEnvelope unwraps the backend's inconsistent response envelopes
// ({data:{data:...}}, {data:...} or flat) into one canonical payload so no
// caller ever has to guess the shape.
func normalizeEnvelope(raw []byte) json.RawMessage {
	payload := json.RawMessage(bytes.TrimSpace(raw))
	for i := 0; i < 2; i++ {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(payload, &fields); err != nil {
			break
		}
		inner, ok := fields["data"]
		if !ok || !envelopeOnly(fields) {
			break
		}
		trimmed := bytes.TrimSpace(inner)
		if len(trimmed) == 0 || string(trimmed) == "null" {
			break
		}
		payload = trimmed
	}
	return payload
}

// envelopeOnly reports whether the object carries nothing but wrapper
// fields. Objects with payload siblings, pagination for one, must survive
// unwrapping intact.
func envelopeOnly(fields map[string]json.RawMessage) bool {
	for key := range fields {
		switch key {
		case "data", "success", "message", "status":
		default:
			return false
		}
	}
	return true
}

// errorMessage digs a server-provided message out of a failure body.
func errorMessage(raw []byte, fallback string) string {
	var envelope struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if len(envelope.Error) > 0 {
			var flat string
			if json.Unmarshal(envelope.Error, &flat) == nil && flat != "" {
				return flat
			}
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(envelope.Error, &nested) == nil && nested.Message != "" {
				return nested.Message
			}
		}
	}
	return fallback
}

// --- auth surface ---

func (c *Client) Login(ctx context.Context, email, password string) Result {
	return c.do(ctx, http.MethodPost, "/api/auth/login", "", nil, map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) Register(ctx context.Context, payload RegisterUserMessage) Result {
	return c.do(ctx, http.MethodPost, "/api/auth/register", "", nil, payload)
}

func (c *Client) CurrentUser(ctx context.Context, token string) Result {
	return c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, nil)
}

func (c *Client) Logout(ctx context.Context, token string) Result {
	return c.do(ctx, http.MethodGet, "/api/auth/logout", token, nil, nil)
}

// --- member surface ---

func (c *Client) ListMembers(ctx context.Context, token string, query url.Values) Result {
	return c.do(ctx, http.MethodGet, "/api/member/all", token, query, nil)
}

func (c *Client) JoinMember(ctx context.Context, payload JoinMemberMessage) Result {
	return c.do(ctx, http.MethodPost, "/api/member/join-member", "", nil, payload)
}

func (c *Client) UpdateMemberStatus(ctx context.Context, token, id string, status MemberStatus) Result {
	return c.do(ctx, http.MethodPatch, "/members/"+url.PathEscape(id)+"/status", token, nil, map[string]string{
		"status": status,
	})
}

func (c *Client) MemberStats(ctx context.Context, token string) Result {
	return c.do(ctx, http.MethodGet, "/api/member/stats", token, nil, nil)
}

// --- contact surface ---

func (c *Client) ListContacts(ctx context.Context, token string, query url.Values) Result {
	return c.do(ctx, http.MethodGet, "/api/contact/all", token, query, nil)
}

func (c *Client) CreateContact(ctx context.Context, payload ContactRequestMessage) Result {
	return c.do(ctx, http.MethodPost, "/api/contact/create", "", nil, payload)
}

func (c *Client) UpdateContactStatus(ctx context.Context, token, id string, status ContactStatus) Result {
	return c.do(ctx, http.MethodPatch, "/api/contact/"+url.PathEscape(id)+"/status", token, nil, map[string]string{
		"status": status,
	})
}

// --- message surface ---

func (c *Client) ListMessages(ctx context.Context, token string, query url.Values) Result {
	return c.do(ctx, http.MethodGet, "/messages", token, query, nil)
}

func (c *Client) PostMessage(ctx context.Context, payload PostMessageMessage) Result {
	return c.do(ctx, http.MethodPost, "/messages", "", nil, payload)
}

func (c *Client) UpdateMessageStatus(ctx context.Context, token, id string, status MessageStatus) Result {
	return c.do(ctx, http.MethodPatch, "/messages/"+url.PathEscape(id)+"/status", token, nil, map[string]string{
		"status": status,
	})
}

func (c *Client) MessageStats(ctx context.Context, token string) Result {
	return c.do(ctx, http.MethodGet, "/messages/stats", token, nil, nil)
}
