package codespace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/shrew/internal/notify"
)

// API defines every call shrew makes against the code space service.
// It is implemented by *Client and can be faked in tests.
type API interface {
	ListSpaces(ctx context.Context, page int) ([]Space, error)
	GetSpace(ctx context.Context, id int64) (*Space, error)
	CreateSpace(ctx context.Context, req CreateSpaceRequest) error
	UpdateSpace(ctx context.Context, id int64, req UpdateSpaceRequest) error
	DeleteSpace(ctx context.Context, id int64, password string) error

	ListPieces(ctx context.Context, spaceID int64, page int) ([]PieceSummary, error)
	GetPiece(ctx context.Context, id int64) (*Piece, error)
	CreatePiece(ctx context.Context, req CreatePieceRequest) error
	UpdatePiece(ctx context.Context, id int64, req UpdatePieceRequest) error
	DeletePiece(ctx context.Context, id int64, password string) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the code space HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	notifier  notify.Notifier
	logger    *zap.Logger
	requestID func() string
}

const (
	// DefaultAPIURL is the public code space service.
	DefaultAPIURL    = "https://api-codespace.cuteshrew.com"
	defaultUserAgent = "shrew/0.1"
	defaultTimeout   = 10 * time.Second
	maxErrorBody     = 64 * 1024
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds every request. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithNotifier receives every error the client returns.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger records one entry per request.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the given base URL. An empty URL uses
// DefaultAPIURL.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: defaultUserAgent,
		notifier:  notify.Discard,
		logger:    zap.NewNop(),
		requestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListSpaces retrieves one zero-based page of spaces. An empty slice marks
// the last page.
func (c *Client) ListSpaces(ctx context.Context, page int) ([]Space, error) {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	rel := &url.URL{Path: "/api/codespaces", RawQuery: values.Encode()}
	var payload []Space
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetSpace retrieves a single space.
func (c *Client) GetSpace(ctx context.Context, id int64) (*Space, error) {
	var payload Space
	if err := c.do(ctx, http.MethodGet, spacePath(id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateSpace creates a new space.
func (c *Client) CreateSpace(ctx context.Context, req CreateSpaceRequest) error {
	return c.do(ctx, http.MethodPost, "/api/codespaces", req, nil)
}

// UpdateSpace applies a partial update guarded by the space password.
func (c *Client) UpdateSpace(ctx context.Context, id int64, req UpdateSpaceRequest) error {
	return c.do(ctx, http.MethodPut, spacePath(id), req, nil)
}

// DeleteSpace removes a space guarded by its password.
func (c *Client) DeleteSpace(ctx context.Context, id int64, password string) error {
	return c.do(ctx, http.MethodDelete, spacePath(id), deleteRequest{Password: password}, nil)
}

// ListPieces retrieves one zero-based page of pieces in a space.
func (c *Client) ListPieces(ctx context.Context, spaceID int64, page int) ([]PieceSummary, error) {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("space_id", strconv.FormatInt(spaceID, 10))
	rel := &url.URL{Path: "/api/codepieces", RawQuery: values.Encode()}
	var payload []PieceSummary
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetPiece retrieves a piece including its code body.
func (c *Client) GetPiece(ctx context.Context, id int64) (*Piece, error) {
	var payload Piece
	if err := c.do(ctx, http.MethodGet, piecePath(id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreatePiece creates a new piece inside req.SpaceID.
func (c *Client) CreatePiece(ctx context.Context, req CreatePieceRequest) error {
	return c.do(ctx, http.MethodPost, "/api/codepieces", req, nil)
}

// UpdatePiece applies a partial update guarded by the piece password.
func (c *Client) UpdatePiece(ctx context.Context, id int64, req UpdatePieceRequest) error {
	return c.do(ctx, http.MethodPut, piecePath(id), req, nil)
}

// DeletePiece removes a piece guarded by its password.
func (c *Client) DeletePiece(ctx context.Context, id int64, password string) error {
	return c.do(ctx, http.MethodDelete, piecePath(id), deleteRequest{Password: password}, nil)
}

func spacePath(id int64) string {
	return "/api/codespaces/" + strconv.FormatInt(id, 10)
}

func piecePath(id int64) string {
	return "/api/codepieces/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

// doURL performs one exchange. Every error is forwarded to the notifier
// before it is returned.
func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	err := c.exchange(ctx, method, rel, body, dest)
	if err != nil {
		notify.Error(c.notifier, err)
	}
	return err
}

func (c *Client) exchange(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	reqID := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)

	log := c.logger.With(
		zap.String("request_id", reqID),
		zap.String("method", method),
		zap.String("path", rel.String()),
	)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Duration("elapsed", time.Since(started)), zap.Error(err))
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	log = log.With(zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			Method:  method,
			Path:    rel.Path,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(text)),
		}
		log.Warn("request rejected", zap.String("message", apiErr.Error()))
		return apiErr
	}
	log.Debug("request completed")

	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = DefaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, errors.New("api url has no host")
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
