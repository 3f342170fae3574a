package attendance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/yoga"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Interface compliance check.
var _ yoga.AuthService = (*Client)(nil)

// Client implements [yoga.AuthService] over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	requestID  func() string
	onRefresh  func(yoga.TokenPair) error

	mu           sync.Mutex
	token        string
	refreshToken string
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for per-request debug logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithToken sends the access token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithRefresh lets the client renew an access token the backend answers
// 401 for. The request is retried once with the new token, and onRefresh,
// when non-nil, receives the new token set so it can be stored.
func WithRefresh(refreshToken string, onRefresh func(yoga.TokenPair) error) Option {
	return func(c *Client) {
		c.refreshToken = refreshToken
		c.onRefresh = onRefresh
	}
}

// WithRequestID overrides the X-Request-Id generator. Useful for testing.
func WithRequestID(fn func() string) Option {
	return func(c *Client) { c.requestID = fn }
}

// New creates a new [Client] for the API rooted at baseURL, for example
// "http://localhost:8080/api/v1". An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
		requestID:  uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Ping fetches the pending-users list and reports only the status code.
func (c *Client) Ping(ctx context.Context) (int, error) {
	status, _, err := c.do(ctx, http.MethodGet, pendingUsersPath, nil)
	if err != nil {
		return 0, fmt.Errorf("attendance: ping: %w", err)
	}
	return status, nil
}

// PendingUsers lists accounts awaiting approval.
func (c *Client) PendingUsers(ctx context.Context) ([]yoga.PendingUser, error) {
	status, body, err := c.do(ctx, http.MethodGet, pendingUsersPath, nil)
	if err != nil {
		return nil, fmt.Errorf("attendance: pending users: %w", err)
	}
	if !ok(status) {
		return nil, fmt.Errorf("attendance: pending users: %w", parseHTTPError(status, body))
	}
	var dtos []pendingUser
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("attendance: pending users: decode: %w", err)
	}
	users := make([]yoga.PendingUser, len(dtos))
	for i, d := range dtos {
		users[i] = yoga.PendingUser{
			ID:        d.ID,
			Name:      d.Name,
			Username:  d.Username,
			Email:     d.Email,
			Phone:     d.Phone,
			CreatedAt: time.Time(d.CreatedAt),
		}
	}
	return users, nil
}

// CreateAdmin asks the backend to create (or promote) the default admin.
func (c *Client) CreateAdmin(ctx context.Context) (yoga.Response, error) {
	return c.call(ctx, "create admin", http.MethodPost, createAdminPath, nil)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, r yoga.Registration) (yoga.Response, error) {
	return c.call(ctx, "register", http.MethodPost, registerPath, registerRequest{
		Name:     r.Name,
		Username: r.Username,
		Email:    r.Email,
		Phone:    r.Phone,
		Password: r.Password,
	})
}

// Login authenticates and returns the issued tokens and account details.
func (c *Client) Login(ctx context.Context, cr yoga.Credentials) (yoga.LoginResult, error) {
	status, body, err := c.do(ctx, http.MethodPost, loginPath, loginRequest{
		Username: cr.Username,
		Password: cr.Password,
	})
	if err != nil {
		return yoga.LoginResult{}, fmt.Errorf("attendance: login: %w", err)
	}
	if !ok(status) {
		return yoga.LoginResult{}, fmt.Errorf("attendance: login: %w", parseHTTPError(status, body))
	}
	var dto loginResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return yoga.LoginResult{}, fmt.Errorf("attendance: login: decode: %w", err)
	}
	access := dto.AccessToken
	if access == "" {
		access = dto.Token
	}
	return yoga.LoginResult{
		Status:         status,
		Raw:            parseReply(body),
		AccessToken:    access,
		RefreshToken:   dto.RefreshToken,
		Role:           yoga.Role(dto.Role),
		Username:       dto.Username,
		Name:           dto.Name,
		Level:          dto.Level,
		ProfilePicture: dto.ProfilePicture,
	}, nil
}

// ApproveUser approves a pending account.
func (c *Client) ApproveUser(ctx context.Context, username string) (yoga.Response, error) {
	return c.call(ctx, "approve user", http.MethodPost, approveUserPath+url.PathEscape(username), nil)
}

// RejectUser rejects and deletes a pending account. An empty reason is omitted.
func (c *Client) RejectUser(ctx context.Context, username, reason string) (yoga.Response, error) {
	return c.call(ctx, "reject user", http.MethodPost, rejectUserPath+url.PathEscape(username), rejectRequest{Reason: reason})
}

// DeleteUser deletes an account.
func (c *Client) DeleteUser(ctx context.Context, username string) (yoga.Response, error) {
	return c.call(ctx, "delete user", http.MethodDelete, deleteUserPath+url.PathEscape(username), nil)
}

// Refresh exchanges refreshToken for a new access token. The backend keeps
// the refresh token, so an empty RefreshToken in the result means "unchanged".
func (c *Client) Refresh(ctx context.Context, refreshToken string) (yoga.TokenPair, error) {
	status, body, err := c.send(ctx, http.MethodPost, refreshPath, refreshRequest{RefreshToken: refreshToken}, "")
	if err != nil {
		return yoga.TokenPair{}, fmt.Errorf("attendance: refresh: %w", err)
	}
	if !ok(status) {
		return yoga.TokenPair{}, fmt.Errorf("attendance: refresh: %w", parseHTTPError(status, body))
	}
	var dto refreshResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return yoga.TokenPair{}, fmt.Errorf("attendance: refresh: decode: %w", err)
	}
	if dto.AccessToken == "" {
		return yoga.TokenPair{}, fmt.Errorf("attendance: refresh: response carries no access token")
	}
	return yoga.TokenPair{AccessToken: dto.AccessToken, RefreshToken: dto.RefreshToken}, nil
}

// Logout revokes the refresh tokens and sessions the backend holds for
// username.
func (c *Client) Logout(ctx context.Context, username string) (yoga.Response, error) {
	return c.call(ctx, "logout", http.MethodPost, logoutPath, logoutRequest{Username: username})
}

// call performs a request whose response is an ad-hoc JSON object.
func (c *Client) call(ctx context.Context, op, method, path string, payload any) (yoga.Response, error) {
	status, body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return yoga.Response{}, fmt.Errorf("attendance: %s: %w", op, err)
	}
	if !ok(status) {
		return yoga.Response{}, fmt.Errorf("attendance: %s: %w", op, parseHTTPError(status, body))
	}
	return yoga.Response{Status: status, Body: parseReply(body)}, nil
}

// do sends the request with the current access token. A 401 is retried once
// after a refresh when the client holds a refresh token.
func (c *Client) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	token, refreshToken := c.tokens()
	status, body, err := c.send(ctx, method, path, payload, token)
	if err != nil || status != http.StatusUnauthorized || token == "" || refreshToken == "" {
		return status, body, err
	}
	c.logger.Debug("access token rejected, refreshing", zap.String("path", path))
	if err := c.renew(ctx, refreshToken); err != nil {
		return 0, nil, err
	}
	token, _ = c.tokens()
	return c.send(ctx, method, path, payload, token)
}

func (c *Client) tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, c.refreshToken
}

// renew replaces the held tokens. A failed refresh wraps ErrSessionExpired.
func (c *Client) renew(ctx context.Context, refreshToken string) error {
	pair, err := c.Refresh(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("%w: %w", yoga.ErrSessionExpired, err)
	}
	c.mu.Lock()
	c.token = pair.AccessToken
	if pair.RefreshToken != "" {
		c.refreshToken = pair.RefreshToken
	}
	c.mu.Unlock()
	if c.onRefresh != nil {
		if err := c.onRefresh(pair); err != nil {
			c.logger.Warn("failed to store refreshed tokens", zap.Error(err))
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload any, token string) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, err
	}
	reqID := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("request_id", reqID),
	)
	return resp.StatusCode, body, nil
}

func ok(status int) bool { return status >= 200 && status < 300 }

// parseReply decodes a JSON object body. An empty body is an empty reply; a
// body that is not a JSON object is kept under "raw" with an error marker.
func parseReply(body []byte) yoga.Reply {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return yoga.Reply{}
	}
	var r yoga.Reply
	if err := json.Unmarshal([]byte(text), &r); err != nil || r == nil {
		return yoga.Reply{"error": "Invalid response format", "raw": text}
	}
	return r
}

func parseHTTPError(status int, body []byte) *yoga.Error {
	reply := parseReply(body)
	msg := reply.ErrorMessage()
	if raw, isRaw := reply["raw"].(string); isRaw {
		msg = raw
	}
	if msg == "" {
		msg = reply.Message()
	}
	return &yoga.Error{Status: status, Message: msg, Body: reply}
}
