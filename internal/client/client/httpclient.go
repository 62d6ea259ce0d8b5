package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/peyjabanki/internal/client/models"
	"github.com/dmitrijs2005/peyjabanki/internal/logging"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries one id per logical request; a replay after a
	// token refresh reuses the id of the original attempt.
	RequestIDHeader = "X-Request-ID"

	defaultRequestTimeout = 15 * time.Second
	defaultRefreshTimeout = 10 * time.Second
)

// SessionInvalidatedFunc is called once per failed refresh, after the stored
// credentials were cleared. The host decides what to do, typically send the
// user back to the login prompt.
type SessionInvalidatedFunc func(ctx context.Context, err error)

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func WithSessionInvalidated(fn SessionInvalidatedFunc) Option {
	return func(c *HTTPClient) { c.onInvalidated = fn }
}

func WithRefreshTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.refreshTimeout = d }
}

func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) { c.header.Set("User-Agent", ua) }
}

type refreshResult struct {
	token string
	err   error
}

// waiter is a request queued behind an in-flight refresh. Waiters form a
// chain per refresh cycle: turn is closed once the predecessor's replay is
// on its way, and done is closed once this one's is.
type waiter struct {
	result chan refreshResult
	turn   <-chan struct{}
	done   chan struct{}
}

// pass gives up the waiter's place in the chain without replaying.
func (w *waiter) pass() {
	<-w.turn
	close(w.done)
}

// HTTPClient talks JSON to the prediction-game API. It attaches the stored
// access token to every request and, when a request comes back 401, trades
// the refresh token for a new access token and replays the request once.
//
// Only one refresh is in flight at a time. Requests that hit 401 while a
// refresh is running wait for its outcome instead of starting their own and
// are replayed one after another in the order they arrived.
// HTTPClient is safe for concurrent use.
type HTTPClient struct {
	baseURL        *url.URL
	refreshURL     string
	httpClient     *http.Client
	tokens         TokenStore
	logger         logging.Logger
	onInvalidated  SessionInvalidatedFunc
	refreshTimeout time.Duration

	// header holds the defaults sent with every API request.
	header http.Header

	mu         sync.Mutex
	refreshing bool
	waiters    []*waiter
	tail       chan struct{} // done channel of the last waiter in the chain
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the API rooted at baseURL. An empty
// refreshURL defaults to "<baseURL>auth/refresh/".
func NewHTTPClient(baseURL, refreshURL string, tokens TokenStore, opts ...Option) (*HTTPClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base url %q is not absolute", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if tokens == nil {
		return nil, errors.New("token store is required")
	}

	c := &HTTPClient{
		baseURL:        base,
		refreshURL:     refreshURL,
		httpClient:     &http.Client{Timeout: defaultRequestTimeout},
		tokens:         tokens,
		logger:         logging.Discard(),
		refreshTimeout: defaultRefreshTimeout,
		header:         http.Header{},
	}
	c.header.Set("Accept", "application/json")

	for _, opt := range opts {
		opt(c)
	}

	if c.refreshURL == "" {
		c.refreshURL = base.ResolveReference(&url.URL{Path: "auth/refresh/"}).String()
	}
	return c, nil
}

type request struct {
	id     string
	method string
	url    string
	body   []byte
	header http.Header
}

func (c *HTTPClient) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, nil)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, nil)
}

func (c *HTTPClient) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body, nil)
}

func (c *HTTPClient) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body, nil)
}

func (c *HTTPClient) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do issues method against path with body encoded as JSON ([]byte is sent
// as is) and the extra headers added. Non-2xx responses come back as
// *HTTPError, transport failures as *NetworkError, and a rejected refresh
// as an error matching ErrSessionExpired.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body any, header http.Header) (*Response, error) {
	target, err := c.resolve(path)
	if err != nil {
		return nil, err
	}
	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req := &request{
		id:     uuid.NewString(),
		method: method,
		url:    target,
		body:   payload,
		header: header,
	}
	log := c.logger.With("request_id", req.id, "method", method, "path", path)

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}

	resp, err := c.send(ctx, req, token)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, err
	}
	if resp.Status == http.StatusUnauthorized {
		return c.retryUnauthorized(ctx, req, token, resp, log)
	}
	if !resp.ok() {
		return nil, resp.err()
	}
	return resp, nil
}

// retryUnauthorized runs the refresh-and-replay path. It is entered at most
// once per logical request: a 401 on the replay is returned as is.
func (c *HTTPClient) retryUnauthorized(ctx context.Context, req *request, sent string, first *Response, log logging.Logger) (*Response, error) {
	// A refresh finished while this request was in flight.
	current, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}
	if current != "" && current != sent {
		log.Debug(ctx, "token changed meanwhile, replaying without refresh")
		return c.replay(ctx, req, current, func() {})
	}

	refreshToken, err := c.tokens.RefreshToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("read refresh token: %w", err)
	}
	if refreshToken == "" {
		return nil, first.err()
	}

	token, release, err := c.refreshAccessToken(ctx, refreshToken, log)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, "replaying request with refreshed token")
	return c.replay(ctx, req, token, release)
}

// replay sends req once more. release lets the next queued replay go and is
// called as soon as the request is written, or when send returns for
// transports that do not report writes.
func (c *HTTPClient) replay(ctx context.Context, req *request, token string, release func()) (*Response, error) {
	defer release()
	ctx = httptrace.WithClientTrace(ctx, &httptrace.ClientTrace{
		WroteRequest: func(httptrace.WroteRequestInfo) { release() },
	})

	resp, err := c.send(ctx, req, token)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.err()
	}
	return resp, nil
}

// refreshAccessToken returns a fresh access token, either by performing the
// refresh itself or by waiting for the one already in flight. On success the
// caller owns a place in the replay chain and must call release once its
// replay is under way.
func (c *HTTPClient) refreshAccessToken(ctx context.Context, refreshToken string, log logging.Logger) (token string, release func(), err error) {
	c.mu.Lock()
	if c.refreshing {
		w := &waiter{
			result: make(chan refreshResult, 1),
			turn:   c.tail,
			done:   make(chan struct{}),
		}
		c.tail = w.done
		c.waiters = append(c.waiters, w)
		c.mu.Unlock()
		return c.wait(ctx, w, log)
	}
	c.refreshing = true
	own := make(chan struct{})
	c.tail = own
	c.mu.Unlock()
	release = sync.OnceFunc(func() { close(own) })

	// The refresh outlives a caller that gives up: queued requests depend on it.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout)
	defer cancel()

	log.Info(ctx, "access token rejected, refreshing")
	token, err = c.exchange(rctx, refreshToken)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSessionExpired, err)
		if cerr := c.tokens.ClearTokens(rctx); cerr != nil {
			log.Error(ctx, "failed to clear tokens", "error", cerr)
		}
		release()
		c.settle(refreshResult{err: err})

		log.Warn(ctx, "token refresh failed, session invalidated", "error", err)
		if c.onInvalidated != nil {
			c.onInvalidated(ctx, err)
		}
		return "", nil, err
	}

	if serr := c.tokens.SetAccessToken(rctx, token); serr != nil {
		log.Error(ctx, "failed to persist refreshed access token", "error", serr)
	}
	c.settle(refreshResult{token: token})

	log.Info(ctx, "access token refreshed")
	return token, release, nil
}

// wait blocks until the refresh w is queued behind settles and then until
// it is w's turn to replay. A waiter that fails or gives up still passes
// its turn on, so the requests queued after it are not stalled.
func (c *HTTPClient) wait(ctx context.Context, w *waiter, log logging.Logger) (string, func(), error) {
	log.Debug(ctx, "waiting for in-flight token refresh")

	var r refreshResult
	select {
	case r = <-w.result:
	case <-ctx.Done():
		go w.pass()
		return "", nil, ctx.Err()
	}
	if r.err != nil {
		go w.pass()
		return "", nil, r.err
	}

	select {
	case <-w.turn:
	case <-ctx.Done():
		go w.pass()
		return "", nil, ctx.Err()
	}
	return r.token, sync.OnceFunc(func() { close(w.done) }), nil
}

// settle hands r to every queued waiter and reopens the gate. The queue is
// swapped out under the lock, so a waiter is never served twice.
func (c *HTTPClient) settle(r refreshResult) {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, w := range waiters {
		w.result <- r
	}
}

// exchange posts the refresh token to the refresh endpoint without
// credentials and returns the new access token.
func (c *HTTPClient) exchange(ctx context.Context, refreshToken string) (string, error) {
	payload, err := json.Marshal(models.RefreshRequest{Refresh: refreshToken})
	if err != nil {
		return "", fmt.Errorf("encode refresh request: %w", err)
	}

	hr, err := http.NewRequestWithContext(ctx, http.MethodPost, c.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build refresh request: %w", err)
	}
	hr.Header.Set("Content-Type", "application/json")
	hr.Header.Set("Accept", "application/json")

	resp, err := c.roundTrip(hr)
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", resp.err()
	}

	var out models.RefreshResponse
	if err := resp.Decode(&out); err != nil {
		return "", err
	}
	if out.Access == "" {
		return "", errors.New("refresh response has no access token")
	}
	return out.Access, nil
}

func (c *HTTPClient) send(ctx context.Context, req *request, token string) (*Response, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	hr, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	hr.Header = c.header.Clone()

	for k, vs := range req.header {
		hr.Header.Del(k)
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}
	if req.body != nil && hr.Header.Get("Content-Type") == "" {
		hr.Header.Set("Content-Type", "application/json")
	}
	hr.Header.Set(RequestIDHeader, req.id)

	// A stored token wins over a caller-supplied Authorization header.
	if token != "" {
		hr.Header.Set("Authorization", "Bearer "+token)
	}

	return c.roundTrip(hr)
}

func (c *HTTPClient) roundTrip(hr *http.Request) (*Response, error) {
	op := hr.Method + " " + hr.URL.String()

	resp, err := c.httpClient.Do(hr)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func (c *HTTPClient) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	ref.Path = strings.TrimPrefix(ref.Path, "/")
	return c.baseURL.ResolveReference(ref).String(), nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return data, nil
	}
}
