package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client is the call surface page-level services use to reach the backend.
// Paths are relative to the configured base URL (e.g. "matches/").
type Client interface {
	Do(ctx context.Context, method, path string, body any, header http.Header) (*Response, error)
	Get(ctx context.Context, path string) (*Response, error)
	Post(ctx context.Context, path string, body any) (*Response, error)
	Put(ctx context.Context, path string, body any) (*Response, error)
	Patch(ctx context.Context, path string, body any) (*Response, error)
	Delete(ctx context.Context, path string) (*Response, error)
}

// TokenStore is the credential storage the client reads before every request
// and mutates during a refresh.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	ClearTokens(ctx context.Context) error
}

// Response is a successful (2xx) API response with its body fully read.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (r *Response) ok() bool {
	return r.Status >= 200 && r.Status < 300
}

func (r *Response) err() error {
	return &HTTPError{Status: r.Status, Body: r.Body}
}
