package services

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/dmitrijs2005/peyjabanki/internal/client/client"
	"github.com/dmitrijs2005/peyjabanki/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/peyjabanki/internal/client/session"
)

// ---- fake client ----

type call struct {
	Method string
	Path   string
	Body   json.RawMessage
}

type reply struct {
	status int
	body   any
	err    error
}

// fakeClient implements client.Client with canned replies keyed by
// "METHOD path" and records every call.
type fakeClient struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   []call
}

var _ client.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{replies: map[string]reply{}}
}

func (f *fakeClient) on(method, path string, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[method+" "+path] = reply{status: http.StatusOK, body: body}
}

func (f *fakeClient) fail(method, path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[method+" "+path] = reply{err: err}
}

func (f *fakeClient) Do(_ context.Context, method, path string, body any, _ http.Header) (*client.Response, error) {
	var raw json.RawMessage
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	f.mu.Lock()
	f.calls = append(f.calls, call{Method: method, Path: path, Body: raw})
	r, ok := f.replies[method+" "+path]
	f.mu.Unlock()

	if !ok {
		return nil, &client.HTTPError{Status: http.StatusNotFound}
	}
	if r.err != nil {
		return nil, r.err
	}

	resp := &client.Response{Status: r.status, Header: http.Header{}}
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, err
		}
		resp.Body = b
	}
	return resp, nil
}

func (f *fakeClient) Get(ctx context.Context, path string) (*client.Response, error) {
	return f.Do(ctx, http.MethodGet, path, nil, nil)
}

func (f *fakeClient) Post(ctx context.Context, path string, body any) (*client.Response, error) {
	return f.Do(ctx, http.MethodPost, path, body, nil)
}

func (f *fakeClient) Put(ctx context.Context, path string, body any) (*client.Response, error) {
	return f.Do(ctx, http.MethodPut, path, body, nil)
}

func (f *fakeClient) Patch(ctx context.Context, path string, body any) (*client.Response, error) {
	return f.Do(ctx, http.MethodPatch, path, body, nil)
}

func (f *fakeClient) Delete(ctx context.Context, path string) (*client.Response, error) {
	return f.Do(ctx, http.MethodDelete, path, nil, nil)
}

func (f *fakeClient) callsTo(method, path string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// ---- helpers ----

func newStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(metadata.NewMemoryRepository())
}

func intp(v int) *int { return &v }
