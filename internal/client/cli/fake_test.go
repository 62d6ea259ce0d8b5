package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/peyjabanki/internal/client/client"
	"github.com/dmitrijs2005/peyjabanki/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/peyjabanki/internal/client/session"
	"github.com/dmitrijs2005/peyjabanki/internal/logging"
	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// fakeClient implements client.Client with canned JSON replies keyed by
// "METHOD path".
type fakeClient struct {
	mu      sync.Mutex
	replies map[string]any
	errs    map[string]error
	bodies  map[string][]string
}

var _ client.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{replies: map[string]any{}, errs: map[string]error{}, bodies: map[string][]string{}}
}

func (f *fakeClient) on(method, path string, v any) { f.replies[method+" "+path] = v }

func (f *fakeClient) fail(method, path string, err error) { f.errs[method+" "+path] = err }

func (f *fakeClient) sent(method, path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[method+" "+path]
}

func (f *fakeClient) Do(_ context.Context, method, path string, body any, _ http.Header) (*client.Response, error) {
	key := method + " " + path

	f.mu.Lock()
	defer f.mu.Unlock()
	if body != nil {
		b, _ := json.Marshal(body)
		f.bodies[key] = append(f.bodies[key], string(b))
	}
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	v, ok := f.replies[key]
	if !ok {
		return nil, &client.HTTPError{Status: http.StatusNotFound}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &client.Response{Status: http.StatusOK, Header: http.Header{}, Body: data}, nil
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

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

type testApp struct {
	*App
	fc    *fakeClient
	store *session.Store
	buf   *bytes.Buffer
}

func newTestApp(t *testing.T, input ...string) *testApp {
	t.Helper()
	stubNoTerminal(t)

	fc := newFakeClient()
	store := session.NewStore(metadata.NewMemoryRepository())
	out := &bytes.Buffer{}

	a := &App{
		logger: logging.Discard(),
		reader: readerFromLines(input...),
		out:    out,
	}
	a.wire(fc, store)
	return &testApp{App: a, fc: fc, store: store, buf: out}
}

func stubNoTerminal(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}
