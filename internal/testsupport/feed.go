package testsupport

import (
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// FeedServer is an httptest fixture standing in for the data-status endpoint.
type FeedServer struct {
	*httptest.Server

	mu     sync.Mutex
	status int
	body   string
	hits   atomic.Int64
}

// NewFeedServer starts a fixture that answers every request with status and body.
func NewFeedServer(t testing.TB, status int, body string) *FeedServer {
	t.Helper()

	fs := &FeedServer{status: status, body: body}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *FeedServer) serve(w http.ResponseWriter, _ *http.Request) {
	fs.hits.Add(1)
	fs.mu.Lock()
	status, body := fs.status, fs.body
	fs.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// Set changes the response served from now on.
func (fs *FeedServer) Set(status int, body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.status = status
	fs.body = body
}

// Hits returns how many requests the fixture has answered.
func (fs *FeedServer) Hits() int {
	return int(fs.hits.Load())
}

// ClosedEndpoint returns a URL whose port refuses connections.
func ClosedEndpoint(t testing.TB) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	if err := listener.Close(); err != nil {
		t.Fatalf("close listener: %v", err)
	}
	return "http://" + addr + "/datasets/data-status"
}
