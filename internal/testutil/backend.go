package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
)

// Backend is an in-process fake of the disk backend's /execute endpoint.
type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	outputs  map[string]string
	failures map[string]int
	received []string
	header   http.Header
}

// NewBackend starts a fake backend that is closed when the test ends.
// Unknown commands answer with an empty output.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		outputs:  make(map[string]string),
		failures: make(map[string]int),
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.Close)
	return b
}

// On sets the output returned for command.
func (b *Backend) On(command, output string) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outputs[command] = output
	return b
}

// Fail makes command answer with status.
func (b *Backend) Fail(command string, status int) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[command] = status
	return b
}

// Received returns the commands received so far, in order.
func (b *Backend) Received() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.received...)
}

// LastHeader returns header name of the most recent request.
func (b *Backend) LastHeader(name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.header.Get(name)
}

func (b *Backend) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/execute" {
		http.NotFound(w, r)
		return
	}

	var req struct {
		Command string `json:"command"`
	}
	body, err := io.ReadAll(r.Body)
	if err == nil {
		err = sonic.Unmarshal(body, &req)
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	b.received = append(b.received, req.Command)
	b.header = r.Header.Clone()
	status, failing := b.failures[req.Command]
	output := b.outputs[req.Command]
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if failing {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"output":"Error"}`))
		return
	}
	resp, _ := sonic.Marshal(map[string]string{"output": output})
	_, _ = w.Write(resp)
}
