package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/godisk/internal/domain/explorer"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/config"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/godisk/internal/remote"
	tu "github.com/GriffinCanCode/godisk/internal/testutil"
)

type fakeBackend struct {
	state resilience.State
}

func (f fakeBackend) BreakerState() resilience.State { return f.state }

func setupRouter(t *testing.T, runner explorer.Runner, backend BackendStatus) (*gin.Engine, *explorer.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := explorer.NewService(runner)
	router := gin.New()
	NewHandlers(svc, backend, config.ConsoleConfig{MaxScriptBytes: 1024, MaxLines: 100}).Register(router)
	return router, svc
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRootAndHealth(t *testing.T) {
	router, _ := setupRouter(t, nil, fakeBackend{state: resilience.StateOpen})

	w := doJSON(router, "GET", "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", decode(t, w)["status"])

	w = doJSON(router, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "open", body["backend"])
	assert.Contains(t, body, "explorer")
}

func TestExecute(t *testing.T) {
	runner := new(tu.MockRunner)
	runner.On("Run", mock.Anything, "mkdisk -path=/d/Disco1.mia").
		Return(tu.NewOutput().Mkdisk("/d/Disco1.mia", "3000 KB").String(), nil)
	router, svc := setupRouter(t, runner, nil)

	w := doJSON(router, "POST", "/console/execute", ExecuteRequest{Script: "mkdisk -path=/d/Disco1.mia"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.NotEmpty(t, body["batch_id"])
	assert.Contains(t, body["output"], "MKDISK")
	disks := body["model"].(map[string]interface{})["disks"].([]interface{})
	require.Len(t, disks, 1)
	assert.Equal(t, "Disco1.mia", disks[0].(map[string]interface{})["name"])
	assert.Len(t, svc.Disks(), 1)
}

func TestExecuteErrors(t *testing.T) {
	remoteErr := &remote.CommandError{Line: 3, Command: "fdisk -size=1", Err: remote.ErrRemoteFailure}
	openErr := &remote.CommandError{Line: 1, Command: "mkdisk", Err: fmt.Errorf("%w: %w", remote.ErrRemoteFailure, resilience.ErrCircuitOpen)}

	runner := new(tu.MockRunner)
	runner.On("Run", mock.Anything, "remote").Return("", remoteErr)
	runner.On("Run", mock.Anything, "open").Return("", openErr)
	runner.On("Run", mock.Anything, "# only a comment").Return("", remote.ErrEmptyScript)
	runner.On("Run", mock.Anything, "other").Return("", errors.New("unexpected"))

	router, svc := setupRouter(t, runner, nil)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantLine   float64
	}{
		{name: "missing script", body: map[string]string{}, wantStatus: http.StatusBadRequest},
		{name: "too large", body: ExecuteRequest{Script: string(bytes.Repeat([]byte("a"), 2048))}, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "remote failure", body: ExecuteRequest{Script: "remote"}, wantStatus: http.StatusBadGateway, wantLine: 3},
		{name: "breaker open", body: ExecuteRequest{Script: "open"}, wantStatus: http.StatusServiceUnavailable, wantLine: 1},
		{name: "empty script", body: ExecuteRequest{Script: "# only a comment"}, wantStatus: http.StatusBadRequest},
		{name: "internal", body: ExecuteRequest{Script: "other"}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, "POST", "/console/execute", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			body := decode(t, w)
			assert.NotEmpty(t, body["error"])
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, body["line"])
			}
		})
	}

	assert.Empty(t, svc.Disks())
}

func TestExecuteBusy(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	runner := new(tu.MockRunner)
	runner.On("Run", mock.Anything, "slow").Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return("", nil)
	router, _ := setupRouter(t, runner, nil)

	done := make(chan int, 1)
	go func() {
		done <- doJSON(router, "POST", "/console/execute", ExecuteRequest{Script: "slow"}).Code
	}()
	<-started

	w := doJSON(router, "POST", "/explorer/reconcile", ReconcileRequest{Output: "x"})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doJSON(router, "DELETE", "/explorer", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestExplorerEndpoints(t *testing.T) {
	router, _ := setupRouter(t, nil, nil)

	output := tu.NewOutput().
		Mkdisk("/d/Disco1.mia", "3000 KB").
		Fdisk("primaria", "Part1", "500 KB").
		Mkdir("/home/user").
		Mkfile("/home/user/notes.txt").
		Line("LOGIN: ok").
		String()

	w := doJSON(router, "POST", "/explorer/reconcile", ReconcileRequest{Output: output})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report := decode(t, w)["report"].(map[string]interface{})
	assert.Equal(t, float64(4), report["applied"])
	assert.Equal(t, float64(1), report["unrecognized"])

	t.Run("disks", func(t *testing.T) {
		w := doJSON(router, "GET", "/explorer/disks", nil)
		require.Equal(t, http.StatusOK, w.Code)
		disks := decode(t, w)["disks"].([]interface{})
		require.Len(t, disks, 1)
		parts := disks[0].(map[string]interface{})["partitions"].([]interface{})
		assert.Equal(t, "Part1", parts[0].(map[string]interface{})["name"])
	})

	t.Run("tree", func(t *testing.T) {
		w := doJSON(router, "GET", "/explorer/tree", nil)
		require.Equal(t, http.StatusOK, w.Code)
		root := decode(t, w)
		assert.Equal(t, "/", root["name"])
		assert.Len(t, root["children"], 1)
	})

	t.Run("yaml", func(t *testing.T) {
		w := doJSON(router, "GET", "/explorer?format=yaml", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/yaml")
		assert.Contains(t, w.Body.String(), "name: Disco1.mia")
		assert.Contains(t, w.Body.String(), "notes.txt")
	})

	t.Run("json", func(t *testing.T) {
		w := doJSON(router, "GET", "/explorer", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Contains(t, body, "disks")
		assert.Contains(t, body, "tree")
	})

	t.Run("etag", func(t *testing.T) {
		w := doJSON(router, "GET", "/explorer", nil)
		tag := w.Header().Get("ETag")
		require.NotEmpty(t, tag)

		req := httptest.NewRequest("GET", "/explorer", nil)
		req.Header.Set("If-None-Match", tag)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotModified, w.Code)
		assert.Empty(t, w.Body.String())

		cases := []struct {
			header string
			want   int
		}{
			{`"stale"`, http.StatusOK},
			{`W/"stale"`, http.StatusOK},
			{`"stale", ` + tag, http.StatusNotModified},
			{"W/" + tag, http.StatusNotModified},
			{`"a",W/"b", W/` + tag, http.StatusNotModified},
			{"*", http.StatusNotModified},
		}
		for _, tt := range cases {
			req = httptest.NewRequest("GET", "/explorer", nil)
			req.Header.Set("If-None-Match", tt.header)
			w = httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, tt.header)
		}
	})

	t.Run("find", func(t *testing.T) {
		w := doJSON(router, "GET", "/explorer/tree/find?pattern=*.txt", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(1), body["count"])

		w = doJSON(router, "GET", "/explorer/tree/find?pattern=/home/*", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), decode(t, w)["count"])

		assert.Equal(t, http.StatusBadRequest, doJSON(router, "GET", "/explorer/tree/find", nil).Code)
		assert.Equal(t, http.StatusBadRequest, doJSON(router, "GET", "/explorer/tree/find?pattern=%5B", nil).Code)
	})

	t.Run("refresh is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			w := doJSON(router, "POST", "/explorer/refresh", nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, float64(4), decode(t, w)["report"].(map[string]interface{})["applied"])
		}
		w := doJSON(router, "GET", "/explorer/disks", nil)
		disks := decode(t, w)["disks"].([]interface{})
		require.Len(t, disks, 1)
		assert.Len(t, disks[0].(map[string]interface{})["partitions"], 1)
	})

	t.Run("output", func(t *testing.T) {
		w := doJSON(router, "GET", "/console/output", nil)
		assert.Equal(t, output, decode(t, w)["output"])

		assert.Equal(t, http.StatusNoContent, doJSON(router, "DELETE", "/console/output", nil).Code)
		w = doJSON(router, "GET", "/console/output", nil)
		assert.Equal(t, "", decode(t, w)["output"])
	})

	t.Run("reset", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, doJSON(router, "DELETE", "/explorer", nil).Code)
		w := doJSON(router, "GET", "/explorer/disks", nil)
		assert.Empty(t, decode(t, w)["disks"])
	})
}

func TestReconcileBadBody(t *testing.T) {
	router, _ := setupRouter(t, nil, nil)

	req := httptest.NewRequest("POST", "/explorer/reconcile", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func upload(router *gin.Engine, field, name string, data []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile(field, name)
	_, _ = part.Write(data)
	_ = mw.Close()

	req := httptest.NewRequest("POST", "/console/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUpload(t *testing.T) {
	router, _ := setupRouter(t, nil, nil)

	t.Run("utf-8 script", func(t *testing.T) {
		w := upload(router, "file", "script.smia", []byte("# Creación\nmkdisk -size=3000\nmkdir -path=/home/año\n"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "script.smia", body["filename"])
		assert.Equal(t, float64(2), body["commands"])
		assert.Contains(t, body["script"], "año")
	})

	t.Run("missing field", func(t *testing.T) {
		w := upload(router, "other", "script.smia", []byte("mkdisk"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("binary file", func(t *testing.T) {
		png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
		w := upload(router, "file", "image.png", png)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("too large", func(t *testing.T) {
		w := upload(router, "file", "big.smia", bytes.Repeat([]byte("a"), 4096))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestETagMatches(t *testing.T) {
	tag := `"0123456789abcdef"`
	assert.False(t, etagMatches("", tag))
	assert.False(t, etagMatches(" , ", tag))
	assert.False(t, etagMatches(`"0123456789abcdeX"`, tag))
	assert.True(t, etagMatches(" * ", tag))
	assert.True(t, etagMatches(tag, tag))
	assert.True(t, etagMatches(`"x" ,W/`+tag, tag))
}
