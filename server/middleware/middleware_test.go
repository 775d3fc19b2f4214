package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRouter(logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logging(logger), Recovery(logger))
	r.GET("/ok", func(c *gin.Context) {
		c.Set("reportId", "doc-1")
		c.String(http.StatusOK, RequestIDFromContext(c))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func TestRequestID(t *testing.T) {
	r := newRouter(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ok", nil))
	id := resp.Header().Get(HeaderRequestID)
	if len(id) != 36 {
		t.Fatalf("generated id = %q", id)
	}
	if resp.Body.String() != id {
		t.Errorf("context id = %q, header %q", resp.Body.String(), id)
	}

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "abc")
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if got := resp.Header().Get(HeaderRequestID); got != "abc" {
		t.Errorf("forwarded id = %q", got)
	}
}

func TestLoggingFields(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(slog.New(slog.NewJSONHandler(&buf, nil)))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "req-7")
	r.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	for _, key := range []string{"request_id", "method", "path", "status", "duration_ms"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("missing log field %s", key)
		}
	}
	if payload["msg"] != "request.complete" {
		t.Errorf("msg = %v", payload["msg"])
	}
	if payload["request_id"] != "req-7" {
		t.Errorf("request_id = %v", payload["request_id"])
	}
	if payload["status"] != float64(http.StatusOK) {
		t.Errorf("status = %v", payload["status"])
	}
	if payload["report_id"] != "doc-1" {
		t.Errorf("report_id = %v", payload["report_id"])
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(slog.New(slog.NewJSONHandler(&buf, nil)))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != "internal" {
		t.Errorf("code = %q", body.Error.Code)
	}
	if !strings.Contains(buf.String(), `"msg":"panic"`) {
		t.Errorf("panic not logged: %s", buf.String())
	}
}
