package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestDecompressRequest(t *testing.T) {
	t.Run("passthrough without encoding", func(t *testing.T) {
		router := gin.New()
		router.Use(DecompressRequest())
		var got string
		router.POST("/", func(c *gin.Context) {
			body, _ := io.ReadAll(c.Request.Body)
			got = string(body)
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("plain"))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
		if got != "plain" {
			t.Fatalf("expected plain body, got %q", got)
		}
	})

	t.Run("decompresses gzip body", func(t *testing.T) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write([]byte(`{"items":[]}`)); err != nil {
			t.Fatalf("compress body: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("close writer: %v", err)
		}

		router := gin.New()
		router.Use(DecompressRequest())
		var got string
		router.POST("/", func(c *gin.Context) {
			body, _ := io.ReadAll(c.Request.Body)
			got = string(body)
			if c.GetHeader("Content-Encoding") != "" {
				t.Error("expected encoding header removed")
			}
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Encoding", "gzip")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
		if got != `{"items":[]}` {
			t.Fatalf("unexpected body %q", got)
		}
	})

	t.Run("rejects corrupt gzip", func(t *testing.T) {
		router := gin.New()
		router.Use(DecompressRequest())
		router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("not gzip"))
		req.Header.Set("Content-Encoding", "gzip")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.Code)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	logged := buf.String()
	for _, want := range []string{`"method":"GET"`, `"path":"/ping"`, `"status":200`} {
		if !bytes.Contains([]byte(logged), []byte(want)) {
			t.Errorf("expected log to contain %s, got %s", want, logged)
		}
	}
}
