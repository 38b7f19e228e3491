package http

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoggingMiddleware_Success проверяет, что middleware логирует запрос без паники
func TestLoggingMiddleware_Success(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodPut, "/api/admin-project?id=1", nil)
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	if rw.Code != http.StatusCreated {
		t.Fatalf("ожидался статус %d, получили %d", http.StatusCreated, rw.Code)
	}
	out := buf.String()
	if !strings.Contains(out, "PUT /api/admin-project 201") {
		t.Errorf("ожидалось упоминание метода, пути и статуса, получили: %s", out)
	}
}

// TestLoggingMiddleware_Panic проверяет, что middleware логирует панику и пробрасывает её дальше
func TestLoggingMiddleware_Panic(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	h := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom error")
	}))

	defer func() {
		if rec := recover(); rec == nil {
			t.Fatalf("ожидалась паника, но её не было")
		}
		if !strings.Contains(buf.String(), "PANIC GET /panic") {
			t.Errorf("ожидалось логирование паники, получили: %s", buf.String())
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/panic", nil))
}

func TestCORSMiddleware(t *testing.T) {
	called := false
	h := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodOptions, "/api/contact", nil))
	require.Equal(t, http.StatusNoContent, rw.Code)
	require.False(t, called)
	require.Equal(t, "*", rw.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rw.Header().Get("Access-Control-Allow-Headers"), AdminKeyHeader)

	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	require.True(t, called)
}

// TestAdminAuth проверяет ключ для всех методов до вызова обработчика
func TestAdminAuth(t *testing.T) {
	called := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called++ })

	cases := []struct {
		name   string
		server string
		header string
		status int
	}{
		{"no server key", "", "anything", http.StatusInternalServerError},
		{"missing header", "secret", "", http.StatusUnauthorized},
		{"wrong header", "secret", "secreT", http.StatusUnauthorized},
		{"prefix of key", "secret", "sec", http.StatusUnauthorized},
	}
	for _, c := range cases {
		for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, "TRACE"} {
			req := httptest.NewRequest(m, "/api/admin-project", nil)
			if c.header != "" {
				req.Header.Set(AdminKeyHeader, c.header)
			}
			rw := httptest.NewRecorder()
			AdminAuth(c.server)(next).ServeHTTP(rw, req)
			require.Equal(t, c.status, rw.Code, "%s %s", c.name, m)
			require.Equal(t, "no-store", rw.Header().Get("Cache-Control"))
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
			require.Equal(t, false, body["ok"])
		}
	}
	require.Equal(t, 0, called)

	req := httptest.NewRequest(http.MethodGet, "/api/admin-project", nil)
	req.Header.Set(AdminKeyHeader, "secret")
	rw := httptest.NewRecorder()
	AdminAuth("secret")(next).ServeHTTP(rw, req)
	require.Equal(t, 1, called)
	require.Equal(t, "no-store", rw.Header().Get("Cache-Control"))
}
