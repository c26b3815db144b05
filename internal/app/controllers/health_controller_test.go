package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		store  Pinger
		status int
		code   string
	}{
		{"in-process store", nil, http.StatusOK, ""},
		{"reachable store", pingFunc(func(context.Context) error { return nil }), http.StatusOK, ""},
		{"unreachable store", pingFunc(func(context.Context) error { return errors.New("connection refused") }), http.StatusServiceUnavailable, "SRV_002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewHealthController(tt.store, zerolog.Nop()).Health)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}

			var body struct {
				Success bool `json:"success"`
				Error   *struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if tt.code == "" && !body.Success {
				t.Errorf("body = %s", w.Body.String())
			}
			if tt.code != "" && (body.Error == nil || body.Error.Code != tt.code) {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
}
