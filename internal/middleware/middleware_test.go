package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
	"github.com/yigit/campuslink/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{apperrors.NewValidationError("Name is required"), 400, dto.ErrorCodeValidationFailed, "Name is required"},
		{apperrors.NewInvalidRelationshipError("Invalid semester for the chosen department"), 400, dto.ErrorCodeInvalidRelationship, "Invalid semester for the chosen department"},
		{apperrors.NewUnauthorizedError("Incorrect Password"), 401, dto.ErrorCodeInvalidCredentials, "Incorrect Password"},
		{apperrors.NewForbiddenError(""), 403, dto.ErrorCodeForbidden, "Permission denied"},
		{apperrors.NewResourceNotFoundError("Department not found"), 404, dto.ErrorCodeResourceNotFound, "Department not found"},
		{apperrors.NewConflictError("Duplicate Username"), 409, dto.ErrorCodeResourceAlreadyExists, "Duplicate Username"},
		{apperrors.NewInternalError("Unexpected store failure", errors.New("dial tcp: refused")), 500, dto.ErrorCodeInternalServer, "Internal server error"},
		{errors.New("boom"), 500, dto.ErrorCodeInternalServer, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			resp := decodeError(t, w)
			if resp.Success || resp.Error.Code != tt.code || resp.Error.Message != tt.message {
				t.Errorf("response = %+v", resp.Error)
			}
			if strings.Contains(w.Body.String(), "refused") {
				t.Error("internal cause leaked into the response")
			}
		})
	}
}

func newAuthRouter(jwt *auth.JWTService, roles ...models.RoleType) *gin.Engine {
	m := NewAuthMiddleware(jwt)
	r := gin.New()
	r.GET("/private", m.JWTAuth(), m.RoleRequired(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID)+":"+c.GetString(ContextRole))
	})
	return r
}

func TestJWTAuthAndRoles(t *testing.T) {
	jwt := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "campuslink"})
	other := auth.NewJWTService(auth.JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour, TokenIssuer: "campuslink"})
	router := newAuthRouter(jwt, models.RoleAdmin, models.RoleTeacher)

	token := func(svc *auth.JWTService, role string) string {
		s, _, err := svc.GenerateAccessToken("u-1", role)
		if err != nil {
			t.Fatal(err)
		}
		return s
	}

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"bad format", "Token abc", http.StatusUnauthorized, ""},
		{"foreign signature", "Bearer " + token(other, "admin"), http.StatusUnauthorized, ""},
		{"role not allowed", "Bearer " + token(jwt, "student"), http.StatusForbidden, ""},
		{"admin", "Bearer " + token(jwt, "admin"), http.StatusOK, "u-1:admin"},
		{"teacher", "Bearer " + token(jwt, "teacher"), http.StatusOK, "u-1:teacher"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.body)
			}
		})
	}
}

func TestUUIDParams(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id", UUIDParams("id"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/not-a-uuid", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Field != "id" {
		t.Errorf("field = %q", resp.Error.Field)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/6f1c2a8e-3b7d-4f57-9a55-0d8c1c3e2b10", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestBindJSONReportsFields(t *testing.T) {
	r := gin.New()
	r.POST("/departments", func(c *gin.Context) {
		var req dto.CreateDepartmentRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":"CS","semesterCount":0}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Field != "SemesterCount" {
		t.Errorf("error = %+v", resp.Error)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status = %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `campuslink_http_requests_total{method="GET",route="/ping",status="200"} 1`) {
		t.Errorf("request counter missing from scrape output")
	}
}
