package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"inventory/internal/core/apperror"
	appctx "inventory/internal/core/context"
	"inventory/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator struct {
	user  *appctx.UserContext
	err   error
	token string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*appctx.UserContext, error) {
	s.token = token
	return s.user, s.err
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(mw...)
	r.GET("/x", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": appctx.GetUserID(c.Request.Context())})
	})
	return r
}

func do(t *testing.T, r http.Handler, authHeader string) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body errorBody
	if w.Code >= http.StatusBadRequest {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestAuth(t *testing.T) {
	manager := &appctx.UserContext{UserID: "u-1", Role: "storemanager"}

	tests := []struct {
		name    string
		header  string
		authn   *stubAuthenticator
		status  int
		message string
	}{
		{"missing header", "", &stubAuthenticator{user: manager}, http.StatusUnauthorized, "No token provided"},
		{"wrong scheme", "Basic abc", &stubAuthenticator{user: manager}, http.StatusUnauthorized, "Invalid authorization header format"},
		{"empty token", "Bearer  ", &stubAuthenticator{user: manager}, http.StatusUnauthorized, "Invalid authorization header format"},
		{"rejected token", "Bearer bad", &stubAuthenticator{err: apperror.NewUnauthorized("Invalid token")}, http.StatusUnauthorized, "Invalid token"},
		{"inactive user", "Bearer ok", &stubAuthenticator{err: apperror.NewUnauthorized("User account is inactive")}, http.StatusUnauthorized, "User account is inactive"},
		{"plain error", "Bearer ok", &stubAuthenticator{err: errors.New("db down")}, http.StatusUnauthorized, "Invalid token"},
		{"valid", "Bearer ok", &stubAuthenticator{user: manager}, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(t, newEngine(Auth(tt.authn)), tt.header)

			assert.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				assert.Equal(t, apperror.CodeUnauthorized, body.Code)
				assert.Equal(t, tt.message, body.Message)
				return
			}
			assert.Equal(t, "ok", tt.authn.token)
			assert.JSONEq(t, `{"user":"u-1"}`, w.Body.String())
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		status int
	}{
		{"admin allowed", "admin", http.StatusOK},
		{"manager allowed", "storemanager", http.StatusOK},
		{"customer forbidden", "customer", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authn := &stubAuthenticator{user: &appctx.UserContext{UserID: "u", Role: tt.role}}
			r := newEngine(Auth(authn), RequireRole("admin", "storemanager"))

			w, body := do(t, r, "Bearer t")
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusForbidden {
				assert.Equal(t, apperror.CodeForbidden, body.Code)
			}
		})
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	w, body := do(t, newEngine(RequireRole("admin")), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperror.CodeUnauthorized, body.Code)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", apperror.NewNotFound("product", "42"), http.StatusNotFound, apperror.CodeNotFound, "product not found"},
		{"wrapped conflict", errors.Join(errors.New("ctx"), apperror.NewConflict("Email already exists")), http.StatusConflict, apperror.CodeConflict, "Email already exists"},
		{"insufficient stock", apperror.NewInsufficientStock("p1", 5, 2), http.StatusBadRequest, apperror.CodeInsufficientStock, "Not enough stock for product p1"},
		{"internal hides cause", apperror.NewInternal(errors.New("pq: secret")), http.StatusInternalServerError, apperror.CodeInternal, "Internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, apperror.CodeInternal, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/x", func(c *gin.Context) {
				_ = c.Error(tt.err)
				c.Abort()
			})

			w, body := do(t, r, "")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
			assert.NotContains(t, w.Body.String(), "secret")
		})
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.Use(ErrorHandler())
	r.GET("/x", func(c *gin.Context) {
		panic("nil map")
	})

	w, body := do(t, r, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeInternal, body.Code)
	assert.NotContains(t, w.Body.String(), "nil map")
}

func TestTrace_EchoesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(Trace())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, appctx.GetTrace(c.Request.Context()).RequestID)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Body.String())
	assert.Equal(t, "req-1", w.Header().Get(HeaderRequestID))
	assert.NotEmpty(t, w.Header().Get(HeaderTraceID))
}

func TestLogger_BindsLoggerToRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(Trace(), Logger(&logger.Logger{SugaredLogger: zap.New(core).Sugar()}))
	r.GET("/x", func(c *gin.Context) {
		logger.Info(c.Request.Context(), "stock adjusted")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "req-7")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "stock adjusted", entries[0].Message)
	assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
	assert.Equal(t, "http request", entries[1].Message)
	assert.Equal(t, int64(http.StatusNoContent), entries[1].ContextMap()["status"])
}
