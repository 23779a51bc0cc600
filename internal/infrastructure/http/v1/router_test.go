package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain"
	"inventory/internal/domain/audit"
	"inventory/internal/domain/auth"
	"inventory/internal/domain/category"
	"inventory/pkg/logger"
)

type memUsers struct {
	byID map[id.ID]*auth.User
}

func (m *memUsers) Create(_ context.Context, u *auth.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, userID id.ID) (*auth.User, error) {
	if u, ok := m.byID[userID]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (m *memUsers) Exists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUsers) Update(_ context.Context, u *auth.User, _ []string) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) Delete(_ context.Context, userID id.ID) (bool, error) {
	_, ok := m.byID[userID]
	delete(m.byID, userID)
	return ok, nil
}

func (m *memUsers) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*auth.User], error) {
	return domain.EmptyResult[*auth.User](filter), nil
}

type emptyCategories struct{}

func (emptyCategories) Create(context.Context, *category.Category) error { return nil }

func (emptyCategories) GetByID(_ context.Context, categoryID id.ID) (*category.Category, error) {
	return nil, apperror.NewNotFound("category", categoryID.String())
}

func (emptyCategories) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*category.Category], error) {
	return domain.EmptyResult[*category.Category](filter), nil
}

func (emptyCategories) Update(_ context.Context, _ *category.Category, _ []string) error { return nil }

func (emptyCategories) Delete(context.Context, id.ID) (bool, error) { return false, nil }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type fixture struct {
	router *gin.Engine
	tokens map[auth.Role]string
	users  *memUsers
	jwt    *auth.JWTService
}

func newFixture(t *testing.T, db pinger) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &memUsers{byID: map[id.ID]*auth.User{}}
	jwt := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	authSvc := auth.NewService(users, jwt, nil, auth.DefaultServiceConfig())

	f := &fixture{
		router: NewRouter(RouterConfig{
			Logger: &logger.Logger{SugaredLogger: zap.NewNop().Sugar()},
			Services: Services{
				Auth:       authSvc,
				Categories: category.NewService(emptyCategories{}),
				Audit:      audit.Nop{},
			},
			DB:    db,
			Debug: true,
		}),
		tokens: map[auth.Role]string{},
		users:  users,
		jwt:    jwt,
	}

	for _, role := range []auth.Role{auth.RoleAdmin, auth.RoleStoreManager, auth.RoleCustomer} {
		u := auth.NewUser(string(role)+"@example.com", "x", "Test", "User", role)
		require.NoError(t, users.Create(context.Background(), u))
		token, _, err := jwt.IssueToken(u)
		require.NoError(t, err)
		f.tokens[role] = token
	}
	return f
}

func (f *fixture) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(""))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	f := newFixture(t, pinger{})
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/ready", "").Code)

	down := newFixture(t, pinger{err: errors.New("connection refused")})
	assert.Equal(t, http.StatusServiceUnavailable, down.do(http.MethodGet, "/ready", "").Code)
}

func TestRouter_RoleTable(t *testing.T) {
	f := newFixture(t, pinger{})
	someID := id.New().String()

	tests := []struct {
		name   string
		method string
		path   string
		role   auth.Role
		status int
	}{
		{"no token", http.MethodGet, "/api/v1/categories", "", http.StatusUnauthorized},
		{"customer cannot read catalog", http.MethodGet, "/api/v1/categories", auth.RoleCustomer, http.StatusForbidden},
		{"manager reads catalog", http.MethodGet, "/api/v1/categories", auth.RoleStoreManager, http.StatusOK},
		{"manager cannot create categories", http.MethodPost, "/api/v1/categories", auth.RoleStoreManager, http.StatusForbidden},
		{"manager cannot delete products", http.MethodDelete, "/api/v1/products/" + someID, auth.RoleStoreManager, http.StatusForbidden},
		{"manager cannot delete stock", http.MethodDelete, "/api/v1/stocks/" + someID, auth.RoleStoreManager, http.StatusForbidden},
		{"manager cannot delete invoices", http.MethodDelete, "/api/v1/invoices/" + someID, auth.RoleStoreManager, http.StatusForbidden},
		{"manager cannot see profit", http.MethodGet, "/api/v1/reports/profit", auth.RoleStoreManager, http.StatusForbidden},
		{"manager cannot list users", http.MethodGet, "/api/v1/users", auth.RoleStoreManager, http.StatusForbidden},
		{"manager cannot write discounts", http.MethodPost, "/api/v1/discounts", auth.RoleStoreManager, http.StatusForbidden},
		{"manager cannot write promotions", http.MethodPut, "/api/v1/promotions/" + someID, auth.RoleStoreManager, http.StatusForbidden},
		{"manager cannot read audit", http.MethodGet, "/api/v1/audit/invoice/" + someID, auth.RoleStoreManager, http.StatusForbidden},
		{"customer cannot adjust stock", http.MethodPut, "/api/v1/stocks/" + someID + "/quantity/-1", auth.RoleCustomer, http.StatusForbidden},
		{"admin lists users", http.MethodGet, "/api/v1/users", auth.RoleAdmin, http.StatusOK},
		{"admin missing category", http.MethodGet, "/api/v1/categories/" + someID, auth.RoleAdmin, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(tt.method, tt.path, f.tokens[tt.role])
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestRouter_DeactivatedUserRejected(t *testing.T) {
	f := newFixture(t, pinger{})
	for _, u := range f.users.byID {
		if u.Role == auth.RoleAdmin {
			u.IsActive = false
		}
	}

	w := f.do(http.MethodGet, "/api/v1/users", f.tokens[auth.RoleAdmin])
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User account is inactive")
}
