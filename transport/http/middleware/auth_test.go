package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roombooker/config"
	"roombooker/infras/jwt"
	jwtMocks "roombooker/infras/jwt/mocks"
	otelMocks "roombooker/infras/otel/mocks"
	"roombooker/permissions"
	"roombooker/shared/constant"
)

var testPermissions = &permissions.PermissionData{
	Endpoints: []permissions.Permission{
		{Path: "/v1/rooms/", Method: http.MethodGet, Skip: true},
		{Path: "/v1/rooms/", Method: http.MethodPost, Permissions: []string{constant.RoleAdmin}},
	},
}

type authFixture struct {
	jwt    *jwtMocks.MockJWT
	router chi.Router
	seen   map[string]string
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &authFixture{
		jwt:  jwtMocks.NewMockJWT(ctrl),
		seen: map[string]string{},
	}

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	mw := NewAuthRoleMiddleware(f.jwt, otelMocks.NewOtel(), testPermissions, cfg)

	handler := func(w http.ResponseWriter, r *http.Request) {
		f.seen["admin_id"], _ = r.Context().Value(constant.ContextKeyAdminID).(string)
		f.seen["username"], _ = r.Context().Value(constant.ContextKeyAdminUsername).(string)

		w.WriteHeader(http.StatusNoContent)
	}

	router := chi.NewRouter()
	router.Use(mw.APIKey, mw.Auth, mw.RBAC)
	router.Route("/v1/rooms", func(r chi.Router) {
		r.Get("/", handler)
		r.Post("/", handler)
	})

	f.router = router

	return f
}

func (f *authFixture) do(method, bearer, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/v1/rooms/", nil)
	if bearer != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+bearer)
	}

	if apiKey != "" {
		req.Header.Set(constant.RequestHeaderAPIKey, apiKey)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestAuth_PublicRouteSkipsToken(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do(http.MethodGet, "", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuth_MissingHeader(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do(http.MethodPost, "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing authorization header")
}

func TestAuth_ExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	f.jwt.EXPECT().ValidateToken("stale").Return(nil, jwt.ErrExpiredToken)

	rec := f.do(http.MethodPost, "stale", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token has expired")
}

func TestAuth_EmptyClaims(t *testing.T) {
	f := newAuthFixture(t)
	f.jwt.EXPECT().ValidateToken("blank").Return(&jwt.Claims{Role: constant.RoleAdmin}, nil)

	rec := f.do(http.MethodPost, "blank", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_AdminAllowed(t *testing.T) {
	f := newAuthFixture(t)
	f.jwt.EXPECT().ValidateToken("good").Return(&jwt.Claims{
		AdminID:  "a-1",
		Username: "admin",
		Role:     constant.RoleAdmin,
	}, nil)

	rec := f.do(http.MethodPost, "good", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "a-1", f.seen["admin_id"])
	assert.Equal(t, "admin", f.seen["username"])
}

func TestRBAC_WrongRole(t *testing.T) {
	f := newAuthFixture(t)
	f.jwt.EXPECT().ValidateToken("viewer").Return(&jwt.Claims{
		AdminID:  "a-2",
		Username: "viewer",
		Role:     "viewer",
	}, nil)

	rec := f.do(http.MethodPost, "viewer", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAPIKey(t *testing.T) {
	t.Run("valid key bypasses auth", func(t *testing.T) {
		f := newAuthFixture(t)

		rec := f.do(http.MethodPost, "", "internal-key")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, constant.ContextSystem, f.seen["username"])
	})

	t.Run("wrong key is forbidden", func(t *testing.T) {
		f := newAuthFixture(t)

		rec := f.do(http.MethodPost, "", "guess")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
