package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pc_house/internal/domain"
	"pc_house/internal/store"
	"pc_house/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(tokens *utils.TokenManager, gate *Gate) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/me", JWTAuthMiddleware(tokens), func(c *gin.Context) {
		email, _ := GetEmail(c)
		c.JSON(http.StatusOK, gin.H{"email": email})
	})
	r.GET("/admin", JWTAuthMiddleware(tokens), RequirePermission(gate, domain.PermManageCatalog), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func do(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	r := newRouter(tokens, NewGate(store.NewMemoryStore()))

	good, err := tokens.GenerateJWT("a@example.com")
	require.NoError(t, err)
	forged, err := utils.NewTokenManager("other", time.Hour).GenerateJWT("a@example.com")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"malformed token", "Bearer abc.def", http.StatusForbidden},
		{"bad signature", "Bearer " + forged, http.StatusForbidden},
		{"valid", "Bearer " + good, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, "/me", tc.header)
			assert.Equal(t, tc.status, w.Code)
		})
	}

	w := do(r, "/me", "Bearer "+good)
	assert.JSONEq(t, `{"email":"a@example.com"}`, w.Body.String())
}

func TestJWTAuthMiddlewareExpiredToken(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	tokens := utils.NewTokenManager("secret", time.Hour)
	expired, err := tokens.WithClock(func() time.Time { return issued }).GenerateJWT("a@example.com")
	require.NoError(t, err)

	w := do(newRouter(tokens, NewGate(store.NewMemoryStore())), "/me", "Bearer "+expired)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermission(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	_, err := st.InsertOne(ctx, store.Users, domain.User{Email: "admin@example.com", Role: "admin"})
	require.NoError(t, err)
	_, err = st.InsertOne(ctx, store.Users, domain.User{Email: "user@example.com"})
	require.NoError(t, err)

	tokens := utils.NewTokenManager("secret", time.Hour)
	r := newRouter(tokens, NewGate(st))

	cases := []struct {
		email  string
		status int
	}{
		{"admin@example.com", http.StatusOK},
		{"user@example.com", http.StatusForbidden},
		{"ghost@example.com", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			token, err := tokens.GenerateJWT(tc.email)
			require.NoError(t, err)
			assert.Equal(t, tc.status, do(r, "/admin", "Bearer "+token).Code)
		})
	}

	assert.Equal(t, http.StatusUnauthorized, do(r, "/admin", "").Code)
}

type brokenStore struct{ store.Store }

func (brokenStore) FindOne(context.Context, string, bson.M, any) error {
	return errors.New("connection reset")
}

func TestRequirePermissionStoreFailure(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	r := newRouter(tokens, NewGate(brokenStore{store.NewMemoryStore()}))

	token, err := tokens.GenerateJWT("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, do(r, "/admin", "Bearer "+token).Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newRouter(utils.NewTokenManager("secret", time.Hour), NewGate(store.NewMemoryStore()))

	w := do(r, "/me", "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
