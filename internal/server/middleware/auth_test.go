package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/sarpras/internal/domain/models"
	"github.com/mamadbah2/sarpras/internal/server/middleware"
	"github.com/mamadbah2/sarpras/internal/service/auth"
)

const testSecret = "unit-test-secret"

func signTestToken(t *testing.T, role models.Role, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := auth.Claims{
		Email: "test@sekolah.sch.id",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	authSvc := auth.NewService(nil, testSecret, time.Hour, nil)

	r := gin.New()
	authed := r.Group("/", middleware.Authenticate(authSvc, nil))
	authed.GET("/records", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString(middleware.CtxUserEmail)})
	})

	admin := authed.Group("/", middleware.RequireAdmin())
	admin.POST("/records", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_MissingToken(t *testing.T) {
	r := testRouter()
	w := doRequest(r, http.MethodGet, "/records", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_MalformedToken(t *testing.T) {
	r := testRouter()
	w := doRequest(r, http.MethodGet, "/records", "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	r := testRouter()
	w := doRequest(r, http.MethodGet, "/records", signTestToken(t, models.RoleUser, -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ValidTokenSetsIdentity(t *testing.T) {
	r := testRouter()
	w := doRequest(r, http.MethodGet, "/records", signTestToken(t, models.RoleUser, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test@sekolah.sch.id")
}

func TestRequireAdmin_RejectsUserRole(t *testing.T) {
	// Mutations are gated by the token's role claim; a valid session with the
	// user role still cannot write.
	r := testRouter()
	w := doRequest(r, http.MethodPost, "/records", signTestToken(t, models.RoleUser, time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	r := testRouter()
	w := doRequest(r, http.MethodPost, "/records", signTestToken(t, models.RoleAdmin, time.Hour))
	assert.Equal(t, http.StatusCreated, w.Code)
}
