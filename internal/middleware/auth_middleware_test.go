package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/app/repositories"
	"github.com/eduverse/eduverse/internal/pkg/apperrors"
	"github.com/eduverse/eduverse/internal/pkg/auth"
)

// stubUserRepo serves a fixed user set; only GetByID is exercised here
type stubUserRepo struct {
	repositories.IUserRepository
	users map[int64]*models.User
}

func (r *stubUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type middlewareFixture struct {
	router     *gin.Engine
	jwtService *auth.JWTService
}

func newMiddlewareFixture(users map[int64]*models.User) *middlewareFixture {
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "eduverse.test",
	})
	authMiddleware := NewAuthMiddleware(jwtService, &stubUserRepo{users: users})

	router := gin.New()
	router.Use(authMiddleware.ResolveIdentity())

	router.GET("/public", func(c *gin.Context) {
		if user, ok := CurrentUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"user": user.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": nil})
	})

	protected := router.Group("")
	protected.Use(authMiddleware.RequireAuth())
	protected.GET("/protected", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	teacherOnly := protected.Group("")
	teacherOnly.Use(authMiddleware.RequireRole(models.RoleTeacher))
	teacherOnly.GET("/teacher", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return &middlewareFixture{router: router, jwtService: jwtService}
}

func (f *middlewareFixture) request(t *testing.T, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func testUsers() map[int64]*models.User {
	return map[int64]*models.User{
		1: {ID: 1, Email: "teacher@example.com", RoleType: models.RoleTeacher, Status: models.StatusActive},
		2: {ID: 2, Email: "student@example.com", RoleType: models.RoleStudent, Status: models.StatusActive},
		3: {ID: 3, Email: "banned@example.com", RoleType: models.RoleStudent, Status: models.StatusDisabled},
	}
}

func TestAnonymousRequestReachesPublicRoutes(t *testing.T) {
	f := newMiddlewareFixture(testUsers())

	resp := f.request(t, "/public", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"user":null`)
}

func TestMalformedTokenDowngradesToAnonymous(t *testing.T) {
	f := newMiddlewareFixture(testUsers())

	// A bad token is not an error on public routes, the request just
	// carries no identity
	resp := f.request(t, "/public", "Bearer not.a.valid.token")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"user":null`)

	// On protected routes the anonymous downgrade surfaces as 401
	resp = f.request(t, "/protected", "Bearer not.a.valid.token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestValidTokenResolvesUser(t *testing.T) {
	f := newMiddlewareFixture(testUsers())

	token, _, err := f.jwtService.GenerateToken(2)
	require.NoError(t, err)

	resp := f.request(t, "/public", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"user":2`)

	resp = f.request(t, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestTokenForMissingUserIsAnonymous(t *testing.T) {
	f := newMiddlewareFixture(testUsers())

	token, _, err := f.jwtService.GenerateToken(999)
	require.NoError(t, err)

	resp := f.request(t, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestDisabledAccountIsAnonymous(t *testing.T) {
	f := newMiddlewareFixture(testUsers())

	token, _, err := f.jwtService.GenerateToken(3)
	require.NoError(t, err)

	resp := f.request(t, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRequireRole(t *testing.T) {
	f := newMiddlewareFixture(testUsers())

	teacherToken, _, err := f.jwtService.GenerateToken(1)
	require.NoError(t, err)
	studentToken, _, err := f.jwtService.GenerateToken(2)
	require.NoError(t, err)

	resp := f.request(t, "/teacher", "Bearer "+teacherToken)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = f.request(t, "/teacher", "Bearer "+studentToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = f.request(t, "/teacher", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
