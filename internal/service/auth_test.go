package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func authRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewAuthService(zap.NewNop(), secret).AuthMiddleware())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/api/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/v1/drafts", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestAuthMiddlewareGuardsAPIRoutes(t *testing.T) {
	router := authRouter("SECRET")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/drafts", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareOpenPaths(t *testing.T) {
	router := authRouter("SECRET")

	for _, path := range []string{"/health", "/api/v1/auth/login"} {
		method := "GET"
		if path == "/api/v1/auth/login" {
			method = "POST"
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestAuthMiddlewareAcceptsSessionCookie(t *testing.T) {
	router := authRouter("SECRET")

	req := httptest.NewRequest("GET", "/api/v1/drafts", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: NewAuthService(zap.NewNop(), "SECRET").CreateSession()})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareDisabledWithoutSecret(t *testing.T) {
	router := authRouter("")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/drafts", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
