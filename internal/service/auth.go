package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
)

type AuthService struct {
	logger     *zap.Logger
	totpSecret string
}

func NewAuthService(logger *zap.Logger, totpSecret string) *AuthService {
	return &AuthService{
		logger:     logger,
		totpSecret: totpSecret,
	}
}

func (a *AuthService) GenerateSecret() (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "BlogPilot Dashboard",
		AccountName: "admin",
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	return key.Secret(), nil
}

func (a *AuthService) GenerateQRCode(issuer, accountName, secret string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		Secret:      []byte(secret),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	return key.URL(), nil
}

func (a *AuthService) ValidateToken(token string) bool {
	valid := totp.Validate(token, a.totpSecret)
	if valid {
		a.logger.Info("TOTP token validation successful")
	} else {
		a.logger.Warn("TOTP token validation failed")
	}
	return valid
}

// AuthMiddleware guards everything except login, setup and health.
// When no TOTP secret is configured the guard is a no-op so local
// development works out of the box.
func (a *AuthService) AuthMiddleware() gin.HandlerFunc {
	open := map[string]bool{
		"/health":            true,
		"/api/v1/auth/login": true,
		"/api/v1/auth/setup": true,
	}

	return func(c *gin.Context) {
		if a.totpSecret == "" || open[c.Request.URL.Path] {
			c.Next()
			return
		}

		token, err := c.Cookie("auth_token")
		if err != nil || !a.isValidSession(token) {
			a.rejectUnauthenticated(c)
			return
		}

		c.Next()
	}
}

func (a *AuthService) isValidSession(token string) bool {
	return len(token) > 10 && strings.HasPrefix(token, "session_")
}

func (a *AuthService) rejectUnauthenticated(c *gin.Context) {
	c.JSON(401, gin.H{"error": "Authentication required"})
	c.Abort()
}

func (a *AuthService) CreateSession() string {
	return fmt.Sprintf("session_%d", time.Now().Unix())
}
