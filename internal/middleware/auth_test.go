package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtsvc "carhive/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAuth_ValidToken(t *testing.T) {
	secret := "test-secret-123"
	jwtService := jwtsvc.New(secret, 1*time.Hour)
	agencyID := int64(3)
	validToken, _ := jwtService.GenerateToken(42, "owner@example.com", "agency", &agencyID)

	router := gin.New()
	router.Use(Auth(jwtService))

	router.GET("/protected", func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		role, _ := c.Get("role")
		agency, _ := c.Get("agency_id")
		c.JSON(http.StatusOK, gin.H{
			"user_id":   userID,
			"role":      role,
			"agency_id": agency,
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
	assert.Contains(t, w.Body.String(), "agency")
	assert.Contains(t, w.Body.String(), "3")
}

func TestAuth_InvalidToken(t *testing.T) {
	jwtService := jwtsvc.New("wrong-secret", 1*time.Hour)

	router := gin.New()
	router.Use(Auth(jwtService))

	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("This handler should not be reached")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-jwt-here")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuth_NoToken(t *testing.T) {
	jwtService := jwtsvc.New("secret", 1*time.Hour)

	router := gin.New()
	router.Use(Auth(jwtService))

	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuth_WrongFormat(t *testing.T) {
	jwtService := jwtsvc.New("secret", 1*time.Hour)

	router := gin.New()
	router.Use(Auth(jwtService))

	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dGVzdA==")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	jwtService := jwtsvc.New("secret", 1*time.Hour)

	router := gin.New()
	router.Use(OptionalAuth(jwtService))

	router.GET("/open", func(c *gin.Context) {
		_, hasUser := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"has_user": hasUser})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/open", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "false")
}

func TestOptionalAuth_TokenResolved(t *testing.T) {
	jwtService := jwtsvc.New("secret", 1*time.Hour)
	token, _ := jwtService.GenerateToken(7, "casey@example.com", "customer", nil)

	router := gin.New()
	router.Use(OptionalAuth(jwtService))

	router.GET("/open", func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "7")
}
