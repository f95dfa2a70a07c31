// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vaultpay/backend/internal/integration/adapters"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(3, time.Minute)

		for i := 0; i < 3; i++ {
			if !rl.allow("10.0.0.1") {
				t.Fatalf("attempt %d within the limit was blocked", i+1)
			}
		}
		if rl.allow("10.0.0.1") {
			t.Error("attempt over the limit was allowed")
		}
	})

	t.Run("limits are per client", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, time.Minute)

		if !rl.allow("10.0.0.1") {
			t.Fatal("first client's first attempt was blocked")
		}
		if !rl.allow("10.0.0.2") {
			t.Error("second client must have its own window")
		}
	})

	t.Run("window expiry resets the count", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, 10*time.Millisecond)

		if !rl.allow("10.0.0.1") {
			t.Fatal("first attempt was blocked")
		}
		if rl.allow("10.0.0.1") {
			t.Fatal("second attempt within the window was allowed")
		}

		time.Sleep(15 * time.Millisecond)
		if !rl.allow("10.0.0.1") {
			t.Error("attempt after the window expired was blocked")
		}
	})

	t.Run("blocked requests get 429", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, time.Minute)

		router := gin.New()
		router.POST("/login", rl.Middleware(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/login", nil))
		if first.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", first.Code)
		}

		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/login", nil))
		if second.Code != http.StatusTooManyRequests {
			t.Errorf("expected 429, got %d", second.Code)
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	tokenService := adapters.NewTokenService("test-secret", time.Hour)
	authMiddleware := NewAuthMiddleware(tokenService)

	newRouter := func(onRequest func(c *gin.Context)) *gin.Engine {
		router := gin.New()
		router.GET("/protected", authMiddleware.Authenticate(), onRequest)
		return router
	}

	t.Run("puts the user id in the context for a valid token", func(t *testing.T) {
		userID := uuid.New()
		token, err := tokenService.GenerateAccessToken(context.Background(), userID, "asha@example.com")
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}

		var gotID uuid.UUID
		router := newRouter(func(c *gin.Context) {
			id, ok := GetUserIDFromContext(c)
			if !ok {
				t.Error("expected user id in context")
			}
			gotID = id
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotID != userID {
			t.Errorf("expected user id %s, got %s", userID, gotID)
		}
	})

	rejects := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty bearer token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tc := range rejects {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			router := newRouter(func(c *gin.Context) {
				t.Error("handler must not run without authentication")
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		other := adapters.NewTokenService("other-secret", time.Hour)
		token, err := other.GenerateAccessToken(context.Background(), uuid.New(), "x@example.com")
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}

		router := newRouter(func(c *gin.Context) {
			t.Error("handler must not run with a forged token")
		})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}
