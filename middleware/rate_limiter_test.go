package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"pitchbook/config"
)

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.AppConfig.MaxRequestsPerMin = 2

	router := gin.New()
	router.Use(RateLimitMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", ip)
		router.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("enforces the configured per-minute budget", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if got := send("203.0.113.7"); got != http.StatusOK {
				t.Fatalf("request %d: got %d, want %d", i+1, got, http.StatusOK)
			}
		}
		if got := send("203.0.113.7"); got != http.StatusTooManyRequests {
			t.Fatalf("expected %d after exhausting the budget, got %d", http.StatusTooManyRequests, got)
		}
	})

	t.Run("budgets are tracked per client", func(t *testing.T) {
		if got := send("203.0.113.8"); got != http.StatusOK {
			t.Fatalf("expected a fresh client to pass, got %d", got)
		}
	})
}
