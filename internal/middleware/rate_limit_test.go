package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimitBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{RPS: 1, Burst: 2}))
	r.GET("/x", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	// As duas primeiras consomem o burst
	if code := do(); code != http.StatusOK {
		t.Errorf("requisição 1: esperado 200, veio %d", code)
	}
	if code := do(); code != http.StatusOK {
		t.Errorf("requisição 2: esperado 200, veio %d", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Errorf("requisição 3: esperado 429, veio %d", code)
	}
}

func TestRateLimitPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{RPS: 1, Burst: 1}))
	r.GET("/x", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do("10.0.0.1:1234"); code != http.StatusOK {
		t.Errorf("primeiro IP: esperado 200, veio %d", code)
	}
	if code := do("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("primeiro IP esgotado: esperado 429, veio %d", code)
	}
	// Outro IP tem limitador próprio
	if code := do("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("segundo IP: esperado 200, veio %d", code)
	}
}
