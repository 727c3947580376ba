package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func limitedRouter(perSec float64, burst int) *gin.Engine {
	r := gin.New()
	r.POST("/login", RateLimit(perSec, burst), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	r := limitedRouter(0.001, 3)

	var lastCode int
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		lastCode = w.Code
		if i < 3 && w.Code != http.StatusOK {
			t.Fatalf("request %d inside burst rejected: %d", i, w.Code)
		}
	}
	if lastCode != http.StatusTooManyRequests {
		t.Fatalf("request past burst got %d, want 429", lastCode)
	}
}

func TestRateLimitIsPerIP(t *testing.T) {
	r := limitedRouter(0.001, 1)

	first := httptest.NewRequest("POST", "/login", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, first)
	if w.Code != http.StatusOK {
		t.Fatalf("first request rejected: %d", w.Code)
	}

	// The first address is exhausted but a second address is not.
	second := httptest.NewRequest("POST", "/login", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, second)
	if w.Code != http.StatusOK {
		t.Fatalf("second address throttled by first: %d", w.Code)
	}
}
