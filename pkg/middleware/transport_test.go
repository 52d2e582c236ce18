package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"fun123/pkg/reqctx"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serveSecure(req *http.Request) bool {
	var secure bool
	router := setupTestRouter()
	router.Use(SecureTransport())
	router.GET("/test", func(c *gin.Context) {
		secure = reqctx.IsSecure(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	router.ServeHTTP(httptest.NewRecorder(), req)
	return secure
}

func TestSecureTransport(t *testing.T) {
	plain, _ := http.NewRequest("GET", "/test", nil)
	assert.False(t, serveSecure(plain))

	proxied, _ := http.NewRequest("GET", "/test", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")
	assert.True(t, serveSecure(proxied))

	direct, _ := http.NewRequest("GET", "/test", nil)
	direct.TLS = &tls.ConnectionState{}
	assert.True(t, serveSecure(direct))
}
