package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// SecureHeaders sets the standard hardening headers and, in production,
// redirects plain HTTP to HTTPS.
func SecureHeaders(production bool, logger *slog.Logger) gin.HandlerFunc {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	return func(c *gin.Context) {
		// Process has already written the redirect or rejection when it errors
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			logger.Warn("secure headers blocked request", slog.Any("error", err))
			c.Abort()
			return
		}
		c.Next()
	}
}
