// internal/middleware/cache.go
package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fastpurchase/backend/internal/cache"
)

type cachedBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *cachedBodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheResponse memoizes successful GET responses keyed by the full request
// URI, so the same path with different query parameters caches separately.
// Write handlers invalidate the resource prefix to bound staleness.
func CacheResponse(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()

		if body, ok := store.Get(key); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		writer := &cachedBodyWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK {
			store.Set(key, writer.body.Bytes(), ttl)
		}
	}
}
