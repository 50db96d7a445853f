package middleware

import (
	"github.com/gin-gonic/gin"
)

// Cache-Control values served with the UI pages. Pages backed by cheap
// lookups stay fresh for ten minutes; search and stats churn faster.
const (
	CacheDefault = "max-age=600, stale-while-revalidate=300, stale-if-error=300"
	CacheShort   = "max-age=10, stale-while-revalidate=20, stale-if-error=60"
)

func CacheControl(value string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
