package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression gzips responses for clients that accept it. Export bundles are
// large and highly repetitive JSON, so the highest compression level is used.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.BestCompression)
}
