package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs each request, flags slow and failing ones, and
// recovers from handler panics with a JSON 500.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				log.Printf("panic %s %s: %v\n%s",
					c.Request.Method, c.Request.URL.Path, recovered, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": "Internal server error",
				})
				return
			}

			latency := time.Since(start)
			status := c.Writer.Status()

			line := fmt.Sprintf("%s %s -> %d (%s)",
				c.Request.Method, c.Request.URL.Path, status, latency)
			switch {
			case status >= http.StatusInternalServerError:
				log.Println("ERROR", line)
			case latency > 2*time.Second:
				log.Println("SLOW", line)
			default:
				log.Println(line)
			}
		}()

		c.Next()
	}
}
