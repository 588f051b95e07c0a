package response

import "github.com/gin-gonic/gin"

// Error writes the flat error shape the admin UI expects.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"message": message,
	})
}
