package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes a success JSON response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, gin.H{
		"code": 0,
		"msg":  "ok",
		"data": data,
	})
}

// Fail writes an error JSON response, mapping the error to a status code.
// Unexpected errors are logged and returned as a generic message.
func Fail(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}
