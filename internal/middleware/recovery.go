package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Recovery turns a panic into a 500. render writes the response body; when it
// is nil a bare status is sent.
func Recovery(log logrus.FieldLogger, render gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(logrus.Fields{
					"error":  fmt.Sprintf("%v", r),
					"stack":  string(debug.Stack()),
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				}).Error("panic recovered")

				if render == nil || c.Writer.Written() {
					c.AbortWithStatus(http.StatusInternalServerError)
					return
				}
				c.Status(http.StatusInternalServerError)
				render(c)
				c.Abort()
			}
		}()
		c.Next()
	}
}
