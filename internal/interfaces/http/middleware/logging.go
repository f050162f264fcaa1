package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

// Logging logs one line per request once the handler chain has finished.
func Logging(log logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if claims, ok := GetClaims(c); ok {
			fields["user_id"] = claims.UserID
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			var err error
			if last := c.Errors.Last(); last != nil {
				err = last.Err
			}
			log.Error(c.Request.Context(), "Request failed", err, fields)
		case status >= http.StatusBadRequest:
			log.Warn(c.Request.Context(), "Request rejected", fields)
		default:
			log.Info(c.Request.Context(), "Request processed", fields)
		}
	}
}

// Recovery turns a panic into a 500 envelope.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(c.Request.Context(), "Panic recovered", fmt.Errorf("panic: %v", r),
					logger.String("path", c.Request.URL.Path))
				AbortWithError(c, errors.ErrInternal("internal server error"))
			}
		}()
		c.Next()
	}
}

// AbortWithError writes err as the error envelope and stops the chain.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(errors.HTTPStatusOf(err), dto.ErrorResponse(err, GetRequestID(c)))
}
