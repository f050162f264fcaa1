package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/internal/domain/service"
	"github.com/turtacn/acadmin/pkg/logger"
)

// Audit records every successful state-changing request made with a valid
// token. Reads, anonymous calls and rejected requests are not recorded.
func Audit(auditor service.AuditService, log logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("audit")
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			return
		}
		claims, ok := GetClaims(c)
		if !ok {
			return
		}

		event := &models.AuditEvent{
			ActorID:   claims.UserID,
			Action:    c.Request.Method + " " + c.FullPath(),
			Path:      c.Request.URL.Path,
			Status:    status,
			RequestID: GetRequestID(c),
		}
		// The response is already written; a failure here only loses the trail entry.
		ctx := context.WithoutCancel(c.Request.Context())
		if err := auditor.Record(ctx, event); err != nil {
			log.Error(ctx, "Audit event lost", err, logger.String("action", event.Action), logger.Uint("actor_id", claims.UserID))
		}
	}
}
