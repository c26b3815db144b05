package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/campuslink/internal/app/models/dto"
)

// Pinger is implemented by stores that depend on an external server
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports liveness and store reachability
type HealthController struct {
	store  Pinger
	logger zerolog.Logger
}

// NewHealthController creates a HealthController. A nil store means the
// store is in-process and always reachable.
func NewHealthController(store Pinger, logger zerolog.Logger) *HealthController {
	return &HealthController{store: store, logger: logger}
}

// Health answers 200 while the store is reachable and 503 otherwise
func (c *HealthController) Health(ctx *gin.Context) {
	if c.store != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.store.Ping(pingCtx); err != nil {
			c.logger.Warn().Err(err).Msg("Health check failed: store unreachable")
			detail := dto.NewErrorDetail(dto.ErrorCodeServiceUnavailable, "Store unreachable").
				WithSeverity(dto.ErrorSeverityCritical)
			ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(detail))
			return
		}
	}
	ok(ctx, gin.H{"status": "ok"}, "")
}
