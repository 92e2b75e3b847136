package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/chenson2018/website/global"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Health provides an unauthenticated liveness endpoint that also checks the
// database is reachable.
func Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	code, status, database := http.StatusOK, "ok", "ok"
	if err := pingDB(ctx); err != nil {
		log.WithField("error", err).Warn("health check: database unreachable")
		code, status, database = http.StatusServiceUnavailable, "degraded", "unreachable"
	}

	c.JSON(code, gin.H{
		"status":    status,
		"database":  database,
		"timestamp": time.Now().UTC(),
	})
}

func pingDB(ctx context.Context) error {
	sqlDB, err := global.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
