package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/atlashq/atlas-project-service/utils"
)

func (ctrl *Controller) Health(c *gin.Context) {
	ctx := c.Request.Context()

	storage := "ok"
	if err := ctrl.Infra.Minio.Health(ctx); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Health] Storage unreachable: %v", err)
		storage = "unreachable"
	}

	database := "ok"
	if sqlDB, err := ctrl.Repository.Db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		database = "unreachable"
	}

	utils.JSON200(c, gin.H{
		"status":   "ok",
		"storage":  storage,
		"database": database,
	})
}
