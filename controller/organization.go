package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/atlashq/atlas-project-service/utils"
)

func (ctrl *Controller) ListOrganizations(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := utils.UserIDFromContext(c)
	if !ok {
		utils.JSON401(c, "Unauthorized")
		return
	}

	orgs, err := ctrl.Repository.Organizations.ListForUser(ctx, userID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Organization] Failed to list organizations: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}

	utils.JSON200(c, gin.H{"organizations": orgs})
}
