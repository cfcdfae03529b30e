package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/atlashq/atlas-project-service/entity"
	"github.com/atlashq/atlas-project-service/repository"
	"github.com/atlashq/atlas-project-service/utils"
)

// resolveOrganization and resolveProject are the access-control guard: they
// scope lookups to the authenticated user and answer every miss (absent row,
// foreign tenant, soft-deleted project) with the same not-found response. On
// failure the response has already been written and ok is false.

func (ctrl *Controller) resolveOrganization(c *gin.Context) (*entity.Organization, bool) {
	ctx := c.Request.Context()

	userID, ok := utils.UserIDFromContext(c)
	if !ok {
		utils.JSON401(c, "Unauthorized")
		return nil, false
	}

	orgID, err := uuid.Parse(c.Param("orgID"))
	if err != nil {
		utils.JSON404(c, "Organization not found.")
		return nil, false
	}

	org, err := ctrl.Repository.Organizations.FindForUser(ctx, orgID, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Guard] Failed to resolve organization %s: %v", orgID, err)
			utils.JSON500(c, "Internal server error")
			return nil, false
		}
		utils.JSON404(c, "Organization not found.")
		return nil, false
	}
	return org, true
}

func (ctrl *Controller) resolveProject(c *gin.Context, includeDeleted bool) (*entity.Project, bool) {
	ctx := c.Request.Context()

	userID, ok := utils.UserIDFromContext(c)
	if !ok {
		utils.JSON401(c, "Unauthorized")
		return nil, false
	}

	orgID, err := uuid.Parse(c.Param("orgID"))
	if err != nil {
		utils.JSON404(c, "Project not found.")
		return nil, false
	}
	projectID, err := uuid.Parse(c.Param("projectID"))
	if err != nil {
		utils.JSON404(c, "Project not found.")
		return nil, false
	}

	project, err := ctrl.Repository.Projects.FindForUser(ctx, orgID, projectID, userID, includeDeleted)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Guard] Failed to resolve project %s: %v", projectID, err)
			utils.JSON500(c, "Internal server error")
			return nil, false
		}
		utils.JSON404(c, "Project not found.")
		return nil, false
	}
	return project, true
}
