package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/atlashq/atlas-project-service/controller/dto"
	"github.com/atlashq/atlas-project-service/entity"
	"github.com/atlashq/atlas-project-service/utils"
)

func (ctrl *Controller) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()

	org, ok := ctrl.resolveOrganization(c)
	if !ok {
		return
	}

	projects, err := ctrl.Repository.Projects.ListForOrganization(ctx, org.ID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Project] Failed to list projects: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}
	utils.JSON200(c, gin.H{"projects": projects})
}

func (ctrl *Controller) CreateProject(c *gin.Context) {
	ctx := c.Request.Context()

	org, ok := ctrl.resolveOrganization(c)
	if !ok {
		return
	}

	var req dto.ProjectRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request payload")
		return
	}

	project := &entity.Project{
		Name:           req.Name,
		Description:    req.Description,
		OrganizationID: org.ID,
	}
	if err := ctrl.Repository.Projects.Create(ctx, project); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Project] Failed to create project: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Project] Created project %s in organization %s", project.ID, org.ID)
	utils.JSON201(c, project)
}

func (ctrl *Controller) ReadProject(c *gin.Context) {
	project, ok := ctrl.resolveProject(c, false)
	if !ok {
		return
	}
	utils.JSON200(c, project)
}

func (ctrl *Controller) UpdateProject(c *gin.Context) {
	ctx := c.Request.Context()

	project, ok := ctrl.resolveProject(c, false)
	if !ok {
		return
	}

	var req dto.ProjectRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request payload")
		return
	}

	project.Name = req.Name
	project.Description = req.Description
	if err := ctrl.Repository.Projects.Update(ctx, project); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Project] Failed to update project: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}
	utils.JSON200(c, project)
}

// SoftDeleteProject hides the project from all default-scope endpoints. Its
// files stay in storage and in the database until a hard delete. A second
// soft delete finds nothing and returns 404.
func (ctrl *Controller) SoftDeleteProject(c *gin.Context) {
	ctx := c.Request.Context()

	project, ok := ctrl.resolveProject(c, false)
	if !ok {
		return
	}

	if err := ctrl.Repository.Projects.SoftDelete(ctx, project); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Project] Failed to soft delete project %s: %v", project.ID, err)
		utils.JSON500(c, "Internal server error")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Project] Soft deleted project %s", project.ID)
	utils.JSON204(c)
}

// HardDeleteProject purges the project in two explicit phases: best-effort
// object-storage cleanup for every file (failures are logged and skipped,
// never fatal), then the row deletion whose FK cascade removes the file rows.
// It accepts projects that are already soft-deleted.
func (ctrl *Controller) HardDeleteProject(c *gin.Context) {
	ctx := c.Request.Context()

	project, ok := ctrl.resolveProject(c, true)
	if !ok {
		return
	}

	files, err := ctrl.Repository.Files.ListByProject(ctx, project.ID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Project] Failed to enumerate files of project %s: %v", project.ID, err)
		utils.JSON500(c, "Internal server error")
		return
	}

	for _, file := range files {
		if err := ctrl.Infra.Storage.DeleteObject(ctx, file.Path); err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Project] Failed to delete object %s from storage: %v", file.Path, err)
		}
	}

	if err := ctrl.Repository.Projects.HardDelete(ctx, project); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Project] Failed to hard delete project %s: %v", project.ID, err)
		utils.JSON500(c, "Internal server error")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Project] Hard deleted project %s with %d files", project.ID, len(files))
	utils.JSON204(c)
}
