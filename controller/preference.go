package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/atlashq/atlas-project-service/controller/dto"
	"github.com/atlashq/atlas-project-service/entity"
	"github.com/atlashq/atlas-project-service/utils"
)

func (ctrl *Controller) ListPreferences(c *gin.Context) {
	ctx := c.Request.Context()

	prefs, err := ctrl.Repository.Preferences.List(ctx)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Preference] Failed to list preferences: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}
	utils.JSON200(c, toPreferenceList(prefs))
}

func (ctrl *Controller) UpdatePreferences(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PreferenceListDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request payload")
		return
	}

	prefs := make([]entity.Preference, 0, len(req.Preferences))
	for _, p := range req.Preferences {
		prefs = append(prefs, entity.Preference{Key: p.Key, Value: p.Value})
	}

	saved, err := ctrl.Repository.Preferences.UpsertAll(ctx, prefs)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Preference] Failed to upsert preferences: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}
	utils.JSON200(c, toPreferenceList(saved))
}

func toPreferenceList(prefs []entity.Preference) dto.PreferenceListDTO {
	out := dto.PreferenceListDTO{Preferences: make([]dto.PreferenceDTO, 0, len(prefs))}
	for _, p := range prefs {
		createdAt := p.CreatedAt
		updatedAt := p.UpdatedAt
		out.Preferences = append(out.Preferences, dto.PreferenceDTO{
			Key:       p.Key,
			Value:     p.Value,
			CreatedAt: &createdAt,
			UpdatedAt: &updatedAt,
		})
	}
	return out
}
