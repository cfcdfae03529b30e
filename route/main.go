package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/atlashq/atlas-project-service/controller"
	middlewares "github.com/atlashq/atlas-project-service/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	r.GET("/health", ctrl.Health)

	r.POST("/users/", ctrl.CreateUser)

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/token", ctrl.Login)
		authRoutes.POST("/refresh", ctrl.Refresh)
	}

	authed := r.Group("/")
	{
		authed.Use(middles.AuthMiddleware)

		authed.GET("/users/me", ctrl.ReadCurrentUser)
		authed.PUT("/users/:userID", ctrl.UpdateUser)
		authed.DELETE("/users/:userID", ctrl.DeleteUser)

		authed.GET("/organizations/", ctrl.ListOrganizations)

		projectRoutes := authed.Group("/organizations/:orgID/projects")
		{
			projectRoutes.GET("", ctrl.ListProjects)
			projectRoutes.POST("", ctrl.CreateProject)
			projectRoutes.GET("/:projectID", ctrl.ReadProject)
			projectRoutes.PUT("/:projectID", ctrl.UpdateProject)
			projectRoutes.DELETE("/:projectID", ctrl.SoftDeleteProject)
			projectRoutes.DELETE("/:projectID/hard", ctrl.HardDeleteProject)

			fileRoutes := projectRoutes.Group("/:projectID/files")
			{
				fileRoutes.GET("", ctrl.ListFiles)
				fileRoutes.POST("", ctrl.UploadFiles)
				fileRoutes.DELETE("", ctrl.BatchDeleteFiles)
				fileRoutes.GET("/:fileID", ctrl.ReadFile)
				fileRoutes.GET("/:fileID/download", ctrl.DownloadFile)
				fileRoutes.GET("/:fileID/extract_bounding_boxes", ctrl.ExtractBoundingBoxes)
			}
		}

		preferenceRoutes := authed.Group("/preferences")
		{
			preferenceRoutes.GET("/", ctrl.ListPreferences)
			preferenceRoutes.PUT("/", ctrl.UpdatePreferences)
		}
	}

	return r
}
