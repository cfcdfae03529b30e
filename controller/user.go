package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atlashq/atlas-project-service/controller/dto"
	"github.com/atlashq/atlas-project-service/entity"
	"github.com/atlashq/atlas-project-service/utils"
)

// CreateUser registers a user and a "Default" organization they belong to.
func (ctrl *Controller) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UserRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request payload")
		return
	}

	exists, err := ctrl.Repository.Users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Error checking email existence: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}
	if exists {
		utils.JSON400(c, "Email already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to hash password: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}

	org := &entity.Organization{Name: "Default"}
	user := &entity.User{
		Email:    req.Email,
		Password: string(hashed),
	}

	if err := ctrl.Repository.Users.CreateWithOrganization(ctx, user, org); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to create user: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[User] Created user %s with default organization %s", user.ID, org.ID)
	utils.JSON201(c, user)
}

func (ctrl *Controller) ReadCurrentUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := utils.UserIDFromContext(c)
	if !ok {
		utils.JSON401(c, "Unauthorized")
		return
	}

	user, err := ctrl.Repository.Users.GetByID(ctx, userID)
	if err != nil {
		utils.JSON404(c, "User not found")
		return
	}
	utils.JSON200(c, user)
}

func (ctrl *Controller) UpdateUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := utils.UserIDFromContext(c)
	if !ok {
		utils.JSON401(c, "Unauthorized")
		return
	}

	targetID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		utils.JSON400(c, "Invalid user id")
		return
	}
	if targetID != userID {
		utils.JSON400(c, "Not enough permissions")
		return
	}

	var req dto.UserRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request payload")
		return
	}

	user, err := ctrl.Repository.Users.GetByID(ctx, userID)
	if err != nil {
		utils.JSON404(c, "User not found")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to hash password: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}

	user.Email = req.Email
	user.Password = string(hashed)
	if err := ctrl.Repository.Users.Update(ctx, user); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to update user: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}
	utils.JSON200(c, user)
}

func (ctrl *Controller) DeleteUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := utils.UserIDFromContext(c)
	if !ok {
		utils.JSON401(c, "Unauthorized")
		return
	}

	targetID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		utils.JSON400(c, "Invalid user id")
		return
	}
	if targetID != userID {
		utils.JSON400(c, "Not enough permissions")
		return
	}

	if err := ctrl.Repository.Users.Delete(ctx, userID); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[User] Failed to delete user: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}
	utils.JSON200(c, gin.H{"message": "User deleted"})
}
