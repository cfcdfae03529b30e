package controller

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atlashq/atlas-project-service/controller/dto"
	"github.com/atlashq/atlas-project-service/utils"
)

const refreshTokenKeyPrefix = "refresh_token:"

// Login implements the OAuth2 password grant: form fields username/password.
func (ctrl *Controller) Login(c *gin.Context) {
	ctx := c.Request.Context()

	email := c.PostForm("username")
	password := c.PostForm("password")
	if email == "" || password == "" {
		utils.JSON400(c, "Incorrect email or password")
		return
	}

	user, err := ctrl.Repository.Users.GetByEmail(ctx, email)
	if err != nil {
		utils.JSON400(c, "Incorrect email or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		utils.JSON400(c, "Incorrect email or password")
		return
	}

	tokens, err := ctrl.issueTokenPair(c, user.ID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to issue tokens: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}

	utils.JSON200(c, tokens)
}

// Refresh exchanges a valid, registered refresh token for a new pair. The old
// token's allowlist entry is removed so it cannot be replayed.
func (ctrl *Controller) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RefreshRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request payload")
		return
	}

	claims, err := utils.VerifyToken(req.RefreshToken, utils.TokenTypeRefresh, ctrl.Config.EnvConfig)
	if err != nil {
		utils.JSON401(c, "Invalid or expired refresh token")
		return
	}

	jti, _ := claims["jti"].(string)
	registered, err := ctrl.Infra.Cache.Exists(ctx, refreshTokenKeyPrefix+jti)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to check refresh token registration: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}
	if !registered {
		utils.JSON401(c, "Invalid or expired refresh token")
		return
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.JSON401(c, "Invalid or expired refresh token")
		return
	}

	if err := ctrl.Infra.Cache.Delete(ctx, refreshTokenKeyPrefix+jti); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Failed to revoke old refresh token: %v", err)
	}

	tokens, err := ctrl.issueTokenPair(c, userID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to issue tokens: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}

	utils.JSON200(c, tokens)
}

func (ctrl *Controller) issueTokenPair(c *gin.Context, userID uuid.UUID) (*dto.TokenResponseDTO, error) {
	cfg := ctrl.Config.EnvConfig

	accessToken, err := utils.CreateAccessToken(userID, cfg)
	if err != nil {
		return nil, err
	}

	refreshToken, jti, err := utils.CreateRefreshToken(userID, cfg)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.JWT.RefreshExpireDays) * 24 * time.Hour
	if err := ctrl.Infra.Cache.Set(c.Request.Context(), refreshTokenKeyPrefix+jti, userID.String(), ttl); err != nil {
		return nil, err
	}

	return &dto.TokenResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}
