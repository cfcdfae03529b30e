package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/atlashq/atlas-project-service/config"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token
	}
	return ""
}

func CreateAccessToken(userID uuid.UUID, cfg *config.EnvConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"type":    TokenTypeAccess,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(cfg.JWT.AccessExpireMinutes) * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.SecretKey))
}

// CreateRefreshToken returns the signed token and its jti, which is used as
// the allowlist key in Redis.
func CreateRefreshToken(userID uuid.UUID, cfg *config.EnvConfig) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"type":    TokenTypeRefresh,
		"jti":     jti,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(cfg.JWT.RefreshExpireDays) * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWT.SecretKey))
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

func ParseToken(tokenString string, cfg *config.EnvConfig) (*jwt.Token, error) {
	secret := []byte(cfg.JWT.SecretKey)
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

// VerifyToken parses the token and checks that its "type" claim matches
// expectedType. An access token presented where a refresh token is expected
// (or vice versa) is rejected.
func VerifyToken(tokenString, expectedType string, cfg *config.EnvConfig) (jwt.MapClaims, error) {
	token, err := ParseToken(tokenString, cfg)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	tokenType, _ := claims["type"].(string)
	if tokenType != expectedType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

func InjectClaimsToContext(c *gin.Context, claims jwt.MapClaims) error {
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return errors.New("invalid user_id format")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return errors.New("invalid user_id format")
	}
	c.Set("user_id", userID)
	return nil
}

// UserIDFromContext reads the authenticated user id injected by the auth
// middleware.
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	return userID, ok
}
