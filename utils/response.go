package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error responses carry a single "detail" field so clients can rely on one
// shape regardless of status code.

func JSON400(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
}

func JSON401(c *gin.Context, detail string) {
	c.JSON(http.StatusUnauthorized, gin.H{"detail": detail})
}

func JSON404(c *gin.Context, detail string) {
	c.JSON(http.StatusNotFound, gin.H{"detail": detail})
}

func JSON500(c *gin.Context, detail string) {
	c.JSON(http.StatusInternalServerError, gin.H{"detail": detail})
}

func JSON200(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

func JSON201(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

func JSON204(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
