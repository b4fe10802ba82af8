package user

import (
	"github.com/Salvaberticci/proyecto-laboratorio/internal/middleware"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router gin.IRouter, h *Handler, authn *middleware.Authenticator) {
	auth := router.Group("/auth")
	auth.GET("/user", authn.API(models.RoleUser, h.CurrentUser)...)
}
