package auth

import (
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/web"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the JSON endpoints under api and the browser pages
// under pages.
func RegisterRoutes(api, pages gin.IRouter, h *Handler) {
	auth := api.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.authn.API(models.RoleUser, h.Logout)...)

	load := h.authn.LoadSession()
	pages.GET("/", load, h.Root)
	pages.GET(web.LoginPath, load, h.LoginPage)
	pages.POST(web.LoginPath, h.SubmitLogin)
	pages.GET("/register", h.RegisterPage)
	pages.POST("/register", h.SubmitRegister)
	pages.POST("/logout", h.SubmitLogout)
	pages.GET(web.DashboardPath, h.authn.Web(models.RoleUser, h.Dashboard)...)
}
