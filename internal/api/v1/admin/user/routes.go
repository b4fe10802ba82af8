package user

import (
	"github.com/Salvaberticci/proyecto-laboratorio/internal/middleware"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the admin-only user management. api is the /api
// group.
func RegisterRoutes(api, pages gin.IRouter, h *Handler, authn *middleware.Authenticator) {
	admin := func(fn gin.HandlerFunc) []gin.HandlerFunc { return authn.API(models.RoleAdmin, fn) }
	api.GET(Path, admin(h.ListUsers)...)
	api.GET(Path+"/:id", admin(h.GetUser)...)
	api.POST(Path, admin(h.CreateUser)...)
	api.PUT(Path+"/:id", admin(h.UpdateUser)...)
	api.POST(Path+"/:id/desactivar", admin(h.DeactivateUser)...)
	api.DELETE(Path+"/:id", admin(h.DeleteUser)...)

	page := func(fn gin.HandlerFunc) []gin.HandlerFunc { return authn.Web(models.RoleAdmin, fn) }
	pages.GET(Path, page(h.ListPage)...)
	pages.GET(Path+"/crear", page(h.NewPage)...)
	pages.POST(Path, page(h.CreatePage)...)
	pages.GET(Path+"/:id/editar", page(h.EditPage)...)
	pages.POST(Path+"/:id/editar", page(h.UpdatePage)...)
	pages.POST(Path+"/:id/desactivar", page(h.DeactivatePage)...)
	pages.DELETE(Path+"/:id", page(h.DeletePage)...)
	pages.POST(Path+"/:id/eliminar", page(h.DeletePage)...)
}
