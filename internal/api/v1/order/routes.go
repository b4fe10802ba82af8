package order

import (
	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/crud"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/middleware"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(api, pages gin.IRouter, s Storage, authn *middleware.Authenticator) {
	h := NewHandler(s)
	// Static segments go first so they are not read as an :id.
	api.GET(Path+"/ultimos", h.Latest)
	api.GET(Path+"/rango-fechas", authn.API(models.RoleUser, h.ByDateRange)...)
	api.DELETE(Path+"/:id/producto/:productoId", authn.API(models.RoleAdmin, h.DeleteItem)...)

	generic := crud.NewHandler(Resource(s))
	generic.RegisterAPI(api, Path, authn)
	generic.RegisterPages(pages, authn)
}
