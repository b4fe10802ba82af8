package laboratory

import (
	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/crud"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/middleware"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(api, pages gin.IRouter, s store.LaboratoryStore, authn *middleware.Authenticator) {
	h := crud.NewHandler(Resource(s))
	h.RegisterAPI(api, Path, authn)
	h.RegisterPages(pages, authn)
}
