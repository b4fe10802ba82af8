package scheduledtest

import (
	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/crud"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(api, pages gin.IRouter, s Storage, authn *middleware.Authenticator) {
	h := crud.NewHandler(Resource(s))
	h.RegisterAPI(api, Path, authn)
	h.RegisterPages(pages, authn)
}
