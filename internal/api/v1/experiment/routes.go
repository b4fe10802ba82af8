package experiment

import (
	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/crud"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/middleware"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/thejerf/abtime"
)

func RegisterRoutes(api, pages gin.IRouter, s store.ExperimentStore, clock abtime.AbstractTime, authn *middleware.Authenticator) {
	h := crud.NewHandler(Resource(s, clock))
	h.RegisterAPI(api, Path, authn)
	h.RegisterPages(pages, authn)
}
