package crud

import (
	"github.com/Salvaberticci/proyecto-laboratorio/internal/middleware"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/gin-gonic/gin"
)

func apiChain(authn *middleware.Authenticator, role models.Role, h gin.HandlerFunc) []gin.HandlerFunc {
	if role == "" {
		return []gin.HandlerFunc{h}
	}
	return authn.API(role, h)
}

func pageChain(authn *middleware.Authenticator, role models.Role, h gin.HandlerFunc) []gin.HandlerFunc {
	if role == "" {
		return []gin.HandlerFunc{authn.LoadSession(), h}
	}
	return authn.Web(role, h)
}

// RegisterAPI mounts the JSON routes under path, e.g. "/areas" on the
// /api group.
func (h *Handler[T]) RegisterAPI(router gin.IRouter, path string, authn *middleware.Authenticator) {
	access := h.res.Access
	router.GET(path, apiChain(authn, access.Read, h.List)...)
	router.GET(path+"/:id", apiChain(authn, access.Read, h.Get)...)
	router.POST(path, apiChain(authn, access.Write, h.Create)...)
	router.PUT(path+"/:id", apiChain(authn, access.Write, h.Update)...)
	router.DELETE(path+"/:id", apiChain(authn, access.Delete, h.Delete)...)
}

// RegisterPages mounts the view routes under the resource's PagePath.
func (h *Handler[T]) RegisterPages(router gin.IRouter, authn *middleware.Authenticator) {
	access := h.res.Access
	base := h.res.PagePath
	router.GET(base, pageChain(authn, access.Read, h.ListPage)...)
	router.GET(base+"/crear", pageChain(authn, access.Write, h.NewPage)...)
	router.POST(base, pageChain(authn, access.Write, h.CreatePage)...)
	router.GET(base+"/:id/editar", pageChain(authn, access.Write, h.EditPage)...)
	router.POST(base+"/:id/editar", pageChain(authn, access.Write, h.UpdatePage)...)
	router.DELETE(base+"/:id", pageChain(authn, access.Delete, h.DeletePage)...)
	router.POST(base+"/:id/eliminar", pageChain(authn, access.Delete, h.DeletePage)...)
}
