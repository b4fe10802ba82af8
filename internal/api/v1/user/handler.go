// Package user serves the signed-in user's own record.
package user

import (
	"context"
	"net/http"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/middleware"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/gin-gonic/gin"
)

// Loader resolves an identity into the stored user.
type Loader interface {
	CurrentUser(ctx context.Context, id auth.Identity) (*models.User, error)
}

type Handler struct {
	users Loader
}

func NewHandler(users Loader) *Handler {
	return &Handler{users: users}
}

// CurrentUser godoc
// @Summary Get current user
// @Description Get the signed-in user's record, reloaded from storage
// @Tags user
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=models.User}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/user [get]
func (h *Handler) CurrentUser(c *gin.Context) {
	id, ok := auth.FromContext(c.Request.Context())
	if !ok {
		utils.RespondError(c, middleware.ErrNotAuthenticated)
		return
	}

	// The token snapshot may be stale; the stored record is authoritative.
	u, err := h.users.CurrentUser(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("", u))
}
