package middleware

import (
	"fmt"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/gin-gonic/gin"
)

var ErrNotAuthenticated = apperr.New(apperr.Unauthenticated, "Authentication required")

// RequireRole rejects requests whose identity ranks below role. It must run
// after a token or session gate.
func RequireRole(role models.Role, mode Presentation) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.FromContext(c.Request.Context())
		if !ok {
			reject(c, mode, ErrNotAuthenticated)
			return
		}
		if !id.Role.Satisfies(role) {
			reject(c, mode, apperr.New(apperr.Forbidden, fmt.Sprintf("Forbidden: %s role required", role)))
			return
		}
		c.Next()
	}
}
