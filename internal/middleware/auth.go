package middleware

import (
	"context"
	"net/http"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/session"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/web"
	"github.com/Salvaberticci/proyecto-laboratorio/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Presentation selects how a rejected request is answered.
type Presentation int

const (
	// PresentJSON answers with the error envelope.
	PresentJSON Presentation = iota
	// PresentPage redirects to the login page or renders the error page.
	PresentPage
)

// Verifier resolves credentials into identities.
type Verifier interface {
	AuthenticateToken(ctx context.Context, token string) (*utils.Claims, error)
	AuthenticateSession(ctx context.Context, sessionID string) (*session.Session, error)
}

type Authenticator struct {
	verifier   Verifier
	cookieName string
}

func NewAuthenticator(verifier Verifier, cookieName string) *Authenticator {
	return &Authenticator{verifier: verifier, cookieName: cookieName}
}

func (a *Authenticator) CookieName() string {
	return a.cookieName
}

func attach(c *gin.Context, id auth.Identity, source auth.Source, credential string) {
	c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id, source, credential))
}

// RequireToken authenticates the request with the bearer token in the
// Authorization header.
func (a *Authenticator) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := utils.ExtractToken(c)
		if err != nil {
			utils.AbortWithError(c, apperr.New(apperr.Unauthenticated, err.Error()))
			return
		}

		claims, err := a.verifier.AuthenticateToken(c.Request.Context(), tokenString)
		if err != nil {
			if apperr.KindOf(err) == apperr.Internal {
				err = apperr.Wrap(apperr.Internal, "Failed to check token status", err)
			}
			utils.AbortWithError(c, err)
			return
		}

		attach(c, claims.Identity(), auth.SourceToken, tokenString)
		c.Next()
	}
}

// RequireSession authenticates the request with the session cookie.
func (a *Authenticator) RequireSession(mode Presentation) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, _ := c.Cookie(a.cookieName)
		sess, err := a.verifier.AuthenticateSession(c.Request.Context(), sessionID)
		if err != nil {
			if apperr.KindOf(err) == apperr.Unauthenticated && sessionID != "" {
				a.ClearCookie(c)
			}
			reject(c, mode, err)
			return
		}

		attach(c, sess.Identity, auth.SourceSession, sess.ID)
		c.Next()
	}
}

// LoadSession attaches the session identity when there is one and never
// rejects. Pages that render differently for signed-in users use it.
func (a *Authenticator) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionID, err := c.Cookie(a.cookieName); err == nil && sessionID != "" {
			if sess, err := a.verifier.AuthenticateSession(c.Request.Context(), sessionID); err == nil {
				attach(c, sess.Identity, auth.SourceSession, sess.ID)
			}
		}
		c.Next()
	}
}

// SetCookie issues the HTTP-only session cookie.
func (a *Authenticator) SetCookie(c *gin.Context, sess *session.Session, secure bool) {
	maxAge := int(sess.ExpiresAt.Sub(sess.CreatedAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookieName, sess.ID, maxAge, "/", "", secure, true)
}

func (a *Authenticator) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookieName, "", -1, "/", "", false, true)
}

// reject answers a failed gate according to mode.
func reject(c *gin.Context, mode Presentation, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Forbidden {
		logger.Log.Warn("forbidden access attempt",
			zap.String("path", c.Request.URL.Path),
			zap.String("reason", err.Error()))
	}

	if mode == PresentJSON {
		utils.AbortWithError(c, err)
		return
	}

	switch kind {
	case apperr.Unauthenticated:
		c.Redirect(http.StatusFound, web.LoginPath)
		c.Abort()
	case apperr.Internal:
		_ = c.Error(err)
		web.RenderError(c, http.StatusInternalServerError, "Internal server error")
		c.Abort()
	default:
		web.RenderError(c, utils.StatusFor(kind), apperr.MessageOf(err, kind.String()))
		c.Abort()
	}
}

// API chains the token gate and a role gate in front of handlers.
func (a *Authenticator) API(role models.Role, handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	return append([]gin.HandlerFunc{a.RequireToken(), RequireRole(role, PresentJSON)}, handlers...)
}

// Web chains the session gate and a role gate in front of handlers.
func (a *Authenticator) Web(role models.Role, handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	return append([]gin.HandlerFunc{a.RequireSession(PresentPage), RequireRole(role, PresentPage)}, handlers...)
}
