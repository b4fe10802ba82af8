package auth

import (
	"net/http"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	appauth "github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/web"
	"github.com/Salvaberticci/proyecto-laboratorio/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const latestOrders = 5

func signedIn(c *gin.Context) bool {
	_, ok := appauth.FromContext(c.Request.Context())
	return ok
}

// Root sends signed-in visitors to the dashboard and everyone else to the
// login page.
func (h *Handler) Root(c *gin.Context) {
	if signedIn(c) {
		c.Redirect(http.StatusFound, web.DashboardPath)
		return
	}
	c.Redirect(http.StatusFound, web.LoginPath)
}

func (h *Handler) LoginPage(c *gin.Context) {
	if signedIn(c) {
		c.Redirect(http.StatusFound, web.DashboardPath)
		return
	}
	web.Render(c, http.StatusOK, "login.html", gin.H{
		"Title":   "Iniciar sesión",
		"Success": c.Query("success"),
		"Error":   c.Query("error"),
	})
}

func pageStatus(c *gin.Context, err error) (int, string) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		_ = c.Error(err)
		return http.StatusInternalServerError, "Internal server error"
	}
	return utils.StatusFor(kind), apperr.MessageOf(err, kind.String())
}

// SubmitLogin starts a browser session. Failures re-render the form with
// the username kept.
func (h *Handler) SubmitLogin(c *gin.Context) {
	username, err := h.startSession(c)
	if err == nil {
		c.Redirect(http.StatusSeeOther, web.DashboardPath)
		return
	}

	status, msg := pageStatus(c, err)
	web.Render(c, status, "login.html", gin.H{
		"Title":    "Iniciar sesión",
		"Error":    msg,
		"Username": username,
	})
}

func (h *Handler) startSession(c *gin.Context) (string, error) {
	in, err := utils.InputFromForm(c)
	if err != nil {
		return "", err
	}
	username, _ := in["username"].(string)
	v, err := LoginSpec.Validate(in)
	if err != nil {
		return username, err
	}
	res, err := h.svc.Login(c.Request.Context(), v.String("username"), v.String("password"))
	if err != nil {
		return username, err
	}
	h.authn.SetCookie(c, res.Session, h.secureCookie)
	return username, nil
}

func (h *Handler) RegisterPage(c *gin.Context) {
	web.Render(c, http.StatusOK, "register.html", gin.H{
		"Title":  "Registro",
		"Values": map[string]string{},
	})
}

func (h *Handler) SubmitRegister(c *gin.Context) {
	in, err := utils.InputFromForm(c)
	if err == nil {
		err = h.register(c, in)
	}
	if err == nil {
		web.RedirectWithMessage(c, web.LoginPath, "success", "Account created, you can now sign in")
		return
	}

	values := in.Strings()
	delete(values, "password")
	status, msg := pageStatus(c, err)
	web.Render(c, status, "register.html", gin.H{
		"Title":  "Registro",
		"Error":  msg,
		"Values": values,
	})
}

func (h *Handler) register(c *gin.Context, in utils.Input) error {
	v, err := RegisterSpec.Validate(in)
	if err != nil {
		return err
	}
	_, err = h.svc.Register(c.Request.Context(), v.String("username"), v.String("email"), v.String("password"))
	return err
}

// SubmitLogout ends the browser session and returns to the login page.
func (h *Handler) SubmitLogout(c *gin.Context) {
	if sessionID, err := c.Cookie(h.authn.CookieName()); err == nil {
		if err := h.svc.DestroySession(c.Request.Context(), sessionID); err != nil {
			logger.Log.Error("failed to destroy session", zap.Error(err))
		}
	}
	h.authn.ClearCookie(c)
	web.RedirectWithMessage(c, web.LoginPath, "success", "Signed out")
}

// Dashboard is the landing page after login. The latest orders are shown
// only to roles allowed to read orders, and a failure to load them does not
// break the page.
func (h *Handler) Dashboard(c *gin.Context) {
	data := gin.H{
		"Title":   "Panel",
		"Success": c.Query("success"),
		"Error":   c.Query("error"),
	}
	if id, ok := appauth.FromContext(c.Request.Context()); ok && id.Role.Satisfies(models.RoleUser) {
		orders, err := h.orders.GetLatestOrders(c.Request.Context(), latestOrders)
		if err != nil {
			logger.Log.Error("failed to load latest orders", zap.Error(err))
		} else {
			data["LatestOrders"] = orders
		}
	}
	web.Render(c, http.StatusOK, "dashboard.html", data)
}
