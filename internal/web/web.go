// Package web holds the server-rendered pages of the browser surface.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var files embed.FS

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Link is an entry of the navigation bar.
type Link struct {
	Label string
	Path  string
	Role  models.Role
}

// Nav lists the sections shown to a signed-in user; links whose Role the
// user does not satisfy are hidden.
var Nav = []Link{
	{Label: "Laboratorios", Path: "/areas"},
	{Label: "Experimentos", Path: "/examenes"},
	{Label: "Pruebas", Path: "/citas"},
	{Label: "Insumos", Path: "/insumos"},
	{Label: "Pedidos", Path: "/ordenes", Role: models.RoleUser},
	{Label: "Métodos de pago", Path: "/metodospago"},
	{Label: "Usuarios", Path: "/admin/usuarios", Role: models.RoleAdmin},
}

var funcs = template.FuncMap{
	"allowed": func(id *auth.Identity, role models.Role) bool {
		if role == "" {
			return true
		}
		return id != nil && id.Role.Satisfies(role)
	},
}

// Templates parses every embedded page.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}

// Render executes the named page, adding the signed-in identity and the
// navigation.
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if id, ok := auth.FromContext(c.Request.Context()); ok {
		data["CurrentUser"] = &id
	}
	data["Nav"] = Nav
	c.HTML(status, name, data)
}

// RenderError shows the generic error page.
func RenderError(c *gin.Context, status int, message string) {
	Render(c, status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}

// RedirectWithMessage redirects to path with a success or error query
// parameter.
func RedirectWithMessage(c *gin.Context, path, key, message string) {
	c.Redirect(http.StatusSeeOther, path+"?"+url.Values{key: {message}}.Encode())
}
