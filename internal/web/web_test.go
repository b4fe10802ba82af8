package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tmpl, err := Templates()
	require.NoError(t, err)
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	return r
}

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{"list.html", "form.html", "error.html", "login.html", "register.html", "dashboard.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestRenderErrorPage(t *testing.T) {
	r := setupRouter(t)
	r.GET("/boom", func(c *gin.Context) {
		RenderError(c, http.StatusInternalServerError, "database unavailable")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "database unavailable")
	assert.Contains(t, w.Body.String(), "Iniciar sesión")
}

func TestRenderHidesAdminLinks(t *testing.T) {
	r := setupRouter(t)
	r.GET("/dashboard", func(c *gin.Context) {
		id := auth.Identity{UserID: 1, Username: "alice", Role: models.RoleUser}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id, auth.SourceSession, "sid"))
		Render(c, http.StatusOK, "dashboard.html", gin.H{"Title": "Panel"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bienvenido, alice")
	assert.Contains(t, w.Body.String(), `href="/ordenes"`)
	assert.NotContains(t, w.Body.String(), `href="/admin/usuarios"`)
}

func TestRedirectWithMessage(t *testing.T) {
	r := setupRouter(t)
	r.POST("/areas/1/eliminar", func(c *gin.Context) {
		RedirectWithMessage(c, "/areas", "success", "Laboratorio eliminado")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/areas/1/eliminar", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/areas?success=Laboratorio+eliminado", w.Header().Get("Location"))
}
