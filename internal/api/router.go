package api

import (
	"net/http"
	"strings"

	"github.com/Salvaberticci/proyecto-laboratorio/config"
	_ "github.com/Salvaberticci/proyecto-laboratorio/docs"
	adminUser "github.com/Salvaberticci/proyecto-laboratorio/internal/api/v1/admin/user"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/v1/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/v1/experiment"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/v1/laboratory"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/v1/order"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/v1/paymentmethod"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/v1/reagent"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/v1/scheduledtest"
	userRoutes "github.com/Salvaberticci/proyecto-laboratorio/internal/api/v1/user"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/middleware"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/services"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/thejerf/abtime"
)

// Deps are the collaborators the router wires into the handlers.
type Deps struct {
	Config *config.Config
	Store  store.Store
	Auth   *services.AuthService
	Users  *services.UserService
	Clock  abtime.AbstractTime
}

func NewRouter(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())
	router.SetHTMLTemplate(tmpl)

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authn := middleware.NewAuthenticator(deps.Auth, cfg.SessionCookie)
	s := deps.Store

	api := router.Group("/api")
	auth.RegisterRoutes(api, router, auth.NewHandler(deps.Auth, authn, s, cfg.CookieSecure))
	userRoutes.RegisterRoutes(api, userRoutes.NewHandler(deps.Auth), authn)
	adminUser.RegisterRoutes(api, router, adminUser.NewHandler(deps.Users), authn)

	laboratory.RegisterRoutes(api, router, s, authn)
	experiment.RegisterRoutes(api, router, s, deps.Clock, authn)
	scheduledtest.RegisterRoutes(api, router, s, authn)
	reagent.RegisterRoutes(api, router, s, authn)
	order.RegisterRoutes(api, router, s, authn)
	paymentmethod.RegisterRoutes(api, router, s, authn)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse("Route not found"))
			return
		}
		web.RenderError(c, http.StatusNotFound, "Page not found")
	})

	return router, nil
}
