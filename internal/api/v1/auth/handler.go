package auth

import (
	"net/http"
	"time"

	appauth "github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/middleware"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/services"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/gin-gonic/gin"
)

var RegisterSpec = utils.FieldSpec{
	RequiredMessage: "Username, email and password are required",
	Fields: []utils.Field{
		{Name: "username", Kind: utils.KindString, Required: true, Rules: "max=50",
			Message: "Username cannot be longer than 50 characters"},
		{Name: "email", Kind: utils.KindString, Required: true, Rules: "email",
			Message: "Email is not a valid address"},
		{Name: "password", Kind: utils.KindString, Required: true, Secret: true},
	},
}

var LoginSpec = utils.FieldSpec{
	RequiredMessage: "Username and password are required",
	Fields: []utils.Field{
		{Name: "username", Kind: utils.KindString, Required: true},
		{Name: "password", Kind: utils.KindString, Required: true, Secret: true},
	},
}

// RegisterInput documents the register body.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput documents the login body.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type Handler struct {
	svc          *services.AuthService
	authn        *middleware.Authenticator
	orders       store.OrderStore
	secureCookie bool
}

func NewHandler(svc *services.AuthService, authn *middleware.Authenticator, orders store.OrderStore, secureCookie bool) *Handler {
	return &Handler{svc: svc, authn: authn, orders: orders, secureCookie: secureCookie}
}

// Register godoc
// @Summary Register a new user
// @Description Register a user with the default role and an active account
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   RegisterInput  true  "Register Input"
// @Success 201 {object} utils.Response{data=models.User}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	in, err := utils.InputFromJSON(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	v, err := RegisterSpec.Validate(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	u, err := h.svc.Register(c.Request.Context(), v.String("username"), v.String("email"), v.String("password"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewSuccessResponse("User registered successfully", u))
}

// Login godoc
// @Summary Log in a user
// @Description Issues a bearer token and a session cookie
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   LoginInput  true  "Login Input"
// @Success 200 {object} utils.Response{data=LoginResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	in, err := utils.InputFromJSON(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	v, err := LoginSpec.Validate(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	res, err := h.svc.Login(c.Request.Context(), v.String("username"), v.String("password"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	h.authn.SetCookie(c, res.Session, h.secureCookie)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged in successfully", LoginResponse{
		User:      res.User,
		Token:     res.Token,
		ExpiresAt: res.TokenExpiresAt,
	}))
}

// Logout godoc
// @Summary Log out a user
// @Description Revoke the bearer token used for this request
// @Tags auth
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	token, source, ok := appauth.CredentialFromContext(c.Request.Context())
	if !ok || source != appauth.SourceToken {
		utils.RespondError(c, middleware.ErrNotAuthenticated)
		return
	}
	claims, err := h.svc.AuthenticateToken(c.Request.Context(), token)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := h.svc.RevokeToken(c.Request.Context(), claims); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
}
