// Package user is the admin user management ("usuarios").
package user

import (
	"net/http"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/crud"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/middleware"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/services"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/gin-gonic/gin"
)

const Path = "/admin/usuarios"

var roleField = utils.Field{Name: "role", Label: "Rol", Kind: utils.KindString,
	Rules: "oneof=user admin", Message: "Role must be 'user' or 'admin'", OptionsKey: "roles"}

var activeField = utils.Field{Name: "activo", Label: "Activo", Kind: utils.KindBool, InputType: "checkbox"}

var CreateSpec = utils.FieldSpec{
	RequiredMessage: "Username, email and password are required",
	Fields: []utils.Field{
		{Name: "username", Label: "Usuario", Kind: utils.KindString, Required: true, Rules: "max=50"},
		{Name: "email", Label: "Correo", Kind: utils.KindString, Required: true, Rules: "email",
			Message: "Email is not a valid address", InputType: "email"},
		{Name: "password", Label: "Contraseña", Kind: utils.KindString, Required: true,
			InputType: "password", Secret: true},
		roleField,
		activeField,
	},
}

// UpdateSpec has no required field; absent fields are left untouched.
var UpdateSpec = utils.FieldSpec{
	Fields: []utils.Field{
		{Name: "username", Label: "Usuario", Kind: utils.KindString, Rules: "max=50"},
		{Name: "email", Label: "Correo", Kind: utils.KindString, Rules: "email",
			Message: "Email is not a valid address", InputType: "email"},
		{Name: "password", Label: "Contraseña (vacío para no cambiarla)", Kind: utils.KindString,
			InputType: "password", Secret: true},
		roleField,
		activeField,
	},
}

var errNoChanges = apperr.New(apperr.Validation, "No fields to update")

// CreateUserRequest documents the create body.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	Active   *bool  `json:"activo,omitempty"`
}

// UpdateUserRequest documents the update body.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Active   *bool   `json:"activo,omitempty"`
}

type Handler struct {
	svc *services.UserService
}

func NewHandler(svc *services.UserService) *Handler {
	return &Handler{svc: svc}
}

func newUser(v utils.Values) services.NewUser {
	return services.NewUser{
		Username: v.String("username"),
		Email:    v.String("email"),
		Password: v.String("password"),
		Role:     models.Role(v.String("role")),
		Active:   v.Bool("activo", true),
	}
}

func changes(v utils.Values) (services.UserChanges, bool) {
	var ch services.UserChanges
	if v.Has("username") {
		s := v.String("username")
		ch.Username = &s
	}
	if v.Has("email") {
		s := v.String("email")
		ch.Email = &s
	}
	if v.Has("password") {
		s := v.String("password")
		ch.Password = &s
	}
	if v.Has("role") {
		r := models.Role(v.String("role"))
		ch.Role = &r
	}
	if v.Has("activo") {
		b := v.Bool("activo", true)
		ch.Active = &b
	}
	changed := ch.Username != nil || ch.Email != nil || ch.Password != nil || ch.Role != nil || ch.Active != nil
	return ch, changed
}

func actor(c *gin.Context) (auth.Identity, error) {
	id, ok := auth.FromContext(c.Request.Context())
	if !ok {
		return auth.Identity{}, middleware.ErrNotAuthenticated
	}
	return id, nil
}

// ListUsers godoc
// @Summary List all users
// @Description List every user, newest first. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]models.User}
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/usuarios [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewListResponse(users, len(users)))
}

// GetUser godoc
// @Summary Get a user
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "User ID"
// @Success 200 {object} utils.Response{data=models.User}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/usuarios/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, err := crud.ParseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("", u))
}

// CreateUser godoc
// @Summary Create a user
// @Description Create a user with any role. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body CreateUserRequest true "User"
// @Success 201 {object} utils.Response{data=models.User}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/usuarios [post]
func (h *Handler) CreateUser(c *gin.Context) {
	who, err := actor(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	in, err := utils.InputFromJSON(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	v, err := CreateSpec.Validate(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	u, err := h.svc.Create(c.Request.Context(), who, newUser(v))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewSuccessResponse("User created successfully", u))
}

// UpdateUser godoc
// @Summary Update a user
// @Description Update user details. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "User ID"
// @Param body body UpdateUserRequest true "User details to update"
// @Success 200 {object} utils.Response{data=models.User}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/usuarios/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	who, err := actor(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	id, err := crud.ParseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	in, err := utils.InputFromJSON(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	v, err := UpdateSpec.Validate(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ch, ok := changes(v)
	if !ok {
		utils.RespondError(c, errNoChanges)
		return
	}
	u, err := h.svc.Update(c.Request.Context(), who, id, ch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("User updated successfully", u))
}

// DeactivateUser godoc
// @Summary Deactivate a user
// @Description Turn the active flag off; the record is kept. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "User ID"
// @Success 200 {object} utils.Response{data=models.User}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/usuarios/{id}/desactivar [post]
func (h *Handler) DeactivateUser(c *gin.Context) {
	who, err := actor(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	id, err := crud.ParseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	u, err := h.svc.Deactivate(c.Request.Context(), who, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("User deactivated successfully", u))
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Remove the record permanently. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "User ID"
// @Success 200 {object} utils.Response{data=models.User}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/usuarios/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	who, err := actor(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	id, err := crud.ParseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	u, err := h.svc.Delete(c.Request.Context(), who, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("User deleted successfully", u))
}
