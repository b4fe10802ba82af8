package user

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/crud"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/web"
	"github.com/gin-gonic/gin"
)

const title = "Usuarios"

var options = map[string]crud.OptionsFunc{
	"roles": func(context.Context) ([]crud.Option, error) {
		return []crud.Option{
			{Value: string(models.RoleUser), Label: "Usuario"},
			{Value: string(models.RoleAdmin), Label: "Administrador"},
		}, nil
	},
}

func active(u models.User) string {
	if u.Active {
		return "Sí"
	}
	return "No"
}

func formValues(u models.User) map[string]string {
	return map[string]string{
		"username": u.Username,
		"email":    u.Email,
		"role":     string(u.Role),
		"activo":   fmt.Sprint(u.Active),
	}
}

func editPath(id uint) string {
	return fmt.Sprintf("%s/%d/editar", Path, id)
}

func (h *Handler) ListPage(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		web.RenderError(c, http.StatusInternalServerError, "Could not load users: "+err.Error())
		return
	}
	rows := make([]crud.Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, crud.Row{ID: u.ID, Cells: []string{u.Username, u.Email, string(u.Role), active(u)}})
	}
	web.Render(c, http.StatusOK, "list.html", gin.H{
		"Title":      title,
		"BasePath":   Path,
		"Columns":    []string{"Usuario", "Correo", "Rol", "Activo"},
		"Rows":       rows,
		"CanWrite":   true,
		"CanDelete":  true,
		"RowActions": []crud.RowAction{{Label: "Desactivar", Path: "desactivar"}},
		"Success":    c.Query("success"),
		"Error":      c.Query("error"),
	})
}

func (h *Handler) renderForm(c *gin.Context, status int, spec utils.FieldSpec, formTitle, action string, values map[string]string, message string) {
	fields, err := crud.FormFields(c.Request.Context(), spec, options, values)
	if err != nil {
		_ = c.Error(err)
		web.RenderError(c, http.StatusInternalServerError, "Could not load form: "+err.Error())
		return
	}
	web.Render(c, status, "form.html", gin.H{
		"Title":      formTitle,
		"Action":     action,
		"Fields":     fields,
		"Error":      message,
		"CancelPath": Path,
	})
}

func (h *Handler) NewPage(c *gin.Context) {
	h.renderForm(c, http.StatusOK, CreateSpec, "Nuevo usuario", Path,
		map[string]string{"role": string(models.RoleUser), "activo": "true"}, "")
}

func (h *Handler) CreatePage(c *gin.Context) {
	err := h.createFromForm(c)
	if err == nil {
		web.RedirectWithMessage(c, Path, "success", "User created successfully")
		return
	}
	status, msg := crud.FailureMessage(c, err)
	h.renderForm(c, status, CreateSpec, "Nuevo usuario", Path, submitted(c), msg)
}

func (h *Handler) createFromForm(c *gin.Context) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	in, err := utils.InputFromForm(c)
	if err != nil {
		return err
	}
	// An unchecked checkbox is not submitted.
	if _, ok := in["activo"]; !ok {
		in["activo"] = "false"
	}
	v, err := CreateSpec.Validate(in)
	if err != nil {
		return err
	}
	_, err = h.svc.Create(c.Request.Context(), who, newUser(v))
	return err
}

func (h *Handler) EditPage(c *gin.Context) {
	id, err := crud.ParseID(c, "id")
	if err == nil {
		var u *models.User
		if u, err = h.svc.Get(c.Request.Context(), id); err == nil {
			h.renderForm(c, http.StatusOK, UpdateSpec, "Editar usuario", editPath(id), formValues(*u), "")
			return
		}
	}
	status, msg := crud.FailureMessage(c, err)
	web.RenderError(c, status, msg)
}

func (h *Handler) UpdatePage(c *gin.Context) {
	id, err := crud.ParseID(c, "id")
	if err != nil {
		status, msg := crud.FailureMessage(c, err)
		web.RenderError(c, status, msg)
		return
	}
	if err := h.updateFromForm(c, id); err != nil {
		status, msg := crud.FailureMessage(c, err)
		h.renderForm(c, status, UpdateSpec, "Editar usuario", editPath(id), submitted(c), msg)
		return
	}
	web.RedirectWithMessage(c, Path, "success", "User updated successfully")
}

func (h *Handler) updateFromForm(c *gin.Context, id uint) error {
	who, err := actor(c)
	if err != nil {
		return err
	}
	in, err := utils.InputFromForm(c)
	if err != nil {
		return err
	}
	if _, ok := in["activo"]; !ok {
		in["activo"] = "false"
	}
	v, err := UpdateSpec.Validate(in)
	if err != nil {
		return err
	}
	ch, _ := changes(v)
	_, err = h.svc.Update(c.Request.Context(), who, id, ch)
	return err
}

func (h *Handler) DeactivatePage(c *gin.Context) {
	h.redirectAfter(c, "User deactivated successfully", func(who auth.Identity, id uint) error {
		_, err := h.svc.Deactivate(c.Request.Context(), who, id)
		return err
	})
}

// DeletePage redirects back to the listing with the outcome.
func (h *Handler) DeletePage(c *gin.Context) {
	h.redirectAfter(c, "User deleted successfully", func(who auth.Identity, id uint) error {
		_, err := h.svc.Delete(c.Request.Context(), who, id)
		return err
	})
}

func (h *Handler) redirectAfter(c *gin.Context, success string, op func(who auth.Identity, id uint) error) {
	who, err := actor(c)
	if err == nil {
		var id uint
		if id, err = crud.ParseID(c, "id"); err == nil {
			err = op(who, id)
		}
	}
	if err != nil {
		_, msg := crud.FailureMessage(c, err)
		web.RedirectWithMessage(c, Path, "error", msg)
		return
	}
	web.RedirectWithMessage(c, Path, "success", success)
}

// submitted returns the posted form values for re-rendering.
func submitted(c *gin.Context) map[string]string {
	values := map[string]string{}
	for key, vs := range c.Request.PostForm {
		if len(vs) > 0 && key != "password" {
			values[key] = vs[len(vs)-1]
		}
	}
	return values
}
