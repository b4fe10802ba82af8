package crud

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/web"
	"github.com/gin-gonic/gin"
)

// Row is one line of the listing page.
type Row struct {
	ID    uint
	Cells []string
}

// RowAction is an extra per-row POST button on the listing page, posted to
// {base}/{id}/{Path}.
type RowAction struct {
	Label string
	Path  string
}

// FormField is a Field ready for the form template.
type FormField struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Checked  bool
	Required bool
	Options  []Option
}

func allowed(c *gin.Context, role models.Role) bool {
	if role == "" {
		return true
	}
	id, ok := auth.FromContext(c.Request.Context())
	return ok && id.Role.Satisfies(role)
}

// ListPage renders the listing. Storage failures show the error page.
func (h *Handler[T]) ListPage(c *gin.Context) {
	items, err := h.res.Storage.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		web.RenderError(c, http.StatusInternalServerError, "Could not load "+h.res.Title+": "+err.Error())
		return
	}

	labels := make([]string, 0, len(h.res.Columns))
	for _, col := range h.res.Columns {
		labels = append(labels, col.Label)
	}
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		cells := make([]string, 0, len(h.res.Columns))
		for _, col := range h.res.Columns {
			cells = append(cells, col.Value(item))
		}
		rows = append(rows, Row{ID: h.res.ID(item), Cells: cells})
	}

	web.Render(c, http.StatusOK, "list.html", gin.H{
		"Title":     h.res.Title,
		"BasePath":  h.res.PagePath,
		"Columns":   labels,
		"Rows":      rows,
		"CanWrite":  allowed(c, h.res.Access.Write) && h.res.Access.Write != "",
		"CanDelete": allowed(c, h.res.Access.Delete) && h.res.Access.Delete != "",
		"Success":   c.Query("success"),
		"Error":     c.Query("error"),
	})
}

// FormFields prepares spec for the form template, filling in values and
// loading the choices of select inputs from options.
func FormFields(ctx context.Context, spec utils.FieldSpec, options map[string]OptionsFunc, values map[string]string) ([]FormField, error) {
	fields := make([]FormField, 0, len(spec.Fields))
	for _, f := range spec.Fields {
		ff := FormField{
			Name:     f.Name,
			Label:    f.Label,
			Type:     f.InputType,
			Value:    values[f.Name],
			Required: f.Required,
		}
		if ff.Label == "" {
			ff.Label = f.Name
		}
		if ff.Type == "" {
			ff.Type = "text"
		}
		if f.Secret {
			ff.Value = ""
		}
		if ff.Type == "checkbox" {
			ff.Checked = values[f.Name] == "true" || values[f.Name] == "on"
		}
		if f.OptionsKey != "" {
			load, ok := options[f.OptionsKey]
			if !ok {
				return nil, fmt.Errorf("no options registered for %q", f.OptionsKey)
			}
			opts, err := load(ctx)
			if err != nil {
				return nil, err
			}
			for i := range opts {
				opts[i].Selected = opts[i].Value == ff.Value
			}
			ff.Options = opts
		}
		fields = append(fields, ff)
	}
	return fields, nil
}

// renderForm shows the create or edit form. message is shown as an error
// when set.
func (h *Handler[T]) renderForm(c *gin.Context, status int, title, action string, values map[string]string, message string) {
	fields, err := FormFields(c.Request.Context(), h.res.Spec, h.res.Options, values)
	if err != nil {
		_ = c.Error(err)
		web.RenderError(c, http.StatusInternalServerError, "Could not load form: "+err.Error())
		return
	}
	web.Render(c, status, "form.html", gin.H{
		"Title":      title,
		"Action":     action,
		"Fields":     fields,
		"Error":      message,
		"CancelPath": h.res.PagePath,
	})
}

func (h *Handler[T]) newTitle() string {
	return "Nuevo registro · " + h.res.Title
}

func (h *Handler[T]) editTitle() string {
	return "Editar registro · " + h.res.Title
}

// FailureMessage is the status and text shown on a re-rendered form.
func FailureMessage(c *gin.Context, err error) (int, string) {
	kind := apperr.KindOf(err)
	status := utils.StatusFor(kind)
	if kind == apperr.Internal {
		_ = c.Error(err)
		return status, "Internal server error: " + err.Error()
	}
	return status, apperr.MessageOf(err, kind.String())
}

func (h *Handler[T]) NewPage(c *gin.Context) {
	h.renderForm(c, http.StatusOK, h.newTitle(), h.res.PagePath, map[string]string{}, "")
}

// CreatePage handles the create form. Failures re-render the form with the
// submitted values.
func (h *Handler[T]) CreatePage(c *gin.Context) {
	in, err := utils.InputFromForm(c)
	if err != nil {
		status, msg := FailureMessage(c, err)
		h.renderForm(c, status, h.newTitle(), h.res.PagePath, map[string]string{}, msg)
		return
	}
	item, err := h.validate(in)
	if err == nil {
		_, err = h.res.Storage.Create(c.Request.Context(), item)
	}
	if err != nil {
		status, msg := FailureMessage(c, err)
		h.renderForm(c, status, h.newTitle(), h.res.PagePath, in.Strings(), msg)
		return
	}
	web.RedirectWithMessage(c, h.res.PagePath, "success", h.res.Singular+" created successfully")
}

func (h *Handler[T]) EditPage(c *gin.Context) {
	id, err := ParseID(c, "id")
	if err != nil {
		web.RenderError(c, http.StatusBadRequest, apperr.MessageOf(err, "Invalid id"))
		return
	}
	item, err := h.res.Storage.Get(c.Request.Context(), id)
	if err != nil {
		status, msg := FailureMessage(c, err)
		web.RenderError(c, status, msg)
		return
	}
	h.renderForm(c, http.StatusOK, h.editTitle(), h.editAction(id), h.res.FormValues(*item), "")
}

func (h *Handler[T]) editAction(id uint) string {
	return fmt.Sprintf("%s/%d/editar", h.res.PagePath, id)
}

func (h *Handler[T]) UpdatePage(c *gin.Context) {
	id, err := ParseID(c, "id")
	if err != nil {
		web.RenderError(c, http.StatusBadRequest, apperr.MessageOf(err, "Invalid id"))
		return
	}
	in, err := utils.InputFromForm(c)
	if err != nil {
		status, msg := FailureMessage(c, err)
		h.renderForm(c, status, h.editTitle(), h.editAction(id), map[string]string{}, msg)
		return
	}
	item, err := h.validate(in)
	if err == nil {
		_, err = h.res.Storage.Update(c.Request.Context(), id, item)
	}
	if err != nil {
		status, msg := FailureMessage(c, err)
		h.renderForm(c, status, h.editTitle(), h.editAction(id), in.Strings(), msg)
		return
	}
	web.RedirectWithMessage(c, h.res.PagePath, "success", h.res.Singular+" updated successfully")
}

// DeletePage never renders an error page; the outcome goes back to the
// listing as a query parameter.
func (h *Handler[T]) DeletePage(c *gin.Context) {
	id, err := ParseID(c, "id")
	if err == nil {
		_, err = h.res.Storage.Delete(c.Request.Context(), id)
	}
	if err != nil {
		_, msg := FailureMessage(c, err)
		web.RedirectWithMessage(c, h.res.PagePath, "error", msg)
		return
	}
	web.RedirectWithMessage(c, h.res.PagePath, "success", h.res.Singular+" deleted successfully")
}
