package crud

import (
	"net/http"
	"strconv"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/gin-gonic/gin"
)

type Handler[T any] struct {
	res Resource[T]
}

func NewHandler[T any](res Resource[T]) *Handler[T] {
	return &Handler[T]{res: res}
}

func (h *Handler[T]) Resource() Resource[T] {
	return h.res
}

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Newf(apperr.Validation, "Invalid %s: %q", name, raw)
	}
	return uint(id), nil
}

func (h *Handler[T]) validate(in utils.Input) (T, error) {
	var zero T
	values, err := h.res.Spec.Validate(in)
	if err != nil {
		return zero, err
	}
	return h.res.Build(values), nil
}

// List returns every item, newest first.
func (h *Handler[T]) List(c *gin.Context) {
	items, err := h.res.Storage.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewListResponse(items, len(items)))
}

func (h *Handler[T]) Get(c *gin.Context) {
	id, err := ParseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	item, err := h.res.Storage.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("", item))
}

func (h *Handler[T]) Create(c *gin.Context) {
	in, err := utils.InputFromJSON(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	item, err := h.validate(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	created, err := h.res.Storage.Create(c.Request.Context(), item)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewSuccessResponse(h.res.Singular+" created successfully", created))
}

func (h *Handler[T]) Update(c *gin.Context) {
	id, err := ParseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	in, err := utils.InputFromJSON(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	item, err := h.validate(in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	updated, err := h.res.Storage.Update(c.Request.Context(), id, item)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(h.res.Singular+" updated successfully", updated))
}

func (h *Handler[T]) Delete(c *gin.Context) {
	id, err := ParseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	deleted, err := h.res.Storage.Delete(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(h.res.Singular+" deleted successfully", deleted))
}
