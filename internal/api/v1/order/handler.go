package order

import (
	"net/http"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/crud"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/gin-gonic/gin"
)

// Handler adds the order queries that have no counterpart in the generic
// controller.
type Handler struct {
	orders store.OrderStore
}

func NewHandler(orders store.OrderStore) *Handler {
	return &Handler{orders: orders}
}

// Latest godoc
// @Summary Latest orders
// @Description The most recent orders, newest order date first.
// @Tags orders
// @Produce json
// @Success 200 {object} utils.Response{data=[]models.Order}
// @Failure 500 {object} utils.Response
// @Router /ordenes/ultimos [get]
func (h *Handler) Latest(c *gin.Context) {
	orders, err := h.orders.GetLatestOrders(c.Request.Context(), LatestLimit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewListResponse(orders, len(orders)))
}

// ByDateRange godoc
// @Summary Orders between two dates
// @Description Orders placed between inicio and fin, both days included.
// @Tags orders
// @Produce json
// @Security Bearer
// @Param inicio query string true "First day (YYYY-MM-DD)"
// @Param fin query string true "Last day (YYYY-MM-DD)"
// @Success 200 {object} utils.Response{data=[]models.Order}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /ordenes/rango-fechas [get]
func (h *Handler) ByDateRange(c *gin.Context) {
	rawFrom, rawTo := c.Query("inicio"), c.Query("fin")
	if rawFrom == "" || rawTo == "" {
		utils.RespondError(c, apperr.New(apperr.Validation, "Both inicio and fin dates are required"))
		return
	}
	from, err := models.ParseDate(rawFrom)
	if err != nil {
		utils.RespondError(c, apperr.Wrap(apperr.Validation, "inicio must be a YYYY-MM-DD date", err))
		return
	}
	to, err := models.ParseDate(rawTo)
	if err != nil {
		utils.RespondError(c, apperr.Wrap(apperr.Validation, "fin must be a YYYY-MM-DD date", err))
		return
	}
	if to.Before(from.Time) {
		utils.RespondError(c, apperr.New(apperr.Validation, "fin cannot be before inicio"))
		return
	}

	orders, err := h.orders.GetOrdersByDateRange(c.Request.Context(), from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewListResponse(orders, len(orders)))
}

// DeleteItem godoc
// @Summary Delete an order for a given product
// @Description Deletes order id only when it is for productoId. Admin only.
// @Tags orders
// @Produce json
// @Security Bearer
// @Param id path int true "Order ID"
// @Param productoId path int true "Reagent ID"
// @Success 200 {object} utils.Response{data=models.Order}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /ordenes/{id}/producto/{productoId} [delete]
func (h *Handler) DeleteItem(c *gin.Context) {
	orderID, err := crud.ParseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	reagentID, err := crud.ParseID(c, "productoId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	deleted, err := h.orders.DeleteOrderItem(c.Request.Context(), orderID, reagentID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Order deleted successfully", deleted))
}
