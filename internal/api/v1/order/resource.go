// Package order serves the reagent orders ("pedidos"). Unlike the other
// resources every route requires a signed-in user, listing included.
package order

import (
	"context"
	"strconv"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/crud"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
)

const (
	Path = "/ordenes"

	// LatestLimit is how many orders the public feed and the dashboard show.
	LatestLimit = 5
)

// Storage is what orders need: their own table plus the reagents offered in
// the form.
type Storage interface {
	store.OrderStore
	store.ReagentStore
}

var Spec = utils.FieldSpec{
	RequiredMessage: "Product and quantity are required",
	Fields: []utils.Field{
		{Name: "producto_id", Label: "Producto", Kind: utils.KindUint, Required: true,
			Rules: "gt=0", OptionsKey: "reagents"},
		{Name: "cantidad", Label: "Cantidad", Kind: utils.KindInt, Required: true,
			Rules: "gt=0", Message: "Quantity must be a positive number", InputType: "number"},
		{Name: "fecha_pedido", Label: "Fecha del pedido", Kind: utils.KindDate, InputType: "date"},
	},
}

var access = crud.Access{Read: models.RoleUser, Write: models.RoleUser, Delete: models.RoleAdmin}

func reagentOptions(s store.ReagentStore) crud.OptionsFunc {
	return func(ctx context.Context) ([]crud.Option, error) {
		reagents, err := s.GetAllReagents(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]crud.Option, 0, len(reagents))
		for _, r := range reagents {
			opts = append(opts, crud.Option{Value: strconv.FormatUint(uint64(r.ID), 10), Label: r.Name})
		}
		return opts, nil
	}
}

func Resource(s Storage) crud.Resource[models.Order] {
	return crud.Resource[models.Order]{
		Singular: "Order",
		Title:    "Pedidos",
		PagePath: Path,
		Spec:     Spec,
		Storage: crud.Storage[models.Order]{
			List:   s.GetAllOrders,
			Get:    s.GetOrderByID,
			Create: s.CreateOrder,
			Update: s.UpdateOrder,
			Delete: s.DeleteOrder,
		},
		Build: func(v utils.Values) models.Order {
			return models.Order{
				ReagentID: v.Uint("producto_id"),
				Quantity:  v.Int("cantidad"),
				OrderedOn: v.Date("fecha_pedido"),
			}
		},
		FormValues: func(o models.Order) map[string]string {
			return map[string]string{
				"producto_id":  strconv.FormatUint(uint64(o.ReagentID), 10),
				"cantidad":     strconv.Itoa(o.Quantity),
				"fecha_pedido": o.OrderedOn.String(),
			}
		},
		Columns: []crud.Column[models.Order]{
			{Label: "Producto", Value: func(o models.Order) string { return strconv.FormatUint(uint64(o.ReagentID), 10) }},
			{Label: "Cantidad", Value: func(o models.Order) string { return strconv.Itoa(o.Quantity) }},
			{Label: "Fecha", Value: func(o models.Order) string { return o.OrderedOn.String() }},
		},
		Options: map[string]crud.OptionsFunc{"reagents": reagentOptions(s)},
		ID:      func(o models.Order) uint { return o.ID },
		Access:  access,
	}
}
