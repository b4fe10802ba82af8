// Package reagent serves the laboratory consumables ("insumos").
package reagent

import (
	"strconv"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/crud"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
)

const Path = "/insumos"

var Spec = utils.FieldSpec{
	RequiredMessage: "All fields are required: nombre, descripcion, precio, stock",
	Fields: []utils.Field{
		{Name: "nombre", Label: "Nombre", Kind: utils.KindString, Required: true, Rules: "max=255"},
		{Name: "descripcion", Label: "Descripción", Kind: utils.KindString, Required: true, InputType: "textarea"},
		{Name: "precio", Label: "Precio", Kind: utils.KindFloat, Required: true,
			Rules: "gte=0,decimals=2,lt=10000000000", Message: "Price cannot be negative",
			Messages: map[string]string{
				"decimals": "Price can have at most 2 decimal places",
				"lt":       "Price is too large",
			},
			InputType: "number"},
		{Name: "stock", Label: "Stock", Kind: utils.KindInt, Required: true,
			Rules: "gte=0", Message: "Stock cannot be negative", InputType: "number"},
		{Name: "fecha_creacion", Label: "Fecha de creación", Kind: utils.KindDate, InputType: "date"},
	},
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func Resource(s store.ReagentStore) crud.Resource[models.Reagent] {
	return crud.Resource[models.Reagent]{
		Singular: "Reagent",
		Title:    "Insumos",
		PagePath: Path,
		Spec:     Spec,
		Storage: crud.Storage[models.Reagent]{
			List:   s.GetAllReagents,
			Get:    s.GetReagentByID,
			Create: s.CreateReagent,
			Update: s.UpdateReagent,
			Delete: s.DeleteReagent,
		},
		Build: func(v utils.Values) models.Reagent {
			return models.Reagent{
				Name:        v.String("nombre"),
				Description: v.String("descripcion"),
				Price:       v.Float("precio"),
				Stock:       v.Int("stock"),
				CreatedOn:   v.Date("fecha_creacion"),
			}
		},
		FormValues: func(r models.Reagent) map[string]string {
			return map[string]string{
				"nombre":         r.Name,
				"descripcion":    r.Description,
				"precio":         formatPrice(r.Price),
				"stock":          strconv.Itoa(r.Stock),
				"fecha_creacion": r.CreatedOn.String(),
			}
		},
		Columns: []crud.Column[models.Reagent]{
			{Label: "Nombre", Value: func(r models.Reagent) string { return r.Name }},
			{Label: "Descripción", Value: func(r models.Reagent) string { return r.Description }},
			{Label: "Precio", Value: func(r models.Reagent) string { return formatPrice(r.Price) }},
			{Label: "Stock", Value: func(r models.Reagent) string { return strconv.Itoa(r.Stock) }},
			{Label: "Creado", Value: func(r models.Reagent) string { return r.CreatedOn.String() }},
		},
		ID:     func(r models.Reagent) uint { return r.ID },
		Access: crud.DefaultAccess,
	}
}
