// Package laboratory serves the laboratories ("areas").
package laboratory

import (
	"strconv"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/crud"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
)

const Path = "/areas"

var Spec = utils.FieldSpec{
	RequiredMessage: "Name and capacity are required",
	Fields: []utils.Field{
		{Name: "nombre", Label: "Nombre", Kind: utils.KindString, Required: true},
		{Name: "capacidad_personas", Label: "Capacidad (personas)", Kind: utils.KindInt, Required: true,
			Rules: "gt=0", Message: "Capacity must be a positive number", InputType: "number"},
	},
}

func Resource(s store.LaboratoryStore) crud.Resource[models.Laboratory] {
	return crud.Resource[models.Laboratory]{
		Singular: "Laboratory",
		Title:    "Laboratorios",
		PagePath: Path,
		Spec:     Spec,
		Storage: crud.Storage[models.Laboratory]{
			List:   s.GetAllLaboratories,
			Get:    s.GetLaboratoryByID,
			Create: s.CreateLaboratory,
			Update: s.UpdateLaboratory,
			Delete: s.DeleteLaboratory,
		},
		Build: func(v utils.Values) models.Laboratory {
			return models.Laboratory{Name: v.String("nombre"), Capacity: v.Int("capacidad_personas")}
		},
		FormValues: func(l models.Laboratory) map[string]string {
			return map[string]string{"nombre": l.Name, "capacidad_personas": strconv.Itoa(l.Capacity)}
		},
		Columns: []crud.Column[models.Laboratory]{
			{Label: "Nombre", Value: func(l models.Laboratory) string { return l.Name }},
			{Label: "Capacidad", Value: func(l models.Laboratory) string { return strconv.Itoa(l.Capacity) }},
		},
		ID:     func(l models.Laboratory) uint { return l.ID },
		Access: crud.DefaultAccess,
	}
}
