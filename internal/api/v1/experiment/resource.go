// Package experiment serves the experiments ("examenes").
package experiment

import (
	"fmt"
	"strconv"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/crud"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/thejerf/abtime"
)

const (
	Path = "/examenes"

	// MinYear is the earliest accepted creation year; the latest is
	// YearsAhead after the current one.
	MinYear    = 1900
	YearsAhead = 5
)

// Spec builds the field spec; the upper year bound follows clock.
func Spec(clock abtime.AbstractTime) utils.FieldSpec {
	return utils.FieldSpec{
		RequiredMessage: "All fields are required: nombre, fecha_creacion, duracion_estimada",
		Fields: []utils.Field{
			{Name: "nombre", Label: "Nombre", Kind: utils.KindString, Required: true},
			{
				Name: "fecha_creacion", Label: "Año de creación", Kind: utils.KindInt, Required: true,
				RulesFunc: func() string {
					return fmt.Sprintf("gte=%d,lte=%d", MinYear, clock.Now().Year()+YearsAhead)
				},
				Message:   "Creation year is out of range",
				InputType: "number",
			},
			{Name: "duracion_estimada", Label: "Duración estimada (min)", Kind: utils.KindInt, Required: true,
				Rules: "gt=0", Message: "Estimated duration must be a positive number", InputType: "number"},
		},
	}
}

func Resource(s store.ExperimentStore, clock abtime.AbstractTime) crud.Resource[models.Experiment] {
	return crud.Resource[models.Experiment]{
		Singular: "Experiment",
		Title:    "Experimentos",
		PagePath: Path,
		Spec:     Spec(clock),
		Storage: crud.Storage[models.Experiment]{
			List:   s.GetAllExperiments,
			Get:    s.GetExperimentByID,
			Create: s.CreateExperiment,
			Update: s.UpdateExperiment,
			Delete: s.DeleteExperiment,
		},
		Build: func(v utils.Values) models.Experiment {
			return models.Experiment{
				Name:              v.String("nombre"),
				CreationYear:      v.Int("fecha_creacion"),
				EstimatedDuration: v.Int("duracion_estimada"),
			}
		},
		FormValues: func(e models.Experiment) map[string]string {
			return map[string]string{
				"nombre":            e.Name,
				"fecha_creacion":    strconv.Itoa(e.CreationYear),
				"duracion_estimada": strconv.Itoa(e.EstimatedDuration),
			}
		},
		Columns: []crud.Column[models.Experiment]{
			{Label: "Nombre", Value: func(e models.Experiment) string { return e.Name }},
			{Label: "Año", Value: func(e models.Experiment) string { return strconv.Itoa(e.CreationYear) }},
			{Label: "Duración (min)", Value: func(e models.Experiment) string { return strconv.Itoa(e.EstimatedDuration) }},
		},
		ID:     func(e models.Experiment) uint { return e.ID },
		Access: crud.DefaultAccess,
	}
}
