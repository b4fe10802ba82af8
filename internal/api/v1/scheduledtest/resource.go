// Package scheduledtest serves the scheduled tests ("citas"), each one an
// experiment booked in a laboratory at a start time.
package scheduledtest

import (
	"context"
	"strconv"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/crud"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
)

const (
	Path = "/citas"

	// formLayout matches the value of a datetime-local input.
	formLayout = "2006-01-02T15:04"
)

// Storage is what scheduled tests need: their own table plus the
// experiments and laboratories offered in the form.
type Storage interface {
	store.ScheduledTestStore
	store.ExperimentStore
	store.LaboratoryStore
}

var Spec = utils.FieldSpec{
	RequiredMessage: "Experiment, laboratory and start time are required",
	Fields: []utils.Field{
		{Name: "id_experimento", Label: "Experimento", Kind: utils.KindUint, Required: true,
			Rules: "gt=0", OptionsKey: "experiments"},
		{Name: "id_laboratorio", Label: "Laboratorio", Kind: utils.KindUint, Required: true,
			Rules: "gt=0", OptionsKey: "laboratories"},
		{Name: "fecha_hora_inicio", Label: "Inicio", Kind: utils.KindTime, Required: true,
			InputType: "datetime-local"},
	},
}

func id(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

func experimentOptions(s store.ExperimentStore) crud.OptionsFunc {
	return func(ctx context.Context) ([]crud.Option, error) {
		exps, err := s.GetAllExperiments(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]crud.Option, 0, len(exps))
		for _, e := range exps {
			opts = append(opts, crud.Option{Value: id(e.ID), Label: e.Name})
		}
		return opts, nil
	}
}

func laboratoryOptions(s store.LaboratoryStore) crud.OptionsFunc {
	return func(ctx context.Context) ([]crud.Option, error) {
		labs, err := s.GetAllLaboratories(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]crud.Option, 0, len(labs))
		for _, l := range labs {
			opts = append(opts, crud.Option{Value: id(l.ID), Label: l.Name})
		}
		return opts, nil
	}
}

func Resource(s Storage) crud.Resource[models.ScheduledTest] {
	return crud.Resource[models.ScheduledTest]{
		Singular: "Scheduled test",
		Title:    "Pruebas programadas",
		PagePath: Path,
		Spec:     Spec,
		Storage: crud.Storage[models.ScheduledTest]{
			List:   s.GetAllScheduledTests,
			Get:    s.GetScheduledTestByID,
			Create: s.CreateScheduledTest,
			Update: s.UpdateScheduledTest,
			Delete: s.DeleteScheduledTest,
		},
		Build: func(v utils.Values) models.ScheduledTest {
			return models.ScheduledTest{
				ExperimentID: v.Uint("id_experimento"),
				LaboratoryID: v.Uint("id_laboratorio"),
				StartsAt:     v.Time("fecha_hora_inicio"),
			}
		},
		FormValues: func(t models.ScheduledTest) map[string]string {
			return map[string]string{
				"id_experimento":    id(t.ExperimentID),
				"id_laboratorio":    id(t.LaboratoryID),
				"fecha_hora_inicio": t.StartsAt.Format(formLayout),
			}
		},
		Columns: []crud.Column[models.ScheduledTest]{
			{Label: "Experimento", Value: func(t models.ScheduledTest) string { return id(t.ExperimentID) }},
			{Label: "Laboratorio", Value: func(t models.ScheduledTest) string { return id(t.LaboratoryID) }},
			{Label: "Inicio", Value: func(t models.ScheduledTest) string { return t.StartsAt.Format("2006-01-02 15:04") }},
		},
		Options: map[string]crud.OptionsFunc{
			"experiments":  experimentOptions(s),
			"laboratories": laboratoryOptions(s),
		},
		ID:     func(t models.ScheduledTest) uint { return t.ID },
		Access: crud.DefaultAccess,
	}
}
