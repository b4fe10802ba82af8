package store

import (
	"context"
	"fmt"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
)

// Seed loads demo laboratories, experiments, reagents and payment methods.
// It does nothing when laboratories already exist, so it is safe to call on
// every start.
func Seed(ctx context.Context, s Store) error {
	labs, err := s.GetAllLaboratories(ctx)
	if err != nil {
		return err
	}
	if len(labs) > 0 {
		return nil
	}

	for _, lab := range []models.Laboratory{
		{Name: "Laboratorio de Química", Capacity: 20},
		{Name: "Laboratorio de Biología", Capacity: 15},
		{Name: "Laboratorio de Física", Capacity: 25},
	} {
		if _, err := s.CreateLaboratory(ctx, lab); err != nil {
			return fmt.Errorf("seed laboratory %q: %w", lab.Name, err)
		}
	}

	for _, exp := range []models.Experiment{
		{Name: "Experimento de Titulación", CreationYear: 2024, EstimatedDuration: 60},
		{Name: "Cultivo de Bacterias", CreationYear: 2025, EstimatedDuration: 120},
	} {
		if _, err := s.CreateExperiment(ctx, exp); err != nil {
			return fmt.Errorf("seed experiment %q: %w", exp.Name, err)
		}
	}

	for _, r := range []models.Reagent{
		{Name: "Ácido Clorhídrico 1L", Description: "Ácido clorhídrico concentrado para análisis", Price: 15.50, Stock: 100},
		{Name: "Placas Petri (Pack 50)", Description: "Placas de cultivo estériles", Price: 25.00, Stock: 150},
		{Name: "Pipetas Graduadas 10ml", Description: "Set de pipetas graduadas de vidrio", Price: 18.00, Stock: 80},
	} {
		if _, err := s.CreateReagent(ctx, r); err != nil {
			return fmt.Errorf("seed reagent %q: %w", r.Name, err)
		}
	}

	for _, name := range []string{"Efectivo", "Tarjeta de crédito", "Transferencia bancaria"} {
		if _, err := s.CreatePaymentMethod(ctx, models.PaymentMethod{Name: name}); err != nil {
			return fmt.Errorf("seed payment method %q: %w", name, err)
		}
	}
	return nil
}
