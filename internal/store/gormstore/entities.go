package gormstore

import (
	"context"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"gorm.io/gorm"
)

// Laboratories

func (s *Store) GetAllLaboratories(ctx context.Context) ([]models.Laboratory, error) {
	return list[models.Laboratory](ctx, s.db)
}

func (s *Store) GetLaboratoryByID(ctx context.Context, id uint) (*models.Laboratory, error) {
	return get[models.Laboratory](ctx, s.db, id, store.ErrLaboratoryNotFound)
}

func (s *Store) CreateLaboratory(ctx context.Context, lab models.Laboratory) (*models.Laboratory, error) {
	lab.ID = 0
	return create(ctx, s.db, &lab)
}

func (s *Store) UpdateLaboratory(ctx context.Context, id uint, lab models.Laboratory) (*models.Laboratory, error) {
	lab.ID = id
	return replace(ctx, s.db, id, &lab, store.ErrLaboratoryNotFound, nil)
}

func (s *Store) DeleteLaboratory(ctx context.Context, id uint) (*models.Laboratory, error) {
	return remove[models.Laboratory](ctx, s.db, id, store.ErrLaboratoryNotFound)
}

// Experiments

func (s *Store) GetAllExperiments(ctx context.Context) ([]models.Experiment, error) {
	return list[models.Experiment](ctx, s.db)
}

func (s *Store) GetExperimentByID(ctx context.Context, id uint) (*models.Experiment, error) {
	return get[models.Experiment](ctx, s.db, id, store.ErrExperimentNotFound)
}

func (s *Store) CreateExperiment(ctx context.Context, exp models.Experiment) (*models.Experiment, error) {
	exp.ID = 0
	return create(ctx, s.db, &exp)
}

func (s *Store) UpdateExperiment(ctx context.Context, id uint, exp models.Experiment) (*models.Experiment, error) {
	exp.ID = id
	return replace(ctx, s.db, id, &exp, store.ErrExperimentNotFound, nil)
}

func (s *Store) DeleteExperiment(ctx context.Context, id uint) (*models.Experiment, error) {
	return remove[models.Experiment](ctx, s.db, id, store.ErrExperimentNotFound)
}

// Scheduled tests

func (s *Store) GetAllScheduledTests(ctx context.Context) ([]models.ScheduledTest, error) {
	return list[models.ScheduledTest](ctx, s.db)
}

func (s *Store) GetScheduledTestByID(ctx context.Context, id uint) (*models.ScheduledTest, error) {
	return get[models.ScheduledTest](ctx, s.db, id, store.ErrScheduledTestNotFound)
}

func checkTestReferences(tx *gorm.DB, test *models.ScheduledTest) error {
	expOK, err := exists(tx, &models.Experiment{}, test.ExperimentID)
	if err != nil {
		return err
	}
	labOK, err := exists(tx, &models.Laboratory{}, test.LaboratoryID)
	if err != nil {
		return err
	}
	if !expOK || !labOK {
		return store.ErrTestReferences
	}
	return nil
}

func (s *Store) CreateScheduledTest(ctx context.Context, test models.ScheduledTest) (*models.ScheduledTest, error) {
	test.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkTestReferences(tx, &test); err != nil {
			return err
		}
		return tx.Create(&test).Error
	})
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (s *Store) UpdateScheduledTest(ctx context.Context, id uint, test models.ScheduledTest) (*models.ScheduledTest, error) {
	test.ID = id
	return replace(ctx, s.db, id, &test, store.ErrScheduledTestNotFound, func(tx *gorm.DB, _ *models.ScheduledTest) error {
		return checkTestReferences(tx, &test)
	})
}

func (s *Store) DeleteScheduledTest(ctx context.Context, id uint) (*models.ScheduledTest, error) {
	return remove[models.ScheduledTest](ctx, s.db, id, store.ErrScheduledTestNotFound)
}

// Reagents

func (s *Store) GetAllReagents(ctx context.Context) ([]models.Reagent, error) {
	return list[models.Reagent](ctx, s.db)
}

func (s *Store) GetReagentByID(ctx context.Context, id uint) (*models.Reagent, error) {
	return get[models.Reagent](ctx, s.db, id, store.ErrReagentNotFound)
}

func (s *Store) CreateReagent(ctx context.Context, reagent models.Reagent) (*models.Reagent, error) {
	reagent.ID = 0
	if reagent.CreatedOn.IsZero() {
		reagent.CreatedOn = s.today()
	}
	return create(ctx, s.db, &reagent)
}

func (s *Store) UpdateReagent(ctx context.Context, id uint, reagent models.Reagent) (*models.Reagent, error) {
	reagent.ID = id
	return replace(ctx, s.db, id, &reagent, store.ErrReagentNotFound, func(_ *gorm.DB, existing *models.Reagent) error {
		if reagent.CreatedOn.IsZero() {
			reagent.CreatedOn = existing.CreatedOn
		}
		return nil
	})
}

func (s *Store) DeleteReagent(ctx context.Context, id uint) (*models.Reagent, error) {
	return remove[models.Reagent](ctx, s.db, id, store.ErrReagentNotFound)
}

// Payment methods

func (s *Store) GetAllPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	return list[models.PaymentMethod](ctx, s.db)
}

func (s *Store) GetPaymentMethodByID(ctx context.Context, id uint) (*models.PaymentMethod, error) {
	return get[models.PaymentMethod](ctx, s.db, id, store.ErrPaymentMethodNotFound)
}

func (s *Store) CreatePaymentMethod(ctx context.Context, method models.PaymentMethod) (*models.PaymentMethod, error) {
	method.ID = 0
	return create(ctx, s.db, &method)
}

func (s *Store) UpdatePaymentMethod(ctx context.Context, id uint, method models.PaymentMethod) (*models.PaymentMethod, error) {
	method.ID = id
	return replace(ctx, s.db, id, &method, store.ErrPaymentMethodNotFound, nil)
}

func (s *Store) DeletePaymentMethod(ctx context.Context, id uint) (*models.PaymentMethod, error) {
	return remove[models.PaymentMethod](ctx, s.db, id, store.ErrPaymentMethodNotFound)
}
