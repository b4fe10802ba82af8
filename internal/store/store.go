// Package store defines the storage contract shared by every controller.
// Implementations live in memstore and gormstore; both return apperr-tagged
// errors: NotFound for absent ids, InvalidReference for dangling foreign keys
// and Conflict for duplicate unique fields.
package store

import (
	"context"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
)

// Lists are always ordered by descending id.

type LaboratoryStore interface {
	GetAllLaboratories(ctx context.Context) ([]models.Laboratory, error)
	GetLaboratoryByID(ctx context.Context, id uint) (*models.Laboratory, error)
	CreateLaboratory(ctx context.Context, lab models.Laboratory) (*models.Laboratory, error)
	UpdateLaboratory(ctx context.Context, id uint, lab models.Laboratory) (*models.Laboratory, error)
	DeleteLaboratory(ctx context.Context, id uint) (*models.Laboratory, error)
}

type ExperimentStore interface {
	GetAllExperiments(ctx context.Context) ([]models.Experiment, error)
	GetExperimentByID(ctx context.Context, id uint) (*models.Experiment, error)
	CreateExperiment(ctx context.Context, exp models.Experiment) (*models.Experiment, error)
	UpdateExperiment(ctx context.Context, id uint, exp models.Experiment) (*models.Experiment, error)
	DeleteExperiment(ctx context.Context, id uint) (*models.Experiment, error)
}

type ScheduledTestStore interface {
	GetAllScheduledTests(ctx context.Context) ([]models.ScheduledTest, error)
	GetScheduledTestByID(ctx context.Context, id uint) (*models.ScheduledTest, error)
	CreateScheduledTest(ctx context.Context, test models.ScheduledTest) (*models.ScheduledTest, error)
	UpdateScheduledTest(ctx context.Context, id uint, test models.ScheduledTest) (*models.ScheduledTest, error)
	DeleteScheduledTest(ctx context.Context, id uint) (*models.ScheduledTest, error)
}

type ReagentStore interface {
	GetAllReagents(ctx context.Context) ([]models.Reagent, error)
	GetReagentByID(ctx context.Context, id uint) (*models.Reagent, error)
	// CreateReagent stamps CreatedOn with today's date when it is zero.
	CreateReagent(ctx context.Context, reagent models.Reagent) (*models.Reagent, error)
	UpdateReagent(ctx context.Context, id uint, reagent models.Reagent) (*models.Reagent, error)
	DeleteReagent(ctx context.Context, id uint) (*models.Reagent, error)
}

type OrderStore interface {
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	GetOrderByID(ctx context.Context, id uint) (*models.Order, error)
	// CreateOrder stamps OrderedOn with today's date when it is zero.
	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)
	UpdateOrder(ctx context.Context, id uint, order models.Order) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uint) (*models.Order, error)

	// GetLatestOrders returns up to limit orders, newest order date first.
	GetLatestOrders(ctx context.Context, limit int) ([]models.Order, error)
	// GetOrdersByDateRange returns orders placed between from and to,
	// both days included.
	GetOrdersByDateRange(ctx context.Context, from, to models.Date) ([]models.Order, error)
	// DeleteOrderItem deletes order orderID only if it is for reagentID.
	DeleteOrderItem(ctx context.Context, orderID, reagentID uint) (*models.Order, error)
}

type PaymentMethodStore interface {
	GetAllPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error)
	GetPaymentMethodByID(ctx context.Context, id uint) (*models.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, method models.PaymentMethod) (*models.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, id uint, method models.PaymentMethod) (*models.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id uint) (*models.PaymentMethod, error)
}

type UserStore interface {
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, update models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) (*models.User, error)
}

// Store is the full storage contract.
type Store interface {
	LaboratoryStore
	ExperimentStore
	ScheduledTestStore
	ReagentStore
	OrderStore
	PaymentMethodStore
	UserStore

	Close() error
}
