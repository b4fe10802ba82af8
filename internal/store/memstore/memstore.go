// Package memstore is an in-process implementation of store.Store. It is
// the default for development and demos; every table lives behind one
// mutex and ids come from per-table counters that are never reused.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/thejerf/abtime"
)

// table holds one entity's rows keyed by id.
type table[T any] struct {
	rows   map[uint]T
	nextID uint
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[uint]T{}, nextID: 1}
}

func (t *table[T]) insert(row T, setID func(*T, uint)) T {
	id := t.nextID
	t.nextID++
	setID(&row, id)
	t.rows[id] = row
	return row
}

// list returns a copy of every row, highest id first.
func (t *table[T]) list() []T {
	ids := make([]uint, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

// Store is the in-memory backend. The zero value is not usable; call New.
type Store struct {
	clock abtime.AbstractTime

	mu             sync.RWMutex
	laboratories   *table[models.Laboratory]
	experiments    *table[models.Experiment]
	scheduledTests *table[models.ScheduledTest]
	reagents       *table[models.Reagent]
	orders         *table[models.Order]
	paymentMethods *table[models.PaymentMethod]
	users          *table[models.User]
}

var _ store.Store = (*Store)(nil)

type Option func(*Store)

// WithClock sets the clock used for creation dates and user timestamps.
func WithClock(clock abtime.AbstractTime) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

func New(opts ...Option) *Store {
	s := &Store{clock: abtime.NewRealTime()}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset drops every record and restarts the id counters.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.laboratories = newTable[models.Laboratory]()
	s.experiments = newTable[models.Experiment]()
	s.scheduledTests = newTable[models.ScheduledTest]()
	s.reagents = newTable[models.Reagent]()
	s.orders = newTable[models.Order]()
	s.paymentMethods = newTable[models.PaymentMethod]()
	s.users = newTable[models.User]()
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) today() models.Date {
	return models.NewDate(s.clock.Now())
}

// Laboratories

func (s *Store) GetAllLaboratories(ctx context.Context) ([]models.Laboratory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.laboratories.list(), nil
}

func (s *Store) GetLaboratoryByID(ctx context.Context, id uint) (*models.Laboratory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lab, ok := s.laboratories.rows[id]
	if !ok {
		return nil, store.ErrLaboratoryNotFound
	}
	return &lab, nil
}

func (s *Store) CreateLaboratory(ctx context.Context, lab models.Laboratory) (*models.Laboratory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.laboratories.insert(lab, func(l *models.Laboratory, id uint) { l.ID = id })
	return &created, nil
}

func (s *Store) UpdateLaboratory(ctx context.Context, id uint, lab models.Laboratory) (*models.Laboratory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.laboratories.rows[id]; !ok {
		return nil, store.ErrLaboratoryNotFound
	}
	lab.ID = id
	s.laboratories.rows[id] = lab
	return &lab, nil
}

func (s *Store) DeleteLaboratory(ctx context.Context, id uint) (*models.Laboratory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lab, ok := s.laboratories.rows[id]
	if !ok {
		return nil, store.ErrLaboratoryNotFound
	}
	delete(s.laboratories.rows, id)
	return &lab, nil
}

// Experiments

func (s *Store) GetAllExperiments(ctx context.Context) ([]models.Experiment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.experiments.list(), nil
}

func (s *Store) GetExperimentByID(ctx context.Context, id uint) (*models.Experiment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exp, ok := s.experiments.rows[id]
	if !ok {
		return nil, store.ErrExperimentNotFound
	}
	return &exp, nil
}

func (s *Store) CreateExperiment(ctx context.Context, exp models.Experiment) (*models.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.experiments.insert(exp, func(e *models.Experiment, id uint) { e.ID = id })
	return &created, nil
}

func (s *Store) UpdateExperiment(ctx context.Context, id uint, exp models.Experiment) (*models.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.experiments.rows[id]; !ok {
		return nil, store.ErrExperimentNotFound
	}
	exp.ID = id
	s.experiments.rows[id] = exp
	return &exp, nil
}

func (s *Store) DeleteExperiment(ctx context.Context, id uint) (*models.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.experiments.rows[id]
	if !ok {
		return nil, store.ErrExperimentNotFound
	}
	delete(s.experiments.rows, id)
	return &exp, nil
}

// Scheduled tests

func (s *Store) GetAllScheduledTests(ctx context.Context) ([]models.ScheduledTest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scheduledTests.list(), nil
}

func (s *Store) GetScheduledTestByID(ctx context.Context, id uint) (*models.ScheduledTest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	test, ok := s.scheduledTests.rows[id]
	if !ok {
		return nil, store.ErrScheduledTestNotFound
	}
	return &test, nil
}

// checkTestReferences must be called with s.mu held.
func (s *Store) checkTestReferences(test models.ScheduledTest) error {
	_, expOK := s.experiments.rows[test.ExperimentID]
	_, labOK := s.laboratories.rows[test.LaboratoryID]
	if !expOK || !labOK {
		return store.ErrTestReferences
	}
	return nil
}

func (s *Store) CreateScheduledTest(ctx context.Context, test models.ScheduledTest) (*models.ScheduledTest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkTestReferences(test); err != nil {
		return nil, err
	}
	created := s.scheduledTests.insert(test, func(t *models.ScheduledTest, id uint) { t.ID = id })
	return &created, nil
}

func (s *Store) UpdateScheduledTest(ctx context.Context, id uint, test models.ScheduledTest) (*models.ScheduledTest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scheduledTests.rows[id]; !ok {
		return nil, store.ErrScheduledTestNotFound
	}
	if err := s.checkTestReferences(test); err != nil {
		return nil, err
	}
	test.ID = id
	s.scheduledTests.rows[id] = test
	return &test, nil
}

func (s *Store) DeleteScheduledTest(ctx context.Context, id uint) (*models.ScheduledTest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	test, ok := s.scheduledTests.rows[id]
	if !ok {
		return nil, store.ErrScheduledTestNotFound
	}
	delete(s.scheduledTests.rows, id)
	return &test, nil
}

// Reagents

func (s *Store) GetAllReagents(ctx context.Context) ([]models.Reagent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reagents.list(), nil
}

func (s *Store) GetReagentByID(ctx context.Context, id uint) (*models.Reagent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reagent, ok := s.reagents.rows[id]
	if !ok {
		return nil, store.ErrReagentNotFound
	}
	return &reagent, nil
}

func (s *Store) CreateReagent(ctx context.Context, reagent models.Reagent) (*models.Reagent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reagent.CreatedOn.IsZero() {
		reagent.CreatedOn = s.today()
	}
	created := s.reagents.insert(reagent, func(r *models.Reagent, id uint) { r.ID = id })
	return &created, nil
}

func (s *Store) UpdateReagent(ctx context.Context, id uint, reagent models.Reagent) (*models.Reagent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.reagents.rows[id]
	if !ok {
		return nil, store.ErrReagentNotFound
	}
	if reagent.CreatedOn.IsZero() {
		reagent.CreatedOn = existing.CreatedOn
	}
	reagent.ID = id
	s.reagents.rows[id] = reagent
	return &reagent, nil
}

func (s *Store) DeleteReagent(ctx context.Context, id uint) (*models.Reagent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reagent, ok := s.reagents.rows[id]
	if !ok {
		return nil, store.ErrReagentNotFound
	}
	delete(s.reagents.rows, id)
	return &reagent, nil
}

// Orders

func (s *Store) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders.list(), nil
}

func (s *Store) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders.rows[id]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	return &order, nil
}

func (s *Store) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reagents.rows[order.ReagentID]; !ok {
		return nil, store.ErrOrderReference
	}
	if order.OrderedOn.IsZero() {
		order.OrderedOn = s.today()
	}
	created := s.orders.insert(order, func(o *models.Order, id uint) { o.ID = id })
	return &created, nil
}

func (s *Store) UpdateOrder(ctx context.Context, id uint, order models.Order) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.orders.rows[id]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	if _, ok := s.reagents.rows[order.ReagentID]; !ok {
		return nil, store.ErrOrderReference
	}
	if order.OrderedOn.IsZero() {
		order.OrderedOn = existing.OrderedOn
	}
	order.ID = id
	s.orders.rows[id] = order
	return &order, nil
}

func (s *Store) DeleteOrder(ctx context.Context, id uint) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders.rows[id]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	delete(s.orders.rows, id)
	return &order, nil
}

func (s *Store) GetLatestOrders(ctx context.Context, limit int) ([]models.Order, error) {
	s.mu.RLock()
	orders := s.orders.list()
	s.mu.RUnlock()

	// list is already id-descending, so a stable sort on date keeps that
	// as the tie-breaker.
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderedOn.After(orders[j].OrderedOn.Time)
	})
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (s *Store) GetOrdersByDateRange(ctx context.Context, from, to models.Date) ([]models.Order, error) {
	s.mu.RLock()
	all := s.orders.list()
	s.mu.RUnlock()

	orders := make([]models.Order, 0, len(all))
	for _, o := range all {
		if o.OrderedOn.Before(from.Time) || o.OrderedOn.After(to.Time) {
			continue
		}
		orders = append(orders, o)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderedOn.After(orders[j].OrderedOn.Time)
	})
	return orders, nil
}

func (s *Store) DeleteOrderItem(ctx context.Context, orderID, reagentID uint) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders.rows[orderID]
	if !ok || order.ReagentID != reagentID {
		return nil, store.ErrOrderItemNotFound
	}
	delete(s.orders.rows, orderID)
	return &order, nil
}

// Payment methods

func (s *Store) GetAllPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paymentMethods.list(), nil
}

func (s *Store) GetPaymentMethodByID(ctx context.Context, id uint) (*models.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	method, ok := s.paymentMethods.rows[id]
	if !ok {
		return nil, store.ErrPaymentMethodNotFound
	}
	return &method, nil
}

func (s *Store) CreatePaymentMethod(ctx context.Context, method models.PaymentMethod) (*models.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.paymentMethods.insert(method, func(m *models.PaymentMethod, id uint) { m.ID = id })
	return &created, nil
}

func (s *Store) UpdatePaymentMethod(ctx context.Context, id uint, method models.PaymentMethod) (*models.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.paymentMethods.rows[id]; !ok {
		return nil, store.ErrPaymentMethodNotFound
	}
	method.ID = id
	s.paymentMethods.rows[id] = method
	return &method, nil
}

func (s *Store) DeletePaymentMethod(ctx context.Context, id uint) (*models.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	method, ok := s.paymentMethods.rows[id]
	if !ok {
		return nil, store.ErrPaymentMethodNotFound
	}
	delete(s.paymentMethods.rows, id)
	return &method, nil
}
