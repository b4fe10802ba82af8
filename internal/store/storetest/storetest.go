// Package storetest is the behavioural suite every store.Store backend must
// pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. It is called once per subtest.
type Factory func(t *testing.T) store.Store

func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"LaboratoryLifecycle", testLaboratoryLifecycle},
		{"ExperimentLifecycle", testExperimentLifecycle},
		{"ScheduledTestReferences", testScheduledTestReferences},
		{"ReagentLifecycle", testReagentLifecycle},
		{"OrderReferences", testOrderReferences},
		{"OrderQueries", testOrderQueries},
		{"PaymentMethodLifecycle", testPaymentMethodLifecycle},
		{"UserLifecycle", testUserLifecycle},
		{"IdentifiersNotReused", testIdentifiersNotReused},
		{"Seed", testSeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { s.Close() })
			tt.fn(t, s)
		})
	}
}

func testLaboratoryLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.CreateLaboratory(ctx, models.Laboratory{Name: "Química", Capacity: 20})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := s.GetLaboratoryByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	updated, err := s.UpdateLaboratory(ctx, created.ID, models.Laboratory{Name: "Química II", Capacity: 30})
	require.NoError(t, err)
	assert.Equal(t, models.Laboratory{ID: created.ID, Name: "Química II", Capacity: 30}, *updated)

	_, err = s.UpdateLaboratory(ctx, 99999, models.Laboratory{Name: "x", Capacity: 1})
	assert.ErrorIs(t, err, store.ErrLaboratoryNotFound)

	deleted, err := s.DeleteLaboratory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = s.GetLaboratoryByID(ctx, created.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = s.DeleteLaboratory(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrLaboratoryNotFound)
}

func testExperimentLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	first, err := s.CreateExperiment(ctx, models.Experiment{Name: "Titulación", CreationYear: 2024, EstimatedDuration: 60})
	require.NoError(t, err)
	second, err := s.CreateExperiment(ctx, models.Experiment{Name: "Cultivo", CreationYear: 2025, EstimatedDuration: 120})
	require.NoError(t, err)

	all, err := s.GetAllExperiments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	got, err := s.GetExperimentByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Experiment{ID: first.ID, Name: "Titulación", CreationYear: 2024, EstimatedDuration: 60}, *got)

	_, err = s.DeleteExperiment(ctx, first.ID)
	require.NoError(t, err)
	_, err = s.GetExperimentByID(ctx, first.ID)
	assert.ErrorIs(t, err, store.ErrExperimentNotFound)
}

func testScheduledTestReferences(t *testing.T, s store.Store) {
	ctx := context.Background()

	exp, err := s.CreateExperiment(ctx, models.Experiment{Name: "Titulación", CreationYear: 2024, EstimatedDuration: 60})
	require.NoError(t, err)
	lab, err := s.CreateLaboratory(ctx, models.Laboratory{Name: "Química", Capacity: 20})
	require.NoError(t, err)
	start := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	_, err = s.CreateScheduledTest(ctx, models.ScheduledTest{ExperimentID: 99999, LaboratoryID: lab.ID, StartsAt: start})
	assert.ErrorIs(t, err, store.ErrTestReferences)
	assert.Equal(t, apperr.InvalidReference, apperr.KindOf(err))
	_, err = s.CreateScheduledTest(ctx, models.ScheduledTest{ExperimentID: exp.ID, LaboratoryID: 99999, StartsAt: start})
	assert.ErrorIs(t, err, store.ErrTestReferences)

	all, err := s.GetAllScheduledTests(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	created, err := s.CreateScheduledTest(ctx, models.ScheduledTest{ExperimentID: exp.ID, LaboratoryID: lab.ID, StartsAt: start})
	require.NoError(t, err)

	got, err := s.GetScheduledTestByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, exp.ID, got.ExperimentID)
	assert.Equal(t, lab.ID, got.LaboratoryID)
	assert.True(t, start.Equal(got.StartsAt), "start %v != %v", start, got.StartsAt)

	_, err = s.UpdateScheduledTest(ctx, created.ID, models.ScheduledTest{ExperimentID: 99999, LaboratoryID: lab.ID, StartsAt: start})
	assert.ErrorIs(t, err, store.ErrTestReferences)

	// Deleting a referenced experiment does not cascade.
	_, err = s.DeleteExperiment(ctx, exp.ID)
	require.NoError(t, err)
	_, err = s.GetScheduledTestByID(ctx, created.ID)
	assert.NoError(t, err)

	_, err = s.DeleteScheduledTest(ctx, created.ID)
	require.NoError(t, err)
	_, err = s.GetScheduledTestByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrScheduledTestNotFound)
}

func testReagentLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	older, err := s.CreateReagent(ctx, models.Reagent{Name: "Pipetas", Description: "Vidrio", Price: 18, Stock: 80})
	require.NoError(t, err)
	created, err := s.CreateReagent(ctx, models.Reagent{Name: "X", Description: "Y", Price: 10, Stock: 5})
	require.NoError(t, err)
	assert.False(t, created.CreatedOn.IsZero())

	all, err := s.GetAllReagents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, created.ID, all[0].ID)
	assert.Equal(t, older.ID, all[1].ID)

	got, err := s.GetReagentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Name)
	assert.Equal(t, "Y", got.Description)
	assert.InDelta(t, 10.0, got.Price, 0.001)
	assert.Equal(t, 5, got.Stock)
	assert.Equal(t, created.CreatedOn.String(), got.CreatedOn.String())

	updated, err := s.UpdateReagent(ctx, created.ID, models.Reagent{Name: "X2", Description: "Y2", Price: 12.5, Stock: 0})
	require.NoError(t, err)
	assert.Equal(t, created.CreatedOn.String(), updated.CreatedOn.String())

	got, err = s.GetReagentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
	assert.InDelta(t, 12.5, got.Price, 0.001)

	_, err = s.DeleteReagent(ctx, created.ID)
	require.NoError(t, err)
	_, err = s.GetReagentByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrReagentNotFound)
}

func testOrderReferences(t *testing.T, s store.Store) {
	ctx := context.Background()

	reagent, err := s.CreateReagent(ctx, models.Reagent{Name: "X", Description: "Y", Price: 10, Stock: 5})
	require.NoError(t, err)

	order, err := s.CreateOrder(ctx, models.Order{ReagentID: reagent.ID, Quantity: 2})
	require.NoError(t, err)
	assert.False(t, order.OrderedOn.IsZero())

	_, err = s.CreateOrder(ctx, models.Order{ReagentID: 99999, Quantity: 2})
	assert.ErrorIs(t, err, store.ErrOrderReference)

	all, err := s.GetAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got, err := s.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, reagent.ID, got.ReagentID)
	assert.Equal(t, 2, got.Quantity)

	_, err = s.UpdateOrder(ctx, order.ID, models.Order{ReagentID: 99999, Quantity: 3})
	assert.ErrorIs(t, err, store.ErrOrderReference)

	updated, err := s.UpdateOrder(ctx, order.ID, models.Order{ReagentID: reagent.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, order.OrderedOn.String(), updated.OrderedOn.String())

	_, err = s.DeleteOrder(ctx, order.ID)
	require.NoError(t, err)
	_, err = s.GetOrderByID(ctx, order.ID)
	assert.ErrorIs(t, err, store.ErrOrderNotFound)
}

func testOrderQueries(t *testing.T, s store.Store) {
	ctx := context.Background()

	reagent, err := s.CreateReagent(ctx, models.Reagent{Name: "X", Description: "Y", Price: 1, Stock: 1})
	require.NoError(t, err)
	other, err := s.CreateReagent(ctx, models.Reagent{Name: "Z", Description: "W", Price: 1, Stock: 1})
	require.NoError(t, err)

	day := func(d int) models.Date {
		return models.NewDate(time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC))
	}
	var ids []uint
	for _, o := range []models.Order{
		{ReagentID: reagent.ID, Quantity: 1, OrderedOn: day(5)},
		{ReagentID: reagent.ID, Quantity: 2, OrderedOn: day(1)},
		{ReagentID: other.ID, Quantity: 3, OrderedOn: day(5)},
		{ReagentID: reagent.ID, Quantity: 4, OrderedOn: day(3)},
		{ReagentID: reagent.ID, Quantity: 5, OrderedOn: day(9)},
		{ReagentID: reagent.ID, Quantity: 6, OrderedOn: day(2)},
	} {
		created, err := s.CreateOrder(ctx, o)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	latest, err := s.GetLatestOrders(ctx, 5)
	require.NoError(t, err)
	require.Len(t, latest, 5)
	// Newest date first, ties broken by id descending.
	assert.Equal(t, []uint{ids[4], ids[2], ids[0], ids[3], ids[5]}, orderIDs(latest))

	inRange, err := s.GetOrdersByDateRange(ctx, day(2), day(5))
	require.NoError(t, err)
	assert.Equal(t, []uint{ids[2], ids[0], ids[3], ids[5]}, orderIDs(inRange))

	_, err = s.DeleteOrderItem(ctx, ids[2], reagent.ID)
	assert.ErrorIs(t, err, store.ErrOrderItemNotFound)

	deleted, err := s.DeleteOrderItem(ctx, ids[2], other.ID)
	require.NoError(t, err)
	assert.Equal(t, ids[2], deleted.ID)
	_, err = s.GetOrderByID(ctx, ids[2])
	assert.ErrorIs(t, err, store.ErrOrderNotFound)
}

func orderIDs(orders []models.Order) []uint {
	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}

func testPaymentMethodLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.CreatePaymentMethod(ctx, models.PaymentMethod{Name: "Efectivo"})
	require.NoError(t, err)

	got, err := s.GetPaymentMethodByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethod{ID: created.ID, Name: "Efectivo"}, *got)

	_, err = s.UpdatePaymentMethod(ctx, created.ID, models.PaymentMethod{Name: "Tarjeta"})
	require.NoError(t, err)
	got, err = s.GetPaymentMethodByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tarjeta", got.Name)

	_, err = s.DeletePaymentMethod(ctx, created.ID)
	require.NoError(t, err)
	_, err = s.GetPaymentMethodByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrPaymentMethodNotFound)
}

func testUserLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()

	alice, err := s.CreateUser(ctx, models.User{Username: "alice", Email: "alice@x.com", PasswordHash: "h", Role: models.RoleUser, Active: true})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, models.User{Username: "alice", Email: "other@x.com", PasswordHash: "h", Role: models.RoleUser, Active: true})
	assert.ErrorIs(t, err, store.ErrUsernameTaken)
	_, err = s.CreateUser(ctx, models.User{Username: "alice2", Email: "alice@x.com", PasswordHash: "h", Role: models.RoleUser, Active: true})
	assert.ErrorIs(t, err, store.ErrEmailTaken)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	byName, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byName.ID)
	byEmail, err := s.GetUserByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byEmail.ID)
	_, err = s.GetUserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	bob, err := s.CreateUser(ctx, models.User{Username: "bob", Email: "bob@x.com", PasswordHash: "h", Role: models.RoleUser, Active: false})
	require.NoError(t, err)
	got, err := s.GetUserByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	taken := "alice"
	_, err = s.UpdateUser(ctx, bob.ID, models.UserUpdate{Username: &taken})
	assert.ErrorIs(t, err, store.ErrUsernameTaken)

	admin := models.RoleAdmin
	active := true
	same := "bob"
	updated, err := s.UpdateUser(ctx, bob.ID, models.UserUpdate{Username: &same, Role: &admin, Active: &active})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.True(t, updated.Active)
	assert.Equal(t, "bob@x.com", updated.Email)
	assert.Equal(t, "h", updated.PasswordHash)

	all, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, bob.ID, all[0].ID)

	_, err = s.DeleteUser(ctx, bob.ID)
	require.NoError(t, err)
	_, err = s.GetUserByID(ctx, bob.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	_, err = s.UpdateUser(ctx, bob.ID, models.UserUpdate{Active: &active})
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func testIdentifiersNotReused(t *testing.T, s store.Store) {
	ctx := context.Background()

	first, err := s.CreatePaymentMethod(ctx, models.PaymentMethod{Name: "a"})
	require.NoError(t, err)
	second, err := s.CreatePaymentMethod(ctx, models.PaymentMethod{Name: "b"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	_, err = s.DeletePaymentMethod(ctx, second.ID)
	require.NoError(t, err)

	third, err := s.CreatePaymentMethod(ctx, models.PaymentMethod{Name: "c"})
	require.NoError(t, err)
	assert.Greater(t, third.ID, second.ID)
}

func testSeed(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx, s))
	require.NoError(t, store.Seed(ctx, s))

	labs, err := s.GetAllLaboratories(ctx)
	require.NoError(t, err)
	assert.Len(t, labs, 3)

	reagents, err := s.GetAllReagents(ctx)
	require.NoError(t, err)
	assert.Len(t, reagents, 3)
	assert.Equal(t, "Pipetas Graduadas 10ml", reagents[0].Name)
}
