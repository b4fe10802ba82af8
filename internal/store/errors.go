package store

import "github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"

// Errors shared by the backends so callers and tests can match them with
// errors.Is.
var (
	ErrLaboratoryNotFound    = apperr.New(apperr.NotFound, "Laboratory not found")
	ErrExperimentNotFound    = apperr.New(apperr.NotFound, "Experiment not found")
	ErrScheduledTestNotFound = apperr.New(apperr.NotFound, "Scheduled test not found")
	ErrReagentNotFound       = apperr.New(apperr.NotFound, "Reagent not found")
	ErrOrderNotFound         = apperr.New(apperr.NotFound, "Order not found")
	ErrOrderItemNotFound     = apperr.New(apperr.NotFound, "Order not found for that reagent")
	ErrPaymentMethodNotFound = apperr.New(apperr.NotFound, "Payment method not found")
	ErrUserNotFound          = apperr.New(apperr.NotFound, "User not found")

	ErrTestReferences  = apperr.New(apperr.InvalidReference, "Experiment or laboratory does not exist")
	ErrOrderReference  = apperr.New(apperr.InvalidReference, "Reagent does not exist")
	ErrUsernameTaken   = apperr.New(apperr.Conflict, "Username already exists")
	ErrEmailTaken      = apperr.New(apperr.Conflict, "Email already exists")
	ErrDuplicateRecord = apperr.New(apperr.Conflict, "Record already exists")
)
