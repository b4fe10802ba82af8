// Package crud is the shared controller behind every entity: one Resource
// declaration yields the JSON API and the server-rendered pages.
package crud

import (
	"context"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
)

// Storage is the slice of store.Store one resource needs.
type Storage[T any] struct {
	List   func(ctx context.Context) ([]T, error)
	Get    func(ctx context.Context, id uint) (*T, error)
	Create func(ctx context.Context, item T) (*T, error)
	Update func(ctx context.Context, id uint, item T) (*T, error)
	Delete func(ctx context.Context, id uint) (*T, error)
}

// Column is one cell of the listing page.
type Column[T any] struct {
	Label string
	Value func(item T) string
}

// Option is an entry of a select input.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// OptionsFunc loads the choices of a select input, keyed by Field.OptionsKey.
type OptionsFunc func(ctx context.Context) ([]Option, error)

// Access is the minimum role per operation; an empty role means public.
type Access struct {
	Read   models.Role
	Write  models.Role
	Delete models.Role
}

// DefaultAccess: public reads, user writes, admin deletes.
var DefaultAccess = Access{Write: models.RoleUser, Delete: models.RoleAdmin}

type Resource[T any] struct {
	// Singular is used in messages ("Laboratory created").
	Singular string
	// Title heads the listing and form pages.
	Title string
	// PagePath is the base of the view routes, e.g. "/areas".
	PagePath string

	Spec    utils.FieldSpec
	Storage Storage[T]

	// Build turns validated values into a model.
	Build func(v utils.Values) T
	// FormValues renders an existing item back into form inputs.
	FormValues func(item T) map[string]string

	Columns []Column[T]
	Options map[string]OptionsFunc
	ID      func(item T) uint

	Access Access
}
