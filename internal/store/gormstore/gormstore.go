// Package gormstore implements store.Store on top of GORM. It backs the
// sqlite and postgres storage drivers.
package gormstore

import (
	"context"
	"errors"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/thejerf/abtime"
	"gorm.io/gorm"
)

type Store struct {
	db    *gorm.DB
	clock abtime.AbstractTime
}

var _ store.Store = (*Store)(nil)

type Option func(*Store)

// WithClock sets the clock used to stamp creation and order dates.
func WithClock(clock abtime.AbstractTime) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// New migrates the schema and returns a store over db. db should be opened
// with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func New(db *gorm.DB, opts ...Option) (*Store, error) {
	s := &Store{db: db, clock: abtime.NewRealTime()}
	for _, opt := range opts {
		opt(s)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return s, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Laboratory{},
		&models.Experiment{},
		&models.ScheduledTest{},
		&models.Reagent{},
		&models.Order{},
		&models.PaymentMethod{},
	)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) today() models.Date {
	return models.NewDate(s.clock.Now())
}

// translate maps GORM errors onto the tagged store errors.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicateRecord
	default:
		return err
	}
}

func list[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	rows := []T{}
	if err := db.WithContext(ctx).Order("id desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func get[T any](ctx context.Context, db *gorm.DB, id uint, notFound error) (*T, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err, notFound)
	}
	return &row, nil
}

func create[T any](ctx context.Context, db *gorm.DB, row *T) (*T, error) {
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, translate(err, nil)
	}
	return row, nil
}

// replace overwrites every column of an existing row. prepare runs inside
// the transaction with the current row so callers can check references or
// carry over fields.
func replace[T any](ctx context.Context, db *gorm.DB, id uint, row *T, notFound error, prepare func(tx *gorm.DB, existing *T) error) (*T, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing T
		if err := tx.First(&existing, id).Error; err != nil {
			return translate(err, notFound)
		}
		if prepare != nil {
			if err := prepare(tx, &existing); err != nil {
				return err
			}
		}
		return translate(tx.Save(row).Error, notFound)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func remove[T any](ctx context.Context, db *gorm.DB, id uint, notFound error) (*T, error) {
	var row T
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			return translate(err, notFound)
		}
		return tx.Delete(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// exists reports whether a row of model with the given id is present.
func exists(tx *gorm.DB, model interface{}, id uint) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
