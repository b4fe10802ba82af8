package gormstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store/storetest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/abtime"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Each test gets its own named in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := New(setupTestDB(t))
		require.NoError(t, err)
		return s
	})
}

func TestCreationDatesUseClock(t *testing.T) {
	clock := abtime.NewManualAtTime(time.Date(2025, 10, 22, 23, 30, 0, 0, time.UTC))
	s, err := New(setupTestDB(t), WithClock(clock))
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	reagent, err := s.CreateReagent(ctx, models.Reagent{Name: "X", Description: "Y", Price: 1, Stock: 1})
	require.NoError(t, err)

	got, err := s.GetReagentByID(ctx, reagent.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-22", got.CreatedOn.String())
}

func TestDuplicateKeyIsConflict(t *testing.T) {
	db := setupTestDB(t)
	s, err := New(db)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, db.Create(&models.User{Username: "a", Email: "a@x.com", PasswordHash: "h", Role: models.RoleUser}).Error)
	err = translate(db.Create(&models.User{Username: "a", Email: "b@x.com", PasswordHash: "h", Role: models.RoleUser}).Error, nil)
	assert.ErrorIs(t, err, store.ErrDuplicateRecord)
}
