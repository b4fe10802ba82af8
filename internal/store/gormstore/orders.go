package gormstore

import (
	"context"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store"
	"gorm.io/gorm"
)

func checkOrderReference(tx *gorm.DB, order *models.Order) error {
	ok, err := exists(tx, &models.Reagent{}, order.ReagentID)
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrOrderReference
	}
	return nil
}

func (s *Store) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return list[models.Order](ctx, s.db)
}

func (s *Store) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	return get[models.Order](ctx, s.db, id, store.ErrOrderNotFound)
}

func (s *Store) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	order.ID = 0
	if order.OrderedOn.IsZero() {
		order.OrderedOn = s.today()
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkOrderReference(tx, &order); err != nil {
			return err
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) UpdateOrder(ctx context.Context, id uint, order models.Order) (*models.Order, error) {
	order.ID = id
	return replace(ctx, s.db, id, &order, store.ErrOrderNotFound, func(tx *gorm.DB, existing *models.Order) error {
		if order.OrderedOn.IsZero() {
			order.OrderedOn = existing.OrderedOn
		}
		return checkOrderReference(tx, &order)
	})
}

func (s *Store) DeleteOrder(ctx context.Context, id uint) (*models.Order, error) {
	return remove[models.Order](ctx, s.db, id, store.ErrOrderNotFound)
}

func (s *Store) GetLatestOrders(ctx context.Context, limit int) ([]models.Order, error) {
	orders := []models.Order{}
	q := s.db.WithContext(ctx).Order("ordered_on desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) GetOrdersByDateRange(ctx context.Context, from, to models.Date) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.WithContext(ctx).
		Where("ordered_on BETWEEN ? AND ?", from, to).
		Order("ordered_on desc, id desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) DeleteOrderItem(ctx context.Context, orderID, reagentID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND reagent_id = ?", orderID, reagentID).First(&order).Error
		if err != nil {
			return translate(err, store.ErrOrderItemNotFound)
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
