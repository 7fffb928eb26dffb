package store

import (
	"context"
	"fmt"

	"bootstore-backoffice/internal/models"
)

// ListOrders returns all orders with status, pickup point and lines (with
// their products) preloaded, newest order date first.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Status").
		Preload("PickupPoint").
		Preload("Lines").
		Preload("Lines.Product").
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", mapError(err))
	}
	return orders, nil
}

func (s *Store) FindOrderByID(ctx context.Context, id uint) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Status").
		Preload("PickupPoint").
		Preload("Lines").
		Preload("Lines.Product").
		First(&order, id).Error
	if err != nil {
		return models.Order{}, fmt.Errorf("find order %d: %w", id, mapError(err))
	}
	return order, nil
}

// ListReceiptCodes returns the receipt codes of every existing order. The
// code generator works against this snapshot.
func (s *Store) ListReceiptCodes(ctx context.Context) ([]int, error) {
	var codes []int
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Pluck("receipt_code", &codes).Error
	if err != nil {
		return nil, fmt.Errorf("list receipt codes: %w", mapError(err))
	}
	return codes, nil
}

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("create order (code %d): %w", o.ReceiptCode, mapError(err))
	}
	return nil
}

// SaveOrder writes the scalar columns of an existing order. Relations are
// deliberately not written here; lines have their own operations.
func (s *Store) SaveOrder(ctx context.Context, o *models.Order) error {
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", o.ID).
		Updates(map[string]any{
			"receipt_code":    o.ReceiptCode,
			"order_date":      o.OrderDate,
			"delivery_date":   o.DeliveryDate,
			"status_id":       o.StatusID,
			"pickup_point_id": o.PickupPointID,
			"user_id":         o.UserID,
		}).Error
	if err != nil {
		return fmt.Errorf("save order %d: %w", o.ID, mapError(err))
	}
	return nil
}

func (s *Store) DeleteOrder(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Order{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete order %d: %w", id, mapError(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete order %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) ListOrderLinesForOrder(ctx context.Context, orderID uint) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("list lines for order %d: %w", orderID, mapError(err))
	}
	return lines, nil
}

// DeleteOrderLines removes every line of the order. Zero lines is not an
// error; new orders have none.
func (s *Store) DeleteOrderLines(ctx context.Context, orderID uint) error {
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.OrderLine{}).Error
	if err != nil {
		return fmt.Errorf("delete lines for order %d: %w", orderID, mapError(err))
	}
	return nil
}

func (s *Store) AddOrderLine(ctx context.Context, line *models.OrderLine) error {
	if err := s.db.WithContext(ctx).Create(line).Error; err != nil {
		return fmt.Errorf("add line to order %d: %w", line.OrderID, mapError(err))
	}
	return nil
}

func (s *Store) ListOrderStatuses(ctx context.Context) ([]models.OrderStatus, error) {
	var rows []models.OrderStatus
	if err := s.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list order statuses: %w", mapError(err))
	}
	return rows, nil
}

func (s *Store) ListPickupPoints(ctx context.Context) ([]models.PickupPoint, error) {
	var rows []models.PickupPoint
	if err := s.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list pickup points: %w", mapError(err))
	}
	return rows, nil
}

func (s *Store) HasOrderStatus(ctx context.Context, id uint) (bool, error) {
	return s.refExists(ctx, &models.OrderStatus{}, id)
}

func (s *Store) HasPickupPoint(ctx context.Context, id uint) (bool, error) {
	return s.refExists(ctx, &models.PickupPoint{}, id)
}
