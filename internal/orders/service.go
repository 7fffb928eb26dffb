// Package orders manages the order lifecycle: receipt-code assignment,
// validated creation and edits, and referential-integrity-safe deletion.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bootstore-backoffice/gate"
	"bootstore-backoffice/internal/models"
	"bootstore-backoffice/internal/policy"
	"bootstore-backoffice/internal/store"
	"bootstore-backoffice/session"
	"bootstore-backoffice/validation"
)

// ErrDuplicateCode is returned when receipt-code assignment collided twice
// in a row; a single internal retry with a regenerated code happens first.
var ErrDuplicateCode = errors.New("orders: receipt code collision")

// Draft is the input for a new order.
type Draft struct {
	OrderDate     time.Time
	DeliveryDate  time.Time
	StatusID      uint
	PickupPointID uint
	UserID        uint
}

// Edits carries the changes of an order update; nil fields stay untouched.
type Edits struct {
	OrderDate     *time.Time
	DeliveryDate  *time.Time
	StatusID      *uint
	PickupPointID *uint
}

type Service struct {
	store  *store.Store
	access *policy.Access
}

func NewService(st *store.Store, access *policy.Access) *Service {
	return &Service{store: st, access: access}
}

// authorize checks the acting session from the context against the order
// policy. A missing session is treated as the guest identity.
func (s *Service) authorize(ctx context.Context, action gate.Action) error {
	sess, ok := session.FromContext(ctx)
	if !ok {
		sess = session.Guest()
	}
	return s.access.Authorize(ctx, sess.RoleID, action, policy.ResourceOrder)
}

// Create validates the draft, assigns a fresh receipt code and persists the
// order. Code generation and insert run in one transaction; a duplicate-code
// race is retried once with a regenerated code.
func (s *Service) Create(ctx context.Context, draft Draft) (models.Order, error) {
	if err := s.authorize(ctx, gate.ActionCreate); err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}
	if err := s.validateDraft(ctx, draft); err != nil {
		return models.Order{}, err
	}

	order, err := s.insertWithFreshCode(ctx, draft)
	if errors.Is(err, store.ErrDuplicate) {
		order, err = s.insertWithFreshCode(ctx, draft)
		if errors.Is(err, store.ErrDuplicate) {
			return models.Order{}, fmt.Errorf("create order: %w", ErrDuplicateCode)
		}
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *Service) insertWithFreshCode(ctx context.Context, draft Draft) (models.Order, error) {
	var order models.Order
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		codes, err := tx.ListReceiptCodes(ctx)
		if err != nil {
			return err
		}
		order = models.Order{
			ReceiptCode:   NextReceiptCode(codes),
			OrderDate:     draft.OrderDate,
			DeliveryDate:  draft.DeliveryDate,
			StatusID:      draft.StatusID,
			PickupPointID: draft.PickupPointID,
			UserID:        draft.UserID,
		}
		return tx.CreateOrder(ctx, &order)
	})
	return order, err
}

// Update loads the order, applies the edits, re-validates the invariants and
// writes the result. A validation failure leaves the stored order unchanged.
func (s *Service) Update(ctx context.Context, id uint, edits Edits) (models.Order, error) {
	if err := s.authorize(ctx, gate.ActionUpdate); err != nil {
		return models.Order{}, fmt.Errorf("update order %d: %w", id, err)
	}
	current, err := s.store.FindOrderByID(ctx, id)
	if err != nil {
		return models.Order{}, err
	}

	if edits.OrderDate != nil {
		current.OrderDate = *edits.OrderDate
	}
	if edits.DeliveryDate != nil {
		current.DeliveryDate = *edits.DeliveryDate
	}
	if edits.StatusID != nil {
		current.StatusID = *edits.StatusID
	}
	if edits.PickupPointID != nil {
		current.PickupPointID = *edits.PickupPointID
	}

	if err := s.validateOrder(ctx, current); err != nil {
		return models.Order{}, err
	}
	if err := s.store.SaveOrder(ctx, &current); err != nil {
		return models.Order{}, err
	}
	return s.store.FindOrderByID(ctx, id)
}

// Delete removes the order's lines and then the order, in one transaction.
// If either step is refused the whole delete rolls back.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.authorize(ctx, gate.ActionDelete); err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	return s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.DeleteOrderLines(ctx, id); err != nil {
			return err
		}
		return tx.DeleteOrder(ctx, id)
	})
}

// Get returns a single order with relations preloaded.
func (s *Service) Get(ctx context.Context, id uint) (models.Order, error) {
	if err := s.authorize(ctx, gate.ActionView); err != nil {
		return models.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	return s.store.FindOrderByID(ctx, id)
}

// List projects every order for display, newest order date first.
func (s *Service) List(ctx context.Context) ([]OrderView, error) {
	if err := s.authorize(ctx, gate.ActionList); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	rows, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]OrderView, 0, len(rows))
	for _, o := range rows {
		views = append(views, NewOrderView(o))
	}
	return views, nil
}

func (s *Service) validateDraft(ctx context.Context, draft Draft) error {
	return s.validateFields(ctx, draft.StatusID, draft.PickupPointID, draft.OrderDate, draft.DeliveryDate)
}

func (s *Service) validateOrder(ctx context.Context, o models.Order) error {
	return s.validateFields(ctx, o.StatusID, o.PickupPointID, o.OrderDate, o.DeliveryDate)
}

func (s *Service) validateFields(ctx context.Context, statusID, pickupID uint, orderDate, deliveryDate time.Time) error {
	v := validation.Violations{}
	validation.RequiredRef("status_id", statusID, v)
	validation.RequiredRef("pickup_point_id", pickupID, v)
	if orderDate.IsZero() {
		v["order_date"] = "required"
	}
	if deliveryDate.IsZero() {
		v["delivery_date"] = "required"
	} else if !orderDate.IsZero() {
		validation.NotBefore("delivery_date", deliveryDate, orderDate, v)
	}
	if !v.Empty() {
		return v.Err()
	}

	// Dangling references are a validation failure, not a store crash.
	if ok, err := s.store.HasOrderStatus(ctx, statusID); err != nil {
		return err
	} else if !ok {
		v["status_id"] = "does_not_exist"
	}
	if ok, err := s.store.HasPickupPoint(ctx, pickupID); err != nil {
		return err
	} else if !ok {
		v["pickup_point_id"] = "does_not_exist"
	}
	return v.Err()
}
