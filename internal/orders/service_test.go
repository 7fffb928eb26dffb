package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bootstore-backoffice/gate"
	"bootstore-backoffice/internal/models"
	"bootstore-backoffice/internal/orders"
	"bootstore-backoffice/internal/policy"
	"bootstore-backoffice/internal/store"
	"bootstore-backoffice/session"
	"bootstore-backoffice/validation"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.Manufacturer{}, &models.Supplier{}, &models.Unit{},
		&models.OrderStatus{}, &models.PickupPoint{},
		&models.Product{}, &models.Order{}, &models.OrderLine{},
		&models.Role{}, &models.User{},
	))
	return db
}

func seedOrderRefs(t *testing.T, db *gorm.DB) (statusID, pickupID uint) {
	t.Helper()
	status := models.OrderStatus{Name: "New"}
	require.NoError(t, db.Create(&status).Error)
	pickup := models.PickupPoint{Address: "12 Harbor St"}
	require.NoError(t, db.Create(&pickup).Error)
	return status.ID, pickup.ID
}

func newService(db *gorm.DB) (*orders.Service, *store.Store) {
	st := store.New(db)
	return orders.NewService(st, policy.NewAccess()), st
}

func adminCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{
		UserID: 1, RoleID: session.RoleAdmin, FullName: "A. Admin", RoleName: "Administrator",
	})
}

func draftFor(statusID, pickupID uint) orders.Draft {
	ordered := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return orders.Draft{
		OrderDate:     ordered,
		DeliveryDate:  ordered.AddDate(0, 0, 3),
		StatusID:      statusID,
		PickupPointID: pickupID,
		UserID:        1,
	}
}

func TestCreate_AssignsReceiptCode(t *testing.T) {
	db := setupTestDB(t)
	statusID, pickupID := seedOrderRefs(t, db)
	svc, _ := newService(db)

	order, err := svc.Create(adminCtx(), draftFor(statusID, pickupID))
	require.NoError(t, err)
	assert.Equal(t, 901, order.ReceiptCode, "first order starts above the floor")
	assert.NotZero(t, order.ID)

	second, err := svc.Create(adminCtx(), draftFor(statusID, pickupID))
	require.NoError(t, err)
	assert.Equal(t, 902, second.ReceiptCode)
}

func TestCreate_CodesNeverCollide(t *testing.T) {
	db := setupTestDB(t)
	statusID, pickupID := seedOrderRefs(t, db)
	svc, _ := newService(db)

	seen := map[int]bool{}
	for i := 0; i < 5; i++ {
		order, err := svc.Create(adminCtx(), draftFor(statusID, pickupID))
		require.NoError(t, err)
		assert.False(t, seen[order.ReceiptCode], "receipt code %d assigned twice", order.ReceiptCode)
		seen[order.ReceiptCode] = true
	}
}

// injectCodeClashes registers a create hook that, for the next n order
// inserts, sneaks a row with the same receipt code into the transaction just
// before the insert runs. This reproduces a concurrent writer grabbing the
// code between snapshot and create.
func injectCodeClashes(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	remaining := n
	err := db.Callback().Create().Before("gorm:create").Register("inject_code_clash", func(tx *gorm.DB) {
		order, ok := tx.Statement.Dest.(*models.Order)
		if !ok || remaining == 0 {
			return
		}
		remaining--
		clash := tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO orders (receipt_code, order_date, delivery_date, status_id, pickup_point_id, user_id) VALUES (?, ?, ?, ?, ?, ?)",
			order.ReceiptCode, order.OrderDate, order.DeliveryDate, order.StatusID, order.PickupPointID, order.UserID,
		)
		if clash.Error != nil {
			tx.AddError(clash.Error)
		}
	})
	require.NoError(t, err)
}

func TestCreate_RetriesOnceOnCodeCollision(t *testing.T) {
	db := setupTestDB(t)
	statusID, pickupID := seedOrderRefs(t, db)
	svc, _ := newService(db)
	injectCodeClashes(t, db, 1)

	order, err := svc.Create(adminCtx(), draftFor(statusID, pickupID))
	require.NoError(t, err, "one collision must be absorbed by the retry")
	assert.Equal(t, 901, order.ReceiptCode, "clashing row rolled back with the first attempt")

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreate_SecondCollisionSurfaces(t *testing.T) {
	db := setupTestDB(t)
	statusID, pickupID := seedOrderRefs(t, db)
	svc, _ := newService(db)
	injectCodeClashes(t, db, 2)

	_, err := svc.Create(adminCtx(), draftFor(statusID, pickupID))
	assert.ErrorIs(t, err, orders.ErrDuplicateCode)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count, "both attempts rolled back")
}

func TestCreate_ValidatesDraft(t *testing.T) {
	db := setupTestDB(t)
	statusID, pickupID := seedOrderRefs(t, db)
	svc, _ := newService(db)

	t.Run("missing references", func(t *testing.T) {
		_, err := svc.Create(adminCtx(), orders.Draft{
			OrderDate:    time.Now(),
			DeliveryDate: time.Now().AddDate(0, 0, 1),
		})
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "required", verr.Violations["status_id"])
		assert.Equal(t, "required", verr.Violations["pickup_point_id"])
	})

	t.Run("delivery before order date", func(t *testing.T) {
		draft := draftFor(statusID, pickupID)
		draft.DeliveryDate = draft.OrderDate.AddDate(0, 0, -1)
		_, err := svc.Create(adminCtx(), draft)
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must_not_be_earlier", verr.Violations["delivery_date"])
	})

	t.Run("dangling status reference", func(t *testing.T) {
		draft := draftFor(999, pickupID)
		_, err := svc.Create(adminCtx(), draft)
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "does_not_exist", verr.Violations["status_id"])
	})
}

func TestCreate_RequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	statusID, pickupID := seedOrderRefs(t, db)
	svc, _ := newService(db)

	for _, roleID := range []uint{session.RoleManager, session.RoleClient, session.RoleGuest} {
		ctx := session.WithSession(context.Background(), session.Session{UserID: 2, RoleID: roleID})
		_, err := svc.Create(ctx, draftFor(statusID, pickupID))
		assert.ErrorIs(t, err, gate.ErrDenied, "role %d must not create orders", roleID)
	}

	// No session at all behaves like a guest.
	_, err := svc.Create(context.Background(), draftFor(statusID, pickupID))
	assert.ErrorIs(t, err, gate.ErrDenied)
}

func TestUpdate_RejectsBadDatesAndKeepsStoredOrder(t *testing.T) {
	db := setupTestDB(t)
	statusID, pickupID := seedOrderRefs(t, db)
	svc, st := newService(db)

	order, err := svc.Create(adminCtx(), draftFor(statusID, pickupID))
	require.NoError(t, err)

	bad := order.OrderDate.AddDate(0, 0, -2)
	_, err = svc.Update(adminCtx(), order.ID, orders.Edits{DeliveryDate: &bad})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)

	stored, err := st.FindOrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, order.DeliveryDate, stored.DeliveryDate, time.Second, "rejected update must not change the row")
}

func TestUpdate_AppliesEdits(t *testing.T) {
	db := setupTestDB(t)
	statusID, pickupID := seedOrderRefs(t, db)
	svc, _ := newService(db)

	shipped := models.OrderStatus{Name: "Shipped"}
	require.NoError(t, db.Create(&shipped).Error)

	order, err := svc.Create(adminCtx(), draftFor(statusID, pickupID))
	require.NoError(t, err)

	newDelivery := order.DeliveryDate.AddDate(0, 0, 4)
	updated, err := svc.Update(adminCtx(), order.ID, orders.Edits{
		StatusID:     &shipped.ID,
		DeliveryDate: &newDelivery,
	})
	require.NoError(t, err)
	assert.Equal(t, shipped.ID, updated.StatusID)
	assert.Equal(t, "Shipped", updated.Status.Name)
	assert.WithinDuration(t, newDelivery, updated.DeliveryDate, time.Second)
	assert.Equal(t, order.ReceiptCode, updated.ReceiptCode, "receipt code is never reassigned on edit")
}

func TestUpdate_NotFound(t *testing.T) {
	db := setupTestDB(t)
	seedOrderRefs(t, db)
	svc, _ := newService(db)

	_, err := svc.Update(adminCtx(), 12345, orders.Edits{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete_RemovesLinesThenOrder(t *testing.T) {
	db := setupTestDB(t)
	statusID, pickupID := seedOrderRefs(t, db)
	svc, st := newService(db)
	ctx := adminCtx()

	supplier := models.Supplier{Name: "NordShoes"}
	require.NoError(t, db.Create(&supplier).Error)
	product := models.Product{Article: "B-12", Name: "Winter boot", SupplierID: supplier.ID}
	require.NoError(t, db.Create(&product).Error)

	order, err := svc.Create(ctx, draftFor(statusID, pickupID))
	require.NoError(t, err)
	require.NoError(t, st.AddOrderLine(ctx, &models.OrderLine{
		OrderID: order.ID, ProductArticle: "B-12", Quantity: 2,
	}))

	require.NoError(t, svc.Delete(ctx, order.ID))

	_, err = st.FindOrderByID(ctx, order.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	lines, err := st.ListOrderLinesForOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, lines, "order lines must be gone with the order")

	var lineCount int64
	db.Model(&models.OrderLine{}).Count(&lineCount)
	assert.Zero(t, lineCount)
}

func TestDelete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	seedOrderRefs(t, db)
	svc, _ := newService(db)

	err := svc.Delete(adminCtx(), 999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete_RequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	statusID, pickupID := seedOrderRefs(t, db)
	svc, _ := newService(db)

	order, err := svc.Create(adminCtx(), draftFor(statusID, pickupID))
	require.NoError(t, err)

	managerCtx := session.WithSession(context.Background(), session.Session{UserID: 2, RoleID: session.RoleManager})
	err = svc.Delete(managerCtx, order.ID)
	assert.ErrorIs(t, err, gate.ErrDenied)

	// Still there.
	_, err = svc.Get(adminCtx(), order.ID)
	assert.NoError(t, err)
}

func TestList_ProjectsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	statusID, pickupID := seedOrderRefs(t, db)
	svc, _ := newService(db)
	ctx := adminCtx()

	older := draftFor(statusID, pickupID)
	older.OrderDate = older.OrderDate.AddDate(0, -1, 0)
	first, err := svc.Create(ctx, older)
	require.NoError(t, err)
	second, err := svc.Create(ctx, draftFor(statusID, pickupID))
	require.NoError(t, err)

	views, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second.ID, views[0].ID, "newest order date first")
	assert.Equal(t, first.ID, views[1].ID)
	assert.Equal(t, "New", views[0].StatusName)
	assert.Equal(t, "ORD-902", views[0].Article)
}

func TestStoreDuplicateReceiptCodeIsMapped(t *testing.T) {
	db := setupTestDB(t)
	statusID, pickupID := seedOrderRefs(t, db)
	st := store.New(db)
	ctx := context.Background()

	base := models.Order{
		ReceiptCode: 901, OrderDate: time.Now(), DeliveryDate: time.Now(),
		StatusID: statusID, PickupPointID: pickupID,
	}
	require.NoError(t, st.CreateOrder(ctx, &base))

	clash := models.Order{
		ReceiptCode: 901, OrderDate: time.Now(), DeliveryDate: time.Now(),
		StatusID: statusID, PickupPointID: pickupID,
	}
	err := st.CreateOrder(ctx, &clash)
	assert.True(t, errors.Is(err, store.ErrDuplicate), "unique index violation must map to ErrDuplicate, got %v", err)
}
