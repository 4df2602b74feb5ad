package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yashrajoria/streetwear-backend/models"
	"github.com/yashrajoria/streetwear-backend/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestProductFindAll_ActiveOnlyWithCategory(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	productID, categoryID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products" WHERE is_active = $1`)).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE is_active = $1 ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "price", "category_id", "images", "is_active", "created_at"}).
			AddRow(productID, "Graphic Tee", "graphic-tee", 999.0, categoryID, []byte(`["https://cdn.example.com/tee.jpg"]`), true, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).AddRow(categoryID, "T-Shirts", "t-shirts"))

	products, total, err := repo.FindAll(context.Background(), models.ProductFilter{Page: 1, Limit: 12})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, models.StringList{"https://cdn.example.com/tee.jpg"}, products[0].Images)
	require.NotNil(t, products[0].Category)
	assert.Equal(t, "t-shirts", products[0].Category.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductFindByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	p, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, p)
}

func TestProductDelete_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), repository.ErrNotFound)
}

func TestCategoryHasProducts(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCategoryRepository(gormDB)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products" WHERE category_id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	has, err := repo.HasProducts(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestOrderCreate_WritesOrderAndEventInOneTransaction(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	orderID := uuid.New()
	order := &models.Order{
		CustomerName:  "Aarav Shah",
		Email:         "aarav@example.com",
		Phone:         "9876543210",
		Items:         models.OrderItems{{ProductID: uuid.New(), Name: "Cap", Price: 50, Quantity: 1}},
		TotalAmount:   50,
		PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentStatusPending,
		Status:        models.OrderStatusPending,
	}
	event := &models.OrderEvent{Status: models.OrderStatusPending, Notes: "Order placed"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(orderID))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "order_events"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), order, event))
	assert.Equal(t, orderID, order.ID)
	assert.Equal(t, orderID, event.OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCreate_RollsBackWhenEventFails(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "order_events"`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Order{Status: models.OrderStatusPending}, &models.OrderEvent{})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderUpdateStatus_AppendsEvent(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	orderID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders" SET "status"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "order_events"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	event := &models.OrderEvent{Status: models.OrderStatusShipped, CreatedBy: "admin@example.com"}
	require.NoError(t, repo.UpdateStatus(context.Background(), orderID, models.OrderStatusShipped, event))
	assert.Equal(t, orderID, event.OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderUpdateStatus_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "orders"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UpdateStatus(context.Background(), uuid.New(), models.OrderStatusShipped, &models.OrderEvent{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderListEvents_NewestFirst(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	orderID := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "order_events" WHERE order_id = $1 ORDER BY created_at DESC`)).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "status", "created_at"}).
			AddRow(uuid.New(), orderID, "confirmed", now).
			AddRow(uuid.New(), orderID, "pending", now.Add(-time.Hour)))

	events, err := repo.ListEvents(context.Background(), orderID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.OrderStatusConfirmed, events[0].Status)
	assert.Equal(t, models.OrderStatusPending, events[1].Status)
}

func TestOrderCountByStatusAndRevenue(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status, COUNT(*) AS count FROM "orders" GROUP BY`)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 4).
			AddRow("delivered", 2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(total_amount), 0) FROM "orders" WHERE status <> $1`)).
		WithArgs(models.OrderStatusCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(1500.5))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[models.OrderStatus]int64{models.OrderStatusPending: 4, models.OrderStatusDelivered: 2}, counts)

	revenue, err := repo.Revenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1500.5, revenue)
}

func TestCartFindByIDForOwner_OtherOwnerIsNotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCartRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "cart_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	item, err := repo.FindByIDForOwner(context.Background(), uuid.New(), models.CartOwner{SessionID: "guest-b"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, item)
}

func TestCartClearOwner(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCartRepository(gormDB)

	userID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "cart_items" WHERE user_id = $1`)).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.ClearOwner(context.Background(), models.CartOwner{UserID: &userID}))
	require.NoError(t, repo.ClearOwner(context.Background(), models.CartOwner{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementGet_DefaultsWhenMissing(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormAnnouncementRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "announcements"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	a, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, a.IsEnabled)
	assert.Empty(t, a.Message)
}

func TestBulkOrderUpdateStatus_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormBulkOrderRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "bulk_orders"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), uuid.New(), models.BulkStatusQuoted), repository.ErrNotFound)
}
