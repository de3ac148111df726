package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// List tests
// =====================

func TestAdminOrderUsecase_List_InvalidPage(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewAdminOrderUsecase(tx)

	outs, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 0, Limit: 20})
	assert.Equal(t, 0, len(outs))
	assertErrContains(t, err, "invalid page")
}

func TestAdminOrderUsecase_List_InvalidLimit(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewAdminOrderUsecase(tx)

	outs, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 0})
	assert.Equal(t, 0, len(outs))
	assertErrContains(t, err, "invalid limit")
}

func TestAdminOrderUsecase_List_Success_CallsItemsPerOrder(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	f := repo.AdminOrderListFilter{Page: 1, Limit: 20}

	orders := []model.Order{
		{ID: 10, Status: model.OrderStatusPending},
		{ID: 11, Status: model.OrderStatusShipped},
	}

	ordersRepo.On("ListAdmin", mock.Anything, f).Return(orders, int64(2), nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(10)).Return([]model.OrderItem{}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(11)).Return([]model.OrderItem{}, nil)

	uc := usecase.NewAdminOrderUsecase(tx)

	outs, err := uc.List(ctx, f)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(outs))

	tx.AssertExpectations(t)
	ordersRepo.AssertExpectations(t)
	itemsRepo.AssertExpectations(t)
}

// =====================
// UpdateStatus tests
// =====================

func TestAdminOrderUsecase_UpdateStatus_UnauthorizedActor(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewAdminOrderUsecase(tx)

	_, err := uc.UpdateStatus(context.Background(), 0, 1, usecase.AdminUpdateOrderStatusInput{Status: "Shipped"})
	assertErrContains(t, err, "unauthorized")
}

func TestAdminOrderUsecase_UpdateStatus_InvalidOrderID(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewAdminOrderUsecase(tx)

	_, err := uc.UpdateStatus(context.Background(), 1, 0, usecase.AdminUpdateOrderStatusInput{Status: "Shipped"})
	assertErrContains(t, err, "invalid id")
}

func TestAdminOrderUsecase_UpdateStatus_InvalidStatus(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewAdminOrderUsecase(tx)

	_, err := uc.UpdateStatus(context.Background(), 1, 1, usecase.AdminUpdateOrderStatusInput{Status: "XXX"})
	assertErrContains(t, err, "invalid status")
}

func TestAdminOrderUsecase_UpdateStatus_NotFound(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	uc := usecase.NewAdminOrderUsecase(tx)

	_, err := uc.UpdateStatus(ctx, 1, 99, usecase.AdminUpdateOrderStatusInput{Status: "Shipped"})
	assertErrContains(t, err, "not found")

	ordersRepo.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdateStatus_SameStatus_NoOp(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	outboxRepo := new(OutboxRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo, outbox: outboxRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID:     1,
		Status: model.OrderStatusShipped,
	}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	uc := usecase.NewAdminOrderUsecase(tx)

	out, err := uc.UpdateStatus(ctx, 1, 1, usecase.AdminUpdateOrderStatusInput{Status: "Shipped"})
	assert.NoError(t, err)
	assert.Equal(t, "Shipped", out.Status)

	ordersRepo.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	outboxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_CannotChangeCancelled(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID:     1,
		Status: model.OrderStatusCancelled,
	}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	uc := usecase.NewAdminOrderUsecase(tx)

	_, err := uc.UpdateStatus(ctx, 1, 1, usecase.AdminUpdateOrderStatusInput{Status: "Shipped"})
	assertErrContains(t, err, "cannot change cancelled order")
}

func TestAdminOrderUsecase_UpdateStatus_CannotChangeDelivered(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID:     1,
		Status: model.OrderStatusDelivered,
	}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	uc := usecase.NewAdminOrderUsecase(tx)

	_, err := uc.UpdateStatus(ctx, 1, 1, usecase.AdminUpdateOrderStatusInput{Status: "Cancelled"})
	assertErrContains(t, err, "cannot change delivered order")
}

// Confirmedへの遷移で全明細ぶんの在庫が引かれ、調整履歴が残る
func TestAdminOrderUsecase_UpdateStatus_Confirm_ReservesStock(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	invRepo := new(InventoryRepoMock)
	outboxRepo := new(OutboxRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo, inventory: invRepo, outbox: outboxRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orderID := int64(1)

	ordersRepo.On("FindByID", mock.Anything, orderID).Return(model.Order{
		ID:     orderID,
		Status: model.OrderStatusProcessing,
	}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, orderID).Return([]model.OrderItem{
		{ID: 1, OrderID: orderID, ProductID: 10, Name: "Rice 5kg", Quantity: 2},
		{ID: 2, OrderID: orderID, ProductID: 11, Name: "Soy Sauce", Quantity: 1},
	}, nil)

	invRepo.On("DecreaseStockIfEnough", mock.Anything, int64(10), int64(2)).Return(true, nil)
	invRepo.On("DecreaseStockIfEnough", mock.Anything, int64(11), int64(1)).Return(true, nil)
	invRepo.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(a model.InventoryAdjustment) bool {
		return a.Reason == model.AdjustmentReasonOrderConfirmed && a.Delta < 0 && a.OrderID != nil && *a.OrderID == orderID
	})).Return(nil).Times(2)
	ordersRepo.On("SetStockReserved", mock.Anything, orderID, true).Return(nil)

	ordersRepo.On("UpdateStatusFrom", mock.Anything, orderID, model.OrderStatusProcessing, model.OrderStatusConfirmed).Return(nil)

	outboxRepo.On("Create", mock.Anything, mock.MatchedBy(func(e model.OutboxEvent) bool {
		return e.EventName == model.EventOrderStatusUpdated
	})).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx)

	out, err := uc.UpdateStatus(ctx, 1, orderID, usecase.AdminUpdateOrderStatusInput{Status: "Confirmed"})
	assert.NoError(t, err)
	assert.Equal(t, "Confirmed", out.Status)

	invRepo.AssertExpectations(t)
	ordersRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
}

// 在庫が1行でも足りなければエラーになり、商品名入りで返る
func TestAdminOrderUsecase_UpdateStatus_Confirm_InsufficientStock(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	invRepo := new(InventoryRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo, inventory: invRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orderID := int64(1)

	ordersRepo.On("FindByID", mock.Anything, orderID).Return(model.Order{
		ID:     orderID,
		Status: model.OrderStatusPending,
	}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, orderID).Return([]model.OrderItem{
		{ID: 1, OrderID: orderID, ProductID: 10, Name: "Rice 5kg", Quantity: 2},
		{ID: 2, OrderID: orderID, ProductID: 11, Name: "Soy Sauce", Quantity: 99},
	}, nil)

	invRepo.On("DecreaseStockIfEnough", mock.Anything, int64(10), int64(2)).Return(true, nil)
	invRepo.On("CreateAdjustment", mock.Anything, mock.Anything).Return(nil)
	invRepo.On("DecreaseStockIfEnough", mock.Anything, int64(11), int64(99)).Return(false, nil)

	uc := usecase.NewAdminOrderUsecase(tx)

	_, err := uc.UpdateStatus(ctx, 1, orderID, usecase.AdminUpdateOrderStatusInput{Status: "Confirmed"})
	assertErrContains(t, err, "not enough stock for product Soy Sauce")

	//ステータスは書き換えず、イベントも積まない
	ordersRepo.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	ordersRepo.AssertNotCalled(t, "SetStockReserved", mock.Anything, mock.Anything, mock.Anything)
}

// 引いた在庫があるキャンセルは明細どおり戻す
func TestAdminOrderUsecase_UpdateStatus_Cancel_RestocksReserved(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	invRepo := new(InventoryRepoMock)
	outboxRepo := new(OutboxRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo, inventory: invRepo, outbox: outboxRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orderID := int64(1)

	ordersRepo.On("FindByID", mock.Anything, orderID).Return(model.Order{
		ID:            orderID,
		Status:        model.OrderStatusConfirmed,
		StockReserved: true,
	}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, orderID).Return([]model.OrderItem{
		{ID: 1, OrderID: orderID, ProductID: 10, Name: "Rice 5kg", Quantity: 2},
		{ID: 2, OrderID: orderID, ProductID: 11, Name: "Soy Sauce", Quantity: 1},
	}, nil)

	invRepo.On("IncreaseStock", mock.Anything, int64(10), int64(2)).Return(nil)
	invRepo.On("IncreaseStock", mock.Anything, int64(11), int64(1)).Return(nil)
	invRepo.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(a model.InventoryAdjustment) bool {
		return a.Reason == model.AdjustmentReasonOrderCancelled && a.Delta > 0
	})).Return(nil).Times(2)
	ordersRepo.On("SetStockReserved", mock.Anything, orderID, false).Return(nil)

	ordersRepo.On("UpdateStatusFrom", mock.Anything, orderID, model.OrderStatusConfirmed, model.OrderStatusCancelled).Return(nil)
	outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx)

	out, err := uc.UpdateStatus(ctx, 1, orderID, usecase.AdminUpdateOrderStatusInput{Status: "Cancelled"})
	assert.NoError(t, err)
	assert.Equal(t, "Cancelled", out.Status)

	invRepo.AssertExpectations(t)
	ordersRepo.AssertExpectations(t)
}

// まだ在庫を引いていない注文のキャンセルでは在庫を触らない
func TestAdminOrderUsecase_UpdateStatus_Cancel_Unreserved_NoRestock(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	invRepo := new(InventoryRepoMock)
	outboxRepo := new(OutboxRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo, inventory: invRepo, outbox: outboxRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orderID := int64(1)

	ordersRepo.On("FindByID", mock.Anything, orderID).Return(model.Order{
		ID:     orderID,
		Status: model.OrderStatusPending,
	}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, orderID).Return([]model.OrderItem{
		{ID: 1, OrderID: orderID, ProductID: 10, Name: "Rice 5kg", Quantity: 2},
	}, nil)

	ordersRepo.On("UpdateStatusFrom", mock.Anything, orderID, model.OrderStatusPending, model.OrderStatusCancelled).Return(nil)
	outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx)

	out, err := uc.UpdateStatus(ctx, 1, orderID, usecase.AdminUpdateOrderStatusInput{Status: "Cancelled"})
	assert.NoError(t, err)
	assert.Equal(t, "Cancelled", out.Status)

	invRepo.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
	invRepo.AssertNotCalled(t, "CreateAdjustment", mock.Anything, mock.Anything)
}

// すでにConfirmed済み（在庫引き済み）の注文をShippedに進めても在庫は触らない
func TestAdminOrderUsecase_UpdateStatus_Ship_AfterConfirm_NoStockChange(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	invRepo := new(InventoryRepoMock)
	outboxRepo := new(OutboxRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo, inventory: invRepo, outbox: outboxRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orderID := int64(1)

	ordersRepo.On("FindByID", mock.Anything, orderID).Return(model.Order{
		ID:            orderID,
		Status:        model.OrderStatusConfirmed,
		StockReserved: true,
	}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, orderID).Return([]model.OrderItem{
		{ID: 1, OrderID: orderID, ProductID: 10, Name: "Rice 5kg", Quantity: 2},
	}, nil)

	ordersRepo.On("UpdateStatusFrom", mock.Anything, orderID, model.OrderStatusConfirmed, model.OrderStatusShipped).Return(nil)
	outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewAdminOrderUsecase(tx)

	out, err := uc.UpdateStatus(ctx, 1, orderID, usecase.AdminUpdateOrderStatusInput{Status: "Shipped"})
	assert.NoError(t, err)
	assert.Equal(t, "Shipped", out.Status)

	invRepo.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
	invRepo.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
}

// 同時更新で条件付き更新が空振りしたら状態衝突として返す
func TestAdminOrderUsecase_UpdateStatus_ConcurrentUpdate_Conflict(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	orderID := int64(1)

	ordersRepo.On("FindByID", mock.Anything, orderID).Return(model.Order{
		ID:     orderID,
		Status: model.OrderStatusPending,
	}, nil)
	itemsRepo.On("ListByOrderID", mock.Anything, orderID).Return([]model.OrderItem{}, nil)

	ordersRepo.On("UpdateStatusFrom", mock.Anything, orderID, model.OrderStatusPending, model.OrderStatusProcessing).Return(repo.ErrConflict)

	uc := usecase.NewAdminOrderUsecase(tx)

	_, err := uc.UpdateStatus(ctx, 1, orderID, usecase.AdminUpdateOrderStatusInput{Status: "Processing"})
	assertErrContains(t, err, "order was updated concurrently")
}

// =====================
// StatusCounts / Statuses tests
// =====================

func TestAdminOrderUsecase_StatusCounts(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("CountByStatus", mock.Anything).Return(map[model.OrderStatus]int64{
		model.OrderStatusPending: 3,
		model.OrderStatusShipped: 1,
	}, nil)

	uc := usecase.NewAdminOrderUsecase(tx)

	counts, err := uc.StatusCounts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), counts["Pending"])
	assert.Equal(t, int64(1), counts["Shipped"])
}

func TestAdminOrderUsecase_Statuses(t *testing.T) {
	tx := new(TxManagerMock)
	uc := usecase.NewAdminOrderUsecase(tx)

	statuses := uc.Statuses()
	assert.Contains(t, statuses, "Pending")
	assert.Contains(t, statuses, "Processing")
	assert.Contains(t, statuses, "Confirmed")
	assert.Contains(t, statuses, "Shipped")
	assert.Contains(t, statuses, "Delivered")
	assert.Contains(t, statuses, "Cancelled")
}
