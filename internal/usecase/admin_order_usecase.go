package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) ([]OrderOutput, error) {
	// page/limitの最低限チェック
	if f.Page < 1 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *AdminOrderUsecase) GetDetail(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// UpdateStatus は注文ステータスの遷移を行う。
// Confirmedへの遷移で在庫を引き、Cancelledへの遷移で（引いた分だけ）在庫を戻す。
// 在庫減算はトランザクション内の条件付きUPDATEなので、1行でも足りなければ
// 全行rollbackされ「一部だけ引かれた」状態は観測され得ない。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID int64, orderID int64, in AdminUpdateOrderStatusInput) (OrderOutput, error) {
	if actorAdminUserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(in.Status)
	if !model.ValidOrderStatus(newStatus) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	to := model.OrderStatus(newStatus)

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 注文取得
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// すでに同じなら何もしない（200）
		if o.Status == to {
			out = toOrderOutput(o, items)
			return nil
		}
		// 終端ガード
		if o.Status == model.OrderStatusCancelled {
			return NewHTTPError(http.StatusBadRequest, "cannot change cancelled order")
		}
		if o.Status == model.OrderStatusDelivered {
			return NewHTTPError(http.StatusBadRequest, "cannot change delivered order")
		}

		// Confirmedに入るときだけ在庫を引く（既に引いていれば何もしない）
		if to == model.OrderStatusConfirmed && !o.StockReserved {
			if err := u.reserveStock(ctx, r, orderID, items); err != nil {
				return err
			}
			o.StockReserved = true
		}

		// Cancelledに入るとき、引いてあった在庫だけ戻す
		if to == model.OrderStatusCancelled && o.StockReserved {
			if err := u.restock(ctx, r, orderID, items); err != nil {
				return err
			}
			o.StockReserved = false
		}

		// ステータス更新は読んだ時点の値からの条件付き更新。
		// 空振りは同時更新なので状態衝突として返す
		if err := r.Orders().UpdateStatusFrom(ctx, orderID, o.Status, to); err != nil {
			if errors.Is(err, repo.ErrConflict) {
				return NewHTTPError(http.StatusBadRequest, "order was updated concurrently")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = to
		out = toOrderOutput(o, items)

		if err := enqueueOrderEvent(ctx, r, model.EventOrderStatusUpdated, out); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 全明細ぶんの在庫を引く。1つでも足りなければエラー（トランザクションごと戻る）
func (u *AdminOrderUsecase) reserveStock(ctx context.Context, r repo.TxRepos, orderID int64, items []model.OrderItem) error {
	for _, it := range items {
		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !ok {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("not enough stock for product %s", it.Name))
		}

		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID: it.ProductID,
			Delta:     -it.Quantity,
			Reason:    model.AdjustmentReasonOrderConfirmed,
			OrderID:   &orderID,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	if err := r.Orders().SetStockReserved(ctx, orderID, true); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 引いた在庫を明細どおり戻す
func (u *AdminOrderUsecase) restock(ctx context.Context, r repo.TxRepos, orderID int64, items []model.OrderItem) error {
	for _, it := range items {
		if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID: it.ProductID,
			Delta:     it.Quantity,
			Reason:    model.AdjustmentReasonOrderCancelled,
			OrderID:   &orderID,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	if err := r.Orders().SetStockReserved(ctx, orderID, false); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ステータスごとの件数（管理画面のバッジ用）
func (u *AdminOrderUsecase) StatusCounts(ctx context.Context) (map[string]int64, error) {
	var counts map[string]int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		byStatus, err := r.Orders().CountByStatus(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		counts = make(map[string]int64, len(byStatus))
		for s, n := range byStatus {
			counts[string(s)] = n
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return counts, nil
}

// 取りうるステータス一覧
func (u *AdminOrderUsecase) Statuses() []string {
	all := model.AllOrderStatuses()
	out := make([]string, 0, len(all))
	for _, s := range all {
		out = append(out, string(s))
	}
	return out
}
