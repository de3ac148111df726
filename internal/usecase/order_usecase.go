package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/pricing"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderAddressInput struct {
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	Landmark     string `json:"landmark"`
}

func (a OrderAddressInput) isEmpty() bool {
	return a.AddressLine1 == "" && a.City == "" && a.PostalCode == ""
}

func (a OrderAddressInput) toModel() model.OrderAddress {
	return model.OrderAddress{
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		Landmark:     a.Landmark,
	}
}

type PlaceOrderInput struct {
	ShippingAddress OrderAddressInput
	BillingAddress  OrderAddressInput
	PaymentMethod   string
}

type OrderItemOutput struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Discount  float64 `json:"discount"`
}

type OrderOutput struct {
	ID              int64              `json:"id"`
	UserID          int64              `json:"user_id"`
	Status          string             `json:"order_status"`
	ShippingAddress model.OrderAddress `json:"shipping_address"`
	BillingAddress  model.OrderAddress `json:"billing_address"`
	PaymentMethod   string             `json:"payment_method"`
	Subtotal        float64            `json:"subtotal"`
	TotalDiscount   float64            `json:"total_discount"`
	GSTAmount       float64            `json:"gst_amount"`
	ShippingCharge  float64            `json:"shipping_charge"`
	TotalAmount     float64            `json:"total_amount"`
	CreatedAt       time.Time          `json:"created_at"`
	Items           []OrderItemOutput  `json:"items"`
}

// PlaceOrder はカートの内容から注文を作る。
// 金額はカート明細のスナップショットから一度だけ計算し、
// 注文保存とカートクリアとイベント積みを1トランザクションで行う。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "payment method is required")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート取得（無い・空は注文不可）
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		//配送先。指定が無ければ住所帳のデフォルトを使う
		shipping, err := u.resolveShippingAddress(ctx, r, userID, in.ShippingAddress)
		if err != nil {
			return err
		}

		//請求先が空なら配送先と同じ
		billing := in.BillingAddress.toModel()
		if in.BillingAddress.isEmpty() {
			billing = shipping
		}

		//金額計算（保存後は再計算しない）
		lines := make([]pricing.LineItem, 0, len(cartItems))
		for _, ci := range cartItems {
			lines = append(lines, pricing.LineItem{
				Price:           ci.Price,
				Quantity:        ci.Quantity,
				DiscountPercent: ci.DiscountPercent,
			})
		}
		breakdown, err := pricing.Price(lines)
		if err != nil {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		//明細スナップショット
		now := time.Now()
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		for _, ci := range cartItems {
			orderItems = append(orderItems, model.OrderItem{
				ProductID:       ci.ProductID,
				Name:            ci.Name,
				ImageURL:        ci.ImageURL,
				Price:           ci.Price,
				Quantity:        ci.Quantity,
				DiscountPercent: ci.DiscountPercent,
				CreatedAt:       now,
			})
		}

		//注文作成（Pending始まり）
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:          userID,
			ShippingAddress: shipping,
			BillingAddress:  billing,
			PaymentMethod:   in.PaymentMethod,
			Subtotal:        breakdown.Subtotal,
			TotalDiscount:   breakdown.TotalDiscount,
			GSTAmount:       breakdown.GSTAmount,
			ShippingCharge:  breakdown.ShippingCharge,
			TotalAmount:     breakdown.TotalAmount,
			Status:          model.OrderStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートを空にする（注文書き込みより後。失敗すれば全体rollback）
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:              orderID,
			UserID:          userID,
			ShippingAddress: shipping,
			BillingAddress:  billing,
			PaymentMethod:   in.PaymentMethod,
			Subtotal:        breakdown.Subtotal,
			TotalDiscount:   breakdown.TotalDiscount,
			GSTAmount:       breakdown.GSTAmount,
			ShippingCharge:  breakdown.ShippingCharge,
			TotalAmount:     breakdown.TotalAmount,
			Status:          model.OrderStatusPending,
			CreatedAt:       now,
		}
		out = toOrderOutput(created, orderItems)

		//通知イベントも同じトランザクションで積む（配信はポーラー任せ）
		if err := enqueueOrderEvent(ctx, r, model.EventNewOrder, out); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) resolveShippingAddress(ctx context.Context, r repo.TxRepos, userID int64, in OrderAddressInput) (model.OrderAddress, error) {
	if in.isEmpty() {
		def, err := r.Addresses().FindDefaultByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return model.OrderAddress{}, NewHTTPError(http.StatusBadRequest, "shipping address is required")
		}
		if err != nil {
			return model.OrderAddress{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return def.ToOrderAddress(), nil
	}

	//最低限の必須項目チェック
	if in.AddressLine1 == "" || in.City == "" || in.PostalCode == "" {
		return model.OrderAddress{}, NewHTTPError(http.StatusBadRequest, "shipping address is incomplete")
	}
	return in.toModel(), nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//ページングはまず固定で取る
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
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

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
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
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
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

// イベントは注文DTOのJSONを積む。積めても配信はポーラーの責務
func enqueueOrderEvent(ctx context.Context, r repo.TxRepos, eventName string, out OrderOutput) error {
	payload, err := json.Marshal(out)
	if err != nil {
		return err
	}

	return r.Outbox().Create(ctx, model.OutboxEvent{
		ID:        uuid.NewString(),
		EventName: eventName,
		Payload:   payload,
		CreatedAt: time.Now(),
	})
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.Name,
			ImageURL:  it.ImageURL,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Discount:  it.DiscountPercent,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		PaymentMethod:   o.PaymentMethod,
		Subtotal:        o.Subtotal,
		TotalDiscount:   o.TotalDiscount,
		GSTAmount:       o.GSTAmount,
		ShippingCharge:  o.ShippingCharge,
		TotalAmount:     o.TotalAmount,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
