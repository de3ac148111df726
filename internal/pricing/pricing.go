package pricing

import "errors"

// 税率・送料は固定ポリシー
const (
	GSTRate            = 0.18
	FlatShippingCharge = 5.00
)

var ErrNoItems = errors.New("no items to price")

// 明細1行分の入力（スナップショット値）
type LineItem struct {
	Price           float64
	Quantity        int64
	DiscountPercent float64
}

// 計算結果。丸めは表示側の責務なのでここでは一切丸めない
type Breakdown struct {
	Subtotal       float64
	TotalDiscount  float64
	GSTAmount      float64
	ShippingCharge float64
	TotalAmount    float64
}

// Price は明細リストから金額内訳を計算する純関数。
// total = (subtotal - totalDiscount) + gst + shipping
// 空リストは上流で弾く前提だがここでもエラーにする（0円注文を作らない）。
func Price(items []LineItem) (Breakdown, error) {
	if len(items) == 0 {
		return Breakdown{}, ErrNoItems
	}

	var subtotal, totalDiscount float64
	for _, it := range items {
		line := it.Price * float64(it.Quantity)
		subtotal += line
		totalDiscount += line * it.DiscountPercent / 100
	}

	afterDiscount := subtotal - totalDiscount
	gst := afterDiscount * GSTRate

	return Breakdown{
		Subtotal:       subtotal,
		TotalDiscount:  totalDiscount,
		GSTAmount:      gst,
		ShippingCharge: FlatShippingCharge,
		TotalAmount:    afterDiscount + gst + FlatShippingCharge,
	}, nil
}
