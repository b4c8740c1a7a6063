package promo

import (
	"go-booking-core/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line 結帳當下重算出來的一行購物車：活動、發行 organizer、現價、數量
type Line struct {
	EventID     uuid.UUID
	OrganizerID uuid.UUID
	UnitPrice   decimal.Decimal
	Quantity    int
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Subtotal 整車小計
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ItemDiscount 單行的折扣分攤結果
type ItemDiscount struct {
	EventID uuid.UUID
	// Amount 該行分攤到的折扣金額
	Amount decimal.Decimal
	// PerTicket 長度等於該行 Quantity，逐张票的折扣；總和恰等於 Amount
	PerTicket []decimal.Decimal
}

// Discount 折扣計算結果，Items 與輸入 lines 一一對應
type Discount struct {
	Total decimal.Decimal
	Items []ItemDiscount
}

// Compute 計算折扣並分攤到每張票。純函式。
//   - percentage: scoped 小計 × value / 100，再以 max_discount 封頂
//   - fixed: 固定金額，不隨張數縮放
//   - 最終折扣 clamp 在 [0, scoped 小計]，永不為負、永不超過被折抵的金額
//   - promo 若指定 event_id，只有該活動的行分攤折扣；未指定則分攤到
//     發行 organizer 名下所有活動的行，其餘行折扣為零
//
// 分攤以「分」為單位做最大餘數法，保證逐張票加總精確還原行折扣。
func Compute(p *model.PromoCode, lines []Line) Discount {
	result := Discount{Total: decimal.Zero, Items: make([]ItemDiscount, len(lines))}
	for i, l := range lines {
		result.Items[i] = ItemDiscount{
			EventID:   l.EventID,
			Amount:    decimal.Zero,
			PerTicket: zeroPerTicket(l.Quantity),
		}
	}

	if p == nil {
		return result
	}

	scoped := scopedIndexes(p, lines)
	scopedSubtotal := decimal.Zero
	for _, i := range scoped {
		scopedSubtotal = scopedSubtotal.Add(lines[i].Subtotal())
	}
	if scopedSubtotal.IsZero() {
		return result
	}

	var discount decimal.Decimal
	switch p.DiscountType {
	case model.DiscountTypePercentage:
		discount = scopedSubtotal.Mul(p.DiscountValue).Div(hundred).Round(2)
		if p.MaxDiscount != nil && discount.GreaterThan(*p.MaxDiscount) {
			discount = (*p.MaxDiscount).Round(2)
		}
	case model.DiscountTypeFixed:
		discount = p.DiscountValue.Round(2)
	default:
		return result
	}

	// clamp [0, scoped 小計]
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(scopedSubtotal) {
		discount = scopedSubtotal
	}
	if discount.IsZero() {
		return result
	}

	// 行間依 scoped 小計比例分攤
	weights := make([]decimal.Decimal, len(scoped))
	for j, i := range scoped {
		weights[j] = lines[i].Subtotal()
	}
	shares := allocate(discount, weights)

	for j, i := range scoped {
		result.Items[i].Amount = shares[j]
		result.Items[i].PerTicket = splitEvenly(shares[j], lines[i].Quantity)
	}
	result.Total = discount

	return result
}

// scopedIndexes 回傳折扣適用到的行：指定 event_id 時只包含該活動，
// 否則包含發行 organizer 名下所有活動的行。
func scopedIndexes(p *model.PromoCode, lines []Line) []int {
	var idx []int
	for i, l := range lines {
		if p.EventID != nil {
			if l.EventID == *p.EventID {
				idx = append(idx, i)
			}
			continue
		}
		if l.OrganizerID == p.OrganizerID {
			idx = append(idx, i)
		}
	}
	return idx
}

// allocate 以「分」為單位按權重比例分配 total，餘數給小數部分最大者（最大餘數法）。
// 分配結果加總恰等於 total，且每份非負。
func allocate(total decimal.Decimal, weights []decimal.Decimal) []decimal.Decimal {
	n := len(weights)
	if n == 1 {
		return []decimal.Decimal{total}
	}

	weightSum := decimal.Zero
	for _, w := range weights {
		weightSum = weightSum.Add(w)
	}

	totalCents := total.Mul(hundred)
	type frac struct {
		idx  int
		part decimal.Decimal
	}

	cents := make([]decimal.Decimal, n)
	fracs := make([]frac, n)
	assigned := decimal.Zero
	for i, w := range weights {
		exact := totalCents.Mul(w).Div(weightSum)
		floor := exact.Floor()
		cents[i] = floor
		fracs[i] = frac{idx: i, part: exact.Sub(floor)}
		assigned = assigned.Add(floor)
	}

	// 剩餘的分逐一給小數部分最大的行；同分時給較前面的行，保持決定性
	remainder := int(totalCents.Sub(assigned).IntPart())
	for r := 0; r < remainder; r++ {
		best := -1
		for _, f := range fracs {
			if best == -1 || f.part.GreaterThan(fracs[best].part) {
				best = f.idx
			}
		}
		cents[best] = cents[best].Add(decimal.NewFromInt(1))
		fracs[best].part = decimal.NewFromInt(-1)
	}

	out := make([]decimal.Decimal, n)
	for i := range cents {
		out[i] = cents[i].Div(hundred)
	}
	return out
}

// splitEvenly 把一行的折扣平分到每張票，零頭（分）從第一張開始分配，
// 逐張加總精確等於 amount。
func splitEvenly(amount decimal.Decimal, quantity int) []decimal.Decimal {
	if quantity <= 0 {
		return nil
	}

	cents := amount.Mul(hundred).IntPart()
	base := cents / int64(quantity)
	extra := cents % int64(quantity)

	out := make([]decimal.Decimal, quantity)
	for i := 0; i < quantity; i++ {
		c := base
		if int64(i) < extra {
			c++
		}
		out[i] = decimal.NewFromInt(c).Div(hundred)
	}
	return out
}

func zeroPerTicket(quantity int) []decimal.Decimal {
	out := make([]decimal.Decimal, quantity)
	for i := range out {
		out[i] = decimal.Zero
	}
	return out
}
