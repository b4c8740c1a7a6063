package promo

import (
	"testing"

	"go-booking-core/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// 逐張票折扣加總必須精確還原行折扣，行折扣加總必須精確還原總折扣
func assertReconstructs(t *testing.T, d Discount) {
	t.Helper()
	sum := decimal.Zero
	for _, item := range d.Items {
		perTicketSum := decimal.Zero
		for _, pt := range item.PerTicket {
			assert.False(t, pt.IsNegative())
			perTicketSum = perTicketSum.Add(pt)
		}
		assert.True(t, perTicketSum.Equal(item.Amount),
			"per-ticket 加總 %s != 行折扣 %s", perTicketSum, item.Amount)
		sum = sum.Add(item.Amount)
	}
	assert.True(t, sum.Equal(d.Total), "行折扣加總 %s != 總折扣 %s", sum, d.Total)
}

func TestCompute_Percentage(t *testing.T) {
	organizerID := uuid.New()
	eventID := uuid.New()

	t.Run("Success - 20% 兩張票各折 20", func(t *testing.T) {
		p := &model.PromoCode{
			OrganizerID:   organizerID,
			DiscountType:  model.DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(20),
		}
		lines := []Line{
			{EventID: eventID, OrganizerID: organizerID, UnitPrice: decimal.NewFromInt(100), Quantity: 2},
		}

		d := Compute(p, lines)

		assert.True(t, d.Total.Equal(decimal.NewFromInt(40)))
		require.Len(t, d.Items, 1)
		require.Len(t, d.Items[0].PerTicket, 2)
		assert.True(t, d.Items[0].PerTicket[0].Equal(decimal.NewFromInt(20)))
		assert.True(t, d.Items[0].PerTicket[1].Equal(decimal.NewFromInt(20)))
		assertReconstructs(t, d)
	})

	t.Run("Success - max_discount 封頂", func(t *testing.T) {
		max := decimal.NewFromInt(30)
		p := &model.PromoCode{
			OrganizerID:   organizerID,
			DiscountType:  model.DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(20),
			MaxDiscount:   &max,
		}
		lines := []Line{
			{EventID: eventID, OrganizerID: organizerID, UnitPrice: decimal.NewFromInt(100), Quantity: 3},
		}

		d := Compute(p, lines)

		// 300 × 20% = 60，封頂 30
		assert.True(t, d.Total.Equal(decimal.NewFromInt(30)))
		assertReconstructs(t, d)
	})

	t.Run("Success - 除不盡時以分為單位分攤", func(t *testing.T) {
		p := &model.PromoCode{
			OrganizerID:   organizerID,
			DiscountType:  model.DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(10),
		}
		// 33.35 × 3 = 100.05，10% = 10.01（四捨五入到分）
		lines := []Line{
			{EventID: eventID, OrganizerID: organizerID, UnitPrice: dec("33.35"), Quantity: 3},
		}

		d := Compute(p, lines)

		assert.True(t, d.Total.Equal(dec("10.01")), "got %s", d.Total)
		require.Len(t, d.Items[0].PerTicket, 3)
		// 1001 分分三張：334 + 334 + 333
		assert.True(t, d.Items[0].PerTicket[0].Equal(dec("3.34")))
		assert.True(t, d.Items[0].PerTicket[1].Equal(dec("3.34")))
		assert.True(t, d.Items[0].PerTicket[2].Equal(dec("3.33")))
		assertReconstructs(t, d)
	})
}

func TestCompute_Fixed(t *testing.T) {
	organizerID := uuid.New()
	eventID := uuid.New()

	t.Run("Success - 固定金額不隨張數縮放", func(t *testing.T) {
		p := &model.PromoCode{
			OrganizerID:   organizerID,
			DiscountType:  model.DiscountTypeFixed,
			DiscountValue: decimal.NewFromInt(50),
		}
		lines := []Line{
			{EventID: eventID, OrganizerID: organizerID, UnitPrice: decimal.NewFromInt(100), Quantity: 4},
		}

		d := Compute(p, lines)

		assert.True(t, d.Total.Equal(decimal.NewFromInt(50)))
		assertReconstructs(t, d)
	})

	t.Run("Success - 折扣不超過小計", func(t *testing.T) {
		p := &model.PromoCode{
			OrganizerID:   organizerID,
			DiscountType:  model.DiscountTypeFixed,
			DiscountValue: decimal.NewFromInt(50),
		}
		lines := []Line{
			{EventID: eventID, OrganizerID: organizerID, UnitPrice: decimal.NewFromInt(30), Quantity: 1},
		}

		d := Compute(p, lines)

		// FLAT50 對 30 元的單，折 30 不折 50
		assert.True(t, d.Total.Equal(decimal.NewFromInt(30)))
		assertReconstructs(t, d)
	})
}

func TestCompute_Scope(t *testing.T) {
	organizerID := uuid.New()
	otherOrganizerID := uuid.New()
	eventA := uuid.New()
	eventB := uuid.New()

	t.Run("Success - event-scoped 只折指定活動", func(t *testing.T) {
		p := &model.PromoCode{
			OrganizerID:   organizerID,
			DiscountType:  model.DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(50),
			EventID:       &eventA,
		}
		lines := []Line{
			{EventID: eventA, OrganizerID: organizerID, UnitPrice: decimal.NewFromInt(100), Quantity: 1},
			{EventID: eventB, OrganizerID: organizerID, UnitPrice: decimal.NewFromInt(200), Quantity: 1},
		}

		d := Compute(p, lines)

		// 只對 eventA 的 100 折 50%
		assert.True(t, d.Total.Equal(decimal.NewFromInt(50)))
		assert.True(t, d.Items[0].Amount.Equal(decimal.NewFromInt(50)))
		assert.True(t, d.Items[1].Amount.IsZero())
		assertReconstructs(t, d)
	})

	t.Run("Success - organizer-scoped 不折別人的活動", func(t *testing.T) {
		p := &model.PromoCode{
			OrganizerID:   organizerID,
			DiscountType:  model.DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(10),
		}
		lines := []Line{
			{EventID: eventA, OrganizerID: organizerID, UnitPrice: decimal.NewFromInt(100), Quantity: 2},
			{EventID: eventB, OrganizerID: otherOrganizerID, UnitPrice: decimal.NewFromInt(300), Quantity: 1},
		}

		d := Compute(p, lines)

		assert.True(t, d.Total.Equal(decimal.NewFromInt(20)))
		assert.True(t, d.Items[1].Amount.IsZero())
		assertReconstructs(t, d)
	})

	t.Run("Success - scope 內沒有任何行時折扣為零", func(t *testing.T) {
		p := &model.PromoCode{
			OrganizerID:   organizerID,
			DiscountType:  model.DiscountTypeFixed,
			DiscountValue: decimal.NewFromInt(50),
			EventID:       &eventA,
		}
		lines := []Line{
			{EventID: eventB, OrganizerID: organizerID, UnitPrice: decimal.NewFromInt(100), Quantity: 1},
		}

		d := Compute(p, lines)

		assert.True(t, d.Total.IsZero())
		assertReconstructs(t, d)
	})

	t.Run("Success - 跨行依小計比例分攤", func(t *testing.T) {
		p := &model.PromoCode{
			OrganizerID:   organizerID,
			DiscountType:  model.DiscountTypeFixed,
			DiscountValue: decimal.NewFromInt(100),
		}
		lines := []Line{
			{EventID: eventA, OrganizerID: organizerID, UnitPrice: decimal.NewFromInt(100), Quantity: 1},
			{EventID: eventB, OrganizerID: organizerID, UnitPrice: decimal.NewFromInt(300), Quantity: 1},
		}

		d := Compute(p, lines)

		assert.True(t, d.Total.Equal(decimal.NewFromInt(100)))
		assert.True(t, d.Items[0].Amount.Equal(decimal.NewFromInt(25)))
		assert.True(t, d.Items[1].Amount.Equal(decimal.NewFromInt(75)))
		assertReconstructs(t, d)
	})
}

func TestCompute_Edge(t *testing.T) {
	organizerID := uuid.New()
	eventID := uuid.New()

	t.Run("Success - nil promo 回傳零折扣", func(t *testing.T) {
		lines := []Line{
			{EventID: eventID, OrganizerID: organizerID, UnitPrice: decimal.NewFromInt(100), Quantity: 2},
		}

		d := Compute(nil, lines)

		assert.True(t, d.Total.IsZero())
		require.Len(t, d.Items, 1)
		assert.True(t, d.Items[0].Amount.IsZero())
		assertReconstructs(t, d)
	})

	t.Run("Success - 負的折扣值 clamp 成零", func(t *testing.T) {
		p := &model.PromoCode{
			OrganizerID:   organizerID,
			DiscountType:  model.DiscountTypeFixed,
			DiscountValue: decimal.NewFromInt(-10),
		}
		lines := []Line{
			{EventID: eventID, OrganizerID: organizerID, UnitPrice: decimal.NewFromInt(100), Quantity: 1},
		}

		d := Compute(p, lines)

		assert.True(t, d.Total.IsZero())
	})

	t.Run("Success - 100% 折到免費", func(t *testing.T) {
		p := &model.PromoCode{
			OrganizerID:   organizerID,
			DiscountType:  model.DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(100),
		}
		lines := []Line{
			{EventID: eventID, OrganizerID: organizerID, UnitPrice: dec("49.99"), Quantity: 2},
		}

		d := Compute(p, lines)

		assert.True(t, d.Total.Equal(dec("99.98")))
		assertReconstructs(t, d)
	})
}

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{UnitPrice: dec("49.99"), Quantity: 2},
		{UnitPrice: decimal.NewFromInt(100), Quantity: 1},
	}

	assert.True(t, Subtotal(lines).Equal(dec("199.98")))
	assert.True(t, Subtotal(nil).IsZero())
}
