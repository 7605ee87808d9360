package service

import (
	"github.com/dessertly/api/internal/database"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// ItemSubtotal calculates quantity * unit_price for a single line item.
func ItemSubtotal(quantity int32, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt32(quantity))
}

// OrderTotal sums the subtotals of all line items. An empty item set is the
// caller's validation problem; here it just yields zero.
func OrderTotal(items []database.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(ItemSubtotal(item.Quantity, item.UnitPrice))
	}
	return total
}

// --- pgtype.Numeric conversions ---

// NumericToDecimal converts a pgtype.Numeric into a decimal, treating NULL
// and conversion failures as zero.
func NumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DecimalToNumeric converts a decimal into a pgtype.Numeric with two decimal
// places, matching the NUMERIC(10,2) money columns.
func DecimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
