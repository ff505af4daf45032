package cart

import "github.com/shopspring/decimal"

const (
	DefaultFlatShippingFee       = 50000
	DefaultFreeShippingThreshold = 5000000

	PromoAppliedMessage = "Promo code applied successfully!"
	PromoInvalidMessage = "Invalid promo code"
)

// DefaultPromoCodes maps upper-case codes to the fraction of the subtotal
// they take off.
var DefaultPromoCodes = map[string]float64{
	"WELCOME10": 0.10,
}

// Shipping is a flat fee waived once the subtotal is strictly above the
// threshold.
type Shipping struct {
	FlatFee   float64
	Threshold float64
}

var DefaultShipping = Shipping{FlatFee: DefaultFlatShippingFee, Threshold: DefaultFreeShippingThreshold}

func (s Shipping) For(subtotal float64) float64 {
	if subtotal > s.Threshold {
		return 0
	}
	return s.FlatFee
}

// Summarize totals items. Discount is always zero; promo codes are applied
// separately with ApplyPromo.
func Summarize(items []LineItem, ship Shipping) Summary {
	sub := decimal.Zero
	count := 0
	for _, it := range items {
		sub = sub.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
		count += it.Quantity
	}
	subtotal := sub.InexactFloat64()
	shipping := ship.For(subtotal)
	return Summary{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Discount:  0,
		Total:     sub.Add(decimal.NewFromFloat(shipping)).InexactFloat64(),
		ItemCount: count,
	}
}

// NormalizePromoCodes upper-cases and trims the codes of a promo table.
func NormalizePromoCodes(codes map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(codes))
	for code, rate := range codes {
		out[normalizeCode(code)] = rate
	}
	return out
}

// ApplyPromo looks code up case-insensitively in codes, whose keys must be
// normalized, and prices the discount against subtotal.
func ApplyPromo(subtotal float64, code string, codes map[string]float64) PromoResult {
	rate, ok := codes[normalizeCode(code)]
	if !ok {
		return PromoResult{Success: false, Discount: 0, Message: PromoInvalidMessage}
	}
	discount := decimal.NewFromFloat(subtotal).Mul(decimal.NewFromFloat(rate))
	return PromoResult{Success: true, Discount: discount.InexactFloat64(), Message: PromoAppliedMessage}
}
