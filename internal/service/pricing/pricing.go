// Package pricing derives the amounts shown in the order summary from a cart
// snapshot. Everything here is a pure function over minor currency units;
// cart state is never mutated from this package.
package pricing

import "github.com/daralkutub/storefront/internal/domain"

// Currency is the only currency the store trades in.
const Currency = "TND"

const (
	// StandardFeeMinor is the flat standard-delivery fee (7 TND).
	StandardFeeMinor int64 = 700
	// ExpressFeeMinor is the flat express-delivery fee (15 TND).
	ExpressFeeMinor int64 = 1500
	// FreeShippingThresholdMinor waives the standard fee at or above this
	// subtotal (150 TND). Express stays chargeable at any subtotal.
	FreeShippingThresholdMinor int64 = 15000
)

// Subtotal sums unit price times quantity over the lines. Amounts stay in
// integer minor units, so there is no rounding until display.
func Subtotal(lines []domain.CartLine) int64 {
	var sum int64
	for _, line := range lines {
		sum += int64(line.Quantity) * line.PriceMinor
	}
	return sum
}

// ShippingFee returns the delivery fee for the method at the given subtotal.
// An unknown method falls back to the standard fee, matching how the
// storefront defaults the selector.
func ShippingFee(subtotalMinor int64, method domain.ShippingMethod) int64 {
	if method == domain.ShippingExpress {
		return ExpressFeeMinor
	}
	if subtotalMinor >= FreeShippingThresholdMinor {
		return 0
	}
	return StandardFeeMinor
}

// Total is subtotal plus shipping fee. No taxes, discounts or coupons exist.
func Total(subtotalMinor, shippingFeeMinor int64) int64 {
	return subtotalMinor + shippingFeeMinor
}

// AmountToRemainingFreeShipping returns how much more the cart needs before
// standard shipping is waived, or 0 when the threshold is already met.
func AmountToRemainingFreeShipping(subtotalMinor int64) int64 {
	if subtotalMinor >= FreeShippingThresholdMinor {
		return 0
	}
	return FreeShippingThresholdMinor - subtotalMinor
}
