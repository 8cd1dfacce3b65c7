package pricing_test

import (
	"testing"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/service/pricing"
)

func TestSubtotal(t *testing.T) {
	cases := []struct {
		name  string
		lines []domain.CartLine
		want  int64
	}{
		{name: "empty cart", lines: nil, want: 0},
		{
			name: "single line",
			lines: []domain.CartLine{
				{BookID: "a", PriceMinor: 2000, Quantity: 2},
			},
			want: 4000,
		},
		{
			name: "mixed lines",
			lines: []domain.CartLine{
				{BookID: "a", PriceMinor: 2000, Quantity: 2},
				{BookID: "b", PriceMinor: 950, Quantity: 1},
			},
			want: 4950,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pricing.Subtotal(tc.lines); got != tc.want {
				t.Fatalf("expected subtotal %d, got %d", tc.want, got)
			}
		})
	}
}

func TestShippingFee(t *testing.T) {
	cases := []struct {
		name     string
		subtotal int64
		method   domain.ShippingMethod
		want     int64
	}{
		{name: "standard under threshold", subtotal: 14000, method: domain.ShippingStandard, want: 700},
		{name: "standard at threshold", subtotal: 15000, method: domain.ShippingStandard, want: 0},
		{name: "standard above threshold", subtotal: 20000, method: domain.ShippingStandard, want: 0},
		{name: "express ignores threshold", subtotal: 20000, method: domain.ShippingExpress, want: 1500},
		{name: "express on empty cart", subtotal: 0, method: domain.ShippingExpress, want: 1500},
		{name: "standard on empty cart", subtotal: 0, method: domain.ShippingStandard, want: 700},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pricing.ShippingFee(tc.subtotal, tc.method); got != tc.want {
				t.Fatalf("expected fee %d, got %d", tc.want, got)
			}
		})
	}
}

func TestTotal_EmptyCartIsFeeAlone(t *testing.T) {
	subtotal := pricing.Subtotal(nil)
	fee := pricing.ShippingFee(subtotal, domain.ShippingExpress)

	if got := pricing.Total(subtotal, fee); got != 1500 {
		t.Fatalf("expected total 1500 (fee only), got %d", got)
	}
	if subtotal != 0 {
		t.Fatalf("expected zero subtotal, got %d", subtotal)
	}
}

func TestAmountToRemainingFreeShipping(t *testing.T) {
	if got := pricing.AmountToRemainingFreeShipping(14000); got != 1000 {
		t.Fatalf("expected 1000 remaining, got %d", got)
	}
	if got := pricing.AmountToRemainingFreeShipping(15000); got != 0 {
		t.Fatalf("expected 0 remaining at threshold, got %d", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{minor: 0, want: "0.00"},
		{minor: 700, want: "7.00"},
		{minor: 4950, want: "49.50"},
		{minor: 5, want: "0.05"},
		{minor: -1500, want: "-15.00"},
	}

	for _, tc := range cases {
		if got := pricing.FormatAmount(tc.minor); got != tc.want {
			t.Fatalf("FormatAmount(%d): expected %q, got %q", tc.minor, tc.want, got)
		}
	}
}
