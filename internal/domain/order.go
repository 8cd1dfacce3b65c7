package domain

import "time"

// OrderStatus tracks an order through the back-office workflow.
type OrderStatus string

const (
	// OrderStatusPending: order received, awaiting admin handling.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing: order is being prepared for dispatch.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusShipped: order handed to the courier.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusCompleted: order delivered and settled (cash on delivery).
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled: order cancelled before completion.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status belongs to the workflow vocabulary.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// ShippingMethod selects one of the two delivery options.
type ShippingMethod string

const (
	// ShippingStandard: flat-fee delivery, waived above the free-shipping
	// threshold.
	ShippingStandard ShippingMethod = "standard"
	// ShippingExpress: faster delivery, always charged.
	ShippingExpress ShippingMethod = "express"
)

// Valid reports whether the method is one of the two defined options.
func (m ShippingMethod) Valid() bool {
	return m == ShippingStandard || m == ShippingExpress
}

// PaymentMethod names how the customer pays. Only cash on delivery is
// implemented; the other options the storefront lists are placeholders and
// must never reach an order.
type PaymentMethod string

const (
	// PaymentCashOnDelivery is the only accepted payment method.
	PaymentCashOnDelivery PaymentMethod = "cash"
)

// Valid reports whether the method is actually implemented.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCashOnDelivery
}

// OrderItem is one purchased line, frozen from the cart at checkout.
type OrderItem struct {
	// ID identifies the line for audit purposes.
	ID     string
	BookID string
	Title  string
	// PriceMinor is the unit price in minor currency units.
	PriceMinor int64
	Quantity   int32
	CoverImage string
	CreatedAt  time.Time
}

// Customer carries the checkout form fields attached to an order.
type Customer struct {
	FullName   string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
	// Notes is optional free text from the customer.
	Notes string
}

// Order aggregates a placed order: customer, frozen lines and totals.
type Order struct {
	ID string
	// Number is the human-facing receipt number (KTB-YYMMDD-NNNN).
	Number   string
	Customer Customer
	Items    []OrderItem
	Shipping ShippingMethod
	Payment  PaymentMethod
	// All amounts are minor currency units; Total = Subtotal + ShippingFee.
	SubtotalMinor    int64
	ShippingFeeMinor int64
	TotalMinor       int64
	Currency         string
	Status           OrderStatus
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidateInvariants checks the aggregate before it is persisted and returns
// every violation found.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.Customer.FullName == "" {
		errs = append(errs, ErrCustomerNameRequired)
	}
	if o.Customer.Email == "" {
		errs = append(errs, ErrCustomerEmailRequired)
	}
	if o.Currency == "" {
		errs = append(errs, ErrCurrencyRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if !o.Shipping.Valid() {
		errs = append(errs, ErrShippingMethodInvalid)
	}
	if !o.Payment.Valid() {
		errs = append(errs, ErrPaymentMethodInvalid)
	}
	if o.ShippingFeeMinor < 0 {
		errs = append(errs, ErrAmountNegative)
	}

	// The stored subtotal must equal the sum of qty * price over the lines,
	// and the total must equal subtotal + shipping.
	var calc int64
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ErrQuantityInvalid)
		}
		if item.PriceMinor < 0 {
			errs = append(errs, ErrBookPriceNegative)
		}
		calc += int64(item.Quantity) * item.PriceMinor
	}
	if calc != o.SubtotalMinor {
		errs = append(errs, ErrSubtotalMismatch)
	}
	if o.SubtotalMinor+o.ShippingFeeMinor != o.TotalMinor {
		errs = append(errs, ErrTotalMismatch)
	}

	return errs
}
