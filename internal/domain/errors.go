package domain

import "errors"

var (
	// ErrBookIDRequired: a cart line or lookup is missing the book id.
	ErrBookIDRequired = errors.New("book_id is required")
	// ErrBookTitleRequired: a catalog record must carry a title.
	ErrBookTitleRequired = errors.New("book title is required")
	// ErrBookPriceNegative: catalog and line prices must be non-negative.
	ErrBookPriceNegative = errors.New("price_minor must be non-negative")
	// ErrShelfInvalid: the shelf is not one of the catalog tables.
	ErrShelfInvalid = errors.New("shelf must be books or quran_books")
	// ErrBookNotFound is returned when a catalog record does not exist.
	ErrBookNotFound = errors.New("book not found")
	// ErrBookExists is returned when creating a record with a taken id.
	ErrBookExists = errors.New("book already exists")

	// ErrQuantityInvalid: a quantity of zero or less was supplied.
	ErrQuantityInvalid = errors.New("quantity must be greater than zero")
	// ErrLineNotFound: the cart has no line for the given book id.
	ErrLineNotFound = errors.New("cart line not found")

	// ErrCartEmpty: checkout was attempted against an empty cart.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrCustomerNameRequired: the checkout form is missing the full name.
	ErrCustomerNameRequired = errors.New("customer full name is required")
	// ErrCustomerEmailRequired: the checkout form is missing the email.
	ErrCustomerEmailRequired = errors.New("customer email is required")
	// ErrCustomerFieldsMissing: one or more required checkout fields are blank.
	ErrCustomerFieldsMissing = errors.New("required customer fields are missing")
	// ErrCurrencyRequired: an order must carry a currency code.
	ErrCurrencyRequired = errors.New("currency is required")
	// ErrItemsRequired: an order must contain at least one line.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// ErrAmountNegative: stored amounts must be non-negative.
	ErrAmountNegative = errors.New("amount_minor must be non-negative")
	// ErrSubtotalMismatch: the order subtotal does not match its lines.
	ErrSubtotalMismatch = errors.New("order subtotal does not match items sum")
	// ErrTotalMismatch: total must equal subtotal plus shipping fee.
	ErrTotalMismatch = errors.New("order total does not match subtotal plus shipping")
	// ErrShippingMethodInvalid: not one of standard/express.
	ErrShippingMethodInvalid = errors.New("shipping method must be standard or express")
	// ErrPaymentMethodInvalid: only cash on delivery is implemented.
	ErrPaymentMethodInvalid = errors.New("payment method is not supported")
	// ErrSubmissionInFlight: a checkout for this session is already running.
	ErrSubmissionInFlight = errors.New("order submission already in flight")

	// ErrOrderNotFound is returned when an order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderVersionConflict signals an optimistic-locking conflict on save.
	ErrOrderVersionConflict = errors.New("order version conflict")
	// ErrOrderStatusInvalid: the requested status is outside the workflow.
	ErrOrderStatusInvalid = errors.New("order status is not valid")

	// ErrOutboxPublish: publishing a message from the outbox failed.
	ErrOutboxPublish = errors.New("outbox publish failed")

	// ErrInvalidCredentials: admin login with a wrong username or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenInvalid: the admin token is malformed or its signature is wrong.
	ErrTokenInvalid = errors.New("token is invalid")
	// ErrTokenExpired: the admin token has passed its expiry.
	ErrTokenExpired = errors.New("token is expired")
)

// IsVersionConflict reports whether err is an optimistic-locking conflict.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrOrderVersionConflict)
}
