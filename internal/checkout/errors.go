package checkout

import "errors"

var (
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	ErrPriceMismatch        = errors.New("cart contains products that are no longer available")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrInvalidSignature     = errors.New("payment verification failed")
	IllegalTransitionError  = errors.New("illegal transition of payment status")
)
