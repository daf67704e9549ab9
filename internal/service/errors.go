package service

import (
	"errors"
	"fmt"
)

// Failure taxonomy surfaced to the transport boundary. Handlers translate
// these into HTTP statuses; nothing below this layer is swallowed.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrOrderNotFound       = errors.New("order not found")
	ErrForbidden           = errors.New("access denied")
	ErrSignatureInvalid    = errors.New("payment verification failed: invalid signature")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
	ErrGatewayRefundFailed = errors.New("payment gateway refund failed")
)

// ValidationError marks caller-fixable input problems.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

type InsufficientStockError struct {
	ProductID uint
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

// OrderCommitFailedError reports a verified payment whose order commit
// failed afterwards. Money may already have moved, so this is a
// reconciliation case for operational follow-up, never a silent error.
type OrderCommitFailedError struct {
	GatewayPaymentID string
	Err              error
}

func (e *OrderCommitFailedError) Error() string {
	return fmt.Sprintf("payment %s verified but order commit failed: %v", e.GatewayPaymentID, e.Err)
}

func (e *OrderCommitFailedError) Unwrap() error {
	return e.Err
}
