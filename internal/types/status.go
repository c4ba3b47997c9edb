package types

import (
	"fmt"

	"github.com/yungbote/checkout-backend/internal/pkg/apperr"
)

type OrderStatus string

const (
	OrderStatusCreated        OrderStatus = "CREATED"
	OrderStatusPaymentPending OrderStatus = "PAYMENT_PENDING"
	OrderStatusPaid           OrderStatus = "PAID"
	OrderStatusFailed         OrderStatus = "FAILED"
	OrderStatusCanceled       OrderStatus = "CANCELED"
)

// orderTransitions is the only place legal order-status moves are declared.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:        {OrderStatusPaymentPending},
	OrderStatusPaymentPending: {OrderStatusPaid, OrderStatusFailed, OrderStatusCanceled},
}

func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusPaid, OrderStatusFailed, OrderStatusCanceled:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusInitiated PaymentStatus = "INITIATED"
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCanceled  PaymentStatus = "CANCELED"
)

func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusSucceeded, PaymentStatusFailed, PaymentStatusCanceled:
		return true
	}
	return false
}

type PaymentProvider string

const ProviderStripe PaymentProvider = "STRIPE"

func ParsePaymentProvider(s string) (PaymentProvider, error) {
	switch PaymentProvider(normalizeUpper(s)) {
	case ProviderStripe:
		return ProviderStripe, nil
	}
	return "", apperr.New(apperr.CodeValidation, "types.ParsePaymentProvider", fmt.Sprintf("unsupported payment provider %q", s))
}

// OutcomeKind is the closed set of provider outcomes the reconciler acts on.
// Anything a provider sends outside this set is acknowledged and ignored.
type OutcomeKind int

const (
	OutcomeIgnored OutcomeKind = iota
	OutcomeSucceeded
	OutcomeFailed
	OutcomeCanceled
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeCanceled:
		return "canceled"
	}
	return "ignored"
}

// OrderStatus is the terminal order status this outcome implies.
func (k OutcomeKind) OrderStatus() OrderStatus {
	switch k {
	case OutcomeSucceeded:
		return OrderStatusPaid
	case OutcomeFailed:
		return OrderStatusFailed
	case OutcomeCanceled:
		return OrderStatusCanceled
	}
	return ""
}

// PaymentStatus is the terminal payment status this outcome implies.
func (k OutcomeKind) PaymentStatus() PaymentStatus {
	switch k {
	case OutcomeSucceeded:
		return PaymentStatusSucceeded
	case OutcomeFailed:
		return PaymentStatusFailed
	case OutcomeCanceled:
		return PaymentStatusCanceled
	}
	return ""
}
