package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	stripeclient "github.com/yungbote/checkout-backend/internal/clients/stripe"
	"github.com/yungbote/checkout-backend/internal/data/repos"
	"github.com/yungbote/checkout-backend/internal/pkg/apperr"
	"github.com/yungbote/checkout-backend/internal/pkg/dbctx"
	"github.com/yungbote/checkout-backend/internal/pkg/logger"
	"github.com/yungbote/checkout-backend/internal/types"
)

// CheckoutResult is what the caller needs to finish the payment on their
// side: the client secret plus the identifiers to poll with.
type CheckoutResult struct {
	OrderID      uuid.UUID             `json:"order_id"`
	PaymentID    uuid.UUID             `json:"payment_id"`
	Provider     types.PaymentProvider `json:"provider"`
	ClientSecret string                `json:"client_secret"`
	OrderStatus  types.OrderStatus     `json:"order_status"`
}

type CheckoutService interface {
	InitiateCheckout(ctx context.Context, orderID uuid.UUID, provider, idempotencyKey string) (*CheckoutResult, error)
}

type checkoutService struct {
	db          *gorm.DB
	log         *logger.Logger
	txRunner    repos.TxRunner
	orderRepo   repos.OrderRepo
	paymentRepo repos.PaymentRepo
	gateway     stripeclient.PaymentClient
}

func NewCheckoutService(
	db *gorm.DB,
	baseLog *logger.Logger,
	txRunner repos.TxRunner,
	orderRepo repos.OrderRepo,
	paymentRepo repos.PaymentRepo,
	gateway stripeclient.PaymentClient,
) CheckoutService {
	return &checkoutService{
		db:          db,
		log:         baseLog.With("service", "CheckoutService"),
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
	}
}

// InitiateCheckout drives an order from CREATED to PAYMENT_PENDING. The whole
// sequence runs in one transaction with the order row locked, so a concurrent
// checkout for the same order serializes behind it and fails the CREATED
// guard. The idempotency-key check runs before the gateway call: a retried
// request with a consumed key never reaches the provider.
func (s *checkoutService) InitiateCheckout(ctx context.Context, orderID uuid.UUID, provider, idempotencyKey string) (*CheckoutResult, error) {
	const op = "services.CheckoutService.InitiateCheckout"

	if strings.TrimSpace(idempotencyKey) == "" {
		return nil, apperr.New(apperr.CodeValidation, op, "idempotency key is required")
	}
	prov, err := types.ParsePaymentProvider(provider)
	if err != nil {
		return nil, err
	}

	s.log.Info("Initiating checkout", "order_id", orderID, "idempotency_key", idempotencyKey)

	var result *CheckoutResult
	err = s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		existing, err := s.paymentRepo.GetByIdempotencyKey(dbc, idempotencyKey)
		if err != nil {
			return err
		}
		if existing != nil {
			s.log.Warn("Idempotency conflict", "idempotency_key", idempotencyKey, "existing_payment_id", existing.ID)
			return apperr.New(apperr.CodeIdempotencyConflict, op, fmt.Sprintf("idempotency key %q already used", idempotencyKey))
		}

		order, err := s.orderRepo.GetByIDForUpdate(dbc, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperr.New(apperr.CodeOrderNotFound, op, fmt.Sprintf("order %s not found", orderID))
		}

		if err := validateOrderForCheckout(order); err != nil {
			s.log.Warn("Order not eligible for checkout", "order_id", orderID, "status", order.Status)
			return err
		}

		intent, err := s.gateway.CreateIntent(dbc.Ctx, order.TotalAmountMinor, order.Currency, order.ID)
		if err != nil {
			// Transaction rolls back; no payment row, no order mutation.
			if apperr.CodeOf(err) == "" {
				err = apperr.Wrap(apperr.CodePaymentGateway, op, err)
			}
			return err
		}

		payment := &types.Payment{
			ID:                uuid.New(),
			OrderID:           order.ID,
			Provider:          prov,
			ExternalPaymentID: intent.ID,
			ClientSecret:      intent.ClientSecret,
			AmountMinor:       order.TotalAmountMinor,
			Currency:          order.Currency,
			Status:            types.PaymentStatusInitiated,
			IdempotencyKey:    idempotencyKey,
		}
		if _, err := s.paymentRepo.Create(dbc, payment); err != nil {
			return err
		}

		if err := order.TransitionTo(types.OrderStatusPaymentPending); err != nil {
			return err
		}
		if err := s.orderRepo.UpdateStatus(dbc, order); err != nil {
			return err
		}

		result = &CheckoutResult{
			OrderID:      order.ID,
			PaymentID:    payment.ID,
			Provider:     prov,
			ClientSecret: intent.ClientSecret,
			OrderStatus:  order.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Checkout initiated", "order_id", result.OrderID, "payment_id", result.PaymentID)
	return result, nil
}

func validateOrderForCheckout(order *types.Order) error {
	const op = "services.CheckoutService.validateOrderForCheckout"

	if order.Status != types.OrderStatusCreated {
		return apperr.New(apperr.CodeInvalidOrderState, op, invalidStateReason(order.Status))
	}
	if order.TotalAmountMinor <= 0 {
		return apperr.New(apperr.CodeInvalidOrderState, op, "order total must be greater than zero")
	}
	if len(order.Items) == 0 {
		return apperr.New(apperr.CodeInvalidOrderState, op, "order has no items")
	}
	return nil
}

// invalidStateReason tells the caller whether retrying with a new order is
// the right remedy, so each status gets its own message.
func invalidStateReason(status types.OrderStatus) string {
	switch status {
	case types.OrderStatusPaymentPending:
		return "order already has a payment in progress"
	case types.OrderStatusPaid:
		return "order has already been paid"
	case types.OrderStatusFailed:
		return "order payment failed, create a new order"
	case types.OrderStatusCanceled:
		return "order is canceled, create a new order"
	}
	return "order is not in a valid state for checkout"
}
