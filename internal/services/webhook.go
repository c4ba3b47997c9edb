package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/checkout-backend/internal/clients/redis"
	stripeclient "github.com/yungbote/checkout-backend/internal/clients/stripe"
	"github.com/yungbote/checkout-backend/internal/data/repos"
	"github.com/yungbote/checkout-backend/internal/pkg/apperr"
	"github.com/yungbote/checkout-backend/internal/pkg/dbctx"
	"github.com/yungbote/checkout-backend/internal/pkg/logger"
	"github.com/yungbote/checkout-backend/internal/types"
)

type WebhookService interface {
	// ProcessEvent verifies, parses and applies one provider outcome
	// delivery. Redelivery of an already-applied outcome is a successful
	// no-op, never an error.
	ProcessEvent(ctx context.Context, payload []byte, signatureHeader string) error
}

type webhookService struct {
	db          *gorm.DB
	log         *logger.Logger
	txRunner    repos.TxRunner
	orderRepo   repos.OrderRepo
	paymentRepo repos.PaymentRepo
	verifier    stripeclient.WebhookVerifier
	events      redisclient.EventCache
}

func NewWebhookService(
	db *gorm.DB,
	baseLog *logger.Logger,
	txRunner repos.TxRunner,
	orderRepo repos.OrderRepo,
	paymentRepo repos.PaymentRepo,
	verifier stripeclient.WebhookVerifier,
	events redisclient.EventCache,
) WebhookService {
	return &webhookService{
		db:          db,
		log:         baseLog.With("service", "WebhookService"),
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		verifier:    verifier,
		events:      events,
	}
}

func (s *webhookService) ProcessEvent(ctx context.Context, payload []byte, signatureHeader string) error {
	const op = "services.WebhookService.ProcessEvent"

	// Signature first. Nothing below runs on an unverified payload.
	event, err := s.verifier.VerifyAndParse(payload, signatureHeader)
	if err != nil {
		return err
	}

	if event.Kind == types.OutcomeIgnored {
		s.log.Info("Ignoring unhandled webhook event", "event_id", event.ID)
		return nil
	}

	// Best-effort redelivery fast path; the in-transaction terminal-status
	// guard below is the actual idempotency guarantee.
	if s.events != nil && s.events.Seen(ctx, event.ID) {
		s.log.Debug("Webhook event already processed, acknowledging", "event_id", event.ID)
		return nil
	}

	if event.ExternalPaymentID == "" {
		return apperr.New(apperr.CodeMalformedEvent, op, "event is missing the payment reference id")
	}
	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		return apperr.New(apperr.CodeMalformedEvent, op, fmt.Sprintf("event carries no usable order id: %q", event.OrderID))
	}

	err = s.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(dbc, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperr.New(apperr.CodeOrderNotFound, op, fmt.Sprintf("order %s not found", orderID))
		}

		implied := event.Kind.OrderStatus()
		if order.Status.IsTerminal() {
			if order.Status == implied {
				s.log.Debug("Outcome already applied, skipping", "order_id", orderID, "status", order.Status)
			} else {
				// Contradictory outcome for a settled order. Suppressed like a
				// duplicate, but logged loudly so operators can investigate.
				s.log.Warn("Contradictory outcome for settled order ignored",
					"order_id", orderID, "order_status", order.Status, "event_kind", event.Kind.String(), "event_id", event.ID)
			}
			return nil
		}

		payment, err := s.paymentRepo.GetByExternalPaymentID(dbc, event.ExternalPaymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return apperr.New(apperr.CodePaymentNotFound, op, fmt.Sprintf("no payment with external id %q", event.ExternalPaymentID))
		}

		// Payment and order settle together or not at all.
		payment.Status = event.Kind.PaymentStatus()
		if err := s.paymentRepo.UpdateStatus(dbc, payment); err != nil {
			return err
		}
		if err := order.TransitionTo(implied); err != nil {
			return err
		}
		if err := s.orderRepo.UpdateStatus(dbc, order); err != nil {
			return err
		}

		s.log.Info("Outcome applied", "order_id", orderID, "order_status", order.Status, "event_id", event.ID)
		return nil
	})
	if err != nil {
		return err
	}

	if s.events != nil {
		s.events.MarkProcessed(ctx, event.ID)
	}
	return nil
}
