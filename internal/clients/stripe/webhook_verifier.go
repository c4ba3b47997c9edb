package stripe

import (
	"encoding/json"

	stripego "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/yungbote/checkout-backend/internal/pkg/apperr"
	"github.com/yungbote/checkout-backend/internal/pkg/logger"
	"github.com/yungbote/checkout-backend/internal/types"
)

// WebhookVerifier checks the HMAC signature on a raw provider payload and
// reduces it to an OutcomeEvent. Verification happens before the payload is
// trusted in any way; nothing downstream ever sees an unverified event.
type WebhookVerifier interface {
	VerifyAndParse(payload []byte, signatureHeader string) (*types.OutcomeEvent, error)
}

type webhookVerifier struct {
	log    *logger.Logger
	secret string
}

func NewWebhookVerifier(baseLog *logger.Logger, webhookSecret string) WebhookVerifier {
	return &webhookVerifier{
		log:    baseLog.With("client", "StripeWebhookVerifier"),
		secret: webhookSecret,
	}
}

func (wv *webhookVerifier) VerifyAndParse(payload []byte, signatureHeader string) (*types.OutcomeEvent, error) {
	const op = "stripe.WebhookVerifier.VerifyAndParse"

	if wv.secret == "" {
		wv.log.Error("Webhook secret is not configured")
		return nil, apperr.New(apperr.CodeInvalidSignature, op, "webhook secret not configured")
	}

	event, err := webhook.ConstructEvent(payload, signatureHeader, wv.secret)
	if err != nil {
		wv.log.Warn("Webhook signature verification failed", "error", err)
		return nil, apperr.Wrap(apperr.CodeInvalidSignature, op, err)
	}

	kind := outcomeKindForEventType(string(event.Type))
	out := &types.OutcomeEvent{ID: event.ID, Kind: kind}
	if kind == types.OutcomeIgnored {
		wv.log.Debug("Unhandled webhook event type", "event_type", event.Type, "event_id", event.ID)
		return out, nil
	}

	var pi stripego.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, apperr.Wrap(apperr.CodeMalformedEvent, op, err)
	}
	out.ExternalPaymentID = pi.ID
	out.OrderID = pi.Metadata["orderId"]

	wv.log.Info("Webhook verified", "event_type", event.Type, "event_id", event.ID, "intent_id", pi.ID)
	return out, nil
}

func outcomeKindForEventType(eventType string) types.OutcomeKind {
	switch eventType {
	case "payment_intent.succeeded":
		return types.OutcomeSucceeded
	case "payment_intent.payment_failed":
		return types.OutcomeFailed
	case "payment_intent.canceled":
		return types.OutcomeCanceled
	}
	return types.OutcomeIgnored
}
