package stripe

import (
	"context"
	"strings"

	"github.com/google/uuid"
	stripego "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"

	"github.com/yungbote/checkout-backend/internal/pkg/apperr"
	"github.com/yungbote/checkout-backend/internal/pkg/logger"
)

// Intent is the slice of a provider payment intent the core cares about: the
// correlation id and the client-usable secret. Everything else stays opaque.
type Intent struct {
	ID           string
	ClientSecret string
}

// PaymentClient abstracts the provider gateway. Every call is a single
// bounded remote call; failures surface as payment_gateway errors and are
// never retried here.
type PaymentClient interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, orderID uuid.UUID) (*Intent, error)
	RetrieveIntent(ctx context.Context, externalID string) (*Intent, error)
	CancelIntent(ctx context.Context, externalID string) (*Intent, error)
}

type paymentClient struct {
	log *logger.Logger
}

func NewPaymentClient(baseLog *logger.Logger, apiKey string) PaymentClient {
	stripego.Key = apiKey
	return &paymentClient{log: baseLog.With("client", "StripePaymentClient")}
}

func (pc *paymentClient) CreateIntent(ctx context.Context, amountMinor int64, currency string, orderID uuid.UUID) (*Intent, error) {
	params := &stripego.PaymentIntentParams{
		Amount:   stripego.Int64(amountMinor),
		Currency: stripego.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripego.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripego.Bool(true),
		},
	}
	params.Context = ctx
	// The webhook reconciler reads the order back out of this metadata.
	params.AddMetadata("orderId", orderID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		pc.log.Error("Failed to create payment intent", "order_id", orderID, "error", err)
		return nil, apperr.Wrap(apperr.CodePaymentGateway, "stripe.PaymentClient.CreateIntent", err)
	}

	pc.log.Info("Payment intent created", "order_id", orderID, "intent_id", pi.ID, "intent_status", pi.Status)
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (pc *paymentClient) RetrieveIntent(ctx context.Context, externalID string) (*Intent, error) {
	params := &stripego.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(externalID, params)
	if err != nil {
		pc.log.Error("Failed to retrieve payment intent", "intent_id", externalID, "error", err)
		return nil, apperr.Wrap(apperr.CodePaymentGateway, "stripe.PaymentClient.RetrieveIntent", err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (pc *paymentClient) CancelIntent(ctx context.Context, externalID string) (*Intent, error) {
	params := &stripego.PaymentIntentCancelParams{}
	params.Context = ctx

	pi, err := paymentintent.Cancel(externalID, params)
	if err != nil {
		pc.log.Error("Failed to cancel payment intent", "intent_id", externalID, "error", err)
		return nil, apperr.Wrap(apperr.CodePaymentGateway, "stripe.PaymentClient.CancelIntent", err)
	}
	pc.log.Info("Payment intent canceled", "intent_id", externalID)
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
