package app

import (
	httpH "github.com/yungbote/checkout-backend/internal/http/handlers"
	"github.com/yungbote/checkout-backend/internal/pkg/logger"
)

type Handlers struct {
	Order    *httpH.OrderHandler
	Checkout *httpH.CheckoutHandler
	Webhook  *httpH.WebhookHandler
	Health   *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Order:    httpH.NewOrderHandler(serviceset.Order),
		Checkout: httpH.NewCheckoutHandler(serviceset.Checkout),
		Webhook:  httpH.NewWebhookHandler(serviceset.Webhook),
		Health:   httpH.NewHealthHandler(),
	}
}
