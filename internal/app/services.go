package app

import (
	"gorm.io/gorm"

	redisclient "github.com/yungbote/checkout-backend/internal/clients/redis"
	stripeclient "github.com/yungbote/checkout-backend/internal/clients/stripe"
	"github.com/yungbote/checkout-backend/internal/pkg/logger"
	"github.com/yungbote/checkout-backend/internal/services"
)

type Services struct {
	Order    services.OrderService
	Checkout services.CheckoutService
	Webhook  services.WebhookService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, events redisclient.EventCache) Services {
	log.Info("Wiring services...")

	gateway := stripeclient.NewPaymentClient(log, cfg.StripeAPIKey)
	verifier := stripeclient.NewWebhookVerifier(log, cfg.StripeWebhookSecret)

	return Services{
		Order:    services.NewOrderService(db, log, reposet.Order),
		Checkout: services.NewCheckoutService(db, log, reposet.TxRunner, reposet.Order, reposet.Payment, gateway),
		Webhook:  services.NewWebhookService(db, log, reposet.TxRunner, reposet.Order, reposet.Payment, verifier, events),
	}
}
