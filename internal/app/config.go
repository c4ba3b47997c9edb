package app

import (
	"github.com/yungbote/checkout-backend/internal/pkg/logger"
	"github.com/yungbote/checkout-backend/internal/utils"
)

type Config struct {
	Port                string
	StripeAPIKey        string
	StripeWebhookSecret string
	RedisAddr           string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:                utils.GetEnv("PORT", "8080", log),
		StripeAPIKey:        utils.GetEnv("STRIPE_API_KEY", "", log),
		StripeWebhookSecret: utils.GetEnv("STRIPE_WEBHOOK_SECRET", "", log),
		RedisAddr:           utils.GetEnv("REDIS_ADDR", "", log),
	}
}
