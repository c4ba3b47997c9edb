package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/checkout-backend/internal/http/handlers"
	httpMW "github.com/yungbote/checkout-backend/internal/http/middleware"
	"github.com/yungbote/checkout-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	OrderHandler    *httpH.OrderHandler
	CheckoutHandler *httpH.CheckoutHandler
	WebhookHandler  *httpH.WebhookHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.OrderHandler != nil {
			api.POST("/orders", cfg.OrderHandler.CreateOrder)
			api.GET("/orders/:id", cfg.OrderHandler.GetOrder)
		}

		if cfg.CheckoutHandler != nil {
			api.POST("/checkout", cfg.CheckoutHandler.InitiateCheckout)
		}

		if cfg.WebhookHandler != nil {
			api.POST("/webhooks/stripe", cfg.WebhookHandler.HandleStripeEvent)
		}
	}

	return r
}
