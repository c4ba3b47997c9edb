package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/checkout-backend/internal/http/response"
	"github.com/yungbote/checkout-backend/internal/services"
)

type WebhookHandler struct {
	webhooks services.WebhookService
}

func NewWebhookHandler(webhooks services.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

// POST /api/webhooks/stripe
//
// The provider retries on anything but 2xx, so only real processing failures
// return an error status. Already-applied and unrecognized events are
// acknowledged inside the service.
func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "malformed_event", err)
		return
	}
	signature := c.GetHeader("Stripe-Signature")

	if err := h.webhooks.ProcessEvent(c.Request.Context(), payload, signature); err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"received": true})
}
