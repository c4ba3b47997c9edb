package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/checkout-backend/internal/http/response"
	"github.com/yungbote/checkout-backend/internal/services"
)

type CheckoutHandler struct {
	checkout services.CheckoutService
}

func NewCheckoutHandler(checkout services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type checkoutRequest struct {
	OrderID  string `json:"order_id"`
	Provider string `json:"provider"`
}

// POST /api/checkout
func (h *CheckoutHandler) InitiateCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}
	idempotencyKey := c.GetHeader("Idempotency-Key")

	result, err := h.checkout.InitiateCheckout(c.Request.Context(), orderID, req.Provider, idempotencyKey)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"checkout": result})
}
