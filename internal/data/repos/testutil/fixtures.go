package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/checkout-backend/internal/types"
)

func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, status types.OrderStatus) *types.Order {
	tb.Helper()
	order, err := types.NewOrder("USD", []types.OrderItem{
		{Name: "A", UnitPriceMinor: 1999, Quantity: 2},
		{Name: "B", UnitPriceMinor: 1299, Quantity: 1},
	})
	if err != nil {
		tb.Fatalf("build order: %v", err)
	}
	order.Status = status
	if err := tx.WithContext(ctx).Create(order).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	return order
}

func SeedPayment(tb testing.TB, ctx context.Context, tx *gorm.DB, order *types.Order, externalID, idempotencyKey string) *types.Payment {
	tb.Helper()
	p := &types.Payment{
		ID:                uuid.New(),
		OrderID:           order.ID,
		Provider:          types.ProviderStripe,
		ExternalPaymentID: externalID,
		ClientSecret:      externalID + "_secret",
		AmountMinor:       order.TotalAmountMinor,
		Currency:          order.Currency,
		Status:            types.PaymentStatusInitiated,
		IdempotencyKey:    idempotencyKey,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed payment: %v", err)
	}
	return p
}
