package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/checkout-backend/internal/data/repos/testutil"
	"github.com/yungbote/checkout-backend/internal/pkg/apperr"
	"github.com/yungbote/checkout-backend/internal/pkg/dbctx"
	"github.com/yungbote/checkout-backend/internal/types"
)

func TestPaymentRepoCreateAndLookups(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewPaymentRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	order := testutil.SeedOrder(t, ctx, db, types.OrderStatusCreated)
	payment := &types.Payment{
		ID:                uuid.New(),
		OrderID:           order.ID,
		Provider:          types.ProviderStripe,
		ExternalPaymentID: "pi_123",
		ClientSecret:      "pi_123_secret",
		AmountMinor:       order.TotalAmountMinor,
		Currency:          order.Currency,
		Status:            types.PaymentStatusInitiated,
		IdempotencyKey:    "K1",
	}
	if _, err := repo.Create(dbc, payment); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byKey, err := repo.GetByIdempotencyKey(dbc, "K1")
	if err != nil || byKey == nil {
		t.Fatalf("GetByIdempotencyKey: got %+v, %v", byKey, err)
	}
	if byKey.ID != payment.ID {
		t.Fatalf("GetByIdempotencyKey: wrong payment %s", byKey.ID)
	}

	byExt, err := repo.GetByExternalPaymentID(dbc, "pi_123")
	if err != nil || byExt == nil {
		t.Fatalf("GetByExternalPaymentID: got %+v, %v", byExt, err)
	}
	if byExt.ID != payment.ID {
		t.Fatalf("GetByExternalPaymentID: wrong payment %s", byExt.ID)
	}

	missing, err := repo.GetByIdempotencyKey(dbc, "K2")
	if err != nil || missing != nil {
		t.Fatalf("GetByIdempotencyKey missing: got %+v, %v", missing, err)
	}
}

func TestPaymentRepoDuplicateIdempotencyKey(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewPaymentRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	orderA := testutil.SeedOrder(t, ctx, db, types.OrderStatusCreated)
	orderB := testutil.SeedOrder(t, ctx, db, types.OrderStatusCreated)
	testutil.SeedPayment(t, ctx, db, orderA, "pi_a", "K1")

	dup := &types.Payment{
		ID:                uuid.New(),
		OrderID:           orderB.ID,
		Provider:          types.ProviderStripe,
		ExternalPaymentID: "pi_b",
		ClientSecret:      "pi_b_secret",
		AmountMinor:       orderB.TotalAmountMinor,
		Currency:          orderB.Currency,
		Status:            types.PaymentStatusInitiated,
		IdempotencyKey:    "K1",
	}
	if _, err := repo.Create(dbc, dup); !apperr.IsCode(err, apperr.CodeIdempotencyConflict) {
		t.Fatalf("Create duplicate key: want idempotency_conflict, got %v", err)
	}

	// The rejected insert must leave no row behind.
	if got, err := repo.GetByExternalPaymentID(dbc, "pi_b"); err != nil || got != nil {
		t.Fatalf("duplicate insert leaked state: %+v, %v", got, err)
	}
}

func TestPaymentRepoUpdateStatus(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewPaymentRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	order := testutil.SeedOrder(t, ctx, db, types.OrderStatusPaymentPending)
	payment := testutil.SeedPayment(t, ctx, db, order, "pi_42", "K42")

	payment.Status = types.PaymentStatusSucceeded
	if err := repo.UpdateStatus(dbc, payment); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got, err := repo.GetByExternalPaymentID(dbc, "pi_42")
	if err != nil || got == nil {
		t.Fatalf("GetByExternalPaymentID: %v", err)
	}
	if got.Status != types.PaymentStatusSucceeded {
		t.Fatalf("status: want SUCCEEDED got %s", got.Status)
	}
}
