package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	stripeclient "github.com/yungbote/checkout-backend/internal/clients/stripe"
	"github.com/yungbote/checkout-backend/internal/data/repos"
	"github.com/yungbote/checkout-backend/internal/data/repos/testutil"
	"github.com/yungbote/checkout-backend/internal/pkg/apperr"
	"github.com/yungbote/checkout-backend/internal/pkg/dbctx"
	"github.com/yungbote/checkout-backend/internal/types"
)

type fakeGateway struct {
	createCalls int
	failWith    error
}

func (g *fakeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string, orderID uuid.UUID) (*stripeclient.Intent, error) {
	g.createCalls++
	if g.failWith != nil {
		return nil, g.failWith
	}
	id := fmt.Sprintf("pi_fake_%d", g.createCalls)
	return &stripeclient.Intent{ID: id, ClientSecret: id + "_secret"}, nil
}

func (g *fakeGateway) RetrieveIntent(ctx context.Context, externalID string) (*stripeclient.Intent, error) {
	return &stripeclient.Intent{ID: externalID, ClientSecret: externalID + "_secret"}, nil
}

func (g *fakeGateway) CancelIntent(ctx context.Context, externalID string) (*stripeclient.Intent, error) {
	return &stripeclient.Intent{ID: externalID, ClientSecret: externalID + "_secret"}, nil
}

func TestInitiateCheckoutHappyPath(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	orderRepo := repos.NewOrderRepo(db, log)
	paymentRepo := repos.NewPaymentRepo(db, log)
	gateway := &fakeGateway{}
	svc := NewCheckoutService(db, log, repos.NewGormTxRunner(db), orderRepo, paymentRepo, gateway)

	ctx := context.Background()
	order := testutil.SeedOrder(t, ctx, db, types.OrderStatusCreated)

	result, err := svc.InitiateCheckout(ctx, order.ID, "stripe", "K1")
	if err != nil {
		t.Fatalf("InitiateCheckout: %v", err)
	}
	if result.OrderID != order.ID {
		t.Fatalf("order id: want %s got %s", order.ID, result.OrderID)
	}
	if result.Provider != types.ProviderStripe {
		t.Fatalf("provider: got %s", result.Provider)
	}
	if result.ClientSecret == "" {
		t.Fatal("client secret missing")
	}
	if result.OrderStatus != types.OrderStatusPaymentPending {
		t.Fatalf("order status: want PAYMENT_PENDING got %s", result.OrderStatus)
	}
	if gateway.createCalls != 1 {
		t.Fatalf("gateway calls: want 1 got %d", gateway.createCalls)
	}

	dbc := dbctx.Context{Ctx: ctx}
	stored, err := orderRepo.GetByID(dbc, order.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload order: %v", err)
	}
	if stored.Status != types.OrderStatusPaymentPending {
		t.Fatalf("persisted order status: want PAYMENT_PENDING got %s", stored.Status)
	}
	payment, err := paymentRepo.GetByIdempotencyKey(dbc, "K1")
	if err != nil || payment == nil {
		t.Fatalf("reload payment: %v", err)
	}
	if payment.Status != types.PaymentStatusInitiated {
		t.Fatalf("payment status: want INITIATED got %s", payment.Status)
	}
	if payment.AmountMinor != order.TotalAmountMinor || payment.Currency != order.Currency {
		t.Fatalf("payment snapshot mismatch: %+v", payment)
	}
}

func TestInitiateCheckoutSameKeyTwice(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	orderRepo := repos.NewOrderRepo(db, log)
	paymentRepo := repos.NewPaymentRepo(db, log)
	gateway := &fakeGateway{}
	svc := NewCheckoutService(db, log, repos.NewGormTxRunner(db), orderRepo, paymentRepo, gateway)

	ctx := context.Background()
	orderA := testutil.SeedOrder(t, ctx, db, types.OrderStatusCreated)
	orderB := testutil.SeedOrder(t, ctx, db, types.OrderStatusCreated)

	if _, err := svc.InitiateCheckout(ctx, orderA.ID, "stripe", "K1"); err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	// Same key against a different order is still a conflict: the key is
	// global across all attempts.
	_, err := svc.InitiateCheckout(ctx, orderB.ID, "stripe", "K1")
	if !apperr.IsCode(err, apperr.CodeIdempotencyConflict) {
		t.Fatalf("second checkout: want idempotency_conflict, got %v", err)
	}
	if gateway.createCalls != 1 {
		t.Fatalf("gateway calls: want 1 got %d", gateway.createCalls)
	}

	dbc := dbctx.Context{Ctx: ctx}
	if stored, err := orderRepo.GetByID(dbc, orderB.ID); err != nil || stored.Status != types.OrderStatusCreated {
		t.Fatalf("order B should be untouched: %+v, %v", stored, err)
	}
}

func TestInitiateCheckoutNonCreatedOrderNeverCallsGateway(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	gateway := &fakeGateway{}
	svc := NewCheckoutService(db, log, repos.NewGormTxRunner(db), repos.NewOrderRepo(db, log), repos.NewPaymentRepo(db, log), gateway)

	ctx := context.Background()
	for _, status := range []types.OrderStatus{
		types.OrderStatusPaymentPending,
		types.OrderStatusPaid,
		types.OrderStatusFailed,
		types.OrderStatusCanceled,
	} {
		order := testutil.SeedOrder(t, ctx, db, status)
		_, err := svc.InitiateCheckout(ctx, order.ID, "stripe", "key-"+string(status))
		if !apperr.IsCode(err, apperr.CodeInvalidOrderState) {
			t.Fatalf("%s: want invalid_order_state, got %v", status, err)
		}
	}
	if gateway.createCalls != 0 {
		t.Fatalf("gateway calls: want 0 got %d", gateway.createCalls)
	}
}

func TestInitiateCheckoutOrderNotFound(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	gateway := &fakeGateway{}
	svc := NewCheckoutService(db, log, repos.NewGormTxRunner(db), repos.NewOrderRepo(db, log), repos.NewPaymentRepo(db, log), gateway)

	_, err := svc.InitiateCheckout(context.Background(), uuid.New(), "stripe", "K1")
	if !apperr.IsCode(err, apperr.CodeOrderNotFound) {
		t.Fatalf("want order_not_found, got %v", err)
	}
	if gateway.createCalls != 0 {
		t.Fatalf("gateway calls: want 0 got %d", gateway.createCalls)
	}
}

func TestInitiateCheckoutInputValidation(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	gateway := &fakeGateway{}
	svc := NewCheckoutService(db, log, repos.NewGormTxRunner(db), repos.NewOrderRepo(db, log), repos.NewPaymentRepo(db, log), gateway)

	ctx := context.Background()
	order := testutil.SeedOrder(t, ctx, db, types.OrderStatusCreated)

	if _, err := svc.InitiateCheckout(ctx, order.ID, "stripe", "  "); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("blank key: want validation, got %v", err)
	}
	if _, err := svc.InitiateCheckout(ctx, order.ID, "paypal", "K1"); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("unknown provider: want validation, got %v", err)
	}
	if gateway.createCalls != 0 {
		t.Fatalf("gateway calls: want 0 got %d", gateway.createCalls)
	}
}

func TestInitiateCheckoutGatewayFailureLeavesNoPartialState(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	orderRepo := repos.NewOrderRepo(db, log)
	paymentRepo := repos.NewPaymentRepo(db, log)
	gateway := &fakeGateway{failWith: fmt.Errorf("stripe unavailable")}
	svc := NewCheckoutService(db, log, repos.NewGormTxRunner(db), orderRepo, paymentRepo, gateway)

	ctx := context.Background()
	order := testutil.SeedOrder(t, ctx, db, types.OrderStatusCreated)

	_, err := svc.InitiateCheckout(ctx, order.ID, "stripe", "K1")
	if !apperr.IsCode(err, apperr.CodePaymentGateway) {
		t.Fatalf("want payment_gateway, got %v", err)
	}

	dbc := dbctx.Context{Ctx: ctx}
	stored, err := orderRepo.GetByID(dbc, order.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload order: %v", err)
	}
	if stored.Status != types.OrderStatusCreated {
		t.Fatalf("order mutated despite gateway failure: %s", stored.Status)
	}
	if payment, err := paymentRepo.GetByIdempotencyKey(dbc, "K1"); err != nil || payment != nil {
		t.Fatalf("payment row leaked: %+v, %v", payment, err)
	}

	// The key was not consumed, so a retry may succeed.
	gateway.failWith = nil
	if _, err := svc.InitiateCheckout(ctx, order.ID, "stripe", "K1"); err != nil {
		t.Fatalf("retry after gateway recovery: %v", err)
	}
}
