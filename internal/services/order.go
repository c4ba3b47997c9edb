package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/checkout-backend/internal/data/repos"
	"github.com/yungbote/checkout-backend/internal/pkg/apperr"
	"github.com/yungbote/checkout-backend/internal/pkg/dbctx"
	"github.com/yungbote/checkout-backend/internal/pkg/logger"
	"github.com/yungbote/checkout-backend/internal/types"
)

type CreateOrderItemInput struct {
	Name           string
	UnitPriceMinor int64
	Quantity       int
}

type CreateOrderInput struct {
	Currency string
	Items    []CreateOrderItemInput
}

type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*types.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*types.Order, error)
}

type orderService struct {
	db        *gorm.DB
	log       *logger.Logger
	orderRepo repos.OrderRepo
}

func NewOrderService(db *gorm.DB, baseLog *logger.Logger, orderRepo repos.OrderRepo) OrderService {
	return &orderService{
		db:        db,
		log:       baseLog.With("service", "OrderService"),
		orderRepo: orderRepo,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*types.Order, error) {
	items := make([]types.OrderItem, 0, len(input.Items))
	for _, it := range input.Items {
		items = append(items, types.OrderItem{
			Name:           it.Name,
			UnitPriceMinor: it.UnitPriceMinor,
			Quantity:       it.Quantity,
		})
	}

	order, err := types.NewOrder(input.Currency, items)
	if err != nil {
		return nil, err
	}

	if _, err := s.orderRepo.Create(dbctx.Context{Ctx: ctx}, order); err != nil {
		s.log.Error("Failed to create order", "error", err)
		return nil, err
	}

	s.log.Info("Order created", "order_id", order.ID, "total_minor", order.TotalAmountMinor, "currency", order.Currency)
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*types.Order, error) {
	order, err := s.orderRepo.GetByID(dbctx.Context{Ctx: ctx}, orderID)
	if err != nil {
		s.log.Error("Failed to load order", "order_id", orderID, "error", err)
		return nil, err
	}
	if order == nil {
		return nil, apperr.New(apperr.CodeOrderNotFound, "services.OrderService.GetOrder", fmt.Sprintf("order %s not found", orderID))
	}
	return order, nil
}
