package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/checkout-backend/internal/pkg/apperr"
)

type Order struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Currency         string      `gorm:"size:3;not null" json:"currency"`
	Status           OrderStatus `gorm:"size:32;not null;index" json:"status"`
	TotalAmountMinor int64       `gorm:"not null" json:"total_amount_minor"`
	Items            []OrderItem `gorm:"constraint:OnDelete:CASCADE;foreignKey:OrderID;references:ID" json:"items"`
	CreatedAt        time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Name           string    `gorm:"not null" json:"name"`
	UnitPriceMinor int64     `gorm:"not null" json:"unit_price_minor"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	SubtotalMinor  int64     `gorm:"not null" json:"subtotal_minor"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (OrderItem) TableName() string { return "order_items" }

// NewOrder builds a CREATED order, computing each item subtotal and the order
// total. Subtotals are stored so the arithmetic stays auditable after the
// fact. Item and currency validation happens here, nowhere else.
func NewOrder(currency string, items []OrderItem) (*Order, error) {
	const op = "types.NewOrder"

	currency = normalizeUpper(currency)
	if len(currency) != 3 || !isAlpha(currency) {
		return nil, apperr.New(apperr.CodeValidation, op, fmt.Sprintf("currency must be a 3-letter ISO 4217 code, got %q", currency))
	}
	if len(items) == 0 {
		return nil, apperr.New(apperr.CodeValidation, op, "order must have at least one item")
	}

	order := &Order{
		ID:       uuid.New(),
		Currency: currency,
		Status:   OrderStatusCreated,
	}

	var total int64
	for i := range items {
		item := items[i]
		if strings.TrimSpace(item.Name) == "" {
			return nil, apperr.New(apperr.CodeValidation, op, "item name is required")
		}
		if item.UnitPriceMinor <= 0 {
			return nil, apperr.New(apperr.CodeValidation, op, fmt.Sprintf("item %q unit price must be positive", item.Name))
		}
		if item.Quantity <= 0 {
			return nil, apperr.New(apperr.CodeValidation, op, fmt.Sprintf("item %q quantity must be positive", item.Name))
		}
		item.ID = uuid.New()
		item.OrderID = order.ID
		item.SubtotalMinor = item.UnitPriceMinor * int64(item.Quantity)
		total += item.SubtotalMinor
		order.Items = append(order.Items, item)
	}
	order.TotalAmountMinor = total

	return order, nil
}

// TransitionTo applies the order state machine. Illegal moves are rejected
// here rather than by per-call-site status checks.
func (o *Order) TransitionTo(to OrderStatus) error {
	if !o.Status.CanTransitionTo(to) {
		return apperr.New(apperr.CodeInvalidOrderState, "types.Order.TransitionTo",
			fmt.Sprintf("order %s cannot move from %s to %s", o.ID, o.Status, to))
	}
	o.Status = to
	return nil
}

func normalizeUpper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
