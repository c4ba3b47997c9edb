package types

import (
	"time"

	"github.com/google/uuid"
)

// Payment is one attempt to collect an order's total through an external
// provider. idempotency_key and external_payment_id carry unique indexes; the
// first is the duplicate-checkout guarantee, the second is the correlation
// key webhooks reconcile against.
type Payment struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	Order             *Order          `gorm:"constraint:OnDelete:CASCADE;foreignKey:OrderID;references:ID" json:"order,omitempty"`
	Provider          PaymentProvider `gorm:"size:32;not null" json:"provider"`
	ExternalPaymentID string          `gorm:"uniqueIndex;not null" json:"external_payment_id"`
	ClientSecret      string          `gorm:"not null" json:"-"`
	AmountMinor       int64           `gorm:"not null" json:"amount_minor"`
	Currency          string          `gorm:"size:3;not null" json:"currency"`
	Status            PaymentStatus   `gorm:"size:32;not null;index" json:"status"`
	IdempotencyKey    string          `gorm:"uniqueIndex;not null" json:"-"`
	CreatedAt         time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
