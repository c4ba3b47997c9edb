package repos

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/checkout-backend/internal/pkg/apperr"
	"github.com/yungbote/checkout-backend/internal/pkg/dbctx"
	"github.com/yungbote/checkout-backend/internal/pkg/logger"
	"github.com/yungbote/checkout-backend/internal/types"
)

type PaymentRepo interface {
	// Create persists a new payment attempt. The unique index on
	// idempotency_key is the real duplicate-checkout guard; a violated
	// constraint comes back as an idempotency_conflict error.
	Create(dbc dbctx.Context, payment *types.Payment) (*types.Payment, error)
	GetByIdempotencyKey(dbc dbctx.Context, key string) (*types.Payment, error)
	GetByExternalPaymentID(dbc dbctx.Context, externalID string) (*types.Payment, error)
	UpdateStatus(dbc dbctx.Context, payment *types.Payment) error
}

type paymentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaymentRepo(db *gorm.DB, baseLog *logger.Logger) PaymentRepo {
	return &paymentRepo{db: db, log: baseLog.With("repo", "PaymentRepo")}
}

func (pr *paymentRepo) Create(dbc dbctx.Context, payment *types.Payment) (*types.Payment, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(dbc.Ctx).Create(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Wrap(apperr.CodeIdempotencyConflict, "repos.PaymentRepo.Create", err)
		}
		return nil, err
	}
	return payment, nil
}

func (pr *paymentRepo) GetByIdempotencyKey(dbc dbctx.Context, key string) (*types.Payment, error) {
	return pr.getOne(dbc, "idempotency_key = ?", key)
}

func (pr *paymentRepo) GetByExternalPaymentID(dbc dbctx.Context, externalID string) (*types.Payment, error) {
	return pr.getOne(dbc, "external_payment_id = ?", externalID)
}

func (pr *paymentRepo) getOne(dbc dbctx.Context, query string, arg string) (*types.Payment, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	var payment types.Payment
	if err := transaction.WithContext(dbc.Ctx).First(&payment, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (pr *paymentRepo) UpdateStatus(dbc dbctx.Context, payment *types.Payment) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.Payment{}).
		Where("id = ?", payment.ID).
		Update("status", payment.Status).Error
}
