package repos

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/checkout-backend/internal/pkg/dbctx"
	"github.com/yungbote/checkout-backend/internal/pkg/logger"
	"github.com/yungbote/checkout-backend/internal/types"
)

type OrderRepo interface {
	Create(dbc dbctx.Context, order *types.Order) (*types.Order, error)
	GetByID(dbc dbctx.Context, orderID uuid.UUID) (*types.Order, error)
	// GetByIDForUpdate locks the order row for the rest of the surrounding
	// transaction. Callers must be inside TxRunner.InTx.
	GetByIDForUpdate(dbc dbctx.Context, orderID uuid.UUID) (*types.Order, error)
	UpdateStatus(dbc dbctx.Context, order *types.Order) error
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepo")}
}

func (or *orderRepo) Create(dbc dbctx.Context, order *types.Order) (*types.Order, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = or.db
	}

	if err := transaction.WithContext(dbc.Ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (or *orderRepo) GetByID(dbc dbctx.Context, orderID uuid.UUID) (*types.Order, error) {
	return or.getByID(dbc, orderID, false)
}

func (or *orderRepo) GetByIDForUpdate(dbc dbctx.Context, orderID uuid.UUID) (*types.Order, error) {
	return or.getByID(dbc, orderID, true)
}

func (or *orderRepo) getByID(dbc dbctx.Context, orderID uuid.UUID, forUpdate bool) (*types.Order, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = or.db
	}

	q := transaction.WithContext(dbc.Ctx).Preload("Items")
	if forUpdate && transaction.Dialector.Name() == "postgres" {
		// sqlite (tests) is a single writer and rejects FOR UPDATE syntax.
		q = q.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: types.Order{}.TableName()}})
	}

	var order types.Order
	if err := q.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (or *orderRepo) UpdateStatus(dbc dbctx.Context, order *types.Order) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = or.db
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.Order{}).
		Where("id = ?", order.ID).
		Update("status", order.Status).Error
}
