package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/checkout-backend/internal/pkg/apperr"
	"github.com/yungbote/checkout-backend/internal/pkg/dbctx"
)

// TxRunner is the single transaction boundary for checkout and reconciliation
// writes. Every multi-step read-then-write sequence goes through InTx so the
// sequence commits or rolls back as one unit.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return apperr.New(apperr.CodeInternal, "repos.TxRunner.InTx", "transaction runner has nil db")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}
