package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/checkout-backend/internal/data/repos"
	"github.com/yungbote/checkout-backend/internal/pkg/logger"
)

type Repos struct {
	TxRunner repos.TxRunner
	Order    repos.OrderRepo
	Payment  repos.PaymentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		TxRunner: repos.NewGormTxRunner(db),
		Order:    repos.NewOrderRepo(db, log),
		Payment:  repos.NewPaymentRepo(db, log),
	}
}
