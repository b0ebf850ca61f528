package factory

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"fledger/internal/infrastructure/repository"
	"fledger/internal/modules/ledger/handler"
	"fledger/internal/modules/ledger/oracle"
	"fledger/internal/modules/ledger/usecase"
)

func newLedgerFactory(dbWrite *gorm.DB, dbRead *gorm.DB, rdb redis.UniversalClient) *handler.LedgerHandler {
	ledgerRepo := repository.NewLedgerRepository(dbWrite, dbRead)
	settingsRepo := repository.NewSettingsRepository(dbWrite, dbRead)
	prices := oracle.NewClient(rdb)

	accounts := usecase.NewAccountUsecase(ledgerRepo)
	transfers := usecase.NewTransferUsecase(ledgerRepo)
	trades := usecase.NewTradeUsecase(ledgerRepo, prices)
	valuation := usecase.NewValuationUsecase(ledgerRepo, prices, settingsRepo)

	return handler.NewLedgerHandler(accounts, transfers, trades, valuation, prices)
}
