package factory

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"fledger/internal/modules/ledger/handler"
)

type Container struct {
	LedgerHandler *handler.LedgerHandler
}

// Build wires repositories, the oracle client and the engines into handlers.
func Build(dbWrite *gorm.DB, dbRead *gorm.DB, rdb redis.UniversalClient) *Container {
	return &Container{
		LedgerHandler: newLedgerFactory(dbWrite, dbRead, rdb),
	}
}
