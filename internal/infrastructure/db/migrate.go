package db

import (
	"gorm.io/gorm"

	"fledger/pkg/logger"
)

// Schema kept additive: CREATE IF NOT EXISTS only, no destructive changes.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		balance NUMERIC(32,8) NOT NULL DEFAULT 0,
		currency VARCHAR(16) NOT NULL DEFAULT 'USD',
		category TEXT NOT NULL DEFAULT 'Personal',
		network TEXT NOT NULL DEFAULT 'Unknown',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		reference UUID,
		date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		type TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'Uncategorized',
		description TEXT,
		amount NUMERIC(32,8) NOT NULL DEFAULT 0,
		currency VARCHAR(16) NOT NULL,
		wallet_id BIGINT NOT NULL REFERENCES accounts(id),
		dest_wallet_id BIGINT REFERENCES accounts(id),
		asset_symbol TEXT,
		quantity NUMERIC(32,8),
		price_per_unit NUMERIC(32,8),
		fee NUMERIC(32,8) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS ledger (
		id BIGSERIAL PRIMARY KEY,
		transaction_id BIGINT NOT NULL REFERENCES transactions(id),
		wallet_id BIGINT NOT NULL REFERENCES accounts(id),
		debit NUMERIC(32,8) NOT NULL DEFAULT 0,
		credit NUMERIC(32,8) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date_type ON transactions (date, type)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_wallet ON ledger (wallet_id)`,
}

// Migrate creates the ledger schema on the write connection.
func Migrate(dbWrite *gorm.DB) error {
	for _, stmt := range migrations {
		if err := dbWrite.Exec(stmt).Error; err != nil {
			return err
		}
	}
	logger.Info("✅ Database schema verified/created")
	return nil
}
