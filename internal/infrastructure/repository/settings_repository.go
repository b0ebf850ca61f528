package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fledger/internal/modules/ledger/model"
)

// SettingsRepository backs the generic key-value settings table used by
// peripheral features (e.g. the default valuation currency).
type SettingsRepository struct {
	dbWrite *gorm.DB
	dbRead  *gorm.DB
}

func NewSettingsRepository(dbWrite *gorm.DB, dbRead *gorm.DB) *SettingsRepository {
	return &SettingsRepository{dbWrite: dbWrite, dbRead: dbRead}
}

// Get returns the stored value, or "" when the key does not exist.
func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.dbRead.WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(value), '') FROM kv_store WHERE key = ?`, key).
		Scan(&value).Error
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	return value, nil
}

// Set upserts a key.
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	err := r.dbWrite.WithContext(ctx).Exec(`
		INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value,
	).Error
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrStorage, err)
	}
	return nil
}
