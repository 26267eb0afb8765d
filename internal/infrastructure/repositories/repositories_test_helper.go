package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		wallet_type TEXT NOT NULL DEFAULT 'customer',
		balance TEXT NOT NULL DEFAULT '0',
		currency TEXT NOT NULL DEFAULT 'BTC',
		wallet_address TEXT,
		wallet_status TEXT NOT NULL DEFAULT 'isActive',
		encrypted_mnemonic TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createBtcAddressTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE btc_addresses (
		id TEXT PRIMARY KEY,
		wallet_id TEXT NOT NULL,
		address TEXT NOT NULL UNIQUE,
		address_type TEXT NOT NULL,
		public_key TEXT,
		private_key TEXT,
		derivation_path TEXT,
		label TEXT,
		confirmed_balance TEXT NOT NULL DEFAULT '0',
		unconfirmed_balance TEXT NOT NULL DEFAULT '0',
		is_used BOOLEAN NOT NULL DEFAULT false,
		is_change BOOLEAN NOT NULL DEFAULT false,
		is_imported BOOLEAN NOT NULL DEFAULT false,
		watch_only BOOLEAN NOT NULL DEFAULT false,
		is_active BOOLEAN NOT NULL DEFAULT true,
		last_used_at DATETIME,
		last_balance_update DATETIME,
		transaction_count INTEGER NOT NULL DEFAULT 0,
		metadata TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		wallet_id TEXT NOT NULL,
		txn_amount TEXT NOT NULL,
		currency TEXT NOT NULL DEFAULT 'BTC',
		txn_status TEXT NOT NULL DEFAULT 'pending',
		txn_type TEXT NOT NULL,
		reference TEXT NOT NULL UNIQUE,
		to_address TEXT,
		from_address TEXT,
		confirmed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
