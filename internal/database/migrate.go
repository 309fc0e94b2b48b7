package database

import (
	"context"
	"database/sql"
)

// migrations are idempotent CREATE TABLE statements applied at startup.
//
// tickets.digest holds the bcrypt digest of a raw ticket token; the salt is
// embedded in the digest encoding, which is why the digest itself is the
// primary key and no token column exists.  location and last_scan_time are
// NULL until the first scan completes.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tickets (
		digest VARCHAR(72) NOT NULL,
		location VARCHAR(128) NULL,
		last_scan_time DOUBLE NULL,
		PRIMARY KEY (digest)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS devices (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		device_id VARCHAR(64) NOT NULL,
		secret_hash VARCHAR(72) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_devices_device_id (device_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
