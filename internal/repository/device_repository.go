package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/train-ticket-validation/internal/model"
	"github.com/iliyamo/train-ticket-validation/internal/utils"
)

// DeviceRepo manages scanner devices.  Device secrets are stored as bcrypt
// hashes only.
type DeviceRepo struct{ DB *sql.DB }

// NewDeviceRepo returns a DeviceRepo bound to the given database.
func NewDeviceRepo(db *sql.DB) *DeviceRepo { return &DeviceRepo{DB: db} }

// Create registers a device and returns its ID.
func (r *DeviceRepo) Create(ctx context.Context, deviceID, secret string, cost int) (uint64, error) {
	hash, err := utils.HashSecret(secret, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO devices (device_id, secret_hash) VALUES (?,?)",
		deviceID, hash)
	if err != nil {
		// 1062 = MySQL duplicate entry
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrDeviceExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByDeviceID fetches a device by its external device ID.
func (r *DeviceRepo) GetByDeviceID(ctx context.Context, deviceID string) (model.Device, error) {
	var d model.Device
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, device_id, secret_hash, created_at FROM devices WHERE device_id=? LIMIT 1",
		deviceID).Scan(&d.ID, &d.DeviceID, &d.SecretHash, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Device{}, ErrDeviceNotFound
	}
	return d, err
}
