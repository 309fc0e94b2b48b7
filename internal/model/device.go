package model

import "time"

// Device mirrors the 'devices' table.  A device is a conductor scanner that
// authenticates against the API with a device ID and a secret.  Only the
// bcrypt hash of the secret is stored.
type Device struct {
	ID         uint64    // devices.id
	DeviceID   string    // devices.device_id
	SecretHash string    // devices.secret_hash
	CreatedAt  time.Time // devices.created_at
}
