// Package repository contains the persistence adapters for ticket
// identities and scanner devices.  Sentinel errors defined here let
// handlers distinguish expected negative outcomes (token or device not
// found) from real persistence failures.
package repository

import "errors"

// ErrTokenNotFound is returned when no stored digest matches the presented
// raw ticket token.  On a lookup this is a negative result, not a failure;
// handlers translate it into an {exists: false} response.
var ErrTokenNotFound = errors.New("ticket token not found")

// ErrDeviceNotFound is returned when no device with the given device ID is
// registered.
var ErrDeviceNotFound = errors.New("device not found")

// ErrDeviceExists is returned when registering a device ID that is already
// taken.
var ErrDeviceExists = errors.New("device already exists")
