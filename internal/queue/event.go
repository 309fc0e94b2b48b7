// Package queue defines the suspicious-scan alert event, its publisher and
// the background consumer that records alerts for manual review.
package queue

// SuspiciousScanEvent is published when a scan fails the travel
// plausibility check.  It carries the raw token only transiently on the
// broker; the persistent store never sees it in plaintext.  Downstream
// consumers use the event for alerting and manual review queues.
type SuspiciousScanEvent struct {
	Token           string  `json:"token"`
	DeviceID        string  `json:"device_id,omitempty"`
	LastLocation    string  `json:"last_location"`
	LastSeenAt      float64 `json:"last_seen_at"`
	NewLocation     string  `json:"new_location"`
	ScannedAt       float64 `json:"scanned_at"`
	RequiredMinutes int     `json:"required_minutes"`
}
