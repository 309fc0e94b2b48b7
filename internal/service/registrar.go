// Package service orchestrates the identity store and fraud detector for
// ticket scan events.
package service

import (
	"context"

	"github.com/iliyamo/train-ticket-validation/internal/fraud"
	"github.com/iliyamo/train-ticket-validation/internal/model"
)

// Scan result messages returned to the scanning device.
const (
	MsgRegistered = "Ticket registered successfully"
	MsgSuspicious = "Suspicious travel detected! Please verify ticket."
)

// IdentityStore is the persistence contract the registrar needs.  The MySQL
// TicketRepo implements it; tests substitute an in-memory store.
type IdentityStore interface {
	// Find returns the identity for a raw token or repository.ErrTokenNotFound.
	Find(ctx context.Context, token string) (*model.TicketIdentity, error)
	// RegisterScan atomically records a scan and returns the identity
	// snapshot as it was before the scan, nil for a first-ever scan.
	RegisterScan(ctx context.Context, token, location string, now float64) (prev *model.TicketIdentity, existed bool, err error)
}

// ScanResult is the verdict for one processed scan event.  Prev carries
// the identity snapshot the verdict was computed from (nil on a first
// scan) so callers can enrich alerts without a second lookup.
type ScanResult struct {
	Message    string
	Suspicious bool
	Prev       *model.TicketIdentity
}

// ScanRegistrar processes ticket scan events.
type ScanRegistrar struct {
	Store    IdentityStore
	Detector *fraud.Detector
}

// NewScanRegistrar returns a registrar over the given store and detector.
func NewScanRegistrar(store IdentityStore, detector *fraud.Detector) *ScanRegistrar {
	return &ScanRegistrar{Store: store, Detector: detector}
}

// RegisterScan records a scan of the raw token at a location and time
// (seconds since epoch) and returns the fraud verdict.
//
// The store commits the new location and time exactly once per call, and
// the verdict is always computed from the snapshot that preceded the
// commit.  A first-ever scan is never suspicious, and so is a found record
// that carries no scan history yet.  A suspicious verdict does not block
// the store update: flagging is advisory, enforcement is a downstream
// concern.
func (s *ScanRegistrar) RegisterScan(ctx context.Context, token, location string, now float64) (ScanResult, error) {
	prev, _, err := s.Store.RegisterScan(ctx, token, location, now)
	if err != nil {
		return ScanResult{}, err
	}

	if prev.HasHistory() && s.Detector.IsSuspicious(*prev.LastLocation, *prev.LastSeenAt, location, now) {
		return ScanResult{Message: MsgSuspicious, Suspicious: true, Prev: prev}, nil
	}
	return ScanResult{Message: MsgRegistered, Suspicious: false, Prev: prev}, nil
}
