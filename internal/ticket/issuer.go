package ticket

import (
	"errors"
	"time"

	"github.com/iliyamo/train-ticket-validation/internal/graph"
	"github.com/iliyamo/train-ticket-validation/internal/utils"
)

// Validation errors returned by Issue.  Each failed check has its own
// sentinel so handlers can report a specific reason.  Validation fails
// closed: the first failing check wins.
var (
	ErrUnknownOrigin        = errors.New("origin station is not part of the network")
	ErrNotDirectlyConnected = errors.New("destination is not directly connected to origin")
	ErrWindowInPast         = errors.New("validity window lies in the past")
	ErrInvertedWindow       = errors.New("validity window ends before it starts")
)

// Request carries the purchaser-supplied fields of a ticket purchase.
type Request struct {
	FromStation       string
	ToStation         string
	FromDatetime      time.Time
	ToDatetime        time.Time
	TicketType        string
	ValidatingMethode string
	UserProvidedID    string
}

// Issuer validates purchase requests against the station network and signs
// accepted tickets.
type Issuer struct {
	Network *graph.Graph
	Keys    *KeyPair
}

// NewIssuer returns an Issuer bound to the given network and key material.
func NewIssuer(network *graph.Graph, keys *KeyPair) *Issuer {
	return &Issuer{Network: network, Keys: keys}
}

// Issue validates the request and returns a signed ticket.  Checks run in a
// fixed order: known origin, direct connection, window not in the past,
// window not inverted.  Only directly connected stations are purchasable as
// a single-leg ticket; a destination that is merely reachable through
// intermediate stops is rejected.
//
// On success the payload carries a fresh 128-bit random serial and a
// SHA-256 digest binding the purchaser's identifier to that serial.  The
// user identifier itself never appears in the payload.
func (i *Issuer) Issue(req Request, now time.Time) (Signed, error) {
	if !i.Network.Has(req.FromStation) {
		return Signed{}, ErrUnknownOrigin
	}
	if !i.Network.IsAdjacent(req.FromStation, req.ToStation) {
		return Signed{}, ErrNotDirectlyConnected
	}
	if req.FromDatetime.Before(now) || req.ToDatetime.Before(now) {
		return Signed{}, ErrWindowInPast
	}
	if req.ToDatetime.Before(req.FromDatetime) {
		return Signed{}, ErrInvertedWindow
	}

	serial, err := utils.RandomHex(16)
	if err != nil {
		return Signed{}, err
	}
	payload := map[string]any{
		"from_station":         req.FromStation,
		"to_station":           req.ToStation,
		"from_datetime":        req.FromDatetime.UTC().Format(time.RFC3339),
		"to_datetime":          req.ToDatetime.UTC().Format(time.RFC3339),
		"ticket_type":          req.TicketType,
		"validating_methode":   req.ValidatingMethode,
		"price":                Price,
		"random-ticket-number": serial,
		"ticket-hash":          utils.BindDigest(req.UserProvidedID, serial),
	}
	signature, err := i.Keys.Sign(payload)
	if err != nil {
		return Signed{}, err
	}
	return Signed{Payload: payload, Signature: signature}, nil
}
