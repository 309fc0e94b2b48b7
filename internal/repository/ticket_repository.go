package repository

import (
	"context"
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/train-ticket-validation/internal/model"
)

// TicketRepo is the identity store for physical ticket tokens.  Tokens are
// stored only as salted bcrypt digests, so there is no column to index a
// raw token against: every lookup scans all rows and recomputes the digest
// with each row's embedded salt.  Lookup cost is linear in the number of
// live tokens; random per-record salts preclude indexed lookup.
type TicketRepo struct {
	DB   *sql.DB
	Cost int // bcrypt cost for digests of newly seen tokens
}

// NewTicketRepo returns a TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB, cost int) *TicketRepo {
	return &TicketRepo{DB: db, Cost: cost}
}

// matchDigest reports whether the stored digest was derived from the raw
// token.  bcrypt re-hashes the token with the salt embedded in the digest
// encoding and compares in constant time.
func matchDigest(digest, token string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(token)) == nil
}

// scanRows walks a result set of (digest, location, last_scan_time) rows and
// returns the first identity whose digest matches the raw token.  First
// match wins; digest collisions are not expected and not specially handled.
func scanRows(rows *sql.Rows, token string) (*model.TicketIdentity, error) {
	defer rows.Close()
	for rows.Next() {
		var digest string
		var location sql.NullString
		var seenAt sql.NullFloat64
		if err := rows.Scan(&digest, &location, &seenAt); err != nil {
			return nil, err
		}
		if !matchDigest(digest, token) {
			continue
		}
		id := &model.TicketIdentity{Digest: digest}
		if location.Valid {
			loc := location.String
			id.LastLocation = &loc
		}
		if seenAt.Valid {
			at := seenAt.Float64
			id.LastSeenAt = &at
		}
		return id, nil
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nil, ErrTokenNotFound
}

const selectTickets = `SELECT digest, location, last_scan_time FROM tickets`

// Find returns the identity record for a raw token, or ErrTokenNotFound.
// It is a read-only full scan and takes no locks.
func (r *TicketRepo) Find(ctx context.Context, token string) (*model.TicketIdentity, error) {
	rows, err := r.DB.QueryContext(ctx, selectTickets)
	if err != nil {
		return nil, err
	}
	return scanRows(rows, token)
}

// RegisterScan records a scan of the raw token at the given location and
// time.  The whole find-then-mutate sequence runs inside one serializable
// transaction so that concurrent scans of the same token are linearized:
// neither update is lost and a token can never gain two identity records.
//
// It returns the identity snapshot as it was *before* this scan (nil when
// the token had never been seen) so the caller can evaluate travel
// plausibility against the previous location and time.  The store is
// mutated exactly once per call, regardless of the caller's verdict.
func (r *TicketRepo) RegisterScan(ctx context.Context, token, location string, now float64) (prev *model.TicketIdentity, existed bool, err error) {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx, selectTickets)
	if err != nil {
		return nil, false, err
	}
	prev, err = scanRows(rows, token)
	switch {
	case err == nil:
		const upd = `UPDATE tickets SET location = ?, last_scan_time = ? WHERE digest = ?`
		if _, err := tx.ExecContext(ctx, upd, location, now, prev.Digest); err != nil {
			return nil, false, err
		}
		existed = true
	case err == ErrTokenNotFound:
		digest, hashErr := bcrypt.GenerateFromPassword([]byte(token), r.Cost)
		if hashErr != nil {
			return nil, false, hashErr
		}
		const ins = `INSERT INTO tickets (digest, location, last_scan_time) VALUES (?, ?, ?)`
		if _, err := tx.ExecContext(ctx, ins, string(digest), location, now); err != nil {
			return nil, false, err
		}
		prev = nil
	default:
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	committed = true
	return prev, existed, nil
}

// Exists is the read-only lookup behind GET /v1/tickets/:token.  It returns
// the last known location of the token; the pointer is nil when the token
// exists but has no recorded location.
func (r *TicketRepo) Exists(ctx context.Context, token string) (*string, error) {
	id, err := r.Find(ctx, token)
	if err != nil {
		return nil, err
	}
	return id.LastLocation, nil
}
