package model

// TicketIdentity mirrors the 'tickets' table.  It represents one physical
// ticket token without revealing the token itself: only a salted one-way
// digest of the token is stored, with the salt embedded in the digest
// encoding.  The digest is computed once on first scan and never changes;
// location and scan time are overwritten on every subsequent scan.
//
// Fields:
//
//	Digest       – bcrypt digest of the raw token (tickets.digest).
//	LastLocation – station of the most recent scan, nil if never scanned
//	               (tickets.location, nullable).
//	LastSeenAt   – seconds since epoch of the most recent scan, nil if
//	               never scanned (tickets.last_scan_time, nullable).
type TicketIdentity struct {
	Digest       string
	LastLocation *string
	LastSeenAt   *float64
}

// HasHistory reports whether the identity carries a previous scan snapshot.
// Only identities with history can be checked for impossible travel.
func (t *TicketIdentity) HasHistory() bool {
	return t != nil && t.LastLocation != nil && t.LastSeenAt != nil
}
