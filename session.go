package financia

import "time"

// SessionRecord describes one active session for the account, as enumerated
// by the backend. Records are read-only from the client's perspective apart
// from the revoke operations.
type SessionRecord struct {
	ID           string    `json:"id"`
	UserAgent    string    `json:"userAgent"`
	LastAccessAt time.Time `json:"lastAccessAt"`
	// IsCurrent is derived client-side by comparing ID against the current
	// session id the server reports alongside the listing. It never goes on
	// the wire.
	IsCurrent bool `json:"-"`
}

// SessionList is the wire shape of the session enumeration endpoint.
type SessionList struct {
	CurrentSessionID string          `json:"currentSessionId"`
	Sessions         []SessionRecord `json:"sessions"`
}
