package financia

// UserProfile represents a FinancIA account holder. Email is immutable after
// registration (server-enforced); profile updates never send it.
type UserProfile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Compensation float64 `json:"compensation"`
}

// Credentials couples an issued bearer token with the profile it belongs to.
// Both are set or neither is; a partially authenticated pair never crosses the
// wire.
type Credentials struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
