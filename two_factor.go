package financia

// TwoFactorChallenge is a short-lived, server-issued ticket produced when a
// login (or a two-factor enable request) requires a second factor. It lives
// only in transient flow state until confirmed, consumed, or superseded by a
// new attempt; it is never persisted.
type TwoFactorChallenge struct {
	ChallengeID string `json:"twoFactorTokenId"`
	TargetEmail string `json:"email"`
}
