package financia

// PasswordResetChallenge is the ticket issued by a password reset request and
// consumed by submitting a code plus new password. It is independent of any
// active session; an unauthenticated caller can obtain one.
type PasswordResetChallenge struct {
	ChallengeID string `json:"tokenId"`
	TargetEmail string `json:"email"`
}
