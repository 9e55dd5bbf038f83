package security

import "context"

// Authenticator abstracts the platform's local biometric check. The console
// only cares about three facts: hardware exists, something is enrolled, and
// one challenge succeeded. Prompt plumbing stays behind the implementation.
type Authenticator interface {
	Available(ctx context.Context) (bool, error)
	Enrolled(ctx context.Context) (bool, error)
	Authenticate(ctx context.Context, prompt string) (bool, error)
}
