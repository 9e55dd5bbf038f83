// Package security implements the security console flows: password change,
// two-factor enable/disable, the local biometric gate, and multi-session
// listing and revocation. Everything here borrows the session token
// read-only; the session manager remains its only writer.
package security

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	financia "github.com/AguiarDev47/FinancIA"
	"github.com/AguiarDev47/FinancIA/credstore"
)

// Status is the combined security posture shown by the console: the
// server-side 2FA flag plus the local-only biometric gate.
type Status struct {
	TwoFactorEnabled     bool
	BiometricGateEnabled bool
}

// Console exposes the security console flows. Every network operation reads
// the token fresh from the credential store (via the client's TokenSource)
// because any prior call in the same screen lifetime may have invalidated it.
type Console interface {
	Status(ctx context.Context) (Status, error)
	// ChangePassword asks the backend to replace the account password. The
	// backend validates oldPassword; the only local policy is non-emptiness.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	// RequestTwoFactor starts two-phase enablement and returns the challenge
	// to confirm. Requesting again discards a previously held challenge.
	RequestTwoFactor(ctx context.Context) (*financia.TwoFactorChallenge, error)
	// ConfirmTwoFactor activates 2FA. Only the challenge from the
	// immediately preceding request is confirmable.
	ConfirmTwoFactor(ctx context.Context, challengeID, code string) error
	// DisableTwoFactor turns 2FA off after re-authenticating by password.
	DisableTwoFactor(ctx context.Context, currentPassword string) error
	// EnableBiometricGate persists the gate flag only after the platform
	// reports hardware, at least one enrollment, and a passed challenge. The
	// flag gates client-side behavior only and is never transmitted.
	EnableBiometricGate(ctx context.Context) error
	// DisableBiometricGate clears the gate flag. No precondition.
	DisableBiometricGate() error
	BiometricGateEnabled() (bool, error)
	// ListSessions enumerates active sessions, current one marked by id.
	ListSessions(ctx context.Context) ([]financia.SessionRecord, error)
	// RevokeSession revokes one non-current session. Revoking the current
	// session is refused locally; that's what sign-out is for.
	RevokeSession(ctx context.Context, id string) error
	// RevokeOtherSessions revokes everything but the current session in one
	// call and returns the collapsed list.
	RevokeOtherSessions(ctx context.Context) ([]financia.SessionRecord, error)
}

type console struct {
	client     financia.SecurityClient
	store      credstore.Store
	biometrics Authenticator

	mu                 sync.Mutex
	pendingChallengeID string
	currentSessionID   string
	sessions           []financia.SessionRecord
}

// NewConsole returns a Console over the given security client, credential
// store, and platform authenticator.
func NewConsole(
	client financia.SecurityClient,
	store credstore.Store,
	biometrics Authenticator,
) Console {
	return &console{
		client:     client,
		store:      store,
		biometrics: biometrics,
	}
}

func (c *console) Status(ctx context.Context) (Status, error) {
	remote, err := c.client.Status(ctx)
	if err != nil {
		return Status{}, err
	}
	biometric, err := c.BiometricGateEnabled()
	if err != nil {
		return Status{}, err
	}
	return Status{
		TwoFactorEnabled:     remote.TwoFactorEnabled,
		BiometricGateEnabled: biometric,
	}, nil
}

func (c *console) ChangePassword(
	ctx context.Context,
	oldPassword string,
	newPassword string,
) error {
	if oldPassword == "" || newPassword == "" {
		return errors.New("both the current and new passwords are required")
	}
	return c.client.ChangePassword(ctx, oldPassword, newPassword)
}

func (c *console) RequestTwoFactor(
	ctx context.Context,
) (*financia.TwoFactorChallenge, error) {
	// A fresh request supersedes any challenge still held from an earlier one;
	// the stale id must not remain confirmable even if this request fails.
	c.mu.Lock()
	c.pendingChallengeID = ""
	c.mu.Unlock()

	challenge, err := c.client.RequestTwoFactor(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.pendingChallengeID = challenge.ChallengeID
	c.mu.Unlock()
	return challenge, nil
}

func (c *console) ConfirmTwoFactor(
	ctx context.Context,
	challengeID string,
	code string,
) error {
	c.mu.Lock()
	pendingID := c.pendingChallengeID
	c.mu.Unlock()
	if pendingID == "" || pendingID != challengeID {
		return errors.New(
			"no matching two-factor challenge is pending; request a new one",
		)
	}
	if err := c.client.ConfirmTwoFactor(ctx, challengeID, code); err != nil {
		// The challenge stays pending; the server decides when the code is
		// spent.
		return err
	}
	c.mu.Lock()
	c.pendingChallengeID = ""
	c.mu.Unlock()
	return nil
}

func (c *console) DisableTwoFactor(
	ctx context.Context,
	currentPassword string,
) error {
	if currentPassword == "" {
		return errors.New(
			"disabling two-factor authentication requires your password",
		)
	}
	return c.client.DisableTwoFactor(ctx, currentPassword)
}

func (c *console) EnableBiometricGate(ctx context.Context) error {
	available, err := c.biometrics.Available(ctx)
	if err != nil {
		return errors.Wrap(err, "error checking biometric hardware")
	}
	if !available {
		return errors.New("this device has no biometric hardware")
	}
	enrolled, err := c.biometrics.Enrolled(ctx)
	if err != nil {
		return errors.Wrap(err, "error checking biometric enrollment")
	}
	if !enrolled {
		return errors.New("no biometric credentials are enrolled")
	}
	ok, err := c.biometrics.Authenticate(ctx, "Confirm it's you")
	if err != nil {
		return errors.Wrap(err, "error running biometric challenge")
	}
	if !ok {
		return errors.New("biometric challenge was not completed")
	}
	return c.store.Set(credstore.KeyBiometric, "true")
}

func (c *console) DisableBiometricGate() error {
	return c.store.Set(credstore.KeyBiometric, "false")
}

func (c *console) BiometricGateEnabled() (bool, error) {
	value, _, err := c.store.Get(credstore.KeyBiometric)
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

func (c *console) ListSessions(
	ctx context.Context,
) ([]financia.SessionRecord, error) {
	sessions, err := c.client.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.sessions = sessions
	c.currentSessionID = ""
	for _, session := range sessions {
		if session.IsCurrent {
			c.currentSessionID = session.ID
		}
	}
	c.mu.Unlock()
	return copySessions(sessions), nil
}

func (c *console) RevokeSession(ctx context.Context, id string) error {
	c.mu.Lock()
	currentID := c.currentSessionID
	c.mu.Unlock()
	if id == currentID && currentID != "" {
		return errors.New(
			"refusing to revoke the current session; sign out instead",
		)
	}
	if err := c.client.RevokeSession(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	remaining := c.sessions[:0]
	for _, session := range c.sessions {
		if session.ID != id {
			remaining = append(remaining, session)
		}
	}
	c.sessions = remaining
	c.mu.Unlock()
	return nil
}

func (c *console) RevokeOtherSessions(
	ctx context.Context,
) ([]financia.SessionRecord, error) {
	if err := c.client.RevokeOtherSessions(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	remaining := []financia.SessionRecord{}
	for _, session := range c.sessions {
		if session.IsCurrent {
			remaining = append(remaining, session)
		}
	}
	c.sessions = remaining
	c.mu.Unlock()
	return copySessions(remaining), nil
}

func copySessions(
	sessions []financia.SessionRecord,
) []financia.SessionRecord {
	copied := make([]financia.SessionRecord, len(sessions))
	copy(copied, sessions)
	return copied
}
