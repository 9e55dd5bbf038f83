// Package session owns the client's one authenticated context: the state
// machine over the bearer token and profile snapshot, their persistence, and
// the login, two-factor, sign-out, and password-reset flows.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	financia "github.com/AguiarDev47/FinancIA"
	"github.com/AguiarDev47/FinancIA/credstore"
)

// State describes where the session is in its lifecycle.
type State int

const (
	// StateUnknown means Restore has not yet run.
	StateUnknown State = iota
	// StateAnonymous means no session exists.
	StateAnonymous
	// StateAuthenticated means a token and profile are held, in memory and
	// in the credential store.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "ANONYMOUS"
	case StateAuthenticated:
		return "AUTHENTICATED"
	}
	return "UNKNOWN"
}

// SignOutResult distinguishes "local state cleared" from "server acknowledged
// the termination". Only the former is required for sign-out to succeed.
type SignOutResult struct {
	ServerAcknowledged bool
}

// Flow keys for the single-flight guard.
const (
	flowSignIn        = "sign-in"
	flowVerify        = "verify-2fa"
	flowRegister      = "register"
	flowUpdateProfile = "update-profile"
	flowSignOut       = "sign-out"
	flowPasswordReset = "password-reset"
)

// Manager orchestrates the session lifecycle. It is the only writer to the
// credential store's token and user entries; every other component borrows
// the token read-only, one request at a time.
type Manager interface {
	// Restore loads a previously persisted session without contacting the
	// network. It always leaves the manager not-loading, even when the store
	// read fails.
	Restore(ctx context.Context) error
	// SignIn exchanges credentials for a session. When the account requires
	// a second factor the returned challenge must be resolved with
	// VerifyTwoFactor; session state is untouched until then. Starting a new
	// SignIn discards any previously pending challenge.
	SignIn(
		ctx context.Context,
		email string,
		password string,
	) (*financia.TwoFactorChallenge, error)
	// VerifyTwoFactor resolves the pending challenge. Stale or unknown
	// challenge ids are rejected locally; a server-rejected code leaves the
	// pending challenge usable for retry.
	VerifyTwoFactor(ctx context.Context, challengeID, code string) error
	// Register creates an account and signs in with it in one step.
	Register(ctx context.Context, name, email, password string) error
	// UpdateProfile replaces name and compensation. The server's response is
	// authoritative; the whole profile record is overwritten with it, in
	// memory and in the store.
	UpdateProfile(
		ctx context.Context,
		name string,
		compensation float64,
	) (financia.UserProfile, error)
	// SignOut notifies the backend best-effort and unconditionally clears
	// all local state.
	SignOut(ctx context.Context) (SignOutResult, error)
	// RequestPasswordReset asks for a reset code. Unauthenticated; succeeds
	// silently (nil challenge, nil error) for unknown accounts.
	RequestPasswordReset(
		ctx context.Context,
		email string,
	) (*financia.PasswordResetChallenge, error)
	// ResetPassword consumes a reset challenge. Unauthenticated. Callers
	// enforce the confirmation match before calling.
	ResetPassword(
		ctx context.Context,
		challengeID string,
		code string,
		newPassword string,
	) error
	State() State
	CurrentUser() (financia.UserProfile, bool)
	Loading() bool
}

type manager struct {
	auth    financia.AuthClient
	profile financia.ProfileClient
	store   credstore.Store

	mu       sync.Mutex
	loading  bool
	state    State
	token    string
	user     *financia.UserProfile
	pending  *financia.TwoFactorChallenge
	inFlight map[string]bool
}

// NewManager returns a Manager over the given client and credential store.
// Construct one at process start and hand it to whichever component needs it;
// there is deliberately no package-level instance.
func NewManager(client financia.Client, store credstore.Store) Manager {
	return &manager{
		auth:     client.Auth(),
		profile:  client.Profile(),
		store:    store,
		loading:  true,
		state:    StateUnknown,
		inFlight: map[string]bool{},
	}
}

func (m *manager) Restore(context.Context) error {
	defer func() {
		m.mu.Lock()
		m.loading = false
		if m.state == StateUnknown {
			m.state = StateAnonymous
		}
		m.mu.Unlock()
	}()

	token, tokenOK, err := m.store.Get(credstore.KeyToken)
	if err != nil {
		return errors.Wrap(err, "error reading stored token")
	}
	userRaw, userOK, err := m.store.Get(credstore.KeyUser)
	if err != nil {
		return errors.Wrap(err, "error reading stored user")
	}
	// One without the other is "no session", not an error.
	if !tokenOK || !userOK || token == "" || userRaw == "" {
		m.mu.Lock()
		m.state = StateAnonymous
		m.token = ""
		m.user = nil
		m.mu.Unlock()
		return nil
	}
	user := financia.UserProfile{}
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		m.mu.Lock()
		m.state = StateAnonymous
		m.token = ""
		m.user = nil
		m.mu.Unlock()
		return errors.Wrap(err, "error parsing stored user")
	}
	// Optimistic restore: the cached token is trusted without a round trip.
	// A revoked token surfaces on the first authenticated call instead.
	m.mu.Lock()
	m.state = StateAuthenticated
	m.token = token
	m.user = &user
	m.mu.Unlock()
	return nil
}

func (m *manager) SignIn(
	ctx context.Context,
	email string,
	password string,
) (*financia.TwoFactorChallenge, error) {
	if err := m.beginFlow(flowSignIn); err != nil {
		return nil, err
	}
	defer m.endFlow(flowSignIn)

	// A fresh attempt supersedes any challenge still pending from an earlier
	// one; the stale id must not remain confirmable.
	m.mu.Lock()
	m.pending = nil
	m.mu.Unlock()

	creds, challenge, err := m.auth.LogIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if challenge != nil {
		m.mu.Lock()
		m.pending = challenge
		m.mu.Unlock()
		return challenge, nil
	}
	return nil, m.establish(*creds)
}

func (m *manager) VerifyTwoFactor(
	ctx context.Context,
	challengeID string,
	code string,
) error {
	if err := m.beginFlow(flowVerify); err != nil {
		return err
	}
	defer m.endFlow(flowVerify)

	m.mu.Lock()
	pending := m.pending
	m.mu.Unlock()
	if pending == nil || pending.ChallengeID != challengeID {
		return errors.New(
			"no matching two-factor challenge is pending; sign in again",
		)
	}

	creds, err := m.auth.VerifyTwoFactor(ctx, challengeID, code)
	if err != nil {
		// Only the server decides code liveness and attempt limits; the
		// challenge stays pending so the caller can retry.
		return err
	}
	if err := m.establish(creds); err != nil {
		return err
	}
	m.mu.Lock()
	m.pending = nil
	m.mu.Unlock()
	return nil
}

func (m *manager) Register(
	ctx context.Context,
	name string,
	email string,
	password string,
) error {
	if err := m.beginFlow(flowRegister); err != nil {
		return err
	}
	defer m.endFlow(flowRegister)

	creds, err := m.auth.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	return m.establish(creds)
}

func (m *manager) UpdateProfile(
	ctx context.Context,
	name string,
	compensation float64,
) (financia.UserProfile, error) {
	if err := m.beginFlow(flowUpdateProfile); err != nil {
		return financia.UserProfile{}, err
	}
	defer m.endFlow(flowUpdateProfile)

	token, err := m.store.Token()
	if err != nil {
		return financia.UserProfile{}, errors.Wrap(
			err,
			"error reading stored token",
		)
	}
	if token == "" {
		return financia.UserProfile{}, financia.ErrNoSession
	}

	user, err := m.profile.Update(ctx, name, compensation)
	if err != nil {
		return financia.UserProfile{}, err
	}
	userBytes, err := json.Marshal(user)
	if err != nil {
		return financia.UserProfile{}, errors.Wrap(
			err,
			"error marshaling user",
		)
	}
	if err := m.store.Set(credstore.KeyUser, string(userBytes)); err != nil {
		return financia.UserProfile{}, err
	}
	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	return user, nil
}

func (m *manager) SignOut(ctx context.Context) (SignOutResult, error) {
	if err := m.beginFlow(flowSignOut); err != nil {
		return SignOutResult{}, err
	}
	defer m.endFlow(flowSignOut)

	result := SignOutResult{}
	// Even if the session wasn't found and terminated server-side, local
	// sign-out proceeds; the failure is logged and swallowed.
	if err := m.auth.LogOut(ctx); err != nil {
		glog.Warningf("error terminating server-side session: %v", err)
	} else {
		result.ServerAcknowledged = true
	}
	if err := m.store.Clear(); err != nil {
		return result, errors.Wrap(err, "error clearing credential store")
	}
	m.mu.Lock()
	m.state = StateAnonymous
	m.token = ""
	m.user = nil
	m.pending = nil
	m.mu.Unlock()
	return result, nil
}

func (m *manager) RequestPasswordReset(
	ctx context.Context,
	email string,
) (*financia.PasswordResetChallenge, error) {
	if err := m.beginFlow(flowPasswordReset); err != nil {
		return nil, err
	}
	defer m.endFlow(flowPasswordReset)
	return m.auth.RequestPasswordReset(ctx, email)
}

func (m *manager) ResetPassword(
	ctx context.Context,
	challengeID string,
	code string,
	newPassword string,
) error {
	if err := m.beginFlow(flowPasswordReset); err != nil {
		return err
	}
	defer m.endFlow(flowPasswordReset)
	return m.auth.ResetPassword(ctx, challengeID, code, newPassword)
}

func (m *manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *manager) CurrentUser() (financia.UserProfile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return financia.UserProfile{}, false
	}
	return *m.user, true
}

func (m *manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// establish persists the credentials and moves the session to authenticated.
// The user is written before the token so a token is never durable without
// its paired profile.
func (m *manager) establish(creds financia.Credentials) error {
	userBytes, err := json.Marshal(creds.User)
	if err != nil {
		return errors.Wrap(err, "error marshaling user")
	}
	if err := m.store.Set(credstore.KeyUser, string(userBytes)); err != nil {
		return err
	}
	if err := m.store.Set(credstore.KeyToken, creds.Token); err != nil {
		return err
	}
	user := creds.User
	m.mu.Lock()
	m.state = StateAuthenticated
	m.token = creds.Token
	m.user = &user
	m.loading = false
	m.mu.Unlock()
	return nil
}

// beginFlow enforces one in-flight operation per flow key. The mobile app got
// this for free from per-screen loading flags; here the manager itself
// refuses re-entrant triggers.
func (m *manager) beginFlow(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight[key] {
		return errors.Errorf("a %s operation is already in flight", key)
	}
	m.inFlight[key] = true
	return nil
}

func (m *manager) endFlow(key string) {
	m.mu.Lock()
	delete(m.inFlight, key)
	m.mu.Unlock()
}
