package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"

	financia "github.com/AguiarDev47/FinancIA"
	"github.com/AguiarDev47/FinancIA/credstore"
)

const (
	testUserEmail    = "a@b.com"
	testUserPassword = "secret"
	testGoodCode     = "123456"
)

// testBackend is a fake FinancIA API covering the endpoints the session
// manager touches.
type testBackend struct {
	server *httptest.Server

	mu               sync.Mutex
	requestCounts    map[string]int
	requireTwoFactor bool
	failLogout       bool
	issuedToken      string
	challengeID      string
	// loginGate, when non-nil, blocks the login handler until closed.
	loginGate    chan struct{}
	loginEntered chan struct{}
}

func newTestBackend() *testBackend {
	b := &testBackend{
		requestCounts: map[string]int{},
		loginEntered:  make(chan struct{}, 8),
	}
	router := mux.NewRouter()
	router.HandleFunc("/auth/login", b.handleLogin).Methods(http.MethodPost)
	router.HandleFunc(
		"/auth/verify-2fa",
		b.handleVerifyTwoFactor,
	).Methods(http.MethodPost)
	router.HandleFunc("/auth/logout", b.handleLogout).Methods(http.MethodPost)
	router.HandleFunc(
		"/auth/register",
		b.handleRegister,
	).Methods(http.MethodPost)
	router.HandleFunc(
		"/profile",
		b.handleProfileUpdate,
	).Methods(http.MethodPut)
	router.HandleFunc(
		"/auth/request-reset",
		b.handleRequestReset,
	).Methods(http.MethodPost)
	router.HandleFunc(
		"/auth/reset-password",
		b.handleResetPassword,
	).Methods(http.MethodPost)
	b.server = httptest.NewServer(router)
	return b
}

func (b *testBackend) close() {
	b.server.Close()
}

func (b *testBackend) count(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requestCounts[path]
}

func (b *testBackend) lastToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issuedToken
}

func (b *testBackend) record(path string) {
	b.mu.Lock()
	b.requestCounts[path]++
	b.mu.Unlock()
}

func (b *testBackend) writeCredentials(w http.ResponseWriter) {
	b.mu.Lock()
	b.issuedToken = uuid.NewV4().String()
	token := b.issuedToken
	b.mu.Unlock()
	fmt.Fprintf(
		w,
		`{"token":%q,"user":{"id":"1","name":"Ana","email":%q,"compensation":5000}}`, // nolint: lll
		token,
		testUserEmail,
	)
}

func (b *testBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	b.record("/auth/login")
	select {
	case b.loginEntered <- struct{}{}:
	default:
	}
	b.mu.Lock()
	gate := b.loginGate
	b.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if b.requireTwoFactor {
		b.mu.Lock()
		b.challengeID = uuid.NewV4().String()
		challengeID := b.challengeID
		b.mu.Unlock()
		fmt.Fprintf(
			w,
			`{"requiresTwoFactor":true,"twoFactorTokenId":%q,"email":%q}`,
			challengeID,
			testUserEmail,
		)
		return
	}
	b.writeCredentials(w)
}

func (b *testBackend) handleVerifyTwoFactor(
	w http.ResponseWriter,
	r *http.Request,
) {
	b.record("/auth/verify-2fa")
	defer r.Body.Close()
	body := map[string]string{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintln(w, `{"error":"malformed request"}`)
		return
	}
	b.mu.Lock()
	challengeID := b.challengeID
	b.mu.Unlock()
	if body["tokenId"] != challengeID {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprintln(w, `{"error":"unknown or expired challenge"}`)
		return
	}
	if body["code"] != testGoodCode {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprintln(w, `{"error":"invalid code"}`)
		return
	}
	b.writeCredentials(w)
}

func (b *testBackend) handleLogout(w http.ResponseWriter, r *http.Request) {
	b.record("/auth/logout")
	if b.failLogout {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintln(w, `{"error":"session backend unavailable"}`)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (b *testBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	b.record("/auth/register")
	w.WriteHeader(http.StatusCreated)
	b.writeCredentials(w)
}

func (b *testBackend) handleProfileUpdate(
	w http.ResponseWriter,
	r *http.Request,
) {
	b.record("/profile")
	defer r.Body.Close()
	body := map[string]interface{}{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintln(w, `{"error":"malformed request"}`)
		return
	}
	// The server is authoritative; it recomputes compensation instead of
	// echoing the client's value.
	fmt.Fprintf(
		w,
		`{"id":"1","name":%q,"email":%q,"compensation":6500}`,
		body["name"],
		testUserEmail,
	)
}

func (b *testBackend) handleRequestReset(
	w http.ResponseWriter,
	r *http.Request,
) {
	b.record("/auth/request-reset")
	defer r.Body.Close()
	body := map[string]string{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintln(w, `{"error":"malformed request"}`)
		return
	}
	if body["email"] != testUserEmail {
		// Unknown accounts get the same 200, minus the challenge, to avoid
		// disclosing account existence.
		fmt.Fprintln(w, "{}")
		return
	}
	fmt.Fprintf(
		w,
		`{"tokenId":%q,"email":%q}`,
		uuid.NewV4().String(),
		testUserEmail,
	)
}

func (b *testBackend) handleResetPassword(
	w http.ResponseWriter,
	r *http.Request,
) {
	b.record("/auth/reset-password")
	w.WriteHeader(http.StatusOK)
}

func newTestManager(
	t *testing.T,
	backend *testBackend,
) (Manager, credstore.Store) {
	store := credstore.NewFileStoreAt(path.Join(t.TempDir(), "credentials"))
	client := financia.NewClient(backend.server.URL, store, false)
	return NewManager(client, store), store
}

// requireTokenUserPaired asserts the invariant that the token and user are
// set or cleared together, both in memory and in the store.
func requireTokenUserPaired(
	t *testing.T,
	manager Manager,
	store credstore.Store,
) {
	token, tokenOK, err := store.Get(credstore.KeyToken)
	require.NoError(t, err)
	_, userOK, err := store.Get(credstore.KeyUser)
	require.NoError(t, err)
	require.Equal(t, tokenOK, userOK)

	_, haveUser := manager.CurrentUser()
	require.Equal(t, manager.State() == StateAuthenticated, haveUser)
	require.Equal(t, tokenOK && token != "", haveUser)
}

func TestManagerRestoreEmptyStore(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	manager, store := newTestManager(t, backend)

	require.True(t, manager.Loading())
	require.Equal(t, StateUnknown, manager.State())

	err := manager.Restore(context.Background())
	require.NoError(t, err)
	require.False(t, manager.Loading())
	require.Equal(t, StateAnonymous, manager.State())
	requireTokenUserPaired(t, manager, store)
}

func TestManagerRestoreIsOfflineAndIdempotent(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	manager, store := newTestManager(t, backend)

	require.NoError(t, store.Set(credstore.KeyUser, `{"id":"1","name":"Ana","email":"a@b.com"}`)) // nolint: lll
	require.NoError(t, store.Set(credstore.KeyToken, "t1"))

	for i := 0; i < 2; i++ {
		err := manager.Restore(context.Background())
		require.NoError(t, err)
		require.Equal(t, StateAuthenticated, manager.State())
		require.False(t, manager.Loading())
		user, ok := manager.CurrentUser()
		require.True(t, ok)
		require.Equal(t, "Ana", user.Name)
	}
	// Optimistic restore never touches the network.
	require.Zero(t, backend.count("/auth/login"))
	require.Zero(t, backend.count("/profile"))
	requireTokenUserPaired(t, manager, store)
}

func TestManagerRestoreTokenWithoutUser(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	manager, store := newTestManager(t, backend)

	require.NoError(t, store.Set(credstore.KeyToken, "t1"))

	err := manager.Restore(context.Background())
	require.NoError(t, err)
	// One key without the other is "no session", not an error.
	require.Equal(t, StateAnonymous, manager.State())
	_, ok := manager.CurrentUser()
	require.False(t, ok)
}

func TestManagerSignIn(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	manager, store := newTestManager(t, backend)
	require.NoError(t, manager.Restore(context.Background()))

	challenge, err := manager.SignIn(
		context.Background(),
		testUserEmail,
		testUserPassword,
	)
	require.NoError(t, err)
	require.Nil(t, challenge)
	require.Equal(t, StateAuthenticated, manager.State())

	user, ok := manager.CurrentUser()
	require.True(t, ok)
	require.Equal(t, testUserEmail, user.Email)

	token, tokenOK, err := store.Get(credstore.KeyToken)
	require.NoError(t, err)
	require.True(t, tokenOK)
	require.Equal(t, backend.lastToken(), token)
	requireTokenUserPaired(t, manager, store)
}

func TestManagerSignInBadCredentials(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	manager, store := newTestManager(t, backend)
	require.NoError(t, manager.Restore(context.Background()))

	backend.server.Close()
	_, err := manager.SignIn(
		context.Background(),
		testUserEmail,
		testUserPassword,
	)
	require.Error(t, err)
	require.Equal(t, StateAnonymous, manager.State())
	requireTokenUserPaired(t, manager, store)
}

func TestManagerSignInWithTwoFactor(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	backend.requireTwoFactor = true
	manager, store := newTestManager(t, backend)
	require.NoError(t, manager.Restore(context.Background()))

	challenge, err := manager.SignIn(
		context.Background(),
		testUserEmail,
		testUserPassword,
	)
	require.NoError(t, err)
	require.NotNil(t, challenge)
	require.Equal(t, testUserEmail, challenge.TargetEmail)
	// A pending challenge is a terminal outcome of the call, not a session:
	// nothing was persisted and nothing changed in memory.
	require.Equal(t, StateAnonymous, manager.State())
	requireTokenUserPaired(t, manager, store)

	err = manager.VerifyTwoFactor(
		context.Background(),
		challenge.ChallengeID,
		testGoodCode,
	)
	require.NoError(t, err)
	require.Equal(t, StateAuthenticated, manager.State())
	token, _, err := store.Get(credstore.KeyToken)
	require.NoError(t, err)
	require.Equal(t, backend.lastToken(), token)
	requireTokenUserPaired(t, manager, store)
}

func TestManagerVerifyTwoFactorWrongCodeAllowsRetry(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	backend.requireTwoFactor = true
	manager, _ := newTestManager(t, backend)
	require.NoError(t, manager.Restore(context.Background()))

	challenge, err := manager.SignIn(
		context.Background(),
		testUserEmail,
		testUserPassword,
	)
	require.NoError(t, err)
	require.NotNil(t, challenge)

	err = manager.VerifyTwoFactor(
		context.Background(),
		challenge.ChallengeID,
		"000000",
	)
	require.Error(t, err)
	require.Equal(t, StateAnonymous, manager.State())

	// The challenge stays pending locally; only the server decides code
	// liveness. A retry with the right code succeeds.
	err = manager.VerifyTwoFactor(
		context.Background(),
		challenge.ChallengeID,
		testGoodCode,
	)
	require.NoError(t, err)
	require.Equal(t, StateAuthenticated, manager.State())
}

func TestManagerSecondSignInDiscardsPendingChallenge(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	backend.requireTwoFactor = true
	manager, _ := newTestManager(t, backend)
	require.NoError(t, manager.Restore(context.Background()))

	first, err := manager.SignIn(
		context.Background(),
		testUserEmail,
		testUserPassword,
	)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := manager.SignIn(
		context.Background(),
		testUserEmail,
		testUserPassword,
	)
	require.NoError(t, err)
	require.NotNil(t, second)
	require.NotEqual(t, first.ChallengeID, second.ChallengeID)

	// The first challenge id is no longer confirmable; it is rejected
	// locally without reaching the verification endpoint.
	verifyCalls := backend.count("/auth/verify-2fa")
	err = manager.VerifyTwoFactor(
		context.Background(),
		first.ChallengeID,
		testGoodCode,
	)
	require.Error(t, err)
	require.Equal(t, verifyCalls, backend.count("/auth/verify-2fa"))
	require.Equal(t, StateAnonymous, manager.State())

	err = manager.VerifyTwoFactor(
		context.Background(),
		second.ChallengeID,
		testGoodCode,
	)
	require.NoError(t, err)
	require.Equal(t, StateAuthenticated, manager.State())
}

func TestManagerSignOut(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	manager, store := newTestManager(t, backend)
	require.NoError(t, manager.Restore(context.Background()))
	_, err := manager.SignIn(
		context.Background(),
		testUserEmail,
		testUserPassword,
	)
	require.NoError(t, err)

	result, err := manager.SignOut(context.Background())
	require.NoError(t, err)
	require.True(t, result.ServerAcknowledged)
	require.Equal(t, StateAnonymous, manager.State())
	requireTokenUserPaired(t, manager, store)
}

func TestManagerSignOutClearsLocallyWhenServerFails(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	backend.failLogout = true
	manager, store := newTestManager(t, backend)
	require.NoError(t, manager.Restore(context.Background()))
	_, err := manager.SignIn(
		context.Background(),
		testUserEmail,
		testUserPassword,
	)
	require.NoError(t, err)

	result, err := manager.SignOut(context.Background())
	require.NoError(t, err)
	require.False(t, result.ServerAcknowledged)
	require.Equal(t, StateAnonymous, manager.State())
	_, ok := manager.CurrentUser()
	require.False(t, ok)

	// The credential store is empty despite the server-side failure.
	for _, key := range []string{
		credstore.KeyToken,
		credstore.KeyUser,
		credstore.KeyBiometric,
	} {
		_, found, err := store.Get(key)
		require.NoError(t, err)
		require.False(t, found)
	}
}

func TestManagerUpdateProfileWithoutSession(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	manager, _ := newTestManager(t, backend)
	require.NoError(t, manager.Restore(context.Background()))

	_, err := manager.UpdateProfile(context.Background(), "Ana", 6500)
	require.Equal(t, financia.ErrNoSession, err)
	// The precondition failed before any network call.
	require.Zero(t, backend.count("/profile"))
}

func TestManagerUpdateProfileOverwritesWholeRecord(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	manager, store := newTestManager(t, backend)
	require.NoError(t, manager.Restore(context.Background()))
	_, err := manager.SignIn(
		context.Background(),
		testUserEmail,
		testUserPassword,
	)
	require.NoError(t, err)

	updated, err := manager.UpdateProfile(
		context.Background(),
		"Ana Maria",
		1,
	)
	require.NoError(t, err)
	require.Equal(t, "Ana Maria", updated.Name)
	// The server recomputed compensation; the local record took the server's
	// value, not the one submitted.
	require.Equal(t, float64(6500), updated.Compensation)

	user, ok := manager.CurrentUser()
	require.True(t, ok)
	require.Equal(t, updated, user)

	userRaw, _, err := store.Get(credstore.KeyUser)
	require.NoError(t, err)
	stored := financia.UserProfile{}
	require.NoError(t, json.Unmarshal([]byte(userRaw), &stored))
	require.Equal(t, updated, stored)
}

func TestManagerRequestPasswordReset(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	manager, _ := newTestManager(t, backend)

	// Known account: a usable challenge comes back.
	challenge, err := manager.RequestPasswordReset(
		context.Background(),
		testUserEmail,
	)
	require.NoError(t, err)
	require.NotNil(t, challenge)
	require.NotEmpty(t, challenge.ChallengeID)

	// Unknown account: same silent success, no challenge. The response alone
	// cannot prove the account doesn't exist.
	challenge, err = manager.RequestPasswordReset(
		context.Background(),
		"unknown@x.com",
	)
	require.NoError(t, err)
	require.Nil(t, challenge)
}

func TestManagerResetPassword(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	manager, _ := newTestManager(t, backend)

	challenge, err := manager.RequestPasswordReset(
		context.Background(),
		testUserEmail,
	)
	require.NoError(t, err)
	require.NotNil(t, challenge)

	err = manager.ResetPassword(
		context.Background(),
		challenge.ChallengeID,
		testGoodCode,
		"newsecret",
	)
	require.NoError(t, err)
	require.Equal(t, 1, backend.count("/auth/reset-password"))
	// Resetting a password does not create a session.
	require.Equal(t, StateAnonymous, manager.State())
}

func TestManagerRegister(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	manager, store := newTestManager(t, backend)
	require.NoError(t, manager.Restore(context.Background()))

	err := manager.Register(
		context.Background(),
		"Ana",
		testUserEmail,
		testUserPassword,
	)
	require.NoError(t, err)
	require.Equal(t, StateAuthenticated, manager.State())
	requireTokenUserPaired(t, manager, store)
}

func TestManagerSignInSingleFlight(t *testing.T) {
	backend := newTestBackend()
	defer backend.close()
	gate := make(chan struct{})
	backend.loginGate = gate
	manager, _ := newTestManager(t, backend)
	require.NoError(t, manager.Restore(context.Background()))

	firstDone := make(chan error, 1)
	go func() {
		_, err := manager.SignIn(
			context.Background(),
			testUserEmail,
			testUserPassword,
		)
		firstDone <- err
	}()
	// Wait for the first sign-in to actually reach the backend.
	<-backend.loginEntered

	_, err := manager.SignIn(
		context.Background(),
		testUserEmail,
		testUserPassword,
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already in flight")

	close(gate)
	require.NoError(t, <-firstDone)
	require.Equal(t, StateAuthenticated, manager.State())
}
