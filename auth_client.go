package financia

import (
	"context"
	"crypto/tls"
	"net/http"
)

// AuthClient covers the unauthenticated edge of the API plus session
// termination: registration, login with its optional second factor, password
// reset, and logout.
type AuthClient interface {
	// Register creates a new account and signs it in immediately.
	Register(
		ctx context.Context,
		name string,
		email string,
		password string,
	) (Credentials, error)
	// LogIn exchanges credentials for a token. Exactly one of the two returns
	// is non-nil on success: Credentials when the account has no second
	// factor, or a TwoFactorChallenge the caller must resolve with
	// VerifyTwoFactor. A challenge is a terminal outcome of the call, not an
	// error.
	LogIn(
		ctx context.Context,
		email string,
		password string,
	) (*Credentials, *TwoFactorChallenge, error)
	// VerifyTwoFactor resolves a pending login challenge with the emailed
	// code. A rejected code leaves the challenge valid server-side; callers
	// may retry with the same challenge id.
	VerifyTwoFactor(
		ctx context.Context,
		challengeID string,
		code string,
	) (Credentials, error)
	// LogOut asks the backend to terminate the current session.
	LogOut(ctx context.Context) error
	// RequestPasswordReset asks for a reset code to be emailed. To avoid
	// confirming account existence, the backend answers success either way;
	// the returned challenge is nil when no code was actually issued.
	RequestPasswordReset(
		ctx context.Context,
		email string,
	) (*PasswordResetChallenge, error)
	// ResetPassword consumes a reset challenge. Callers enforce the
	// new-password confirmation match locally before calling.
	ResetPassword(
		ctx context.Context,
		challengeID string,
		code string,
		newPassword string,
	) error
}

type authClient struct {
	*BaseClient
}

// NewAuthClient returns a client for the auth endpoints of the FinancIA API.
func NewAuthClient(
	apiAddress string,
	tokens TokenSource,
	allowInsecure bool,
) AuthClient {
	return &authClient{
		BaseClient: &BaseClient{
			APIAddress:  apiAddress,
			TokenSource: tokens,
			HTTPClient: &http.Client{
				Transport: &http.Transport{
					TLSClientConfig: &tls.Config{
						InsecureSkipVerify: allowInsecure,
					},
				},
			},
		},
	}
}

func (a *authClient) Register(
	ctx context.Context,
	name string,
	email string,
	password string,
) (Credentials, error) {
	creds := Credentials{}
	return creds, a.ExecuteRequest(
		ctx,
		Request{
			Method: http.MethodPost,
			Path:   "auth/register",
			ReqBodyObj: struct {
				Name     string `json:"name"`
				Email    string `json:"email"`
				Password string `json:"password"`
			}{
				Name:     name,
				Email:    email,
				Password: password,
			},
			SuccessCode: http.StatusCreated,
			RespObj:     &creds,
		},
	)
}

func (a *authClient) LogIn(
	ctx context.Context,
	email string,
	password string,
) (*Credentials, *TwoFactorChallenge, error) {
	respObj := struct {
		Token             string       `json:"token"`
		User              *UserProfile `json:"user"`
		RequiresTwoFactor bool         `json:"requiresTwoFactor"`
		TwoFactorTokenID  string       `json:"twoFactorTokenId"`
		Email             string       `json:"email"`
	}{}
	if err := a.ExecuteRequest(
		ctx,
		Request{
			Method: http.MethodPost,
			Path:   "auth/login",
			ReqBodyObj: struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}{
				Email:    email,
				Password: password,
			},
			SuccessCode: http.StatusOK,
			RespObj:     &respObj,
		},
	); err != nil {
		return nil, nil, err
	}
	if respObj.RequiresTwoFactor {
		return nil, &TwoFactorChallenge{
			ChallengeID: respObj.TwoFactorTokenID,
			TargetEmail: respObj.Email,
		}, nil
	}
	// A 200 without a challenge must carry both halves of a session.
	if respObj.User == nil || respObj.Token == "" {
		return nil, nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    FallbackErrorMessage,
		}
	}
	return &Credentials{
		Token: respObj.Token,
		User:  *respObj.User,
	}, nil, nil
}

func (a *authClient) VerifyTwoFactor(
	ctx context.Context,
	challengeID string,
	code string,
) (Credentials, error) {
	creds := Credentials{}
	return creds, a.ExecuteRequest(
		ctx,
		Request{
			Method: http.MethodPost,
			Path:   "auth/verify-2fa",
			ReqBodyObj: struct {
				TokenID string `json:"tokenId"`
				Code    string `json:"code"`
			}{
				TokenID: challengeID,
				Code:    code,
			},
			SuccessCode: http.StatusOK,
			RespObj:     &creds,
		},
	)
}

func (a *authClient) LogOut(ctx context.Context) error {
	return a.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodPost,
			Path:         "auth/logout",
			SuccessCode:  http.StatusOK,
			Authenticate: true,
		},
	)
}

func (a *authClient) RequestPasswordReset(
	ctx context.Context,
	email string,
) (*PasswordResetChallenge, error) {
	challenge := PasswordResetChallenge{}
	if err := a.ExecuteRequest(
		ctx,
		Request{
			Method: http.MethodPost,
			Path:   "auth/request-reset",
			ReqBodyObj: struct {
				Email string `json:"email"`
			}{
				Email: email,
			},
			SuccessCode: http.StatusOK,
			RespObj:     &challenge,
		},
	); err != nil {
		return nil, err
	}
	// An empty challenge id means the backend declined to confirm the account
	// exists. That is still success from the caller's perspective.
	if challenge.ChallengeID == "" {
		return nil, nil
	}
	return &challenge, nil
}

func (a *authClient) ResetPassword(
	ctx context.Context,
	challengeID string,
	code string,
	newPassword string,
) error {
	return a.ExecuteRequest(
		ctx,
		Request{
			Method: http.MethodPost,
			Path:   "auth/reset-password",
			ReqBodyObj: struct {
				TokenID     string `json:"tokenId"`
				Code        string `json:"code"`
				NewPassword string `json:"newPassword"`
			}{
				TokenID:     challengeID,
				Code:        code,
				NewPassword: newPassword,
			},
			SuccessCode: http.StatusOK,
		},
	)
}
