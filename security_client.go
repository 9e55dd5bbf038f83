package financia

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
)

// SecurityStatus reports the account's server-side security posture.
type SecurityStatus struct {
	TwoFactorEnabled bool `json:"twoFactorEnabled"`
}

// SecurityClient covers the security console endpoints. Every call here
// requires a live token, read fresh per request.
type SecurityClient interface {
	Status(ctx context.Context) (SecurityStatus, error)
	ChangePassword(
		ctx context.Context,
		oldPassword string,
		newPassword string,
	) error
	// RequestTwoFactor starts the two-phase enablement: the backend issues a
	// challenge bound to the current account and emails a code. The 2FA flag
	// stays false until ConfirmTwoFactor succeeds.
	RequestTwoFactor(ctx context.Context) (*TwoFactorChallenge, error)
	ConfirmTwoFactor(ctx context.Context, challengeID, code string) error
	// DisableTwoFactor requires re-authentication by password, not just a
	// live token. Deliberate step-up check.
	DisableTwoFactor(ctx context.Context, currentPassword string) error
	// ListSessions enumerates active sessions with IsCurrent set on the one
	// matching the server-reported current session id.
	ListSessions(ctx context.Context) ([]SessionRecord, error)
	RevokeSession(ctx context.Context, id string) error
	RevokeOtherSessions(ctx context.Context) error
}

type securityClient struct {
	*BaseClient
}

// NewSecurityClient returns a client for the security console endpoints of
// the FinancIA API.
func NewSecurityClient(
	apiAddress string,
	tokens TokenSource,
	allowInsecure bool,
) SecurityClient {
	return &securityClient{
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

func (s *securityClient) Status(ctx context.Context) (SecurityStatus, error) {
	status := SecurityStatus{}
	return status, s.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodGet,
			Path:         "security/status",
			SuccessCode:  http.StatusOK,
			RespObj:      &status,
			Authenticate: true,
		},
	)
}

func (s *securityClient) ChangePassword(
	ctx context.Context,
	oldPassword string,
	newPassword string,
) error {
	return s.ExecuteRequest(
		ctx,
		Request{
			Method: http.MethodPost,
			Path:   "security/change-password",
			ReqBodyObj: struct {
				OldPassword string `json:"oldPassword"`
				NewPassword string `json:"newPassword"`
			}{
				OldPassword: oldPassword,
				NewPassword: newPassword,
			},
			SuccessCode:  http.StatusOK,
			Authenticate: true,
		},
	)
}

func (s *securityClient) RequestTwoFactor(
	ctx context.Context,
) (*TwoFactorChallenge, error) {
	respObj := struct {
		TokenID string `json:"tokenId"`
		Email   string `json:"email"`
	}{}
	if err := s.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodPost,
			Path:         "security/2fa/request",
			SuccessCode:  http.StatusOK,
			RespObj:      &respObj,
			Authenticate: true,
		},
	); err != nil {
		return nil, err
	}
	return &TwoFactorChallenge{
		ChallengeID: respObj.TokenID,
		TargetEmail: respObj.Email,
	}, nil
}

func (s *securityClient) ConfirmTwoFactor(
	ctx context.Context,
	challengeID string,
	code string,
) error {
	return s.ExecuteRequest(
		ctx,
		Request{
			Method: http.MethodPost,
			Path:   "security/2fa/confirm",
			ReqBodyObj: struct {
				TokenID string `json:"tokenId"`
				Code    string `json:"code"`
			}{
				TokenID: challengeID,
				Code:    code,
			},
			SuccessCode:  http.StatusOK,
			Authenticate: true,
		},
	)
}

func (s *securityClient) DisableTwoFactor(
	ctx context.Context,
	currentPassword string,
) error {
	return s.ExecuteRequest(
		ctx,
		Request{
			Method: http.MethodPost,
			Path:   "security/2fa/disable",
			ReqBodyObj: struct {
				Password string `json:"password"`
			}{
				Password: currentPassword,
			},
			SuccessCode:  http.StatusOK,
			Authenticate: true,
		},
	)
}

func (s *securityClient) ListSessions(
	ctx context.Context,
) ([]SessionRecord, error) {
	list := SessionList{}
	if err := s.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodGet,
			Path:         "security/sessions",
			SuccessCode:  http.StatusOK,
			RespObj:      &list,
			Authenticate: true,
		},
	); err != nil {
		return nil, err
	}
	// Current-ness is matched by id, never inferred.
	for i := range list.Sessions {
		list.Sessions[i].IsCurrent =
			list.Sessions[i].ID == list.CurrentSessionID
	}
	return list.Sessions, nil
}

func (s *securityClient) RevokeSession(ctx context.Context, id string) error {
	return s.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodPost,
			Path:         fmt.Sprintf("security/sessions/%s/revoke", id),
			SuccessCode:  http.StatusOK,
			Authenticate: true,
		},
	)
}

func (s *securityClient) RevokeOtherSessions(ctx context.Context) error {
	return s.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodPost,
			Path:         "security/sessions/revoke-others",
			SuccessCode:  http.StatusOK,
			Authenticate: true,
		},
	)
}
