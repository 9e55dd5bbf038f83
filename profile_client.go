package financia

import (
	"context"
	"crypto/tls"
	"net/http"
)

// ProfileClient manages the authenticated account's profile. Email is absent
// from the update payload on purpose; it cannot change after registration.
type ProfileClient interface {
	// Get fetches the authoritative profile for the current session.
	Get(ctx context.Context) (UserProfile, error)
	// Update replaces name and compensation and returns the full profile as
	// the server now holds it. Callers must overwrite any local copy with the
	// returned record rather than merging fields, since the server computes
	// some of them.
	Update(
		ctx context.Context,
		name string,
		compensation float64,
	) (UserProfile, error)
}

type profileClient struct {
	*BaseClient
}

// NewProfileClient returns a client for the profile endpoints of the FinancIA
// API.
func NewProfileClient(
	apiAddress string,
	tokens TokenSource,
	allowInsecure bool,
) ProfileClient {
	return &profileClient{
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

func (p *profileClient) Get(ctx context.Context) (UserProfile, error) {
	profile := UserProfile{}
	return profile, p.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodGet,
			Path:         "profile",
			SuccessCode:  http.StatusOK,
			RespObj:      &profile,
			Authenticate: true,
		},
	)
}

func (p *profileClient) Update(
	ctx context.Context,
	name string,
	compensation float64,
) (UserProfile, error) {
	profile := UserProfile{}
	return profile, p.ExecuteRequest(
		ctx,
		Request{
			Method: http.MethodPut,
			Path:   "profile",
			ReqBodyObj: struct {
				Name         string  `json:"name"`
				Compensation float64 `json:"compensation"`
			}{
				Name:         name,
				Compensation: compensation,
			},
			SuccessCode:  http.StatusOK,
			RespObj:      &profile,
			Authenticate: true,
		},
	)
}
