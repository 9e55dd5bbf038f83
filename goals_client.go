package financia

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
)

// GoalsClient manages savings goals.
type GoalsClient interface {
	List(ctx context.Context) ([]Goal, error)
	Create(ctx context.Context, goal Goal) (Goal, error)
	// UpdateProgress replaces the goal's current amount and returns the goal
	// as the server now holds it.
	UpdateProgress(
		ctx context.Context,
		id string,
		currentAmount float64,
	) (Goal, error)
	Delete(ctx context.Context, id string) error
}

type goalsClient struct {
	*BaseClient
}

// NewGoalsClient returns a client for the goal endpoints of the FinancIA API.
func NewGoalsClient(
	apiAddress string,
	tokens TokenSource,
	allowInsecure bool,
) GoalsClient {
	return &goalsClient{
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

func (g *goalsClient) List(ctx context.Context) ([]Goal, error) {
	goals := []Goal{}
	return goals, g.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodGet,
			Path:         "goals",
			SuccessCode:  http.StatusOK,
			RespObj:      &goals,
			Authenticate: true,
		},
	)
}

func (g *goalsClient) Create(ctx context.Context, goal Goal) (Goal, error) {
	created := Goal{}
	return created, g.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodPost,
			Path:         "goals",
			ReqBodyObj:   goal,
			SuccessCode:  http.StatusCreated,
			RespObj:      &created,
			Authenticate: true,
		},
	)
}

func (g *goalsClient) UpdateProgress(
	ctx context.Context,
	id string,
	currentAmount float64,
) (Goal, error) {
	updated := Goal{}
	return updated, g.ExecuteRequest(
		ctx,
		Request{
			Method: http.MethodPut,
			Path:   fmt.Sprintf("goals/%s/progress", id),
			ReqBodyObj: struct {
				CurrentAmount float64 `json:"currentAmount"`
			}{
				CurrentAmount: currentAmount,
			},
			SuccessCode:  http.StatusOK,
			RespObj:      &updated,
			Authenticate: true,
		},
	)
}

func (g *goalsClient) Delete(ctx context.Context, id string) error {
	return g.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodDelete,
			Path:         fmt.Sprintf("goals/%s", id),
			SuccessCode:  http.StatusOK,
			Authenticate: true,
		},
	)
}
