package financia

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
)

// TransactionsClient manages transaction entries.
type TransactionsClient interface {
	List(ctx context.Context) ([]Transaction, error)
	Create(ctx context.Context, transaction Transaction) (Transaction, error)
	Delete(ctx context.Context, id string) error
}

type transactionsClient struct {
	*BaseClient
}

// NewTransactionsClient returns a client for the transaction endpoints of the
// FinancIA API.
func NewTransactionsClient(
	apiAddress string,
	tokens TokenSource,
	allowInsecure bool,
) TransactionsClient {
	return &transactionsClient{
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

func (t *transactionsClient) List(
	ctx context.Context,
) ([]Transaction, error) {
	transactions := []Transaction{}
	return transactions, t.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodGet,
			Path:         "transactions",
			SuccessCode:  http.StatusOK,
			RespObj:      &transactions,
			Authenticate: true,
		},
	)
}

func (t *transactionsClient) Create(
	ctx context.Context,
	transaction Transaction,
) (Transaction, error) {
	created := Transaction{}
	return created, t.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodPost,
			Path:         "transactions",
			ReqBodyObj:   transaction,
			SuccessCode:  http.StatusCreated,
			RespObj:      &created,
			Authenticate: true,
		},
	)
}

func (t *transactionsClient) Delete(ctx context.Context, id string) error {
	return t.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodDelete,
			Path:         fmt.Sprintf("transactions/%s", id),
			SuccessCode:  http.StatusOK,
			Authenticate: true,
		},
	)
}
