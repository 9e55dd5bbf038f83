package financia

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
)

// CategoriesClient manages transaction categories.
type CategoriesClient interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, name string) (Category, error)
	Delete(ctx context.Context, id string) error
}

type categoriesClient struct {
	*BaseClient
}

// NewCategoriesClient returns a client for the category endpoints of the
// FinancIA API.
func NewCategoriesClient(
	apiAddress string,
	tokens TokenSource,
	allowInsecure bool,
) CategoriesClient {
	return &categoriesClient{
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

func (c *categoriesClient) List(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	return categories, c.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodGet,
			Path:         "categories",
			SuccessCode:  http.StatusOK,
			RespObj:      &categories,
			Authenticate: true,
		},
	)
}

func (c *categoriesClient) Create(
	ctx context.Context,
	name string,
) (Category, error) {
	created := Category{}
	return created, c.ExecuteRequest(
		ctx,
		Request{
			Method: http.MethodPost,
			Path:   "categories",
			ReqBodyObj: struct {
				Name string `json:"name"`
			}{
				Name: name,
			},
			SuccessCode:  http.StatusCreated,
			RespObj:      &created,
			Authenticate: true,
		},
	)
}

func (c *categoriesClient) Delete(ctx context.Context, id string) error {
	return c.ExecuteRequest(
		ctx,
		Request{
			Method:       http.MethodDelete,
			Path:         fmt.Sprintf("categories/%s", id),
			SuccessCode:  http.StatusOK,
			Authenticate: true,
		},
	)
}
