package financia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"
)

// TokenSource supplies the current bearer token. The transport consults it at
// the start of every authenticated request rather than caching a copy, because
// any earlier call may have invalidated the session. Implementations return an
// empty string (and no error) when no session exists.
type TokenSource interface {
	Token() (string, error)
}

// TokenFunc adapts an ordinary function to a TokenSource.
type TokenFunc func() (string, error)

func (f TokenFunc) Token() (string, error) {
	return f()
}

// StaticToken is a TokenSource that always yields the same token. Useful in
// tests and one-shot scripts.
type StaticToken string

func (s StaticToken) Token() (string, error) {
	return string(s), nil
}

// BaseClient provides the plumbing shared by all per-resource API clients.
type BaseClient struct {
	APIAddress  string
	TokenSource TokenSource
	HTTPClient  *http.Client
}

// ExecuteRequest submits the described request and, when the request names a
// RespObj, unmarshals the response body into it.
func (b *BaseClient) ExecuteRequest(ctx context.Context, req Request) error {
	resp, err := b.SubmitRequest(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if req.RespObj != nil {
		respBodyBytes, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "error reading response body")
		}
		if err := json.Unmarshal(respBodyBytes, req.RespObj); err != nil {
			return errors.Wrap(err, "error unmarshaling response body")
		}
	}
	return nil
}

// SubmitRequest submits the described request and hands the raw response to
// the caller, who assumes responsibility for closing its body. Callers that
// only need a decoded JSON body should prefer ExecuteRequest.
func (b *BaseClient) SubmitRequest(
	ctx context.Context,
	req Request,
) (*http.Response, error) {
	var reqBodyReader io.Reader
	if req.ReqBodyObj != nil {
		switch rb := req.ReqBodyObj.(type) {
		case []byte:
			reqBodyReader = bytes.NewBuffer(rb)
		default:
			reqBodyBytes, err := json.Marshal(req.ReqBodyObj)
			if err != nil {
				return nil, errors.Wrap(err, "error marshaling request body")
			}
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	r, err := http.NewRequestWithContext(
		ctx,
		req.Method,
		fmt.Sprintf("%s/%s", b.APIAddress, req.Path),
		reqBodyReader,
	)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating request %s %s",
			req.Method,
			req.Path,
		)
	}
	if len(req.QueryParams) > 0 {
		q := r.URL.Query()
		for k, v := range req.QueryParams {
			q.Set(k, v)
		}
		r.URL.RawQuery = q.Encode()
	}
	r.Header.Set("Content-Type", "application/json")
	if req.Authenticate {
		token, err := b.TokenSource.Token()
		if err != nil {
			return nil, errors.Wrap(err, "error reading session token")
		}
		if token == "" {
			return nil, ErrNoSession
		}
		r.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	for k, v := range req.Headers {
		r.Header.Add(k, v)
	}

	resp, err := b.HTTPClient.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "error invoking API")
	}

	if (req.SuccessCode == 0 && resp.StatusCode != http.StatusOK) ||
		(req.SuccessCode != 0 && resp.StatusCode != req.SuccessCode) {
		defer resp.Body.Close()
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// The backend reports failures as {"error": "..."}, but empty and
		// non-JSON bodies must not crash the caller; they get the fallback
		// message instead.
		bodyBytes, err := ioutil.ReadAll(resp.Body)
		if err != nil || json.Unmarshal(bodyBytes, apiErr) != nil ||
			apiErr.Message == "" {
			apiErr.Message = FallbackErrorMessage
		}
		return nil, apiErr
	}
	return resp, nil
}
