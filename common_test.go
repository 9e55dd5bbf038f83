package financia

import (
	"crypto/tls"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testAPIAddress          = "localhost:3333"
	testToken               = "11235813213455"
	testClientAllowInsecure = true
)

func requireBaseClient(t *testing.T, baseClient *BaseClient) {
	require.Equal(t, testAPIAddress, baseClient.APIAddress)
	require.NotNil(t, baseClient.TokenSource)
	require.IsType(t, &http.Client{}, baseClient.HTTPClient)
	require.IsType(t, &http.Transport{}, baseClient.HTTPClient.Transport)
	require.IsType(
		t,
		&tls.Config{},
		baseClient.HTTPClient.Transport.(*http.Transport).TLSClientConfig,
	)
	require.Equal(
		t,
		testClientAllowInsecure,
		baseClient.HTTPClient.Transport.(*http.Transport).TLSClientConfig.InsecureSkipVerify, // nolint: lll
	)
}
