package financia

// Request describes a single call to the FinancIA API.
type Request struct {
	Method      string
	Path        string
	QueryParams map[string]string
	Headers     map[string]string
	ReqBodyObj  interface{}
	SuccessCode int
	RespObj     interface{}
	// Authenticate indicates the request must carry a bearer token obtained
	// fresh from the client's TokenSource.
	Authenticate bool
}
