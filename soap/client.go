// Package soap implements the SOAP 1.1 transport used to call ASP.NET (ASMX) web services:
// envelope framing, RPC request encoding, fault detection and scalar response extraction.
package soap

import (
	"context"
	"errors"
	"net/http"
)

var (
	// ErrUnsupportedContentType is returned if we encounter a non-supported content type while querying
	ErrUnsupportedContentType = errors.New("unsupported content-type in response")
)

// Client is an opaque handle to a SOAP service.
type Client struct {
	http *http.Client
}

// NewClient creates a new Client that will access a SOAP service.
// Requests made using this client will all be wrapped in a SOAP envelope.
// A nil http client selects http.DefaultClient, which has no timeout. You have been warned.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http: httpClient,
	}
}

// Do invokes the SOAP request using its internal parameters.
// The request argument is serialized to XML, and if the call is successful the received XML
// is deserialized into the response type of the request.
// Any errors that are encountered are returned. A SOAP fault is not an error here; inspect Response.Fault.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := req.httpRequest()
	if err != nil {
		return nil, err
	}

	httpResp, err := c.http.Do(httpReq.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	resp := newResponse(httpResp, req)
	err = resp.deserialize()
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// Call invokes the request like Do, but reports a SOAP fault as the returned error.
func (c *Client) Call(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Fault() != nil {
		return resp, resp.Fault()
	}
	return resp, nil
}
