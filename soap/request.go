package soap

import (
	"bytes"
	"encoding/xml"
	"io"
	"net/http"
	"strconv"
)

// UserAgent is sent with every request.
const UserAgent = "ksoap2utility-go/1.0"

// Request represents a single request to a SOAP service.
type Request struct {
	headers []interface{}

	url    string
	action string

	body interface{}
	resp interface{}
}

// NewRequest creates a SOAP request. The SOAP library takes care of handling the envelope, so when
// the request is created the response type is supplied so it can be properly parsed during envelope handling.
// NOTE: if custom SOAP headers are going to be supplied, they must be added before the request is sent.
func NewRequest(action string, url string, body interface{}, respType interface{}) *Request {
	return &Request{
		action: action,
		url:    url,
		body:   body,
		resp:   respType,
	}
}

// NewOperationRequest creates a request for an ASP.NET RPC operation whose scalar result is decoded into a Primitive.
func NewOperationRequest(url string, op *Operation) (*Request, *Primitive) {
	resp := &Primitive{}
	return NewRequest(op.Action(), url, op, resp), resp
}

// AddHeader adds the header argument to the list of elements set in the SOAP envelope Header element.
// This will be serialized to XML when the request is made to the service.
func (r *Request) AddHeader(header interface{}) {
	r.headers = append(r.headers, header)
}

// serialize takes the data supplied in the request and serializes the SOAP data to the returned reader.
func (r *Request) serialize() (io.Reader, error) {
	envelope := NewEnvelope(r.body)
	envelope.declareSchemaNamespaces()

	if len(r.headers) > 0 {
		envelope.AddHeaders(r.headers...)
	}

	envelopeEnc, err := xml.Marshal(envelope)
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBufferString(xml.Header)
	buf.Write(envelopeEnc)

	return buf, nil
}

func (r *Request) httpRequest() (*http.Request, error) {
	buf, err := r.serialize()
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, r.url, buf)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Add("Content-Type", "text/xml; charset=\"utf-8\"")
	httpReq.Header.Add("SOAPAction", strconv.Quote(r.action))
	httpReq.Header.Add("User-Agent", UserAgent)

	return httpReq, nil
}
