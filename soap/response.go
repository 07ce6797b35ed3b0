package soap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// ErrMissingBody is returned if the response envelope has no Body element.
var ErrMissingBody = errors.New("response envelope has no body")

// StatusError is returned when the service answers with a non-2xx status and no SOAP envelope.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
}

// Response contains the result of the request.
type Response struct {
	*http.Response

	body  interface{}
	fault *Fault
}

func newResponse(httpResp *http.Response, req *Request) *Response {
	return &Response{
		Response: httpResp,
		body:     req.resp,
	}
}

// Body returns the SOAP body. The value comes from what was passed into the linked request.
func (r *Response) Body() interface{} {
	return r.body
}

// Fault returns the SOAP fault encountered, if present
func (r *Response) Fault() *Fault {
	return r.fault
}

func (r *Response) deserialize() error {
	err := r.decodeEnvelope()
	if err != nil && !isSuccessStatus(r.StatusCode) {
		// A broken or missing envelope on an error status says less than the status itself.
		return &StatusError{StatusCode: r.StatusCode}
	}
	return err
}

func (r *Response) decodeEnvelope() error {
	mediaType, mediaParams, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return err
	}

	envelope := NewEnvelope(r.body)

	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		// Here we handle any SOAP responses embedded in a MIME multipart response.
		err = newXopDecoder(r.Response.Body, mediaParams).decode(envelope)
	case strings.Contains(mediaType, "xml"):
		// This is normal SOAP XML response handling.
		err = xml.NewDecoder(r.Response.Body).Decode(envelope)
	default:
		err = ErrUnsupportedContentType
	}

	if err != nil {
		return err
	}

	if envelope.Body == nil || envelope.Body.XMLName.Local == "" {
		return ErrMissingBody
	}

	// Propagate the changes from parsing the envelope to the response struct
	if envelope.Body.Fault != nil {
		r.fault = envelope.Body.Fault
	}

	return nil
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}
