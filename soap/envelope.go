package soap

import (
	"encoding/xml"
	"errors"
)

const xsdNS = "http://www.w3.org/2001/XMLSchema"
const xsiNS = "http://www.w3.org/2001/XMLSchema-instance"
const soapEnvNS = "http://schemas.xmlsoap.org/soap/envelope/"

var (
	// ErrEnvelopeMisconfigured is returned if we attempt to deserialize a SOAP envelope without a type to deserialize the body into.
	ErrEnvelopeMisconfigured = errors.New("envelope content pointer empty")
)

// Envelope is a SOAP 1.1 envelope.
type Envelope struct {
	// XMLName is the serialized name of this object.
	XMLName xml.Name `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`

	// These are generic namespaces used by all messages.
	XMLNSXsd string `xml:"xmlns:xsd,attr,omitempty"`
	XMLNSXsi string `xml:"xmlns:xsi,attr,omitempty"`

	Header *Header
	Body   *Body
}

// NewEnvelope creates a new SOAP Envelope with the specified data as the content to serialize or deserialize.
// Headers are assumed to be omitted unless explicitly added via AddHeaders()
func NewEnvelope(content interface{}) *Envelope {
	return &Envelope{
		Body: &Body{
			Content: content,
		},
	}
}

// AddHeaders adds additional headers to be serialized to the resulting SOAP envelope.
func (e *Envelope) AddHeaders(elems ...interface{}) {
	if e.Header == nil {
		e.Header = &Header{}
	}

	e.Header.Headers = append(e.Header.Headers, elems...)
}

// declareSchemaNamespaces adds the xsd and xsi declarations ASP.NET services expect on every request.
func (e *Envelope) declareSchemaNamespaces() {
	e.XMLNSXsd = xsdNS
	e.XMLNSXsi = xsiNS
}

// Header is a SOAP envelope header.
type Header struct {
	// XMLName is the serialized name of this object.
	XMLName xml.Name `xml:"http://schemas.xmlsoap.org/soap/envelope/ Header"`

	// Headers is an array of envelope headers to send.
	Headers []interface{} `xml:",omitempty"`
}

// Body is a SOAP envelope body.
type Body struct {
	// XMLName is the serialized name of this object.
	XMLName xml.Name `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`

	// Fault is a SOAP fault we may detect in a response.
	Fault *Fault `xml:",omitempty"`
	// Content is a SOAP request or response body.
	Content interface{} `xml:",omitempty"`
}

// UnmarshalXML decodes a SOAP envelope body into either its Fault or its Content.
// Only the first element of the body is decoded; ASMX responses never carry more than one.
func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if b.Content == nil {
		return ErrEnvelopeMisconfigured
	}

	b.XMLName = start.Name
	decoded := false

	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch elem := token.(type) {
		case xml.StartElement:
			if decoded {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			decoded = true

			if elem.Name.Space == soapEnvNS && elem.Name.Local == "Fault" {
				b.Fault = NewFault()
				if err := d.DecodeElement(b.Fault, &elem); err != nil {
					return err
				}
				b.Content = nil
			} else {
				if err := d.DecodeElement(b.Content, &elem); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}
