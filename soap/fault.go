package soap

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Fault is a SOAP 1.1 fault.
type Fault struct {
	// XMLName is the serialized name of this object.
	XMLName xml.Name `xml:"http://schemas.xmlsoap.org/soap/envelope/ Fault"`

	Code   string `xml:"faultcode,omitempty"`
	String string `xml:"faultstring,omitempty"`
	Actor  string `xml:"faultactor,omitempty"`

	// Detail holds the raw inner XML of the detail element, if any.
	// ASP.NET puts the server-side exception description here.
	Detail *FaultDetail `xml:"detail,omitempty"`
}

// FaultDetail is the unparsed content of a fault's detail element.
type FaultDetail struct {
	InnerXML string `xml:",innerxml"`
}

// NewFault returns a new XML fault struct
func NewFault() *Fault {
	return &Fault{}
}

// DetailText returns the detail content with surrounding whitespace removed, or an empty string.
func (f *Fault) DetailText() string {
	if f.Detail == nil {
		return ""
	}
	return strings.TrimSpace(f.Detail.InnerXML)
}

// Error satisfies the Error() interface allowing us to return a fault as an error.
func (f *Fault) Error() string {
	return fmt.Sprintf("soap fault: %s (%s)", f.Code, f.String)
}
