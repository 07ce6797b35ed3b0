package soap

import (
	"encoding/xml"
	"errors"
	"strings"
)

var (
	// ErrNoResponseValue is returned if the response element carries no value element.
	ErrNoResponseValue = errors.New("no value in response")
	// ErrNilResponseValue is returned if the response value is marked xsi:nil.
	ErrNilResponseValue = errors.New("nil value in response")
	// ErrResponseNotPrimitive is returned if the response value has element children instead of text.
	ErrResponseNotPrimitive = errors.New("response value is not a primitive")
)

// Primitive captures the scalar result of an RPC call, e.g. the MethodResult element of
//
//	<MethodResponse xmlns="ns"><MethodResult>OK</MethodResult></MethodResponse>
type Primitive struct {
	// Name is the name of the response wrapper element.
	Name xml.Name
	// ValueName is the name of the value element, empty if there was none.
	ValueName xml.Name

	text    string
	present bool
	isNil   bool
	complex bool
}

// UnmarshalXML decodes the response wrapper element and keeps the text of its first child.
func (p *Primitive) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.Name = start.Name

	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch elem := token.(type) {
		case xml.StartElement:
			if p.present {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			if err := p.decodeValue(d, elem); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (p *Primitive) decodeValue(d *xml.Decoder, start xml.StartElement) error {
	p.present = true
	p.ValueName = start.Name

	for _, attr := range start.Attr {
		if attr.Name.Space == xsiNS && attr.Name.Local == "nil" && attr.Value == "true" {
			p.isNil = true
		}
	}

	var sb strings.Builder
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			p.complex = true
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			p.text = sb.String()
			return nil
		}
	}
}

// Value returns the scalar text of the response, or an error describing why there is none.
func (p *Primitive) Value() (string, error) {
	switch {
	case !p.present:
		return "", ErrNoResponseValue
	case p.isNil:
		return "", ErrNilResponseValue
	case p.complex:
		return "", ErrResponseNotPrimitive
	}
	return p.text, nil
}
