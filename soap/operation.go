package soap

import (
	"encoding/xml"
	"sort"
)

// Param is a single named string argument of an RPC operation.
type Param struct {
	Name  string
	Value string
}

// Operation is the body content of an ASP.NET style RPC request: one element named after the
// method, in the service namespace, with one child element per parameter.
type Operation struct {
	Namespace string
	Method    string
	Params    []Param
}

// NewOperation creates an Operation from a parameter map. Parameters are emitted sorted by name
// so identical calls always serialize identically.
func NewOperation(namespace, method string, params map[string]string) *Operation {
	op := &Operation{
		Namespace: namespace,
		Method:    method,
		Params:    make([]Param, 0, len(params)),
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		op.AddParam(name, params[name])
	}

	return op
}

// AddParam appends a parameter to the operation.
func (op *Operation) AddParam(name, value string) {
	op.Params = append(op.Params, Param{Name: name, Value: value})
}

// Action returns the SOAPAction ASP.NET expects for this operation: the namespace directly followed by the method.
func (op *Operation) Action() string {
	return op.Namespace + op.Method
}

// MarshalXML writes the method element with a default namespace so that the parameter
// elements inherit it, which is what ASMX services require.
func (op Operation) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: op.Method}}
	if op.Namespace != "" {
		start.Attr = []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: op.Namespace}}
	}

	tokens := []xml.Token{start}
	for _, p := range op.Params {
		t := xml.StartElement{Name: xml.Name{Local: p.Name}}

		tokens = append(tokens, t, xml.CharData(p.Value), xml.EndElement{Name: t.Name})
	}
	tokens = append(tokens, xml.EndElement{Name: start.Name})

	for _, t := range tokens {
		if err := e.EncodeToken(t); err != nil {
			return err
		}
	}

	return e.Flush()
}
