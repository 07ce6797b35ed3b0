package soap

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/beevik/etree"
)

// Implements an XOP decoder.
// This is used for any MIME multi-part (MTOM) SOAP responses we receive.

const (
	xopNS = "http://www.w3.org/2004/08/xop/include"
)

var (
	// ErrMultipartBodyEmpty is returned if a multi-part body that is empty is discovered
	ErrMultipartBodyEmpty = errors.New("multi-part body is empty")
	// ErrMissingXopPart is returned if an xop:Include references a part the message does not contain
	ErrMissingXopPart = errors.New("xop include references unknown part")
)

type xopDecoder struct {
	reader      io.Reader
	mediaParams map[string]string

	root  []byte
	parts map[string][]byte
}

func newXopDecoder(r io.Reader, mediaParams map[string]string) *xopDecoder {
	return &xopDecoder{
		reader:      r,
		mediaParams: mediaParams,
		parts:       make(map[string][]byte),
	}
}

// contentID strips the angle brackets and cid: scheme so header values and href values compare equal.
func contentID(raw string) string {
	id := strings.TrimSpace(raw)
	id = strings.TrimPrefix(id, "cid:")
	id = strings.TrimPrefix(id, "<")
	id = strings.TrimSuffix(id, ">")
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}
	return id
}

func (d *xopDecoder) readParts() error {
	start := contentID(d.mediaParams["start"])
	reader := multipart.NewReader(d.reader, d.mediaParams["boundary"])

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		data, err := io.ReadAll(part)
		if err != nil {
			return err
		}

		id := contentID(part.Header.Get("Content-ID"))
		isRoot := d.root == nil && (start == "" || start == id)
		if isRoot {
			d.root = data
			continue
		}
		d.parts[id] = data
	}

	if d.root == nil {
		return ErrMultipartBodyEmpty
	}
	return nil
}

// inline replaces every xop:Include element in the root document with the base64 text of the part it references.
func (d *xopDecoder) inline(doc *etree.Document) error {
	var includes []*etree.Element
	for _, elem := range doc.FindElements("//Include") {
		if elem.NamespaceURI() == xopNS {
			includes = append(includes, elem)
		}
	}

	for _, include := range includes {
		href := contentID(include.SelectAttrValue("href", ""))
		data, ok := d.parts[href]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingXopPart, href)
		}

		parent := include.Parent()
		index := include.Index()
		parent.RemoveChildAt(index)
		parent.InsertChildAt(index, etree.NewText(base64.StdEncoding.EncodeToString(data)))
	}

	return nil
}

func (d *xopDecoder) decode(respEnvelope *Envelope) error {
	if err := d.readParts(); err != nil {
		return err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(d.root); err != nil {
		return err
	}

	if err := d.inline(doc); err != nil {
		return err
	}

	// Re-serialize the resolved document for deserialization by the standard XML library
	resolved, err := doc.WriteToBytes()
	if err != nil {
		return err
	}

	return xml.NewDecoder(bytes.NewReader(resolved)).Decode(respEnvelope)
}
