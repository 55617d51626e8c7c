package recfmt

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html/charset"
)

const (
	xmlRoot = "root"
	xmlItem = "item"
)

// encodeXML writes every value through FormatValue, so numbers and booleans
// come back as strings when the file is read again. Nil values are written
// as empty elements.
func encodeXML(w io.Writer, rs RecordSet) error {
	if len(rs) == 0 {
		return ErrEmptyRecordSet
	}
	for i, rec := range rs {
		for _, f := range rec {
			if !isXMLName(f.Key) {
				return fmt.Errorf("record %d: field %q is not a valid XML element name", i, f.Key)
			}
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	root := xml.StartElement{Name: xml.Name{Local: xmlRoot}}
	item := xml.StartElement{Name: xml.Name{Local: xmlItem}}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	for _, rec := range rs {
		if err := enc.EncodeToken(item); err != nil {
			return err
		}
		for _, f := range rec {
			field := xml.StartElement{Name: xml.Name{Local: f.Key}}
			if err := enc.EncodeElement(FormatValue(f.Value), field); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(item.End()); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// decodeXML reads the <item> children of the root element. Other children
// of the root are skipped.
func decodeXML(r io.Reader) (RecordSet, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	if _, err := nextStart(dec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("document has no root element")
		}
		return nil, err
	}

	rs := RecordSet{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != xmlItem {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			rec, err := decodeXMLItem(dec)
			if err != nil {
				return nil, err
			}
			rs = append(rs, rec)
		case xml.EndElement:
			if _, err := nextStart(dec); !errors.Is(err, io.EOF) {
				if err != nil {
					return nil, err
				}
				line, _ := dec.InputPos()
				return nil, fmt.Errorf("line %d: more than one root element", line)
			}
			return rs, nil
		}
	}
}

func decodeXMLItem(dec *xml.Decoder) (Record, error) {
	rec := Record{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			v, err := decodeXMLField(dec, t)
			if err != nil {
				return nil, err
			}
			rec.Set(t.Name.Local, v)
		case xml.EndElement:
			return rec, nil
		}
	}
}

// decodeXMLField returns the text of a leaf element, or nil when it is
// empty.
func decodeXMLField(dec *xml.Decoder, start xml.StartElement) (any, error) {
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			line, _ := dec.InputPos()
			return nil, fmt.Errorf("line %d: field %q: nested element <%s> is not supported", line, start.Name.Local, t.Name.Local)
		case xml.EndElement:
			if text.Len() == 0 {
				return nil, nil
			}
			return text.String(), nil
		}
	}
}

// nextStart advances to the next start element, skipping prolog and
// trailing tokens.
func nextStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
