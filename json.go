package recfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const jsonIndent = "    "

func encodeJSON(w io.Writer, rs RecordSet) error {
	if rs == nil {
		rs = RecordSet{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", jsonIndent)
	return enc.Encode(rs)
}

// decodeJSON walks the token stream instead of unmarshaling into maps so
// that object key order survives.
func decodeJSON(r io.Reader) (RecordSet, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty document")
	}
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("top level is %s, want an array", describeToken(tok))
	}

	rs := RecordSet{}
	for dec.More() {
		rec, err := decodeJSONObject(dec, len(rs))
		if err != nil {
			return nil, err
		}
		rs = append(rs, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected data after the top-level array at offset %d", dec.InputOffset())
	}
	return rs, nil
}

func decodeJSONObject(dec *json.Decoder, index int) (Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("element %d is %s, want an object", index, describeToken(tok))
	}
	rec := Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("element %d: unexpected %s in object", index, describeToken(tok))
		}
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		var v any
		switch t := tok.(type) {
		case json.Delim:
			return nil, fmt.Errorf("element %d: field %q: nested values are not supported", index, key)
		case json.Number:
			v = normalizeNumber(t)
		default:
			v = t
		}
		rec.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rec, nil
}

func describeToken(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return "an object"
		case '[':
			return "an array"
		}
		return fmt.Sprintf("%q", t.String())
	case string:
		return "a string"
	case json.Number, float64:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", t)
	}
}
