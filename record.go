package recfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Field is a single named value of a Record.
type Field struct {
	Key   string
	Value any
}

// Record is an ordered set of fields. Keys are unique when the record is
// built with Set; field order is insertion order.
//
// Values are scalars: nil, string, bool, int64 or float64.
type Record []Field

// RecordSet is an ordered sequence of records.
type RecordSet []Record

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key in place, or appends a new field.
func (r *Record) Set(key string, value any) {
	for i := range *r {
		if (*r)[i].Key == key {
			(*r)[i].Value = value
			return
		}
	}
	*r = append(*r, Field{Key: key, Value: value})
}

// Keys returns the field names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r) }

// Fields returns a copy of the fields in order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r))
	copy(out, r)
	return out
}

// MarshalJSON encodes the record as a JSON object, keeping field order.
func (r Record) MarshalJSON() ([]byte, error) {
	out := []byte{'{'}
	for i, f := range r {
		if i > 0 {
			out = append(out, ',')
		}
		key, err := marshalJSONValue(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := marshalJSONValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		out = append(out, key...)
		out = append(out, ':')
		out = append(out, val...)
	}
	return append(out, '}'), nil
}

func marshalJSONValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalYAML encodes the record as a YAML mapping, keeping field order.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range r {
		var k, v yaml.Node
		if err := k.Encode(f.Key); err != nil {
			return nil, err
		}
		if err := v.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Key, err)
		}
		node.Content = append(node.Content, &k, &v)
	}
	return node, nil
}

// Header returns the keys of the first record, or nil when rs is empty.
func (rs RecordSet) Header() []string {
	if len(rs) == 0 {
		return nil
	}
	return rs[0].Keys()
}

// cells lays the records out as text rows under header. Missing keys give
// empty cells and keys outside header are dropped.
func (rs RecordSet) cells(header []string) [][]string {
	rows := make([][]string, len(rs))
	for i, rec := range rs {
		row := make([]string, len(header))
		for j, key := range header {
			if v, ok := rec.Get(key); ok {
				row[j] = FormatValue(v)
			}
		}
		rows[i] = row
	}
	return rows
}

// FormatValue renders a scalar as text. Nil becomes the empty string.
// Type information is lost; this is the coercion used by CSV and XML output.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// normalizeNumber narrows a decoded number to int64 when it is integral and
// fits, and to float64 otherwise.
func normalizeNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
