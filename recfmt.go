package recfmt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat     = errors.New("unsupported format")
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrUnsupportedStyle      = errors.New("unsupported style")
	ErrRead                  = errors.New("read failed")
	ErrWrite                 = errors.New("write failed")
	ErrEmptyRecordSet        = errors.New("no records to infer a header from")

	// ErrParse wraps ErrRead, so errors.Is(err, ErrRead) holds for
	// malformed input as well as for I/O failures.
	ErrParse = fmt.Errorf("%w: malformed input", ErrRead)
)

// Format identifies a record file format.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	YAML Format = "yaml"
	XML  Format = "xml"
)

var formats = []Format{CSV, JSON, YAML, XML}

// codec pairs the decoder and encoder of one format. Decoders and encoders
// return bare errors; callers wrap them with ErrParse or ErrWrite.
type codec struct {
	decode func(io.Reader) (RecordSet, error)
	encode func(io.Writer, RecordSet) error
}

var codecs = map[Format]codec{
	CSV:  {decode: decodeCSV, encode: encodeCSV},
	JSON: {decode: decodeJSON, encode: encodeJSON},
	YAML: {decode: decodeYAML, encode: encodeYAML},
	XML:  {decode: decodeXML, encode: encodeXML},
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Ext returns the canonical file extension, including the leading dot.
func (f Format) Ext() string { return "." + string(f) }

// Formats returns all supported formats.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name. Matching is case-insensitive and "yml"
// is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "yml" {
		return YAML, nil
	}
	for _, f := range formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".csv":
		return CSV, nil
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".xml":
		return XML, nil
	case "":
		return "", fmt.Errorf("%w: %s has no file extension", ErrUnsupportedFormat, path)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Decode reads a RecordSet in format f from r.
func Decode(r io.Reader, f Format) (RecordSet, error) {
	c, ok := codecs[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	rs, err := c.decode(r)
	if err != nil {
		// encoding/xml and yaml.v3 errors already start with the format name.
		if strings.HasPrefix(err.Error(), f.String()+": ") {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, f, err)
	}
	return rs, nil
}

// Encode writes rs to w in format f.
func Encode(w io.Writer, f Format, rs RecordSet) error {
	c, ok := codecs[f]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err := c.encode(w, rs); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, f, err)
	}
	return nil
}

// Unmarshal decodes data in format f.
func Unmarshal(f Format, data []byte) (RecordSet, error) {
	return Decode(bytes.NewReader(data), f)
}

// Marshal encodes rs in format f and returns the bytes.
func Marshal(f Format, rs RecordSet) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, f, rs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
