package recfmt

import (
	"bytes"
	"fmt"
	"os"
	"slices"
)

// Source is a record file whose format is known from its extension.
// A Source is immutable and holds no open resources.
type Source struct {
	path    string
	format  Format
	enabled []Format
}

// Open resolves the format of path from its extension. When formats are
// given, only those are recognized; Open(path, CSV, JSON) is the reduced
// two-format build.
func Open(path string, formats ...Format) (*Source, error) {
	if len(formats) == 0 {
		formats = Formats()
	}
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(formats, f) {
		return nil, fmt.Errorf("%w: %q is not enabled", ErrUnsupportedFormat, f.Ext())
	}
	return &Source{path: path, format: f, enabled: slices.Clone(formats)}, nil
}

// Path returns the file path.
func (s *Source) Path() string { return s.path }

// Format returns the format resolved from the extension.
func (s *Source) Format() Format { return s.format }

// Read opens, decodes and closes the file.
func (s *Source) Read() (RecordSet, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer file.Close()

	rs, err := codecs[s.format].decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, s.path, err)
	}
	return rs, nil
}

// CanConvert reports whether records read from s may be written as target.
func (s *Source) CanConvert(target Format) bool {
	_, known := codecs[target]
	return known && target != s.format && slices.Contains(s.enabled, target)
}

// Export writes rs to dst in the target format. The file at dst is replaced
// atomically; on failure it is left untouched.
func (s *Source) Export(rs RecordSet, target Format, dst string) error {
	if !s.CanConvert(target) {
		return fmt.Errorf("%w: %s -> %s", ErrUnsupportedConversion, s.format, target)
	}
	var buf bytes.Buffer
	if err := codecs[target].encode(&buf, rs); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, dst, err)
	}
	if err := writeFileAtomic(dst, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
