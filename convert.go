package recfmt

import (
	"fmt"
	"log/slog"
	"slices"
)

// Converter converts record files between formats. The zero value is not
// usable; create one with NewConverter.
type Converter struct {
	formats []Format
	logger  *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithFormats restricts the formats the converter recognizes, both as
// sources and as targets. Unknown formats are ignored.
func WithFormats(formats ...Format) Option {
	return func(c *Converter) {
		c.formats = c.formats[:0]
		for _, f := range formats {
			if _, ok := codecs[f]; ok && !slices.Contains(c.formats, f) {
				c.formats = append(c.formats, f)
			}
		}
	}
}

// WithLogger sets the logger for conversion progress. Without it nothing is
// logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewConverter returns a Converter with every format enabled.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		formats: Formats(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Formats returns the enabled formats.
func (c *Converter) Formats() []Format {
	return slices.Clone(c.formats)
}

// Open resolves src to a Source limited to the enabled formats.
func (c *Converter) Open(src string) (*Source, error) {
	if len(c.formats) == 0 {
		return nil, fmt.Errorf("%w: no formats enabled", ErrUnsupportedFormat)
	}
	return Open(src, c.formats...)
}

// Convert reads src and writes its records to dst in the target format.
// Either dst is written completely or it is left as it was.
func (c *Converter) Convert(src string, target Format, dst string) error {
	log := c.logger.With("src", src, "target", target, "dst", dst)

	s, err := c.Open(src)
	if err != nil {
		return err
	}
	if !s.CanConvert(target) {
		return fmt.Errorf("%w: %s -> %s", ErrUnsupportedConversion, s.Format(), target)
	}

	rs, err := s.Read()
	if err != nil {
		return err
	}
	log.Debug("records read", "format", s.Format(), "count", len(rs))

	if err := s.Export(rs, target, dst); err != nil {
		return err
	}
	log.Info("conversion complete", "records", len(rs))
	return nil
}

var defaultConverter = NewConverter()

// Convert converts src to dst using a Converter with every format enabled.
func Convert(src string, target Format, dst string) error {
	return defaultConverter.Convert(src, target, dst)
}
