package recfmt

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeCSV(r io.Reader) (RecordSet, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return RecordSet{}, nil
	}
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(header))
	for _, key := range header {
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("line 1: duplicate column %q in header", key)
		}
		seen[key] = struct{}{}
	}

	rs := RecordSet{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rs, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %d fields, header has %d", line, len(row), len(header))
		}
		rec := make(Record, len(header))
		for i, key := range header {
			// Short rows leave trailing fields nil.
			var v any
			if i < len(row) {
				v = row[i]
			}
			rec[i] = Field{Key: key, Value: v}
		}
		rs = append(rs, rec)
	}
}

func encodeCSV(w io.Writer, rs RecordSet) error {
	if len(rs) == 0 {
		return ErrEmptyRecordSet
	}
	header := rs.Header()
	if len(header) == 0 {
		return errors.New("first record has no fields")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	return cw.WriteAll(rs.cells(header))
}
