// Package recfmt converts flat record files between CSV, JSON, YAML and XML.
//
// Every format reads into and writes from the same in-memory model: a
// [RecordSet], an ordered list of [Record] values, each an ordered list of
// key/value [Field] pairs. Values are scalars (nil, string, bool, int64 or
// float64). Nested objects and arrays are rejected.
//
// # Converting Files
//
// [Convert] resolves the source format from the file extension, reads the
// records and writes them to the destination in the target format:
//
//	err := recfmt.Convert("people.csv", recfmt.JSON, "people.json")
//
// Use [NewConverter] to restrict the enabled formats or attach a logger:
//
//	c := recfmt.NewConverter(
//		recfmt.WithFormats(recfmt.CSV, recfmt.JSON),
//		recfmt.WithLogger(slog.Default()),
//	)
//
// The destination is written to a temp file and renamed into place, so a
// failed conversion never leaves a partial file behind.
//
// # Format Selection
//
// [FormatOf] maps a path to a [Format] by extension (".csv", ".json",
// ".yaml", ".yml", ".xml", case-insensitive). [ParseFormat] maps a name such
// as a CLI flag value. [Open] resolves a path to a [Source] that can read
// its file and export records to another format.
//
// # Formats
//
// CSV needs a header row. On output the header is the first record's keys;
// missing keys give empty cells and keys the first record lacks are dropped.
// Writing an empty RecordSet fails because no header can be inferred.
//
// JSON is an array of flat objects, written with 4-space indentation. Key
// order is preserved in both directions and numbers keep their type.
//
// YAML is a sequence of mappings. Key order and scalar types are preserved.
//
// XML is a root element holding repeated <item> elements, one child element
// per field. Every value is written as text, so numbers and booleans read
// back as strings, and empty elements read back as nil. This loss of type
// information is part of the format's contract.
//
// # Previewing Records
//
// [Render] prints a RecordSet for inspection in one of the [Style] layouts.
// [StyleTable], [StyleASCII], [StylePlain], [StyleMarkdown] and [StyleHTML]
// lay records out as columns taken from the first record. [StyleList]
// prints every field of every record as "key: value" lines.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnsupportedFormat]: unknown or disabled file extension or format name
//   - [ErrUnsupportedConversion]: target format not reachable from the source
//   - [ErrRead]: source file missing or unreadable
//   - [ErrParse]: source content malformed for its format (also matches [ErrRead])
//   - [ErrWrite]: destination unwritable or records not encodable
//   - [ErrEmptyRecordSet]: CSV or XML output requested for zero records
package recfmt
