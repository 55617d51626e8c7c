package recfmt

import (
	"github.com/google/renameio/v2/maybe"
)

const fileMode = 0o644

// writeFileAtomic replaces path with data. Where the platform supports it
// the data goes to a temp file that is synced and renamed over path, so
// readers see either the old content or the new.
func writeFileAtomic(path string, data []byte) error {
	return maybe.WriteFile(path, data, fileMode)
}
