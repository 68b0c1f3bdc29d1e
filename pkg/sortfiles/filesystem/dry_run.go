package filesystem

import (
	"github.com/spf13/afero"
)

// NewDryRunFileSystem returns a FileSystem that reads from the operating
// system but keeps every write in memory. Files "copied" during a dry run
// are visible to later existence checks, so collision numbering matches what
// a real run would produce.
func NewDryRunFileSystem() *AferoFileSystem {
	base := afero.NewReadOnlyFs(afero.NewOsFs())
	return New(afero.NewCopyOnWriteFs(base, afero.NewMemMapFs()))
}
