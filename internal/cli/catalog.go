package cli

import (
	"github.com/roach88/bpecheck/internal/fixture"
)

// loadCatalog returns the built-in catalog with the sets of the fixtures file
// merged in. An empty path means built-in sets only.
func loadCatalog(path string, formatter *OutputFormatter) (*fixture.Catalog, error) {
	cat := fixture.NewCatalog()
	if path == "" {
		return cat, nil
	}

	extra, err := fixture.LoadFile(path)
	if err != nil {
		return nil, err
	}
	formatter.VerboseLog("Loaded %d fixture set(s) from %s", len(extra.Keywords()), path)
	cat.Merge(extra)
	return cat, nil
}
