package formats

import (
	"fmt"
)

// Catalog is the process-wide registry of creative formats. It is built once
// at startup and read-only afterwards, so lookups need no locking.
type Catalog struct {
	byID    map[string]*Format
	ordered []*Format
}

// NewCatalog builds a catalog from format definitions. Two formats sharing an
// id is a programming error in the definitions and fails construction.
func NewCatalog(defs []Format) (*Catalog, error) {
	c := &Catalog{
		byID:    make(map[string]*Format, len(defs)),
		ordered: make([]*Format, 0, len(defs)),
	}
	for i := range defs {
		f := &defs[i]
		if f.ID == "" {
			return nil, fmt.Errorf("format at index %d has no id", i)
		}
		if _, dup := c.byID[f.ID]; dup {
			return nil, fmt.Errorf("duplicate format id %q", f.ID)
		}
		if err := validateRequirements(f); err != nil {
			return nil, err
		}
		c.byID[f.ID] = f
		c.ordered = append(c.ordered, f)
	}
	return c, nil
}

func validateRequirements(f *Format) error {
	seen := make(map[string]struct{}, len(f.AssetsRequired))
	for _, req := range f.AssetsRequired {
		if req.AssetID == "" {
			return fmt.Errorf("format %q has an asset requirement with no asset_id", f.ID)
		}
		if _, dup := seen[req.AssetID]; dup {
			return fmt.Errorf("format %q declares asset %q twice", f.ID, req.AssetID)
		}
		seen[req.AssetID] = struct{}{}
	}
	return nil
}

// Get returns the format with the given id.
func (c *Catalog) Get(id string) (*Format, bool) {
	f, ok := c.byID[id]
	return f, ok
}

// All returns every format in declaration order. Callers must not mutate the
// returned formats.
func (c *Catalog) All() []*Format {
	return c.ordered
}

// Len returns the number of formats in the catalog.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
