package formats

import (
	"strings"
)

// FilterOptions narrows a catalog listing. Zero values mean "no constraint".
type FilterOptions struct {
	IDs        []string
	Type       FormatType
	AssetTypes []AssetType
	MinWidth   int
	MaxWidth   int
	MinHeight  int
	MaxHeight  int
	NameSearch string
}

// Filter returns the formats matching every supplied constraint, preserving
// catalog order. Dimension constraints only ever match formats with fixed
// renders; responsive formats are excluded once any of them is set.
func (c *Catalog) Filter(opts FilterOptions) []*Format {
	results := make([]*Format, 0, len(c.ordered))
	for _, f := range c.ordered {
		if !matchesFilter(f, opts) {
			continue
		}
		results = append(results, f)
	}
	return results
}

func matchesFilter(f *Format, opts FilterOptions) bool {
	if len(opts.IDs) > 0 && !containsString(opts.IDs, f.ID) {
		return false
	}
	if opts.Type != "" && f.Type != opts.Type {
		return false
	}
	for _, at := range opts.AssetTypes {
		if !requiresAssetType(f, at) {
			return false
		}
	}
	if opts.NameSearch != "" && !strings.Contains(strings.ToLower(f.Name), strings.ToLower(opts.NameSearch)) {
		return false
	}

	hasDimensionFilter := opts.MinWidth > 0 || opts.MaxWidth > 0 || opts.MinHeight > 0 || opts.MaxHeight > 0
	if !hasDimensionFilter {
		return true
	}
	dims, fixed := f.PrimaryDimensions()
	if !fixed {
		return false
	}
	if opts.MinWidth > 0 && dims.Width < opts.MinWidth {
		return false
	}
	if opts.MaxWidth > 0 && dims.Width > opts.MaxWidth {
		return false
	}
	if opts.MinHeight > 0 && dims.Height < opts.MinHeight {
		return false
	}
	if opts.MaxHeight > 0 && dims.Height > opts.MaxHeight {
		return false
	}
	return true
}

func requiresAssetType(f *Format, at AssetType) bool {
	for _, req := range f.AssetsRequired {
		if req.Type == at {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
