package formats

// FormatType is the media category of a creative format.
type FormatType string

const (
	FormatTypeAudio       FormatType = "audio"
	FormatTypeVideo       FormatType = "video"
	FormatTypeDisplay     FormatType = "display"
	FormatTypeNative      FormatType = "native"
	FormatTypeDOOH        FormatType = "dooh"
	FormatTypeInteractive FormatType = "interactive"
)

// AssetType identifies the kind of payload an asset slot accepts. The set is
// closed; renderers dispatch on it with an exhaustive switch.
type AssetType string

const (
	AssetTypeImage AssetType = "image"
	AssetTypeVideo AssetType = "video"
	AssetTypeAudio AssetType = "audio"
	AssetTypeText  AssetType = "text"
	AssetTypeHTML  AssetType = "html"
	AssetTypeURL   AssetType = "url"
	AssetTypeVAST  AssetType = "vast_tag"
)

// Dimensions is a fixed pixel size for a render.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Render describes one output a format produces. Most formats declare a single
// "primary" render; a few add companions.
type Render struct {
	Role       string      `json:"role"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
}

// AssetRequirement describes an asset slot a manifest must (or may) fill.
// AssetID doubles as the manifest role and is unique within a format.
type AssetRequirement struct {
	AssetID           string    `json:"asset_id"`
	Type              AssetType `json:"asset_type"`
	Required          bool      `json:"required"`
	Width             int       `json:"width,omitempty"`
	Height            int       `json:"height,omitempty"`
	MaxFileSizeKB     int       `json:"max_file_size_kb,omitempty"`
	AcceptableFormats []string  `json:"acceptable_formats,omitempty"`
	Description       string    `json:"description,omitempty"`
}

// Format is one entry in the creative format catalog. Formats are immutable
// once the catalog is built.
type Format struct {
	ID              string             `json:"format_id"`
	Name            string             `json:"name"`
	Type            FormatType         `json:"type"`
	Description     string             `json:"description,omitempty"`
	Renders         []Render           `json:"renders,omitempty"`
	AssetsRequired  []AssetRequirement `json:"assets_required"`
	SupportedMacros []string           `json:"supported_macros,omitempty"`
}

// Requirement returns the asset requirement for the given role, if declared.
func (f *Format) Requirement(role string) (AssetRequirement, bool) {
	for _, req := range f.AssetsRequired {
		if req.AssetID == role {
			return req, true
		}
	}
	return AssetRequirement{}, false
}

// PrimaryDimensions returns the declared dimensions of the primary render,
// or false if the format is responsive.
func (f *Format) PrimaryDimensions() (Dimensions, bool) {
	for _, r := range f.Renders {
		if r.Dimensions != nil {
			return *r.Dimensions, true
		}
	}
	return Dimensions{}, false
}

// SupportsMacro reports whether the format declares the named macro.
func (f *Format) SupportsMacro(name string) bool {
	for _, m := range f.SupportedMacros {
		if m == name {
			return true
		}
	}
	return false
}
