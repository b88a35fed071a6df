package formats

// Common macros supported across all formats.
var commonMacros = []string{
	"MEDIA_BUY_ID",
	"CREATIVE_ID",
	"CACHEBUSTER",
	"CLICK_URL",
	"IMPRESSION_URL",
	"DEVICE_TYPE",
	"GDPR",
	"GDPR_CONSENT",
	"US_PRIVACY",
	"GPP_STRING",
}

var videoMacros = append([]string{"VIDEO_ID", "POD_POSITION", "CONTENT_GENRE"}, commonMacros...)

func fixedRender(width, height int) []Render {
	return []Render{{Role: "primary", Dimensions: &Dimensions{Width: width, Height: height}}}
}

func displayImageFormat(id, name string, width, height, maxKB int) Format {
	return Format{
		ID:              id,
		Name:            name,
		Type:            FormatTypeDisplay,
		Description:     name + " static image banner",
		SupportedMacros: commonMacros,
		Renders:         fixedRender(width, height),
		AssetsRequired: []AssetRequirement{
			{
				AssetID:           "banner_image",
				Type:              AssetTypeImage,
				Required:          true,
				Width:             width,
				Height:            height,
				MaxFileSizeKB:     maxKB,
				AcceptableFormats: []string{"jpg", "png", "gif", "webp"},
			},
			{
				AssetID:     "click_url",
				Type:        AssetTypeURL,
				Required:    true,
				Description: "Clickthrough destination URL",
			},
		},
	}
}

func displayHTMLFormat(id, name string, width, height int) Format {
	return Format{
		ID:              id,
		Name:            name,
		Type:            FormatTypeDisplay,
		Description:     name + " HTML5 banner",
		SupportedMacros: commonMacros,
		Renders:         fixedRender(width, height),
		AssetsRequired: []AssetRequirement{
			{
				AssetID:     "html_content",
				Type:        AssetTypeHTML,
				Required:    true,
				Width:       width,
				Height:      height,
				Description: "Self-contained HTML5 creative",
			},
			{
				AssetID:     "backup_image",
				Type:        AssetTypeImage,
				Required:    false,
				Width:       width,
				Height:      height,
				Description: "Static backup image for environments without script support",
			},
		},
	}
}

func videoFileFormat(id, name, description string, renders []Render) Format {
	return Format{
		ID:              id,
		Name:            name,
		Type:            FormatTypeVideo,
		Description:     description,
		SupportedMacros: videoMacros,
		Renders:         renders,
		AssetsRequired: []AssetRequirement{
			{
				AssetID:           "video_file",
				Type:              AssetTypeVideo,
				Required:          true,
				AcceptableFormats: []string{"mp4", "mov", "webm"},
			},
		},
	}
}

func audioFormat(id, name, description string) Format {
	return Format{
		ID:              id,
		Name:            name,
		Type:            FormatTypeAudio,
		Description:     description,
		SupportedMacros: commonMacros,
		AssetsRequired: []AssetRequirement{
			{
				AssetID:           "audio_file",
				Type:              AssetTypeAudio,
				Required:          true,
				AcceptableFormats: []string{"mp3", "m4a", "ogg"},
			},
		},
	}
}

// StandardFormats returns the static catalog definitions. The slice is built
// fresh on each call; NewCatalog takes ownership of it.
func StandardFormats() []Format {
	var defs []Format

	// Display, image-based.
	defs = append(defs,
		displayImageFormat("display_300x250_image", "Medium Rectangle - Image", 300, 250, 200),
		displayImageFormat("display_728x90_image", "Leaderboard - Image", 728, 90, 150),
		displayImageFormat("display_320x50_image", "Mobile Banner - Image", 320, 50, 50),
		displayImageFormat("display_160x600_image", "Wide Skyscraper - Image", 160, 600, 150),
		displayImageFormat("display_336x280_image", "Large Rectangle - Image", 336, 280, 250),
		displayImageFormat("display_300x600_image", "Half Page - Image", 300, 600, 300),
		displayImageFormat("display_970x250_image", "Billboard - Image", 970, 250, 400),
	)

	// Display, HTML5.
	defs = append(defs,
		displayHTMLFormat("display_300x250_html", "Medium Rectangle - HTML5", 300, 250),
		displayHTMLFormat("display_728x90_html", "Leaderboard - HTML5", 728, 90),
		displayHTMLFormat("display_160x600_html", "Wide Skyscraper - HTML5", 160, 600),
		displayHTMLFormat("display_336x280_html", "Large Rectangle - HTML5", 336, 280),
		displayHTMLFormat("display_300x600_html", "Half Page - HTML5", 300, 600),
		displayHTMLFormat("display_970x250_html", "Billboard - HTML5", 970, 250),
	)

	// Video.
	defs = append(defs,
		videoFileFormat("video_standard_30s", "Standard Video - 30 seconds", "30-second video ad in standard aspect ratios", nil),
		videoFileFormat("video_standard_15s", "Standard Video - 15 seconds", "15-second video ad in standard aspect ratios", nil),
		videoFileFormat("video_1920x1080", "Full HD Video - 1920x1080", "1920x1080 Full HD video (16:9)", fixedRender(1920, 1080)),
		videoFileFormat("video_1280x720", "HD Video - 1280x720", "1280x720 HD video (16:9)", fixedRender(1280, 720)),
		videoFileFormat("video_1080x1920", "Vertical Video - 1080x1920", "1080x1920 vertical video (9:16) for mobile stories", fixedRender(1080, 1920)),
		videoFileFormat("video_1080x1080", "Square Video - 1080x1080", "1080x1080 square video (1:1) for social feeds", fixedRender(1080, 1080)),
		Format{
			ID:              "video_vast_30s",
			Name:            "VAST Video - 30 seconds",
			Type:            FormatTypeVideo,
			Description:     "30-second video ad via VAST tag",
			SupportedMacros: videoMacros,
			AssetsRequired: []AssetRequirement{
				{
					AssetID:     "vast_tag",
					Type:        AssetTypeVAST,
					Required:    true,
					Description: "VAST 4.x compatible tag",
				},
			},
		},
	)

	// Audio.
	defs = append(defs,
		audioFormat("audio_standard_15s", "Standard Audio - 15 seconds", "15-second audio ad for streaming and podcasts"),
		audioFormat("audio_standard_30s", "Standard Audio - 30 seconds", "30-second audio ad for streaming and podcasts"),
		audioFormat("audio_standard_60s", "Standard Audio - 60 seconds", "60-second audio ad for streaming and podcasts"),
	)

	// Native.
	defs = append(defs,
		Format{
			ID:              "native_standard",
			Name:            "IAB Native Standard",
			Type:            FormatTypeNative,
			Description:     "Standard native ad with title, description, image, and CTA",
			SupportedMacros: commonMacros,
			AssetsRequired: []AssetRequirement{
				{AssetID: "title", Type: AssetTypeText, Required: true, Description: "Headline text (25 chars recommended)"},
				{AssetID: "description", Type: AssetTypeText, Required: true, Description: "Body copy (90 chars recommended)"},
				{AssetID: "main_image", Type: AssetTypeImage, Required: true, Width: 1200, Height: 627, Description: "Primary image (1200x627 recommended)"},
				{AssetID: "icon", Type: AssetTypeImage, Required: false, Width: 200, Height: 200, Description: "Brand icon (square, 200x200 recommended)"},
				{AssetID: "cta_text", Type: AssetTypeText, Required: true, Description: "Call-to-action text"},
				{AssetID: "sponsored_by", Type: AssetTypeText, Required: true, Description: "Advertiser name for disclosure"},
				{AssetID: "click_url", Type: AssetTypeURL, Required: true, Description: "Landing page URL"},
			},
		},
		Format{
			ID:              "native_content",
			Name:            "Native Content Placement",
			Type:            FormatTypeNative,
			Description:     "In-article native ad with editorial styling",
			SupportedMacros: commonMacros,
			AssetsRequired: []AssetRequirement{
				{AssetID: "headline", Type: AssetTypeText, Required: true, Description: "Editorial-style headline (60 chars recommended)"},
				{AssetID: "body", Type: AssetTypeText, Required: true, Description: "Article-style body copy (200 chars recommended)"},
				{AssetID: "thumbnail", Type: AssetTypeImage, Required: true, Width: 300, Height: 300, Description: "Thumbnail image (square, 300x300 recommended)"},
				{AssetID: "author", Type: AssetTypeText, Required: false, Description: "Author name for editorial context"},
				{AssetID: "click_url", Type: AssetTypeURL, Required: true, Description: "Landing page URL"},
				{AssetID: "disclosure", Type: AssetTypeText, Required: true, Description: "Sponsored content disclosure text"},
			},
		},
	)

	// Digital out-of-home.
	defs = append(defs,
		Format{
			ID:              "dooh_billboard_1920x1080",
			Name:            "DOOH Billboard - Full HD",
			Type:            FormatTypeDOOH,
			Description:     "1920x1080 digital billboard for roadside and transit",
			SupportedMacros: commonMacros,
			Renders:         fixedRender(1920, 1080),
			AssetsRequired: []AssetRequirement{
				{
					AssetID:           "billboard_image",
					Type:              AssetTypeImage,
					Required:          true,
					Width:             1920,
					Height:            1080,
					AcceptableFormats: []string{"jpg", "png"},
				},
			},
		},
		Format{
			ID:              "dooh_billboard_portrait",
			Name:            "DOOH Billboard - Portrait",
			Type:            FormatTypeDOOH,
			Description:     "1080x1920 portrait screen for malls and elevators",
			SupportedMacros: commonMacros,
			Renders:         fixedRender(1080, 1920),
			AssetsRequired: []AssetRequirement{
				{
					AssetID:           "billboard_image",
					Type:              AssetTypeImage,
					Required:          true,
					Width:             1080,
					Height:            1920,
					AcceptableFormats: []string{"jpg", "png"},
				},
			},
		},
	)

	return defs
}
