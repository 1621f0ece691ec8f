package content

import "strings"

// ImageMeta describes the image attached to a piece of content, when any.
type ImageMeta struct {
	URL string `json:"url"`
}

// Report carries one verdict per rule plus the aggregate. It is returned,
// never thrown; callers decide what a failure means.
type Report struct {
	LengthValid      bool `json:"length_valid"`
	ContentPresent   bool `json:"content_present"`
	ImageValid       bool `json:"image_valid"`
	PlatformSpecific bool `json:"platform_specific"`
	OverallValid     bool `json:"overall_valid"`
}

// FailedRules names every rule that did not pass.
func (r Report) FailedRules() []string {
	var failed []string
	if !r.LengthValid {
		failed = append(failed, "length_valid")
	}
	if !r.ContentPresent {
		failed = append(failed, "content_present")
	}
	if !r.ImageValid {
		failed = append(failed, "image_valid")
	}
	if !r.PlatformSpecific {
		failed = append(failed, "platform_specific")
	}
	return failed
}

// Validate checks generated content against a template's constraints.
// Pure: the same inputs always produce the same report.
func Validate(text string, tpl Template, image *ImageMeta) Report {
	r := Report{
		LengthValid:      len(text) <= tpl.MaxLength,
		ContentPresent:   strings.TrimSpace(text) != "",
		ImageValid:       validateImage(image, tpl.RequiresImage),
		PlatformSpecific: validatePlatform(text, tpl.Platform),
	}
	r.OverallValid = r.LengthValid && r.ContentPresent && r.ImageValid && r.PlatformSpecific
	return r
}

func validateImage(image *ImageMeta, required bool) bool {
	if required {
		return image != nil
	}
	return true
}

func validatePlatform(text, platform string) bool {
	switch strings.ToLower(platform) {
	case "twitter":
		return len(text) <= 280
	case "instagram":
		return strings.Contains(text, "#") && len(text) <= 2200
	case "linkedin":
		return len(text) <= 3000
	case "facebook":
		return len(text) <= 63206
	default:
		// No extra rules for unregistered platforms.
		return true
	}
}
