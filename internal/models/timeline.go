package models

// TimelineCategory is the nominal category stored on a timeline entry
type TimelineCategory string

const (
	CategoryDev           TimelineCategory = "Dev"
	CategoryEducation     TimelineCategory = "Education"
	CategoryDesign        TimelineCategory = "Design"
	CategoryTravel        TimelineCategory = "Travel"
	CategoryCareer        TimelineCategory = "Career"
	CategoryCertification TimelineCategory = "Certification"
)

// TimelineCategories is the closed set of known categories
var TimelineCategories = []TimelineCategory{
	CategoryDev,
	CategoryEducation,
	CategoryDesign,
	CategoryTravel,
	CategoryCareer,
	CategoryCertification,
}

// Known reports whether c is one of TimelineCategories
func (c TimelineCategory) Known() bool {
	for _, known := range TimelineCategories {
		if c == known {
			return true
		}
	}
	return false
}

// TimelineEntry is one item of the career timeline
type TimelineEntry struct {
	ID                string           `json:"id" validate:"required"`
	Date              string           `json:"date"`
	Title             Text             `json:"title" validate:"required"`
	Role              Text             `json:"role"`
	Category          TimelineCategory `json:"category" validate:"required"`
	Description       LocalizedText    `json:"description"`
	ExternalLink      string           `json:"externalLink,omitempty"`
	ExternalLinkLabel *LocalizedText   `json:"externalLinkLabel,omitempty"`
}

// HasExternalLink reports whether the outbound reference should be shown
func (e TimelineEntry) HasExternalLink() bool {
	return e.ExternalLink != ""
}
