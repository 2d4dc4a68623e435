package models

// Portfolio is the static content document the whole site renders from
type Portfolio struct {
	Profile  Profile         `json:"profile"`
	Timeline []TimelineEntry `json:"timeline" validate:"dive"`
	Projects []Project       `json:"projects" validate:"dive"`
	Filters  FilterSettings  `json:"filters,omitempty"`
}

// FilterSettings carries hand-curated classification overrides
type FilterSettings struct {
	// BootcampIDs moves Education entries into the "other" filter
	BootcampIDs []string `json:"bootcampIds,omitempty"`
}
