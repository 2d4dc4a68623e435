// Package filter decides which timeline entries and projects are visible and
// in what order. Everything here is pure: inputs are never mutated.
package filter

import (
	"strings"

	"ruo.dev/internal/models"
)

// Category is a timeline filter the visitor can select
type Category string

const (
	All           Category = "all"
	Education     Category = "education"
	Career        Category = "career"
	Certification Category = "certification"
	Other         Category = "other"
)

// Categories lists every selectable filter in display order
var Categories = []Category{All, Career, Education, Certification, Other}

// DefaultCategory is the filter a first visit opens on
const DefaultCategory = Career

// ParseCategory maps user input onto the closed filter set
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// BootcampSet is the curated list of Education entry ids that are shown
// under "other" instead of "education".
type BootcampSet map[string]struct{}

// NewBootcampSet builds a set from ids, ignoring blanks
func NewBootcampSet(ids ...string) BootcampSet {
	set := make(BootcampSet, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// Contains reports whether id is a bootcamp exception. A nil set is empty.
func (s BootcampSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the set members in no particular order
func (s BootcampSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

// Matches applies the classification overlay to a single entry
func Matches(entry models.TimelineEntry, f Category, bootcamp BootcampSet) bool {
	switch f {
	case All:
		return true
	case Education:
		return entry.Category == models.CategoryEducation && !bootcamp.Contains(entry.ID)
	case Career:
		return entry.Category == models.CategoryDev || entry.Category == models.CategoryCareer
	case Certification:
		return entry.Category == models.CategoryCertification
	case Other:
		return entry.Category == models.CategoryDesign ||
			entry.Category == models.CategoryTravel ||
			bootcamp.Contains(entry.ID)
	}
	return false
}

// FilterTimeline returns the entries visible under f, preserving their
// relative order. Entries are expected newest first already.
func FilterTimeline(entries []models.TimelineEntry, f Category, bootcamp BootcampSet) []models.TimelineEntry {
	out := make([]models.TimelineEntry, 0, len(entries))
	for _, entry := range entries {
		if Matches(entry, f, bootcamp) {
			out = append(out, entry)
		}
	}
	return out
}

// Newest returns a reversed copy of the chronologically stored timeline
func Newest(entries []models.TimelineEntry) []models.TimelineEntry {
	out := make([]models.TimelineEntry, len(entries))
	for i, entry := range entries {
		out[len(entries)-1-i] = entry
	}
	return out
}

// Counts returns how many entries each filter shows
func Counts(entries []models.TimelineEntry, bootcamp BootcampSet) map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		counts[c] = 0
	}
	for _, entry := range entries {
		for _, c := range Categories {
			if Matches(entry, c, bootcamp) {
				counts[c]++
			}
		}
	}
	return counts
}
