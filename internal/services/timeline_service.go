package services

import (
	"ruo.dev/internal/filter"
	"ruo.dev/internal/models"
)

// TimelineService serves the filtered career timeline
type TimelineService struct {
	newest   []models.TimelineEntry
	bootcamp filter.BootcampSet
}

// NewTimelineService takes entries in stored (oldest first) order
func NewTimelineService(entries []models.TimelineEntry, bootcamp filter.BootcampSet) *TimelineService {
	return &TimelineService{
		newest:   filter.Newest(entries),
		bootcamp: bootcamp,
	}
}

// Filter returns the newest-first entries visible under c
func (s *TimelineService) Filter(c filter.Category) []models.TimelineEntry {
	return filter.FilterTimeline(s.newest, c, s.bootcamp)
}

// Counts returns how many entries each filter shows
func (s *TimelineService) Counts() map[filter.Category]int {
	return filter.Counts(s.newest, s.bootcamp)
}

// Len returns the total number of entries
func (s *TimelineService) Len() int {
	return len(s.newest)
}
