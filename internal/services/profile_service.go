package services

import (
	"time"

	"ruo.dev/internal/models"
)

// ProfileService resolves the site owner's profile for a language
type ProfileService struct {
	profile models.Profile
	now     func() time.Time
}

// NewProfileService creates a ProfileService. A nil now uses time.Now.
func NewProfileService(profile models.Profile, now func() time.Time) *ProfileService {
	if now == nil {
		now = time.Now
	}
	return &ProfileService{profile: profile, now: now}
}

// Get returns the raw profile
func (s *ProfileService) Get() models.Profile {
	return s.profile
}

// Intro returns the intro with the career tenure filled in for today
func (s *ProfileService) Intro(lang models.Lang) string {
	return s.profile.IntroText(lang, s.now())
}

// Tenure returns the current career year, or 0 when no start year is set
func (s *ProfileService) Tenure() int {
	if s.profile.CareerStartYear == 0 {
		return 0
	}
	return models.Tenure(s.profile.CareerStartYear, s.now())
}
