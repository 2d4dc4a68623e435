package models

import (
	"strconv"
	"strings"
	"time"
)

// YearsPlaceholder is replaced in Profile.Intro with the career tenure label
const YearsPlaceholder = "{years}"

// Profile is the hero/footer information of the site owner
type Profile struct {
	Name            LocalizedText `json:"name"`
	Title           string        `json:"title" validate:"required"`
	Email           string        `json:"email" validate:"required,email"`
	GitHub          string        `json:"github" validate:"required,url"`
	LinkedIn        string        `json:"linkedin,omitempty" validate:"omitempty,url"`
	Story           LocalizedText `json:"story"`
	Intro           LocalizedText `json:"intro"`
	CareerStartYear int           `json:"careerStartYear,omitempty" validate:"omitempty,gte=1970"`
	CoreSkills      []SkillGroup  `json:"coreSkills,omitempty" validate:"dive"`
}

// SkillGroup is one column of the hero "Core Skills" block
type SkillGroup struct {
	ID     string        `json:"id" validate:"required"`
	Title  LocalizedText `json:"title"`
	Skills []string      `json:"skills"`
}

// IntroText returns the intro for lang with YearsPlaceholder substituted.
// Without a CareerStartYear the placeholder is dropped.
func (p Profile) IntroText(lang Lang, now time.Time) string {
	intro := p.Intro.Get(lang)
	if !strings.Contains(intro, YearsPlaceholder) {
		return intro
	}

	if p.CareerStartYear == 0 {
		return strings.Join(strings.Fields(strings.ReplaceAll(intro, YearsPlaceholder, "")), " ")
	}

	label := TenureLabel(Tenure(p.CareerStartYear, now), lang)
	return strings.ReplaceAll(intro, YearsPlaceholder, label)
}

// Tenure counts career years the way the site always has: the calendar
// year difference, never less than one.
func Tenure(startYear int, now time.Time) int {
	years := now.Year() - startYear
	if years < 1 {
		return 1
	}
	return years
}

// TenureLabel formats a tenure as "3년차" or "3rd-year"
func TenureLabel(years int, lang Lang) string {
	if lang == LangKo {
		return strconv.Itoa(years) + "년차"
	}
	return Ordinal(years) + "-year"
}

// Ordinal returns the English ordinal form of n (1st, 2nd, 11th, 23rd)
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
