package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Lang is a content language code
type Lang string

const (
	LangKo Lang = "ko"
	LangEn Lang = "en"
)

// DefaultLang is used when no preference is known
const DefaultLang = LangKo

// SupportedLangs lists the languages every LocalizedText carries
var SupportedLangs = []Lang{LangKo, LangEn}

// ParseLang normalizes a language code. Region subtags are ignored, so
// "en-US" parses as LangEn.
func ParseLang(s string) (Lang, bool) {
	code := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	switch Lang(code) {
	case LangKo:
		return LangKo, true
	case LangEn:
		return LangEn, true
	}
	return "", false
}

// LocalizedText holds the ko/en pair for a single field
type LocalizedText struct {
	Ko string `json:"ko" validate:"required"`
	En string `json:"en" validate:"required"`
}

// Get returns the value for lang. Unknown languages yield an empty string.
func (t LocalizedText) Get(lang Lang) string {
	switch lang {
	case LangKo:
		return t.Ko
	case LangEn:
		return t.En
	}
	return ""
}

// Text is a field that is either a plain string shared by all languages or
// a LocalizedText. Callers read it through Resolve only.
type Text struct {
	Plain     string
	Localized *LocalizedText
}

// PlainText builds a language-independent Text
func PlainText(s string) Text {
	return Text{Plain: s}
}

// Localize builds a bilingual Text
func Localize(ko, en string) Text {
	return Text{Localized: &LocalizedText{Ko: ko, En: en}}
}

// Resolve returns the display string for lang
func (t Text) Resolve(lang Lang) string {
	if t.Localized != nil {
		return t.Localized.Get(lang)
	}
	return t.Plain
}

// IsZero reports whether the field carries no text at all
func (t Text) IsZero() bool {
	return t.Localized == nil && t.Plain == ""
}

// Complete reports whether every supported language resolves to a
// non-empty string.
func (t Text) Complete() bool {
	if t.Localized != nil {
		return t.Localized.Ko != "" && t.Localized.En != ""
	}
	return t.Plain != ""
}

// UnmarshalJSON accepts either a JSON string or a {"ko","en"} object
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Text{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text{Plain: s}
		return nil
	case '{':
		var lt LocalizedText
		if err := json.Unmarshal(data, &lt); err != nil {
			return err
		}
		*t = Text{Localized: &lt}
		return nil
	}

	return fmt.Errorf("text must be a string or a {ko, en} object, got %s", data)
}

// MarshalJSON writes the same shape that was read
func (t Text) MarshalJSON() ([]byte, error) {
	if t.Localized != nil {
		return json.Marshal(t.Localized)
	}
	return json.Marshal(t.Plain)
}

// ResolveAll resolves a list of Text values for lang
func ResolveAll(texts []Text, lang Lang) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = t.Resolve(lang)
	}
	return out
}

// GetOptional resolves an optional LocalizedText, returning "" when absent
func GetOptional(t *LocalizedText, lang Lang) string {
	if t == nil {
		return ""
	}
	return t.Get(lang)
}
