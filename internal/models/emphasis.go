package models

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// emphasisPolicy keeps only the inline tags the **strong** convention produces
var emphasisPolicy = bluemonday.NewPolicy().AllowElements("strong", "em")

// RenderEmphasis renders the **strong** markup used in key achievements as
// inline HTML. Any other markup is reduced to text.
func RenderEmphasis(text string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}

	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")

	return template.HTML(emphasisPolicy.Sanitize(out))
}
