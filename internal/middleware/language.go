package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	"ruo.dev/internal/models"
)

// ContextKeyLang holds the negotiated models.Lang
const ContextKeyLang ContextKey = "lang"

// LanguageCookieName remembers the visitor's language toggle
const LanguageCookieName = "portfolio_lang"

// matcher order must follow models.SupportedLangs
var matcher = language.NewMatcher([]language.Tag{language.Korean, language.English})

// Language negotiates the content language. Priority order:
// 1. Query parameter ?lang=xx (explicit toggle, also updates the cookie)
// 2. Cookie preference
// 3. Accept-Language header
// 4. fallback
func Language(fallback models.Lang) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if lang, ok := models.ParseLang(r.URL.Query().Get("lang")); ok {
				SetLanguageCookie(w, lang)
				next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
				return
			}

			if cookie, err := r.Cookie(LanguageCookieName); err == nil {
				if lang, ok := models.ParseLang(cookie.Value); ok {
					next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
					return
				}
			}

			if lang, ok := MatchAcceptLanguage(r.Header.Get("Accept-Language")); ok {
				next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), fallback)))
		})
	}
}

// MatchAcceptLanguage picks ko or en from an Accept-Language header,
// honoring quality values.
func MatchAcceptLanguage(header string) (models.Lang, bool) {
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return models.SupportedLangs[index], true
}

// WithLang stores lang on ctx
func WithLang(ctx context.Context, lang models.Lang) context.Context {
	return context.WithValue(ctx, ContextKeyLang, lang)
}

// GetLang returns the negotiated language, or models.DefaultLang when the
// Language middleware did not run.
func GetLang(r *http.Request) models.Lang {
	if lang, ok := r.Context().Value(ContextKeyLang).(models.Lang); ok {
		return lang
	}
	return models.DefaultLang
}

// SetLanguageCookie sets the language preference cookie
func SetLanguageCookie(w http.ResponseWriter, lang models.Lang) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    string(lang),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
