package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruo.dev/internal/models"
)

func langEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetLang(r)))
	})
}

func TestLanguage_Priority(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		cookie string
		accept string
		want   models.Lang
	}{
		{name: "fallback", want: models.LangKo},
		{name: "accept language", accept: "en-US,en;q=0.9", want: models.LangEn},
		{name: "accept language quality", accept: "fr-FR, ko;q=0.8, en;q=0.5", want: models.LangKo},
		{name: "unsupported accept language", accept: "fr-FR", want: models.LangKo},
		{name: "cookie beats header", cookie: "en", accept: "ko-KR", want: models.LangEn},
		{name: "query beats cookie", query: "ko", cookie: "en", want: models.LangKo},
		{name: "invalid query ignored", query: "de", cookie: "en", want: models.LangEn},
		{name: "invalid cookie ignored", cookie: "xx", accept: "en", want: models.LangEn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/"
			if tt.query != "" {
				target += "?lang=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LanguageCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rr := httptest.NewRecorder()

			Language(models.LangKo)(langEcho()).ServeHTTP(rr, req)

			assert.Equal(t, string(tt.want), rr.Body.String())
		})
	}
}

func TestLanguage_QuerySetsCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	rr := httptest.NewRecorder()

	Language(models.LangKo)(langEcho()).ServeHTTP(rr, req)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, LanguageCookieName, cookies[0].Name)
	assert.Equal(t, "en", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
}

func TestGetLang_WithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, models.DefaultLang, GetLang(req))
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/profile", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rr.Body.String())
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimw.GetReqID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(chimw.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rr.Header().Get(chimw.RequestIDHeader))
}

func TestRecovery_ResponseAlreadyStarted(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("partial"))
		panic("late boom")
	}))
	rr := httptest.NewRecorder()

	require.NotPanics(t, func() {
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, "partial", rr.Body.String())
}

func TestRateLimit_BehindProxy(t *testing.T) {
	h := chimw.RealIP(RateLimit(0.001, 1)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	send := func(realIP string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.254:443" // the proxy
		req.Header.Set("X-Real-IP", realIP)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.7"))
	assert.Equal(t, http.StatusOK, send("198.51.100.20"))
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("burst then reject", func(t *testing.T) {
		h := RateLimit(0.001, 2)(ok)
		codes := make([]int, 0, 3)
		for range 3 {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:5000"
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			codes = append(codes, rr.Code)
		}
		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

		other := httptest.NewRequest(http.MethodGet, "/", nil)
		other.RemoteAddr = "10.0.0.2:5000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, other)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		h := RateLimit(0, 0)(ok)
		for range 50 {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusOK, rr.Code)
		}
	})
}
