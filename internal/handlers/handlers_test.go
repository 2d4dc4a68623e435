package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruo.dev/internal/config"
	"ruo.dev/internal/filter"
	"ruo.dev/internal/modal"
	"ruo.dev/internal/models"
)

func intPtr(n int) *int { return &n }

func testPortfolio() *models.Portfolio {
	return &models.Portfolio{
		Profile: models.Profile{
			Name:            models.LocalizedText{Ko: "김루오", En: "Ruo Kim"},
			Title:           "AI Agent Platform Developer",
			Email:           "ruo@example.com",
			GitHub:          "https://github.com/ruo",
			Story:           models.LocalizedText{Ko: "디자이너에서 개발자로", En: "From designer to developer"},
			Intro:           models.LocalizedText{Ko: "{years} 개발자", En: "A {years} developer"},
			CareerStartYear: 2022,
			CoreSkills: []models.SkillGroup{
				{ID: "backend", Title: models.LocalizedText{Ko: "백엔드", En: "Backend"}, Skills: []string{"Go"}},
			},
		},
		Timeline: []models.TimelineEntry{
			{ID: "edu-univ", Title: models.PlainText("Design School"), Category: models.CategoryEducation},
			{ID: "edu-bootcamp", Title: models.PlainText("Bootcamp"), Category: models.CategoryEducation},
			{ID: "cert-aws", Title: models.PlainText("AWS SAA"), Category: models.CategoryCertification},
			{
				ID:                "dev-startup",
				Title:             models.Localize("에이전트 스타트업", "Agent Startup"),
				Role:              models.Localize("백엔드 개발자", "Backend Developer"),
				Category:          models.CategoryDev,
				Description:       models.LocalizedText{Ko: "플랫폼 개발", En: "Built the platform"},
				ExternalLink:      "https://example.com/paper.pdf",
				ExternalLinkLabel: &models.LocalizedText{Ko: "논문", En: "Paper"},
			},
		},
		Projects: []models.Project{
			{ID: "side", Title: models.PlainText("Side Project")},
			{
				ID:               "py-runner",
				Title:            models.PlainText("PyRunner"),
				ShortDescription: models.LocalizedText{Ko: "파이썬 실행기", En: "Python runner"},
				Featured:         true,
				Order:            intPtr(1),
				Features:         []models.Text{models.PlainText("Sandboxing"), models.Localize("스트리밍", "Streaming")},
				KeyAchievements:  []models.LocalizedText{{Ko: "**70%** 단축", En: "Cut cold start by **70%**"}},
				Company:          &models.LocalizedText{Ko: "스타트업", En: "Startup"},
				Detail: &models.ProjectDetail{
					Architecture: []models.ArchitectureDiagram{
						{
							Title:      models.LocalizedText{Ko: "시스템", En: "System"},
							SourcePath: models.LocalizedText{Ko: "diagrams/ko/system.mmd", En: "diagrams/en/system.mmd"},
						},
						{
							Title:      models.LocalizedText{Ko: "배포", En: "Deploy"},
							SourcePath: models.LocalizedText{Ko: "diagrams/ko/missing.mmd", En: "diagrams/en/missing.mmd"},
						},
					},
				},
			},
		},
		Filters: models.FilterSettings{BootcampIDs: []string{"edu-bootcamp"}},
	}
}

func newTestServer(t *testing.T, opts ...func(*config.Config)) http.Handler {
	t.Helper()
	dir := t.TempDir()
	for _, lang := range []string{"ko", "en"} {
		path := filepath.Join(dir, "diagrams", lang, "system.mmd")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("graph TD\n  api-->db"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>portfolio</html>"), 0o644))

	cfg := &config.Config{
		DefaultLang: "ko",
		StaticDir:   dir,
		DiagramDir:  dir,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return SetupRoutes(cfg, testPortfolio())
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rr := get(t, newTestServer(t), "/api/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestIndex(t *testing.T) {
	rr := get(t, newTestServer(t), "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "portfolio")
}

func TestGetProfile(t *testing.T) {
	h := newTestServer(t)

	ko := decode[ProfileView](t, get(t, h, "/api/profile"))
	assert.Equal(t, models.LangKo, ko.Lang)
	assert.Equal(t, "김루오", ko.Name)
	assert.Contains(t, ko.Intro, "년차 개발자")
	assert.NotContains(t, ko.Intro, models.YearsPlaceholder)
	assert.Positive(t, ko.Tenure)
	require.Len(t, ko.CoreSkills, 1)
	assert.Equal(t, "백엔드", ko.CoreSkills[0].Title)

	en := decode[ProfileView](t, get(t, h, "/api/profile?lang=en"))
	assert.Equal(t, "Ruo Kim", en.Name)
	assert.Contains(t, en.Intro, "-year developer")
}

func timelineIDs(resp TimelineResponse) []string {
	ids := make([]string, len(resp.Entries))
	for i, e := range resp.Entries {
		ids[i] = e.ID
	}
	return ids
}

func TestListTimeline(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name       string
		query      string
		wantFilter filter.Category
		wantIDs    []string
	}{
		{name: "default filter", query: "", wantFilter: filter.Career, wantIDs: []string{"dev-startup"}},
		{name: "all newest first", query: "?filter=all", wantFilter: filter.All,
			wantIDs: []string{"dev-startup", "cert-aws", "edu-bootcamp", "edu-univ"}},
		{name: "education excludes bootcamp", query: "?filter=education", wantFilter: filter.Education,
			wantIDs: []string{"edu-univ"}},
		{name: "bootcamp under other", query: "?filter=other", wantFilter: filter.Other,
			wantIDs: []string{"edu-bootcamp"}},
		{name: "unknown filter shows all", query: "?filter=hobbies", wantFilter: filter.All,
			wantIDs: []string{"dev-startup", "cert-aws", "edu-bootcamp", "edu-univ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, h, "/api/timeline"+tt.query)
			require.Equal(t, http.StatusOK, rr.Code)

			resp := decode[TimelineResponse](t, rr)
			assert.Equal(t, tt.wantFilter, resp.Filter)
			assert.Equal(t, 4, resp.Total)
			assert.Equal(t, tt.wantIDs, timelineIDs(resp))
		})
	}
}

func TestListTimeline_Localized(t *testing.T) {
	h := newTestServer(t)

	resp := decode[TimelineResponse](t, get(t, h, "/api/timeline?lang=en"))
	require.Len(t, resp.Entries, 1)
	entry := resp.Entries[0]
	assert.Equal(t, "Agent Startup", entry.Title)
	assert.Equal(t, "Backend Developer", entry.Role)
	assert.Equal(t, "Paper", entry.ExternalLinkLabel)

	resp = decode[TimelineResponse](t, get(t, h, "/api/timeline?filter=certification"))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "AWS SAA", resp.Entries[0].Title)
	assert.Empty(t, resp.Entries[0].ExternalLink)
}

func TestListFilters(t *testing.T) {
	views := decode[[]FilterView](t, get(t, newTestServer(t), "/api/timeline/filters?lang=en"))
	require.Len(t, views, len(filter.Categories))

	counts := make(map[filter.Category]int)
	for _, v := range views {
		counts[v.Filter] = v.Count
		if v.Filter == filter.Career {
			assert.True(t, v.Default)
			assert.Equal(t, "Career", v.Label)
		}
	}
	assert.Equal(t, map[filter.Category]int{
		filter.All:           4,
		filter.Career:        1,
		filter.Education:     1,
		filter.Certification: 1,
		filter.Other:         1,
	}, counts)
}

func TestListProjects(t *testing.T) {
	resp := decode[ProjectListResponse](t, get(t, newTestServer(t), "/api/projects?lang=en"))

	require.Len(t, resp.Featured, 1)
	require.Len(t, resp.Other, 1)
	assert.Equal(t, "py-runner", resp.Featured[0].ID)
	assert.Equal(t, "Python runner", resp.Featured[0].ShortDescription)
	assert.Equal(t, 2, resp.Featured[0].DiagramCount)
	assert.Equal(t, "side", resp.Other[0].ID)
	assert.Equal(t, models.DefaultOrder, resp.Other[0].Order)
}

func TestGetProject(t *testing.T) {
	h := newTestServer(t)

	rr := get(t, h, "/api/projects/py-runner?lang=en")
	require.Equal(t, http.StatusOK, rr.Code)

	view := decode[ProjectDetailView](t, rr)
	assert.Equal(t, "PyRunner", view.Title)
	assert.Equal(t, []string{"Sandboxing", "Streaming"}, view.Features)
	require.Len(t, view.KeyAchievements, 1)
	assert.Equal(t, "Cut cold start by <strong>70%</strong>", string(view.KeyAchievements[0]))
	assert.Equal(t, modal.MsgPrivacyNotice.En, view.PrivacyNotice)
	require.Len(t, view.Architecture, 2)
	assert.Equal(t, "Deploy", view.Architecture[1].Title)

	rr = get(t, h, "/api/projects/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, rr.Body.String())
}

func TestGetDiagram(t *testing.T) {
	h := newTestServer(t)

	rr := get(t, h, "/api/projects/py-runner/diagrams/0?lang=en")
	require.Equal(t, http.StatusOK, rr.Code)
	view := decode[modal.TabView](t, rr)
	assert.Equal(t, modal.TabReady, view.Status)
	assert.Equal(t, "System", view.Title)
	assert.Contains(t, string(view.Diagram), `<pre class="mermaid">`)
	assert.Contains(t, string(view.Diagram), "api--&gt;db")

	// A broken tab fails alone
	rr = get(t, h, "/api/projects/py-runner/diagrams/1?lang=ko")
	require.Equal(t, http.StatusNotFound, rr.Code)
	view = decode[modal.TabView](t, rr)
	assert.Equal(t, modal.TabFailed, view.Status)
	assert.Equal(t, "다이어그램을 불러오지 못했습니다", view.Message)

	rr = get(t, h, "/api/projects/py-runner/diagrams/0?lang=ko")
	assert.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/projects/py-runner/diagrams/x").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/projects/py-runner/diagrams/5").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/projects/side/diagrams/0").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/projects/nope/diagrams/0").Code)
}

// five 200px cards, 20px apart, padded so the first and last can be centered
func layoutBody(offset float64, extra string) string {
	return fmt.Sprintf(`{"viewport":{"offset":%g,"size":600,"contentSize":1480},`+
		`"even":{"count":5,"lead":200,"size":200,"gap":20}%s}`, offset, extra)
}

func TestLayout_Recompute(t *testing.T) {
	h := newTestServer(t)

	rr := post(t, h, "/api/layout", layoutBody(0, ""))
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[LayoutResponse](t, rr)
	assert.Equal(t, 0, resp.State.ActiveIndex)
	assert.False(t, resp.State.CanScrollBack)
	assert.True(t, resp.State.CanScrollForward)
	assert.Len(t, resp.State.Weights, 5)

	resp = decode[LayoutResponse](t, post(t, h, "/api/layout", layoutBody(220, `,"axis":"vertical"`)))
	assert.Equal(t, 1, resp.State.ActiveIndex)
	assert.Equal(t, "vertical", resp.Axis.String())
	assert.True(t, resp.State.CanScrollBack)

	resp = decode[LayoutResponse](t, post(t, h, "/api/layout", `{"viewport":{"offset":0,"size":600}}`))
	assert.Equal(t, -1, resp.State.ActiveIndex)

	assert.Equal(t, http.StatusBadRequest, post(t, h, "/api/layout", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, h, "/api/layout", `{"viewport":{"size":0}}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, h, "/api/layout", `{"axis":"diagonal","viewport":{"size":600}}`).Code)
}

func TestLayout_ScrollTo(t *testing.T) {
	h := newTestServer(t)

	resp := decode[ScrollResponse](t, post(t, h, "/api/layout/scroll-to", layoutBody(0, `,"index":2`)))
	assert.Equal(t, 440.0, resp.Offset)
	assert.True(t, resp.Moved)

	// already centered
	resp = decode[ScrollResponse](t, post(t, h, "/api/layout/scroll-to", layoutBody(440, `,"index":2`)))
	assert.False(t, resp.Moved)

	// out of range leaves the offset alone
	resp = decode[ScrollResponse](t, post(t, h, "/api/layout/scroll-to", layoutBody(220, `,"index":9`)))
	assert.Equal(t, 220.0, resp.Offset)
	assert.False(t, resp.Moved)
}

func TestRoutes_RateLimitPerVisitorBehindProxy(t *testing.T) {
	h := newTestServer(t, func(cfg *config.Config) {
		cfg.RateLimit = 0.001
		cfg.RateBurst = 1
	})

	send := func(visitor string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.RemoteAddr = "10.0.0.254:443"
		req.Header.Set("X-Forwarded-For", visitor)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	first := send("203.0.113.7")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.NotEmpty(t, first.Header().Get("X-Request-Id"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, send("198.51.100.20").Code)
}
