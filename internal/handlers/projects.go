package handlers

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ruo.dev/internal/middleware"
	"ruo.dev/internal/modal"
	"ruo.dev/internal/models"
	"ruo.dev/internal/services"
)

// ProjectSummaryView is a gallery card
type ProjectSummaryView struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription"`
	TechStack        []string `json:"techStack"`
	Featured         bool     `json:"featured"`
	Order            int      `json:"order"`
	Company          string   `json:"company,omitempty"`
	Period           string   `json:"period,omitempty"`
	HasDetail        bool     `json:"hasDetail"`
	DiagramCount     int      `json:"diagramCount"`
}

// ProjectListResponse is the body of GET /api/projects
type ProjectListResponse struct {
	Lang     models.Lang          `json:"lang"`
	Featured []ProjectSummaryView `json:"featured"`
	Other    []ProjectSummaryView `json:"other"`
}

// ProjectDetailView is the content of the detail overlay
type ProjectDetailView struct {
	ProjectSummaryView
	FullDescription     string                `json:"fullDescription"`
	Features            []string              `json:"features"`
	KeyAchievements     []template.HTML       `json:"keyAchievements,omitempty"`
	RepoPath            string                `json:"repoPath,omitempty"`
	ProblemSolvingCases []ProblemSolvingView  `json:"problemSolvingCases,omitempty"`
	Architecture        []DiagramTabView      `json:"architecture,omitempty"`
	TechnicalHighlights []string              `json:"technicalHighlights,omitempty"`
	PlatformLinks       *models.PlatformLinks `json:"platformLinks,omitempty"`
	PrivacyNotice       string                `json:"privacyNotice,omitempty"`
}

// ProblemSolvingView is a resolved problem -> solution case
type ProblemSolvingView struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Category         string   `json:"category"`
	Icon             string   `json:"icon,omitempty"`
	Problem          string   `json:"problem"`
	Solution         string   `json:"solution"`
	TechnicalDetails string   `json:"technicalDetails"`
	CSFoundations    []string `json:"csFoundations,omitempty"`
	Impact           string   `json:"impact"`
	Commits          []string `json:"commits,omitempty"`
}

// DiagramTabView is a tab header of the architecture overlay
type DiagramTabView struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: ps}
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r)
	partition := h.projectService.Partition()

	resp := ProjectListResponse{
		Lang:     lang,
		Featured: make([]ProjectSummaryView, len(partition.Featured)),
		Other:    make([]ProjectSummaryView, len(partition.Other)),
	}
	for i, project := range partition.Featured {
		resp.Featured[i] = projectSummary(project, lang)
	}
	for i, project := range partition.Other {
		resp.Other[i] = projectSummary(project, lang)
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetProject handles GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.projectService.GetByID(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	respondJSON(w, http.StatusOK, projectDetail(*project, middleware.GetLang(r)))
}

func projectSummary(p models.Project, lang models.Lang) ProjectSummaryView {
	return ProjectSummaryView{
		ID:               p.ID,
		Title:            p.Title.Resolve(lang),
		ShortDescription: p.ShortDescription.Get(lang),
		TechStack:        p.TechStack,
		Featured:         p.Featured,
		Order:            p.Rank(),
		Company:          models.GetOptional(p.Company, lang),
		Period:           models.GetOptional(p.Period, lang),
		HasDetail:        p.Detail != nil,
		DiagramCount:     len(p.Diagrams()),
	}
}

func projectDetail(p models.Project, lang models.Lang) ProjectDetailView {
	view := ProjectDetailView{
		ProjectSummaryView: projectSummary(p, lang),
		FullDescription:    p.FullDescription.Get(lang),
		Features:           models.ResolveAll(p.Features, lang),
		RepoPath:           p.RepoPath,
	}

	for _, achievement := range p.KeyAchievements {
		view.KeyAchievements = append(view.KeyAchievements, models.RenderEmphasis(achievement.Get(lang)))
	}

	if p.PlatformLinks != nil && !p.PlatformLinks.Empty() {
		view.PlatformLinks = p.PlatformLinks
	}

	// Company projects are closed source
	if p.Company != nil {
		view.PrivacyNotice = modal.MsgPrivacyNotice.Get(lang)
	}

	if p.Detail == nil {
		return view
	}

	for _, c := range p.Detail.ProblemSolvingCases {
		view.ProblemSolvingCases = append(view.ProblemSolvingCases, ProblemSolvingView{
			ID:               c.ID,
			Title:            c.Title.Get(lang),
			Category:         c.Category.Get(lang),
			Icon:             c.Icon,
			Problem:          c.Problem.Get(lang),
			Solution:         c.Solution.Get(lang),
			TechnicalDetails: c.TechnicalDetails.Get(lang),
			CSFoundations:    c.CSFoundations,
			Impact:           c.Impact.Get(lang),
			Commits:          c.Commits,
		})
	}
	for i, d := range p.Detail.Architecture {
		view.Architecture = append(view.Architecture, DiagramTabView{
			Index:       i,
			Title:       d.Title.Get(lang),
			Description: models.GetOptional(d.Description, lang),
		})
	}
	for _, highlight := range p.Detail.TechnicalHighlights {
		view.TechnicalHighlights = append(view.TechnicalHighlights, highlight.Get(lang))
	}
	return view
}

// DiagramHandler serves one architecture tab at a time
type DiagramHandler struct {
	projectService *services.ProjectService
	diagramService *services.DiagramService
}

// NewDiagramHandler creates a new DiagramHandler
func NewDiagramHandler(ps *services.ProjectService, ds *services.DiagramService) *DiagramHandler {
	return &DiagramHandler{projectService: ps, diagramService: ds}
}

// GetDiagram handles GET /api/projects/{id}/diagrams/{tab}. A tab that
// fails to load answers 404 with its localized message; other tabs of the
// same project are unaffected.
func (h *DiagramHandler) GetDiagram(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	tab, ok := parseIndexParam(r, "tab")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid tab index")
		return
	}
	diagrams := project.Diagrams()
	if tab >= len(diagrams) {
		respondError(w, http.StatusNotFound, "Diagram not found")
		return
	}

	tabs := modal.NewDiagramTabs(r.Context(), diagrams, middleware.GetLang(r), h.diagramService, modal.SourceRenderer{}, nil)
	defer tabs.Close()
	<-tabs.Activate(tab)

	view := tabs.View()
	switch view.Status {
	case modal.TabReady:
		respondJSON(w, http.StatusOK, view)
	case modal.TabFailed:
		respondJSON(w, http.StatusNotFound, view)
	default:
		// request context ended before the source arrived
		respondJSON(w, http.StatusServiceUnavailable, view)
	}
}
