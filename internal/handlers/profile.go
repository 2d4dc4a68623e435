package handlers

import (
	"net/http"

	"ruo.dev/internal/middleware"
	"ruo.dev/internal/models"
	"ruo.dev/internal/services"
)

// ProfileView is the profile resolved for one language
type ProfileView struct {
	Lang       models.Lang      `json:"lang"`
	Name       string           `json:"name"`
	Title      string           `json:"title"`
	Email      string           `json:"email"`
	GitHub     string           `json:"github"`
	LinkedIn   string           `json:"linkedin,omitempty"`
	Story      string           `json:"story"`
	Intro      string           `json:"intro"`
	Tenure     int              `json:"tenure,omitempty"`
	CoreSkills []SkillGroupView `json:"coreSkills"`
}

// SkillGroupView is one resolved "Core Skills" column
type SkillGroupView struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Skills []string `json:"skills"`
}

// ProfileHandler handles the profile endpoint
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(ps *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: ps}
}

// GetProfile handles GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLang(r)
	profile := h.profileService.Get()

	skills := make([]SkillGroupView, len(profile.CoreSkills))
	for i, group := range profile.CoreSkills {
		skills[i] = SkillGroupView{
			ID:     group.ID,
			Title:  group.Title.Get(lang),
			Skills: group.Skills,
		}
	}

	respondJSON(w, http.StatusOK, ProfileView{
		Lang:       lang,
		Name:       profile.Name.Get(lang),
		Title:      profile.Title,
		Email:      profile.Email,
		GitHub:     profile.GitHub,
		LinkedIn:   profile.LinkedIn,
		Story:      profile.Story.Get(lang),
		Intro:      h.profileService.Intro(lang),
		Tenure:     h.profileService.Tenure(),
		CoreSkills: skills,
	})
}
