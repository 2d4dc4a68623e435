package models

// DefaultOrder is the rank of a project without an explicit order
const DefaultOrder = 999

// Project represents a portfolio project
type Project struct {
	ID               string          `json:"id" validate:"required"`
	Title            Text            `json:"title" validate:"required"`
	ShortDescription LocalizedText   `json:"shortDescription"`
	FullDescription  LocalizedText   `json:"fullDescription"`
	TechStack        []string        `json:"techStack"`
	RepoPath         string          `json:"repoPath,omitempty"`
	Featured         bool            `json:"featured,omitempty"`
	Order            *int            `json:"order,omitempty"`
	Features         []Text          `json:"features" validate:"dive,required"`
	KeyAchievements  []LocalizedText `json:"keyAchievements,omitempty" validate:"dive"`
	Company          *LocalizedText  `json:"company,omitempty"`
	Period           *LocalizedText  `json:"period,omitempty"`
	Detail           *ProjectDetail  `json:"detail,omitempty"`
	PlatformLinks    *PlatformLinks  `json:"platformLinks,omitempty"`
}

// Rank returns the sort key within a featured/other partition
func (p Project) Rank() int {
	if p.Order == nil {
		return DefaultOrder
	}
	return *p.Order
}

// Diagrams returns the architecture diagrams, if any
func (p Project) Diagrams() []ArchitectureDiagram {
	if p.Detail == nil {
		return nil
	}
	return p.Detail.Architecture
}

// ProjectDetail is the optional deep-dive shown in the detail overlay
type ProjectDetail struct {
	ProblemSolvingCases []ProblemSolvingCase  `json:"problemSolvingCases" validate:"dive"`
	Architecture        []ArchitectureDiagram `json:"architecture,omitempty" validate:"dive"`
	TechnicalHighlights []LocalizedText       `json:"technicalHighlights,omitempty" validate:"dive"`
}

// ProblemSolvingCase is an issue -> resolution write-up. Display only.
type ProblemSolvingCase struct {
	ID               string        `json:"id" validate:"required"`
	Title            LocalizedText `json:"title"`
	Category         LocalizedText `json:"category"`
	Icon             string        `json:"icon"`
	Problem          LocalizedText `json:"problem"`
	Solution         LocalizedText `json:"solution"`
	TechnicalDetails LocalizedText `json:"technicalDetails"`
	CSFoundations    []string      `json:"csFoundations"`
	Impact           LocalizedText `json:"impact"`
	Commits          []string      `json:"commits,omitempty"`
}

// ArchitectureDiagram points at one diagram source file per language
type ArchitectureDiagram struct {
	Title       LocalizedText  `json:"title"`
	SourcePath  LocalizedText  `json:"sourcePath"`
	Description *LocalizedText `json:"description,omitempty"`
}

// PlatformLinks are the outbound store/web links of a shipped product
type PlatformLinks struct {
	Web     string `json:"web,omitempty" validate:"omitempty,url"`
	IOS     string `json:"ios,omitempty" validate:"omitempty,url"`
	Android string `json:"android,omitempty" validate:"omitempty,url"`
}

// Empty reports whether no link is set
func (l PlatformLinks) Empty() bool {
	return l.Web == "" && l.IOS == "" && l.Android == ""
}
