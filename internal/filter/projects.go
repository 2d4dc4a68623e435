package filter

import (
	"sort"

	"ruo.dev/internal/models"
)

// Partition is the featured/other split of the project gallery
type Partition struct {
	Featured []models.Project `json:"featured"`
	Other    []models.Project `json:"other"`
}

// PartitionProjects splits projects on Featured and sorts each side by
// Rank. Ties keep their original relative order.
func PartitionProjects(projects []models.Project) Partition {
	p := Partition{
		Featured: make([]models.Project, 0),
		Other:    make([]models.Project, 0),
	}
	for _, project := range projects {
		if project.Featured {
			p.Featured = append(p.Featured, project)
		} else {
			p.Other = append(p.Other, project)
		}
	}

	sortByRank(p.Featured)
	sortByRank(p.Other)
	return p
}

// All returns featured projects followed by the others
func (p Partition) All() []models.Project {
	out := make([]models.Project, 0, len(p.Featured)+len(p.Other))
	out = append(out, p.Featured...)
	return append(out, p.Other...)
}

func sortByRank(projects []models.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Rank() < projects[j].Rank()
	})
}
