package services

import (
	"fmt"

	"ruo.dev/internal/filter"
	"ruo.dev/internal/models"
)

// ProjectService handles project-related operations
type ProjectService struct {
	projects  []models.Project
	partition filter.Partition
}

// NewProjectService creates a new ProjectService. The featured/other split
// is computed once since the content never changes at runtime.
func NewProjectService(projects []models.Project) *ProjectService {
	return &ProjectService{
		projects:  projects,
		partition: filter.PartitionProjects(projects),
	}
}

// GetAll returns all projects in gallery order
func (s *ProjectService) GetAll() []models.Project {
	return s.partition.All()
}

// Partition returns a copy of the featured/other split
func (s *ProjectService) Partition() filter.Partition {
	return filter.Partition{
		Featured: append(make([]models.Project, 0, len(s.partition.Featured)), s.partition.Featured...),
		Other:    append(make([]models.Project, 0, len(s.partition.Other)), s.partition.Other...),
	}
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(id string) (*models.Project, error) {
	for i := range s.projects {
		if s.projects[i].ID == id {
			project := s.projects[i]
			return &project, nil
		}
	}
	return nil, fmt.Errorf("project %q: %w", id, ErrNotFound)
}
