package services

import "errors"

var (
	// ErrNotFound is returned when a project, tab or diagram does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidPath is returned for diagram paths that leave the diagram root
	ErrInvalidPath = errors.New("invalid diagram path")
)
