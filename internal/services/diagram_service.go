package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// maxDiagramSize bounds a diagram source file
const maxDiagramSize = 1 << 20

// DiagramService loads architecture diagram sources from disk
type DiagramService struct {
	root  string
	group singleflight.Group

	mu      sync.RWMutex
	sources map[string]string // cached by cleaned relative path
}

// NewDiagramService creates a DiagramService rooted at dir
func NewDiagramService(dir string) (*DiagramService, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("diagram dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("diagram dir %s is not a directory", dir)
	}

	return &DiagramService{
		root:    dir,
		sources: make(map[string]string),
	}, nil
}

// Fetch returns the source at path, relative to the diagram root.
// Concurrent requests for the same file share one read.
func (ds *DiagramService) Fetch(ctx context.Context, path string) (string, error) {
	rel, err := cleanPath(path)
	if err != nil {
		return "", err
	}

	// Check cache
	ds.mu.RLock()
	source, cached := ds.sources[rel]
	ds.mu.RUnlock()
	if cached {
		return source, nil
	}

	results := ds.group.DoChan(rel, func() (any, error) {
		return ds.read(rel)
	})
	select {
	case res := <-results:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (ds *DiagramService) read(rel string) (string, error) {
	root, err := os.OpenRoot(ds.root)
	if err != nil {
		return "", fmt.Errorf("opening diagram dir: %w", err)
	}
	defer func() { _ = root.Close() }()

	f, err := root.Open(rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("diagram %s: %w", rel, ErrNotFound)
		}
		return "", fmt.Errorf("failed to open diagram: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxDiagramSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read diagram: %w", err)
	}
	if len(data) > maxDiagramSize {
		return "", fmt.Errorf("diagram %s exceeds %d bytes", rel, maxDiagramSize)
	}

	source := string(data)

	// Cache it
	ds.mu.Lock()
	ds.sources[rel] = source
	ds.mu.Unlock()

	return source, nil
}

// cleanPath turns a content path like "/diagrams/en/x.mmd" into a local
// relative path, rejecting anything that escapes the root.
func cleanPath(path string) (string, error) {
	rel := filepath.FromSlash(strings.TrimLeft(path, "/"))
	if rel == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%q: %w", path, ErrInvalidPath)
	}
	return filepath.Clean(rel), nil
}
