package modal

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"ruo.dev/internal/models"
)

// Fetcher loads a diagram source document by relative path
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// Renderer turns diagram source into displayable markup
type Renderer interface {
	Render(source string) (template.HTML, error)
}

// SourceRenderer hands the escaped source to the client-side diagram engine
type SourceRenderer struct{}

// Render wraps source in a <pre class="mermaid"> block
func (SourceRenderer) Render(source string) (template.HTML, error) {
	if strings.TrimSpace(source) == "" {
		return "", errors.New("empty diagram source")
	}
	return template.HTML(`<pre class="mermaid">` + template.HTMLEscapeString(source) + `</pre>`), nil
}

// TabStatus is the load state of one architecture tab
type TabStatus string

const (
	TabLoading TabStatus = "loading"
	TabReady   TabStatus = "ready"
	TabFailed  TabStatus = "failed"
)

// TabView is what the overlay shows for the active tab
type TabView struct {
	Index       int           `json:"index"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      TabStatus     `json:"status"`
	Diagram     template.HTML `json:"diagram,omitempty"`
	Message     string        `json:"message,omitempty"`
}

var errRender = errors.New("render diagram")

type tabResult struct {
	diagram template.HTML
	err     error
}

// DiagramTabs lazily loads one diagram per tab the first time the tab is
// shown. Each tab is fetched at most once while the overlay is open, and a
// failing tab never affects the others.
type DiagramTabs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	diagrams []models.ArchitectureDiagram
	lang     models.Lang
	fetcher  Fetcher
	renderer Renderer
	logger   *slog.Logger
	group    singleflight.Group

	mu       sync.Mutex
	active   int
	closed   bool
	results  map[int]tabResult
	onChange func(TabView)
}

// NewDiagramTabs prepares the tabs for diagrams without fetching anything.
// Pending fetches are cancelled when ctx is done or the tabs are closed.
func NewDiagramTabs(ctx context.Context, diagrams []models.ArchitectureDiagram, lang models.Lang,
	fetcher Fetcher, renderer Renderer, logger *slog.Logger) *DiagramTabs {
	if renderer == nil {
		renderer = SourceRenderer{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &DiagramTabs{
		ctx:      ctx,
		cancel:   cancel,
		diagrams: diagrams,
		lang:     lang,
		fetcher:  fetcher,
		renderer: renderer,
		logger:   logger,
		results:  make(map[int]tabResult),
	}
}

// OnChange registers fn to be called whenever the active tab's view changes
func (d *DiagramTabs) OnChange(fn func(TabView)) {
	d.mu.Lock()
	d.onChange = fn
	d.mu.Unlock()
}

// Len returns the number of tabs
func (d *DiagramTabs) Len() int {
	return len(d.diagrams)
}

// Activate switches to tab index and starts its fetch if it has never been
// requested. The returned channel is closed once the tab's result is known.
// Out-of-range indexes are ignored.
func (d *DiagramTabs) Activate(index int) <-chan struct{} {
	done := make(chan struct{})

	d.mu.Lock()
	if d.closed || index < 0 || index >= len(d.diagrams) {
		d.mu.Unlock()
		close(done)
		return done
	}
	d.active = index
	_, cached := d.results[index]
	view, onChange := d.viewLocked(), d.onChange
	d.mu.Unlock()

	if onChange != nil {
		onChange(view)
	}
	if cached {
		close(done)
		return done
	}

	results := d.group.DoChan(strconv.Itoa(index), func() (any, error) {
		return d.load(index), nil
	})
	go func() {
		defer close(done)
		select {
		case res := <-results:
			d.resolve(index, res.Val.(tabResult))
		case <-d.ctx.Done():
		}
	}()
	return done
}

// View returns the state of the active tab
func (d *DiagramTabs) View() TabView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewLocked()
}

// Close cancels pending fetches. Results that arrive later are dropped.
func (d *DiagramTabs) Close() {
	d.mu.Lock()
	d.closed = true
	d.onChange = nil
	d.mu.Unlock()
	d.cancel()
}

func (d *DiagramTabs) load(index int) tabResult {
	d.mu.Lock()
	if res, ok := d.results[index]; ok {
		d.mu.Unlock()
		return res
	}
	d.mu.Unlock()

	path := d.diagrams[index].SourcePath.Get(d.lang)
	if path == "" {
		return tabResult{err: fmt.Errorf("tab %d has no %s diagram source", index, d.lang)}
	}

	source, err := d.fetcher.Fetch(d.ctx, path)
	if err != nil {
		return tabResult{err: fmt.Errorf("fetch %s: %w", path, err)}
	}

	diagram, err := d.renderer.Render(source)
	if err != nil {
		return tabResult{err: fmt.Errorf("%w %s: %v", errRender, path, err)}
	}
	return tabResult{diagram: diagram}
}

func (d *DiagramTabs) resolve(index int, res tabResult) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.results[index] = res
	isActive := d.active == index
	view, onChange := d.viewLocked(), d.onChange
	d.mu.Unlock()

	if res.err != nil {
		d.logger.Warn("architecture diagram unavailable", "tab", index, "error", res.err)
	}
	if isActive && onChange != nil {
		onChange(view)
	}
}

func (d *DiagramTabs) viewLocked() TabView {
	if len(d.diagrams) == 0 {
		return TabView{Index: -1, Status: TabFailed, Message: MsgFetchFailed.Get(d.lang)}
	}

	diagram := d.diagrams[d.active]
	view := TabView{
		Index:       d.active,
		Title:       diagram.Title.Get(d.lang),
		Description: models.GetOptional(diagram.Description, d.lang),
	}

	res, ok := d.results[d.active]
	switch {
	case !ok:
		view.Status = TabLoading
		view.Message = MsgLoading.Get(d.lang)
	case errors.Is(res.err, errRender):
		view.Status = TabFailed
		view.Message = MsgRenderFailed.Get(d.lang)
	case res.err != nil:
		view.Status = TabFailed
		view.Message = MsgFetchFailed.Get(d.lang)
	default:
		view.Status = TabReady
		view.Diagram = res.diagram
	}
	return view
}
