package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/template"
)

// Renderer is the abstract capability that paginates a layout tree into a
// visual document. Render may take non-trivial wall-clock time and must
// honor ctx cancellation.
type Renderer interface {
	Render(ctx context.Context, lay *domain.Layout) (*domain.Artifact, error)
}

type PreviewState string

const (
	PreviewIdle      PreviewState = "idle"
	PreviewRendering PreviewState = "rendering"
	PreviewReady     PreviewState = "ready"
	PreviewError     PreviewState = "error"
)

// Preview render width bounds, in layout units.
const (
	MinPreviewWidth = 200
	MaxPreviewWidth = 450
)

type PreviewConfig struct {
	// Debounce is the re-render quiet interval, default 1s.
	Debounce time.Duration
	Logger   *slog.Logger
}

func (c *PreviewConfig) defaults() {
	if c.Debounce <= 0 {
		c.Debounce = time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Preview drives incremental re-rendering of the document into a paginated
// artifact. Edits debounce; a newer render supersedes an in-flight one
// (latest wins), so the preview always converges to the latest document.
type Preview struct {
	renderer Renderer
	logger   *slog.Logger
	debounce *Debouncer

	mu       sync.Mutex
	state    PreviewState
	artifact *domain.Artifact
	lastErr  error
	page     int
	pages    int
	width    int
	gen      uuid.UUID
	cancel   context.CancelFunc
	closed   bool
}

func NewPreview(r Renderer, cfg PreviewConfig) *Preview {
	cfg.defaults()
	return &Preview{
		renderer: r,
		logger:   cfg.Logger,
		debounce: NewDebouncer(cfg.Debounce),
		state:    PreviewIdle,
		page:     1,
		width:    MaxPreviewWidth,
	}
}

// Observe wires the preview to a session: every mutation schedules a
// debounced re-render of the session's latest document.
func (p *Preview) Observe(s *Session) {
	s.Subscribe(func() {
		p.Invalidate(s.Document())
	})
}

// Invalidate schedules a debounced re-render of doc. Calls inside the quiet
// interval coalesce; only the last document renders.
func (p *Preview) Invalidate(doc *model.Document) {
	snapshot := doc.Clone()
	p.debounce.Schedule(func() {
		p.render(snapshot)
	})
}

// RenderNow bypasses the debounce, for the initial render.
func (p *Preview) RenderNow(doc *model.Document) {
	p.render(doc.Clone())
}

func (p *Preview) render(doc *model.Document) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	token := uuid.New()
	p.gen = token
	if p.cancel != nil {
		// Supersede the in-flight render.
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.state = PreviewRendering
	p.mu.Unlock()

	lay := template.Build(doc)
	artifact, err := p.renderer.Render(ctx, lay)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != token {
		// A newer render owns the preview now; discard this result.
		return
	}
	p.cancel = nil
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		p.state = PreviewError
		p.lastErr = err
		p.logger.Error("preview render failed", "error", err)
		return
	}
	p.artifact = artifact
	p.pages = artifact.Pages
	p.lastErr = nil
	p.state = PreviewReady
	if p.page > p.pages {
		p.page = 1
	}
	if p.page < 1 {
		p.page = 1
	}
}

func (p *Preview) State() PreviewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Preview) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Artifact returns the latest rendered document, or nil before the first
// successful render.
func (p *Preview) Artifact() *domain.Artifact {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.artifact
}

func (p *Preview) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

func (p *Preview) PageCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pages
}

// SetPage navigates to page n, clamped to [1, pageCount].
func (p *Preview) SetPage(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n < 1 {
		n = 1
	}
	if p.pages > 0 && n > p.pages {
		n = p.pages
	}
	p.page = n
	return p.page
}

// FitWidth clamps the target render width to [200, 450] layout units based
// on the available container width and stores the result.
func (p *Preview) FitWidth(available int) int {
	w := available
	if w < MinPreviewWidth {
		w = MinPreviewWidth
	}
	if w > MaxPreviewWidth {
		w = MaxPreviewWidth
	}
	p.mu.Lock()
	p.width = w
	p.mu.Unlock()
	return w
}

func (p *Preview) Width() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width
}

// Close cancels the pending debounce and discards any in-flight render.
func (p *Preview) Close() {
	p.debounce.CancelPending()
	p.mu.Lock()
	p.closed = true
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.state = PreviewIdle
	p.mu.Unlock()
}
