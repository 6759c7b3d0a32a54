package app

import (
	"fmt"
	"math"

	"github.com/dshills/scrollarea/internal/config"
	"github.com/dshills/scrollarea/internal/dom"
	"github.com/dshills/scrollarea/internal/logging"
	"github.com/dshills/scrollarea/internal/renderer"
	"github.com/dshills/scrollarea/internal/renderer/backend"
	"github.com/dshills/scrollarea/internal/renderer/core"
	"github.com/dshills/scrollarea/internal/renderer/statusline"
	"github.com/dshills/scrollarea/internal/scrollarea"
	"github.com/dshills/scrollarea/internal/widget"
)

// Host is the loop the pager runs on. loop.Loop serves the terminal and
// loop.Manual serves tests.
type Host interface {
	scrollarea.Scheduler
	widget.Flusher
}

// Pager shows one document in a full-screen scroll area with a status
// line on the bottom row. All methods must be called on the host loop.
type Pager struct {
	host    Host
	out     backend.Backend
	log     *logging.Logger
	content renderer.ContentSource
	width   int

	doc     *dom.Document
	area    *widget.ScrollArea
	painter *renderer.Painter
	status  *statusline.StatusLine
	mouse   backend.MouseTracker

	unwatch   func()
	dirty     bool
	rendering bool
	closed    bool
}

// ContentSource is the content a Pager shows.
type ContentSource interface {
	renderer.ContentSource

	// Width returns the widest line in cells.
	Width() int
}

func newPager(host Host, out backend.Backend, cfg *config.Config, content ContentSource, name string, log *logging.Logger) (*Pager, error) {
	if log == nil {
		log = logging.Null()
	}
	p := &Pager{
		host:    host,
		out:     out,
		log:     log.WithComponent("pager"),
		content: content,
		width:   content.Width(),
		doc:     dom.NewDocument(host, log),
		painter: renderer.NewPainter(out, cfg.RendererTheme(renderer.DefaultTheme())),
		status:  statusline.New(),
	}
	p.status.SetFilename(name)
	p.resize()

	area, err := widget.New(p.doc, p.doc.Body(), host, widget.Options{
		Direction:     cfg.ScrollArea.Direction,
		Threshold:     cfg.ScrollArea.Threshold,
		ScrollTimeout: cfg.ScrollArea.ScrollTimeout,
		MinThumbSize:  cfg.ScrollArea.MinThumbSize,
		KeepMounted:   cfg.ScrollArea.KeepMounted,
	})
	if err != nil {
		return nil, err
	}
	p.area = area
	area.Focus()
	p.unwatch = area.Root().Watch(func(scrollarea.State) { p.invalidate() })
	p.render()
	return p, nil
}

// Area returns the scroll area.
func (p *Pager) Area() *widget.ScrollArea { return p.area }

// Status returns the status line.
func (p *Pager) Status() *statusline.StatusLine { return p.status }

// ScrollTo moves the view and repaints.
func (p *Pager) ScrollTo(c scrollarea.Coords) {
	p.area.ScrollTo(c)
	p.render()
}

// ApplyConfig applies a reloaded configuration. The threshold, theme and
// log level take effect immediately; the other scroll area settings are
// fixed when the area is built.
func (p *Pager) ApplyConfig(cfg *config.Config, err error) {
	if err != nil {
		p.status.SetMessage(fmt.Sprintf("config: %v", err), statusline.MessageError)
		p.log.Warn("config reload failed: %v", err)
		p.invalidate()
		return
	}
	p.area.Root().SetOverflowEdgeThreshold(cfg.ScrollArea.Threshold)
	p.painter.SetTheme(cfg.RendererTheme(renderer.DefaultTheme()))
	p.log.SetLevel(cfg.LogLevel())
	p.status.SetMessage("config reloaded", statusline.MessageInfo)
	p.log.Info("config reloaded from %s", cfg.Source)
	p.invalidate()
}

// invalidate schedules one render for the end of the current task.
func (p *Pager) invalidate() {
	if p.dirty || p.rendering || p.closed {
		return
	}
	p.dirty = true
	p.host.Queue(p.render)
}

func (p *Pager) resize() {
	w, h := p.out.Size()
	p.doc.Body().SetBounds(scrollarea.Rect{Width: float64(w), Height: float64(h)})
}

func (p *Pager) viewRect() core.Rect {
	w, h := p.out.Size()
	return core.Rect{Width: w, Height: max(0, h-1)}
}

// render settles the layout and paints the whole screen.
func (p *Pager) render() {
	if p.closed {
		return
	}
	p.rendering = true
	defer func() {
		p.rendering = false
		p.dirty = false
	}()

	view := p.viewRect()
	p.area.Frame(view, p.width, p.content.LineCount())

	p.out.Clear()
	p.painter.Paint(p.area.Parts(), p.content)
	if _, h := p.out.Size(); h > 0 {
		p.updateStatus(view)
		p.status.Render(p.out, h-1, view.Width)
	}
	p.out.Show()
}

func (p *Pager) updateStatus(view core.Rect) {
	vp := p.area.Parts().Viewport
	total := p.content.LineCount()
	top := int(math.Round(vp.ScrollTop()))
	first, last := min(total, top+1), min(total, top+view.Height)
	p.status.SetRange(first, last, total)

	percent := 100
	if limit := vp.ScrollHeight() - vp.ClientHeight(); limit > 0 {
		percent = int(math.Round(vp.ScrollTop() / limit * 100))
	}
	p.status.SetPercent(percent)

	st := p.area.State()
	var flags []string
	if _, ok := p.area.Root().Dragging(); ok {
		flags = append(flags, "drag")
	} else if st.ScrollingX || st.ScrollingY {
		flags = append(flags, "scroll")
	}
	if st.Hovering {
		flags = append(flags, "hover")
	}
	p.status.SetFlags(flags...)
}

// Close tears the scroll area down. Safe to call more than once.
func (p *Pager) Close() {
	if p.closed {
		return
	}
	p.closed = true
	if p.unwatch != nil {
		p.unwatch()
	}
	p.area.Close()
}
