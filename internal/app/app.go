// Package app runs the scrollview pager: it wires the terminal backend,
// the event loop, the dom, the scroll area, configuration with live
// reload and the session store together and manages their lifecycle.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dshills/scrollarea/internal/config"
	"github.com/dshills/scrollarea/internal/config/watcher"
	"github.com/dshills/scrollarea/internal/document"
	"github.com/dshills/scrollarea/internal/logging"
	"github.com/dshills/scrollarea/internal/loop"
	"github.com/dshills/scrollarea/internal/renderer/backend"
	"github.com/dshills/scrollarea/internal/scrollarea"
	"github.com/dshills/scrollarea/internal/session"
)

// StdinName is the display name of content read from standard input.
const StdinName = "[stdin]"

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty selects
	// DefaultConfigPath.
	ConfigPath string

	// File is the file to show. Empty reads Input instead.
	File  string
	Input io.Reader

	// LogLevel overrides the configured level when set.
	LogLevel string

	// Plain disables syntax highlighting.
	Plain bool

	// Lexer forces a highlighting lexer by name.
	Lexer string

	// NoSession disables restoring and saving the scroll offset.
	NoSession bool

	// NoWatch disables configuration live reload.
	NoWatch bool
}

// Application is the central coordinator for all pager components.
type Application struct {
	mu sync.Mutex

	opts    Options
	config  *config.Config
	log     *logging.Logger
	closers []io.Closer

	content *document.Document
	name    string
	store   *session.Store
	backend backend.Backend

	cancel  context.CancelFunc
	running atomic.Bool
}

// DefaultConfigPath returns the configuration file under the user config
// dir, or "" when that dir is unknown.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "scrollview", "config.toml")
}

// New loads configuration and content and opens the session store.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		app.closeAll()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	if app.opts.ConfigPath == "" {
		app.opts.ConfigPath = DefaultConfigPath()
	}

	// 1. Config
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if app.opts.LogLevel != "" {
		if !logging.ValidLevel(app.opts.LogLevel) {
			return &InitError{Component: "logging", Err: errors.New("invalid log level " + app.opts.LogLevel)}
		}
		cfg.Logging.Level = app.opts.LogLevel
	}
	app.config = cfg

	// 2. Logging
	app.log = logging.Null()
	if cfg.Logging.File != "" {
		l, c, err := logging.NewFile(cfg.Logging.File, cfg.LogLevel())
		if err != nil {
			return &InitError{Component: "logging", Err: err}
		}
		app.log = l
		app.closers = append(app.closers, c)
	}
	logging.SetDefault(app.log)
	app.log = app.log.WithComponent("app")

	// 3. Content
	docOpts := []document.Option{document.WithHighlight(!app.opts.Plain)}
	if app.opts.Lexer != "" {
		docOpts = append(docOpts, document.WithLexer(app.opts.Lexer))
	}
	if app.opts.File != "" {
		doc, err := document.Load(app.opts.File, docOpts...)
		if err != nil {
			return &InitError{Component: "document", Err: err}
		}
		app.content = doc
		app.name = app.opts.File
	} else {
		in := app.opts.Input
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return &InitError{Component: "document", Err: err}
		}
		app.content = document.New(StdinName, string(data), docOpts...)
		app.name = StdinName
	}

	// 4. Session, only for files; failures are not fatal.
	if cfg.Session.Enabled && !app.opts.NoSession && app.opts.File != "" {
		if store, err := app.openSession(); err != nil {
			app.log.Warn("%v", &ComponentError{Component: "session", Action: "open", Err: err})
		} else {
			app.store = store
			app.closers = append(app.closers, store)
		}
	}
	return nil
}

func (app *Application) openSession() (*session.Store, error) {
	path := app.config.Session.Path
	if path == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return session.Open(path)
}

// SetBackend sets the terminal to draw on. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run shows the pager until the user quits, ctx ends or Shutdown is
// called. A user quit returns ErrQuit.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.backend == nil {
		return &InitError{Component: "backend", Err: ErrNoBackend}
	}
	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.mu.Lock()
	app.cancel = cancel
	app.mu.Unlock()

	l := loop.New()
	defer l.Close()

	pager, err := newPager(l, app.backend, app.config, app.content, app.name, app.log)
	if err != nil {
		return &InitError{Component: "scroll area", Err: err}
	}
	defer pager.Close()
	app.restoreOffset(ctx, pager)
	defer app.saveOffset(pager)

	if w := app.startWatcher(l, pager); w != nil {
		defer w.Close()
	}

	var quitErr error
	go app.pollInput(l, func(ev backend.Event) {
		if err := pager.HandleEvent(ev); err != nil {
			quitErr = err
			cancel()
		}
	})

	err = l.Run(ctx)
	switch {
	case quitErr != nil:
		return quitErr
	case errors.Is(err, context.Canceled), errors.Is(err, loop.ErrClosed):
		return nil
	}
	return err
}

// pollInput forwards backend events to the loop until the backend closes
// or the loop stops accepting tasks.
func (app *Application) pollInput(l *loop.Loop, handle func(backend.Event)) {
	for {
		ev := app.backend.PollEvent()
		if !l.Post(func() { handle(ev) }) {
			return
		}
		if ev.Type == backend.EventClosed {
			return
		}
	}
}

// startWatcher reloads the configuration file when it changes. It returns
// nil when live reload is off or the file's directory does not exist.
func (app *Application) startWatcher(l *loop.Loop, pager *Pager) *watcher.Watcher {
	path := app.opts.ConfigPath
	if app.opts.NoWatch || path == "" {
		return nil
	}
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		app.log.Warn("config watcher: %v", err)
	}))
	if err != nil {
		app.log.Warn("config watcher: %v", err)
		return nil
	}
	if err := w.Watch(path); err != nil {
		app.log.Debug("not watching %s: %v", path, err)
		_ = w.Close()
		return nil
	}
	w.OnChange(func(ev watcher.Event) {
		cfg, err := config.Load(path)
		l.Post(func() {
			if err == nil && app.opts.LogLevel != "" {
				cfg.Logging.Level = app.opts.LogLevel
			}
			pager.ApplyConfig(cfg, err)
		})
	})
	return w
}

func (app *Application) restoreOffset(ctx context.Context, pager *Pager) {
	if app.store == nil {
		return
	}
	off, ok, err := app.store.Get(ctx, app.content.Path())
	if err != nil {
		app.log.Warn("%v", &ComponentError{Component: "session", Action: "restore", Err: err})
		return
	}
	if ok {
		pager.ScrollTo(scrollarea.Coords{X: off.X, Y: off.Y})
	}
}

func (app *Application) saveOffset(pager *Pager) {
	if app.store == nil {
		return
	}
	off := pager.Area().Offset()
	if err := app.store.Put(context.Background(), app.content.Path(), off.X, off.Y); err != nil {
		app.log.Warn("%v", &ComponentError{Component: "session", Action: "save", Err: err})
	}
}

// Shutdown stops a running Run. Safe to call from any goroutine.
func (app *Application) Shutdown() {
	app.mu.Lock()
	cancel := app.cancel
	app.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Close releases the session store and log file.
func (app *Application) Close() error {
	app.Shutdown()
	return app.closeAll()
}

func (app *Application) closeAll() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	return errors.Join(errs...)
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Content returns the document being shown.
func (app *Application) Content() *document.Document {
	return app.content
}
