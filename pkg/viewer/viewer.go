// Package viewer shows a rendered page in the user's browser.
//
// [Show] serves the page from a loopback HTTP server on an ephemeral port,
// opens the browser at it, and returns once the page has been delivered or
// the context is cancelled. Nothing is reachable from other machines.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// DefaultAddr binds to a free loopback port.
	DefaultAddr = "127.0.0.1:0"

	// DefaultShutdownTimeout bounds how long in-flight requests may finish
	// after the page was delivered.
	DefaultShutdownTimeout = 5 * time.Second
)

// Opener launches a browser at url.
type Opener func(url string) error

// Option configures a [Viewer].
type Option func(*Viewer)

// WithAddr sets the listen address. It should stay on a loopback interface.
func WithAddr(addr string) Option { return func(v *Viewer) { v.addr = addr } }

// WithOpener replaces the system browser launcher.
func WithOpener(o Opener) Option { return func(v *Viewer) { v.open = o } }

// WithLogger sets the logger for server events.
func WithLogger(l *log.Logger) Option { return func(v *Viewer) { v.logger = l } }

// WithShutdownTimeout sets the graceful shutdown timeout.
func WithShutdownTimeout(d time.Duration) Option {
	return func(v *Viewer) { v.shutdownTimeout = d }
}

// Viewer serves a single page to the local browser.
type Viewer struct {
	addr            string
	open            Opener
	logger          *log.Logger
	shutdownTimeout time.Duration
}

// New creates a viewer that opens the system browser.
func New(opts ...Option) *Viewer {
	v := &Viewer{
		addr:            DefaultAddr,
		open:            OpenBrowser,
		logger:          log.Default(),
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Show is shorthand for New(opts...).Show(ctx, page).
func Show(ctx context.Context, page []byte, opts ...Option) error {
	return New(opts...).Show(ctx, page)
}

// Show serves page at the root path and opens the browser. It blocks
// until the page has been fetched once or ctx is done.
func (v *Viewer) Show(ctx context.Context, page []byte) error {
	ln, err := net.Listen("tcp", v.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", v.addr, err)
	}

	served := make(chan struct{})
	srv := &http.Server{
		Handler:           newRouter(page, served),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	pageURL := "http://" + ln.Addr().String() + "/"
	v.logger.Debug("serving figure", "url", pageURL)
	if err := v.open(pageURL); err != nil {
		v.shutdown(srv)
		return fmt.Errorf("open browser: %w", err)
	}

	select {
	case <-served:
		v.logger.Debug("figure delivered")
	case err := <-errCh:
		return fmt.Errorf("serve figure: %w", err)
	case <-ctx.Done():
		v.shutdown(srv)
		return ctx.Err()
	}
	return v.shutdown(srv)
}

func (v *Viewer) shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), v.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown viewer: %w", err)
	}
	return nil
}

// newRouter serves page at "/" and closes served after the first
// successful delivery.
func newRouter(page []byte, served chan<- struct{}) http.Handler {
	var once sync.Once
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(page); err != nil {
			return
		}
		once.Do(func() { close(served) })
	})
	r.Get("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// OpenBrowser opens rawURL with the platform's default handler.
func OpenBrowser(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("URL scheme must be http or https, got %q", parsed.Scheme)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
