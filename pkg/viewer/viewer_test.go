package viewer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

var quiet = log.New(io.Discard)

// fetchOpener plays the browser: it requests the page and sends the body.
func fetchOpener(t *testing.T, body chan<- string) Opener {
	return func(url string) error {
		go func() {
			resp, err := http.Get(url)
			if err != nil {
				t.Errorf("GET %s: %v", url, err)
				body <- ""
				return
			}
			defer resp.Body.Close()
			data, _ := io.ReadAll(resp.Body)
			body <- string(data)
		}()
		return nil
	}
}

func TestShowDeliversPage(t *testing.T) {
	body := make(chan string, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := Show(ctx, []byte("<html>figure</html>"), WithOpener(fetchOpener(t, body)), WithLogger(quiet))
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	select {
	case got := <-body:
		if got != "<html>figure</html>" {
			t.Errorf("body = %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("browser never received the page")
	}
}

func TestShowCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opener := func(string) error {
		cancel()
		return nil
	}

	err := Show(ctx, []byte("page"), WithOpener(opener), WithLogger(quiet))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestShowOpenerError(t *testing.T) {
	boom := errors.New("no browser")
	err := Show(context.Background(), []byte("page"), WithOpener(func(string) error { return boom }), WithLogger(quiet))
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestShowBadAddr(t *testing.T) {
	err := Show(context.Background(), []byte("page"), WithAddr("127.0.0.1:-1"), WithLogger(quiet))
	if err == nil || !strings.Contains(err.Error(), "listen") {
		t.Errorf("error = %v, want listen error", err)
	}
}

func TestRouter(t *testing.T) {
	served := make(chan struct{})
	h := newRouter([]byte("hello"), served)

	tests := []struct {
		method, path string
		wantStatus   int
	}{
		{http.MethodGet, "/favicon.ico", http.StatusNoContent},
		{http.MethodPost, "/", http.StatusMethodNotAllowed},
		{http.MethodGet, "/missing", http.StatusNotFound},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/", http.StatusOK},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.wantStatus {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
		}
	}

	select {
	case <-served:
	default:
		t.Error("served should be closed after the page was fetched")
	}
}

func TestRouterHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter([]byte("x"), make(chan struct{})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc == "" {
		t.Error("expected no-cache headers")
	}
}

func TestOpenBrowserRejectsScheme(t *testing.T) {
	if err := OpenBrowser("file:///etc/passwd"); err == nil {
		t.Error("expected error for file URL")
	}
}
