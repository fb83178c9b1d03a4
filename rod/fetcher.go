// Package rod provides a headless Chrome implementation of
// newsbrowse.Fetcher for pages that render their listings with JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/newsbrowse"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxPages is the number of pages served before the browser is
// relaunched. Chrome's memory baseline grows under sustained load and never
// returns to its initial level.
const DefaultMaxPages = 75

// Ensure Fetcher implements newsbrowse.Fetcher at compile time.
var _ newsbrowse.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation. Image
// requests are blocked. Fetcher is safe for concurrent use.
type Fetcher struct {
	timeout  time.Duration
	maxPages int64

	mu      sync.Mutex
	current *instance
	retired sync.WaitGroup
	closed  atomic.Bool
}

// instance is one launched browser. It is closed once it has been replaced
// and its last open page has finished.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	served   int64
	inflight sync.WaitGroup
}

func (in *instance) close() error {
	err := in.browser.Close()
	in.launcher.Kill()
	return err
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout of a single page load.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets the number of pages served before the browser is
// relaunched.
func WithMaxPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	in, err := launch()
	if err != nil {
		return nil, err
	}
	f.current = in
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", newsbrowse.Errorf(newsbrowse.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	in, err := f.acquire()
	if err != nil {
		return "", err
	}
	defer in.inflight.Done()

	page, err := in.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	router := page.HijackRequests()
	if err := router.Add("*", proto.NetworkResourceTypeImage, func(h *rod.Hijack) {
		h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
	}); err != nil {
		return "", fmt.Errorf("block images: %w", err)
	}
	go router.Run()
	defer func() { _ = router.Stop() }()

	p := page.Context(ctx).Timeout(f.timeout)

	if err := p.Navigate(url); err != nil {
		return "", err
	}
	if err := p.WaitLoad(); err != nil {
		return "", err
	}

	return p.HTML()
}

// Close releases browser resources. A browser replaced after serving
// maxPages pages is waited for as well. Close is safe to call multiple
// times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.mu.Lock()
	in := f.current
	f.current = nil
	f.mu.Unlock()

	var err error
	if in != nil {
		in.inflight.Wait()
		err = in.close()
	}
	f.retired.Wait()
	return err
}

// LauncherPID returns the process ID of the browser launcher, or zero once
// closed.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return 0
	}
	return f.current.launcher.PID()
}

// acquire returns the browser to open the next page on and registers the
// page as in flight. Once the browser has served maxPages pages a new one
// is launched and the old one is closed after its open pages finish. If the
// relaunch fails the old browser is kept.
func (f *Fetcher) acquire() (*instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current == nil {
		return nil, newsbrowse.Errorf(newsbrowse.EINVALID, "fetcher is closed")
	}

	if f.maxPages > 0 && f.current.served >= f.maxPages {
		if next, err := launch(); err == nil {
			old := f.current
			f.current = next
			f.retired.Add(1)
			go func() {
				defer f.retired.Done()
				old.inflight.Wait()
				_ = old.close()
			}()
		}
	}

	f.current.served++
	f.current.inflight.Add(1)
	return f.current, nil
}

// launch starts a browser with stability flags.
func launch() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("blink-settings", "imagesEnabled=false").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &instance{browser: browser, launcher: l}, nil
}
