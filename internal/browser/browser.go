// Package browser drives Chrome through the DevTools protocol to open the
// test server for manual checks and to capture screenshots at responsive
// breakpoints under different user agents.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// ErrInvalidURL is returned for URLs without a scheme or host.
var ErrInvalidURL = errors.New("invalid URL")

// Profile is a browser identity emulated through its user agent.
type Profile struct {
	Name      string
	UserAgent string
	Mobile    bool
}

var profiles = []Profile{
	{Name: "chrome", UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"},
	{Name: "firefox", UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0"},
	{Name: "safari", UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Safari/605.1.15"},
	{Name: "edge", UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36 Edg/91.0.864.59"},
	{Name: "ipad", UserAgent: "Mozilla/5.0 (iPad; CPU OS 14_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.1.1 Mobile/15E148 Safari/604.1", Mobile: true},
}

// Profiles returns the known browser profiles.
func Profiles() []Profile {
	return append([]Profile(nil), profiles...)
}

// ProfileByName looks up a profile case-insensitively.
func ProfileByName(name string) (Profile, error) {
	for _, p := range profiles {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown browser profile %q", name)
}

// Breakpoint is a viewport size.
type Breakpoint struct {
	Name   string
	Width  int64
	Height int64
}

// Breakpoints returns the responsive breakpoints screenshots are taken at.
func Breakpoints() []Breakpoint {
	return []Breakpoint{
		{Name: "mobile", Width: 375, Height: 667},
		{Name: "tablet", Width: 768, Height: 1024},
		{Name: "desktop", Width: 1366, Height: 768},
	}
}

// ValidateURL parses raw and requires both a scheme and a host.
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidURL, raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	return u, nil
}

// Options configure the Chrome process.
type Options struct {
	// ExecPath overrides Chrome discovery.
	ExecPath string
	Logger   *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func allocator(ctx context.Context, headless bool, o Options) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", headless),
	)
	if o.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(o.ExecPath))
	}
	return chromedp.NewExecAllocator(ctx, opts...)
}

// Open launches a visible Chrome with one tab per desktop profile, each
// tab presenting that profile's user agent. The browser stays open until
// ctx is done or the returned function is called.
func Open(ctx context.Context, rawURL string, o Options) (func(), error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	allocCtx, allocCancel := allocator(ctx, false, o)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	cancels := []context.CancelFunc{allocCancel, browserCancel}
	closeAll := func() {
		for i := len(cancels) - 1; i >= 0; i-- {
			cancels[i]()
		}
	}

	opened := 0
	for _, p := range profiles {
		if p.Mobile {
			continue
		}
		tabCtx := browserCtx
		if opened > 0 {
			var tabCancel context.CancelFunc
			tabCtx, tabCancel = chromedp.NewContext(browserCtx)
			cancels = append(cancels, tabCancel)
		}
		if err := chromedp.Run(tabCtx,
			emulation.SetUserAgentOverride(p.UserAgent),
			chromedp.Navigate(u.String()),
		); err != nil {
			if opened == 0 {
				closeAll()
				return nil, fmt.Errorf("opening %s: %w", p.Name, err)
			}
			o.logger().Warn("browser tab failed", "profile", p.Name, "error", err)
			continue
		}
		opened++
		o.logger().Info("opened in browser", "profile", p.Name, "url", u.String())
	}
	return closeAll, nil
}

// Shot is one captured screenshot.
type Shot struct {
	Profile    string
	Breakpoint Breakpoint
	Path       string
}

// ShotName is the file name of the screenshot for a profile and breakpoint.
func ShotName(p Profile, b Breakpoint) string {
	return fmt.Sprintf("%s-%s-%dx%d.png", p.Name, b.Name, b.Width, b.Height)
}

// Capture loads rawURL headlessly at every breakpoint for each profile and
// writes PNG screenshots into dir. With no profiles, chrome is used.
func Capture(ctx context.Context, rawURL, dir string, o Options, use ...Profile) ([]Shot, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}
	if len(use) == 0 {
		use = profiles[:1]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating screenshot dir: %w", err)
	}

	allocCtx, allocCancel := allocator(ctx, true, o)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var shots []Shot
	for _, p := range use {
		for _, b := range Breakpoints() {
			var buf []byte
			viewport := []chromedp.EmulateViewportOption{}
			if p.Mobile {
				viewport = append(viewport, chromedp.EmulateMobile, chromedp.EmulateTouch)
			}
			if err := chromedp.Run(browserCtx,
				emulation.SetUserAgentOverride(p.UserAgent),
				chromedp.EmulateViewport(b.Width, b.Height, viewport...),
				chromedp.Navigate(u.String()),
				chromedp.WaitReady("body", chromedp.ByQuery),
				chromedp.CaptureScreenshot(&buf),
			); err != nil {
				return shots, fmt.Errorf("capturing %s at %s: %w", p.Name, b.Name, err)
			}

			path := filepath.Join(dir, ShotName(p, b))
			if err := os.WriteFile(path, buf, 0644); err != nil {
				return shots, fmt.Errorf("writing screenshot: %w", err)
			}
			o.logger().Debug("screenshot captured", "profile", p.Name, "breakpoint", b.Name, "path", path)
			shots = append(shots, Shot{Profile: p.Name, Breakpoint: b, Path: path})
		}
	}
	return shots, nil
}
