package diagram

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"consult/internal/logging"
)

const renderShell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body><div id="out"></div></body>
</html>`

// BrowserEngine renders diagrams in a headless browser page. The
// browser is launched lazily on the first Render and reused until
// Close; every Render runs in its own incognito page so one broken
// diagram cannot poison the next.
type BrowserEngine struct {
	mu      sync.Mutex
	browser *rod.Browser

	// ScriptURL points at the diagram library to inject. Defaults to
	// the pinned CDN build.
	ScriptURL string
}

const defaultScriptURL = "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.min.js"

func NewBrowserEngine() *BrowserEngine {
	return &BrowserEngine{ScriptURL: defaultScriptURL}
}

func (e *BrowserEngine) ensureStarted(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser != nil {
		if _, err := e.browser.Version(); err == nil {
			return nil
		}
		logging.UIWarn("stale browser connection, relaunching")
		_ = e.browser.Close()
		e.browser = nil
	}

	url, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	browser := rod.New().ControlURL(url).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to browser: %w", err)
	}
	e.browser = browser
	return nil
}

// Render implements Engine. Grammar failures reported by the library
// come back as *SyntaxError; infrastructure failures (no browser, no
// network for the script) come back as plain errors.
func (e *BrowserEngine) Render(ctx context.Context, source string) (string, error) {
	if lintErr := Lint(source); lintErr != nil {
		return "", lintErr
	}
	if err := e.ensureStarted(ctx); err != nil {
		return "", err
	}

	page, err := e.newPage(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = page.Close() }()

	if _, err := page.Eval(`url => new Promise((ok, fail) => {
		const s = document.createElement('script');
		s.src = url;
		s.onload = ok;
		s.onerror = () => fail(new Error('script load failed'));
		document.head.appendChild(s);
	})`, e.ScriptURL); err != nil {
		return "", fmt.Errorf("load diagram library: %w", err)
	}

	res, err := page.Eval(`async (src) => {
		mermaid.initialize({ startOnLoad: false, securityLevel: 'strict' });
		try {
			const { svg } = await mermaid.render('out-svg', src);
			return { svg: svg, error: '' };
		} catch (err) {
			return { svg: '', error: String(err.message || err) };
		}
	}`, source)
	if err != nil {
		return "", fmt.Errorf("render diagram: %w", err)
	}

	var out struct {
		SVG   string `json:"svg"`
		Error string `json:"error"`
	}
	if err := res.Value.Unmarshal(&out); err != nil {
		return "", fmt.Errorf("decode render result: %w", err)
	}
	if out.Error != "" {
		return "", &SyntaxError{Message: renderMessage(out.Error)}
	}
	return out.SVG, nil
}

// Preview opens content in a visible (headed) browser window. Used by
// the open command; the window outlives the call and is closed by the
// user, so it gets its own launcher instead of the shared headless one.
func (e *BrowserEngine) Preview(ctx context.Context, htmlContent string) error {
	url, err := launcher.New().Headless(false).Launch()
	if err != nil {
		return fmt.Errorf("launch preview browser: %w", err)
	}
	browser := rod.New().ControlURL(url).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect preview browser: %w", err)
	}
	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fmt.Errorf("open preview page: %w", err)
	}
	if err := page.SetDocumentContent(htmlContent); err != nil {
		return fmt.Errorf("set preview content: %w", err)
	}
	return nil
}

func (e *BrowserEngine) newPage(ctx context.Context) (*rod.Page, error) {
	e.mu.Lock()
	browser := e.browser
	e.mu.Unlock()

	incognito, err := browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("incognito context: %w", err)
	}
	page, err := incognito.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	page = page.Context(ctx)
	if err := page.SetDocumentContent(renderShell); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("prime page: %w", err)
	}
	return page, nil
}

// Close shuts the shared browser down. Safe to call without a prior
// Render.
func (e *BrowserEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser == nil {
		return nil
	}
	err := e.browser.Close()
	e.browser = nil
	return err
}

// renderMessage trims the library's multi-line error dumps down to the
// first meaningful line for the inline error panel.
func renderMessage(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return "render failed"
}
