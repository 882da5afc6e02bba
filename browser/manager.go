package browser

import (
	"bufio"
	"context"
	"math/rand"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"gmaps-scraper/config"
	"gmaps-scraper/utils"
)

// userAgents is rotated when no fixed user agent is configured.
var userAgents = []string{
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// stealthScript hides the webdriver flag before any page script runs.
const stealthScript = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`

// Manager launches Chrome sessions with anti-detection flags and
// optional proxy rotation. One Manager can hand out many independent
// sessions; each session owns its own tab and allocator.
type Manager struct {
	cfg    *config.Config
	logger *utils.Logger

	mu         sync.Mutex
	proxies    []string
	proxyIndex int
}

// NewManager creates a Manager, loading the proxy list if enabled.
func NewManager(cfg *config.Config, logger *utils.Logger) *Manager {
	m := &Manager{cfg: cfg, logger: logger}
	m.loadProxies()
	return m
}

func (m *Manager) loadProxies() {
	if !m.cfg.UseProxy {
		return
	}

	f, err := os.Open(m.cfg.ProxyListFile)
	if err != nil {
		m.logger.Warn("[browser] could not load proxies: %v", err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			m.proxies = append(m.proxies, line)
		}
	}
	m.logger.Info("[browser] loaded %d proxies", len(m.proxies))
}

func (m *Manager) nextProxy() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.proxies) == 0 {
		return ""
	}
	proxy := m.proxies[m.proxyIndex]
	m.proxyIndex = (m.proxyIndex + 1) % len(m.proxies)
	return proxy
}

func (m *Manager) userAgent() string {
	if m.cfg.UserAgent != "" {
		return m.cfg.UserAgent
	}
	return userAgents[rand.Intn(len(userAgents))]
}

// Acquire starts a fresh browser session. The caller must Close it on
// every exit path.
func (m *Manager) Acquire(ctx context.Context) (Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", m.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("no-first-run", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(m.userAgent()),
	)

	if bin := m.chromeBinary(); bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}
	if proxy := m.nextProxy(); proxy != "" {
		m.logger.Info("[browser] using proxy: %s", proxy)
		opts = append(opts, chromedp.ProxyServer(proxy))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)

	// Suppress chromedp log noise
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelTab()
		cancelAlloc()
	}

	// Start the browser process and install the stealth hook before the
	// first navigation.
	err := chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
		return err
	}))
	if err != nil {
		cancel()
		return nil, err
	}

	return &chromeSession{
		ctx:         tabCtx,
		cancel:      cancel,
		loadTimeout: m.cfg.PageLoadTimeout,
		opTimeout:   m.cfg.BrowserTimeout,
	}, nil
}

// chromeBinary locates the Chrome/Chromium binary to launch.
func (m *Manager) chromeBinary() string {
	if m.cfg.ChromeBin != "" {
		return m.cfg.ChromeBin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// SettleDelay returns a randomized page-settle pause in [min, max].
func SettleDelay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
