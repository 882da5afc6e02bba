package gmaps

import (
	"context"
	"strings"
	"time"

	"gmaps-scraper/browser"
	"gmaps-scraper/config"
	"gmaps-scraper/utils"
)

// stagnationLimit is how many consecutive scans may yield nothing new
// before the collector declares the feed exhausted. Transient render
// delays look identical to a truly finished feed, so a single stagnant
// iteration is not enough to stop.
const stagnationLimit = 5

// placePathMarker distinguishes real place links from navigation chrome.
const placePathMarker = "/maps/place/"

// CollectorOptions bound a single collection run.
type CollectorOptions struct {
	MaxResults        int
	MaxScrollAttempts int
	ScrollPause       time.Duration
}

// Collector drives scrolling and pagination on the results feed and
// accumulates place links in first-seen order without duplicates.
type Collector struct {
	session browser.Session
	limiter *utils.RateLimiter
	logger  *utils.Logger

	// winning link cascade, locked in on the first scan that returns
	// anything and reused for the rest of the run
	activeLinkSelector string
}

// NewCollector creates a Collector over the given session.
func NewCollector(session browser.Session, limiter *utils.RateLimiter, logger *utils.Logger) *Collector {
	return &Collector{session: session, limiter: limiter, logger: logger}
}

// Collect scans, scrolls and paginates until one of the stop conditions
// fires: five stagnant iterations, the target count reached, or the
// scroll-attempt ceiling hit. It returns whatever was collected; a
// short or empty result is not an error. Cancellation via ctx stops the
// loop early with the partial result.
func (c *Collector) Collect(ctx context.Context, opts CollectorOptions) []string {
	c.logger.Info("[collector] loading business listings...")

	maxAttempts := opts.MaxScrollAttempts
	if maxAttempts <= 0 {
		maxAttempts = 50
	}

	var links []string
	seen := utils.NewURLSet()
	scrollAttempts := 0
	stagnation := 0

	for {
		if ctx.Err() != nil {
			c.logger.Warn("[collector] collection cancelled, returning %d links", len(links))
			break
		}

		added := 0
		for _, link := range c.scanLinks() {
			if seen.Add(link) {
				links = append(links, link)
				added++
			}
		}

		if added > 0 {
			stagnation = 0
			c.logger.Info("[collector] found %d businesses so far...", len(links))
		} else {
			stagnation++
		}

		// Stop conditions, in priority order.
		if stagnation >= stagnationLimit {
			c.logger.Info("[collector] no more new results found")
			break
		}
		if opts.MaxResults > 0 && len(links) >= opts.MaxResults {
			c.logger.Info("[collector] reached target of %d businesses", opts.MaxResults)
			break
		}
		if scrollAttempts >= maxAttempts {
			c.logger.Warn("[collector] hit scroll attempt ceiling (%d)", maxAttempts)
			break
		}

		c.scrollResultsPanel()
		c.clickMoreResults()
		c.limiter.Wait(opts.ScrollPause)
		scrollAttempts++
	}

	if opts.MaxResults > 0 && len(links) > opts.MaxResults {
		links = links[:opts.MaxResults]
	}

	c.logger.Info("[collector] collected %d business listings", len(links))
	return links
}

// scanLinks reads place links from the current DOM. The first cascade
// entry that yields any results wins and is reused on later scans.
func (c *Collector) scanLinks() []string {
	selectors := config.BusinessLinkSelectors
	if c.activeLinkSelector != "" {
		selectors = []string{c.activeLinkSelector}
	}

	for _, sel := range selectors {
		hrefs, err := c.session.AttributeAll(sel, "href")
		if err != nil {
			c.logger.Debug("[collector] selector %q: %v", sel, err)
			continue
		}

		var links []string
		for _, href := range hrefs {
			if strings.Contains(href, placePathMarker) {
				links = append(links, href)
			}
		}
		if len(links) > 0 {
			c.activeLinkSelector = sel
			return links
		}
	}
	return nil
}

// scrollResultsPanel scrolls the results container to the bottom,
// falling back to a whole-page scroll when no container is found.
func (c *Collector) scrollResultsPanel() {
	for _, sel := range config.ResultsPanelSelectors {
		found, err := c.session.ScrollToBottom(sel)
		if err == nil && found {
			return
		}
	}

	if _, err := c.session.ScrollToBottom(""); err != nil {
		c.logger.Debug("[collector] error scrolling results panel: %v", err)
	}
}

// clickMoreResults presses a "more results" control when one is
// visible; some result layouts paginate instead of infinite-scrolling.
func (c *Collector) clickMoreResults() {
	for _, sel := range config.MoreResultsSelectors {
		clicked, err := c.session.Click(sel)
		if err == nil && clicked {
			c.logger.Debug("[collector] clicked more-results control %q", sel)
			return
		}
	}
}
