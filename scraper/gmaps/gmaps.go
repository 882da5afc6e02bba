package gmaps

import (
	"context"
	"fmt"
	"time"

	"gmaps-scraper/browser"
	"gmaps-scraper/config"
	"gmaps-scraper/models"
	"gmaps-scraper/utils"
)

const googleMapsURL = "https://www.google.com/maps"

// Saver persists a finished record set in the configured formats and
// returns a format→path map. Implementations live in the storage
// package; the pipeline only sees this interface.
type Saver interface {
	Save(businesses []*models.Business, query string) (map[string]string, error)
}

// SessionProvider hands out browser sessions. The pipeline acquires
// exactly one per run and guarantees it is closed on every exit path.
type SessionProvider interface {
	Acquire(ctx context.Context) (browser.Session, error)
}

// Scraper sequences one full scrape run: open results, collect listing
// links, visit each place page, extract, accumulate, persist.
type Scraper struct {
	cfg      *config.Config
	logger   *utils.Logger
	provider SessionProvider
	saver    Saver
	limiter  *utils.RateLimiter
	retry    *utils.RetryConfig

	scraped []*models.Business
	failed  []string
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger, provider SessionProvider, saver Saver) *Scraper {
	return &Scraper{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		saver:    saver,
		limiter:  utils.NewRateLimiter(cfg.MinDelay, cfg.MaxDelay, logger),
		retry: &utils.RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Scrape runs the full pipeline for one query. Failure to reach Google
// Maps or to submit the search is fatal; per-place failures are counted
// and skipped. Cancelling ctx stops the run early, saves whatever was
// collected with an "_interrupted" suffix, and is not reported as an
// error.
func (s *Scraper) Scrape(ctx context.Context, query string, maxResults int) ([]*models.Business, error) {
	if maxResults <= 0 {
		maxResults = s.cfg.MaxBusinesses
	}

	s.logger.Info("[gmaps] starting scrape for: %q", query)
	s.logger.Info("[gmaps] target: %d businesses", maxResults)

	session, err := s.provider.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire browser session: %w", err)
	}
	defer session.Close()

	if err := s.openSearchResults(session, query); err != nil {
		return nil, err
	}

	collector := NewCollector(session, s.limiter, s.logger)
	links := collector.Collect(ctx, CollectorOptions{
		MaxResults:        maxResults,
		MaxScrollAttempts: s.cfg.MaxScrollAttempts,
		ScrollPause:       s.cfg.ScrollPause,
	})

	if len(links) == 0 {
		s.logger.Warn("[gmaps] no business listings found")
		return nil, nil
	}

	s.logger.Info("[gmaps] found %d business listings", len(links))

	interrupted := s.visitPlaces(ctx, session, links, query)

	if len(s.scraped) > 0 {
		suffix := ""
		if interrupted {
			suffix = "_interrupted"
		}
		s.saveResults(query, suffix)
	}

	s.logSummary()
	return s.scraped, nil
}

// Summary returns the per-item accounting for the last run.
func (s *Scraper) Summary(query string) models.RunSummary {
	return models.RunSummary{
		Query:     query,
		Succeeded: len(s.scraped),
		Failed:    len(s.failed),
	}
}

// FailedLinks returns the place links that did not yield a usable record.
func (s *Scraper) FailedLinks() []string { return s.failed }

// openSearchResults navigates to Google Maps and submits the query.
// Both steps are fatal on timeout because nothing downstream can
// proceed without a results feed.
func (s *Scraper) openSearchResults(session browser.Session, query string) error {
	s.logger.Info("[gmaps] navigating to Google Maps...")

	err := s.retry.Do("open-google-maps", func() error {
		if err := session.Navigate(googleMapsURL); err != nil {
			return err
		}
		s.dismissConsent(session)
		return session.WaitVisible(config.SearchBox, 20*time.Second)
	})
	if err != nil {
		return fmt.Errorf("google maps did not load: %w", err)
	}

	s.logger.Info("[gmaps] searching for: %q", query)

	// Human-like pause before typing.
	time.Sleep(browser.SettleDelay(s.cfg.MinDelay, s.cfg.MaxDelay))

	if err := session.SendKeys(config.SearchBox, query+"\n"); err != nil {
		return fmt.Errorf("submit search: %w", err)
	}

	if err := session.WaitVisible(config.ResultsPanel, 15*time.Second); err != nil {
		return fmt.Errorf("search results did not appear: %w", err)
	}

	// Let the feed finish its first render.
	time.Sleep(s.cfg.ScrollPause)

	s.logger.Info("[gmaps] search completed successfully")
	return nil
}

// dismissConsent clicks through the cookie interstitial when present.
// Best-effort: a missing banner is the common case.
func (s *Scraper) dismissConsent(session browser.Session) {
	for _, sel := range config.ConsentButtonSelectors {
		if clicked, err := session.Click(sel); err == nil && clicked {
			s.logger.Debug("[gmaps] dismissed consent banner")
			return
		}
	}
}

// visitPlaces extracts data from each place page in order. It returns
// true when the run was cancelled part-way.
func (s *Scraper) visitPlaces(ctx context.Context, session browser.Session, links []string, query string) bool {
	s.logger.Info("[gmaps] extracting data from %d businesses...", len(links))

	extractor := NewExtractor(session, s.logger)

	for i, link := range links {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("[gmaps] scrape interrupted after %d/%d businesses", i, len(links))
			return true
		}

		s.logger.Info("[gmaps] processing business %d/%d", i+1, len(links))

		if err := session.Navigate(link); err != nil {
			s.logger.Error("[gmaps] error loading business %d: %v", i+1, err)
			s.failed = append(s.failed, link)
			s.limiter.Wait()
			continue
		}

		s.settle(session)

		business := extractor.Extract(query)
		if business != nil && business.Name != "" {
			business.GoogleMapsURL = link
			s.scraped = append(s.scraped, business)
			s.logger.Info("[gmaps] %d: %s", i+1, business.Name)
		} else {
			s.failed = append(s.failed, link)
			s.logger.Warn("[gmaps] %d: failed to extract data from %s", i+1, link)
		}

		s.limiter.Wait()
	}
	return false
}

// settle waits for a place page to render. Waiting on the title element
// keeps slow cold pages from being misread as empty; when the title
// never shows, fall back to a randomized pause before extracting what
// little there is.
func (s *Scraper) settle(session browser.Session) {
	if err := session.WaitVisible(config.PlaceTitle, 10*time.Second); err == nil {
		return
	}
	time.Sleep(browser.SettleDelay(s.cfg.ScrollPause, 2*s.cfg.ScrollPause))
}

func (s *Scraper) saveResults(query, suffix string) {
	s.logger.Info("[gmaps] saving results...")

	saved, err := s.saver.Save(s.scraped, query+suffix)
	if err != nil {
		s.logger.Error("[gmaps] error saving results: %v", err)
		return
	}
	for format, path := range saved {
		s.logger.Info("[gmaps] saved %s: %s", format, path)
	}
}

func (s *Scraper) logSummary() {
	total := len(s.scraped) + len(s.failed)
	rate := 0.0
	if total > 0 {
		rate = float64(len(s.scraped)) / float64(total) * 100
	}

	s.logger.Info("==================================================")
	s.logger.Info("SCRAPING SUMMARY")
	s.logger.Info("  successfully scraped: %d businesses", len(s.scraped))
	s.logger.Info("  failed to scrape:     %d businesses", len(s.failed))
	s.logger.Info("  success rate:         %.1f%%", rate)
	s.logger.Info("==================================================")
}
