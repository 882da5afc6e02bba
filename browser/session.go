package browser

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"
)

// Session is the browser surface the scraper core consumes. Methods that
// query the DOM report "no match" as empty results, not errors, so a
// missing element never aborts a selector cascade.
type Session interface {
	// Navigate loads the given URL and waits for the document to be ready.
	Navigate(url string) error
	// Location returns the current page URL.
	Location() (string, error)
	// WaitVisible blocks until the selector matches a visible element or
	// the timeout elapses.
	WaitVisible(selector string, timeout time.Duration) error
	// SendKeys clears the first matching input and types text into it.
	// A trailing "\n" submits like pressing Enter.
	SendKeys(selector, text string) error
	// Text returns the trimmed inner text of the first match, or "".
	Text(selector string) (string, error)
	// TextAll returns the trimmed non-empty texts of up to limit matches
	// (limit <= 0 means unbounded).
	TextAll(selector string, limit int) ([]string, error)
	// Attribute returns the named attribute of the first match, or "".
	// For "href" the resolved absolute URL is preferred.
	Attribute(selector, name string) (string, error)
	// AttributeAll returns the named attribute of every match, skipping
	// elements where it is empty.
	AttributeAll(selector, name string) ([]string, error)
	// Click scrolls the first match into view and clicks it. Returns
	// false when no enabled match exists.
	Click(selector string) (bool, error)
	// ScrollToBottom scrolls the matched container to its bottom edge.
	// Returns false when the container is absent. An empty selector
	// scrolls the whole page.
	ScrollToBottom(selector string) (bool, error)
	// Close releases the browser tab and its resources.
	Close()
}

// chromeSession implements Session on a dedicated chromedp tab.
type chromeSession struct {
	ctx         context.Context
	cancel      context.CancelFunc
	loadTimeout time.Duration
	opTimeout   time.Duration
}

func (s *chromeSession) run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (s *chromeSession) Navigate(url string) error {
	if err := s.run(s.loadTimeout, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (s *chromeSession) Location() (string, error) {
	var url string
	if err := s.run(s.opTimeout, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return url, nil
}

func (s *chromeSession) WaitVisible(selector string, timeout time.Duration) error {
	return s.run(timeout, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (s *chromeSession) SendKeys(selector, text string) error {
	clear := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (el) { el.value = ''; }
	})()`, strconv.Quote(selector))

	return s.run(s.opTimeout,
		chromedp.Evaluate(clear, nil),
		chromedp.SendKeys(selector, text, chromedp.ByQuery),
	)
}

func (s *chromeSession) Text(selector string) (string, error) {
	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		return el ? (el.innerText || el.textContent || '').trim() : '';
	})()`, strconv.Quote(selector))

	var text string
	if err := s.run(s.opTimeout, chromedp.Evaluate(script, &text)); err != nil {
		return "", err
	}
	return text, nil
}

func (s *chromeSession) TextAll(selector string, limit int) ([]string, error) {
	script := fmt.Sprintf(`(() => {
		const out = [];
		for (const el of document.querySelectorAll(%s)) {
			const t = (el.innerText || el.textContent || '').trim();
			if (t) { out.push(t); }
			if (%d > 0 && out.length >= %d) { break; }
		}
		return out;
	})()`, strconv.Quote(selector), limit, limit)

	var texts []string
	if err := s.run(s.opTimeout, chromedp.Evaluate(script, &texts)); err != nil {
		return nil, err
	}
	return texts, nil
}

func (s *chromeSession) Attribute(selector, name string) (string, error) {
	script := attrScript(selector, name, 1)
	var values []string
	if err := s.run(s.opTimeout, chromedp.Evaluate(script, &values)); err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", nil
	}
	return values[0], nil
}

func (s *chromeSession) AttributeAll(selector, name string) ([]string, error) {
	var values []string
	if err := s.run(s.opTimeout, chromedp.Evaluate(attrScript(selector, name, 0), &values)); err != nil {
		return nil, err
	}
	return values, nil
}

func attrScript(selector, name string, limit int) string {
	return fmt.Sprintf(`(() => {
		const out = [];
		const name = %s;
		for (const el of document.querySelectorAll(%s)) {
			let v = '';
			if (name === 'href' && el.href) { v = el.href; }
			else { v = el.getAttribute(name) || ''; }
			if (v) { out.push(v); }
			if (%d > 0 && out.length >= %d) { break; }
		}
		return out;
	})()`, strconv.Quote(name), strconv.Quote(selector), limit, limit)
}

func (s *chromeSession) Click(selector string) (bool, error) {
	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el || el.disabled) { return false; }
		el.scrollIntoView({block: 'center'});
		el.click();
		return true;
	})()`, strconv.Quote(selector))

	var clicked bool
	if err := s.run(s.opTimeout, chromedp.Evaluate(script, &clicked)); err != nil {
		return false, err
	}
	return clicked, nil
}

func (s *chromeSession) ScrollToBottom(selector string) (bool, error) {
	if selector == "" {
		err := s.run(s.opTimeout,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil))
		return err == nil, err
	}

	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) { return false; }
		el.scrollTop = el.scrollHeight;
		return true;
	})()`, strconv.Quote(selector))

	var found bool
	if err := s.run(s.opTimeout, chromedp.Evaluate(script, &found)); err != nil {
		return false, err
	}
	return found, nil
}

func (s *chromeSession) Close() {
	s.cancel()
}
