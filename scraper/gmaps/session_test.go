package gmaps

import (
	"time"
)

// fakeSession is an in-memory Session for exercising the scraper core
// without a browser. DOM queries resolve against per-selector maps; the
// maps can be swapped per page via the pages field on Navigate.
type fakeSession struct {
	texts     map[string]string   // selector -> first-match text
	textLists map[string][]string // selector -> all-match texts
	attrs     map[string]string   // selector + "\n" + attr -> value

	// linkBatches feeds AttributeAll one batch per listing scan,
	// repeating the last batch once exhausted.
	linkBatches [][]string
	scan        int

	pages   map[string]map[string]string // url -> selector texts
	url     string
	failNav map[string]bool

	onNavigate func(url string)
	visited    []string
	closed     bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		texts:     map[string]string{},
		textLists: map[string][]string{},
		attrs:     map[string]string{},
		failNav:   map[string]bool{},
	}
}

func (f *fakeSession) Navigate(url string) error {
	if f.onNavigate != nil {
		f.onNavigate(url)
	}
	if f.failNav[url] {
		return errTimeout
	}
	f.url = url
	f.visited = append(f.visited, url)
	if f.pages != nil {
		f.texts = f.pages[url]
	}
	return nil
}

func (f *fakeSession) Location() (string, error) { return f.url, nil }

func (f *fakeSession) WaitVisible(selector string, timeout time.Duration) error { return nil }

func (f *fakeSession) SendKeys(selector, text string) error { return nil }

func (f *fakeSession) Text(selector string) (string, error) {
	return f.texts[selector], nil
}

func (f *fakeSession) TextAll(selector string, limit int) ([]string, error) {
	lines := f.textLists[selector]
	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return lines, nil
}

func (f *fakeSession) Attribute(selector, name string) (string, error) {
	return f.attrs[selector+"\n"+name], nil
}

func (f *fakeSession) AttributeAll(selector, name string) ([]string, error) {
	if name != "href" || len(f.linkBatches) == 0 {
		return nil, nil
	}
	idx := f.scan
	if idx >= len(f.linkBatches) {
		idx = len(f.linkBatches) - 1
	}
	f.scan++
	return f.linkBatches[idx], nil
}

func (f *fakeSession) Click(selector string) (bool, error) { return false, nil }

func (f *fakeSession) ScrollToBottom(selector string) (bool, error) { return true, nil }

func (f *fakeSession) Close() { f.closed = true }

type timeoutError struct{}

func (timeoutError) Error() string { return "timeout waiting for page" }

var errTimeout = timeoutError{}
