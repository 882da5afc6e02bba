package gmaps

import (
	"context"
	"fmt"
	"testing"

	"gmaps-scraper/utils"
)

func placeLink(n int) string {
	return fmt.Sprintf("https://www.google.com/maps/place/biz-%d/", n)
}

func newTestCollector(session *fakeSession) *Collector {
	logger := utils.NewLogger(false)
	return NewCollector(session, utils.NewRateLimiter(0, 0, logger), logger)
}

func TestCollectDeduplicatesInOrder(t *testing.T) {
	session := newFakeSession()
	session.linkBatches = [][]string{
		{placeLink(1), placeLink(2), placeLink(1)},
		{placeLink(2), placeLink(3)},
		{}, // stagnate from here on
	}

	links := newTestCollector(session).Collect(context.Background(), CollectorOptions{})

	want := []string{placeLink(1), placeLink(2), placeLink(3)}
	if len(links) != len(want) {
		t.Fatalf("collected %d links, want %d: %v", len(links), len(want), links)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("links[%d] = %q, want %q (first-seen order)", i, links[i], want[i])
		}
	}
}

func TestCollectStopsAtMaxResults(t *testing.T) {
	session := newFakeSession()
	session.linkBatches = [][]string{
		{placeLink(1), placeLink(2), placeLink(3), placeLink(4), placeLink(5), placeLink(6), placeLink(7)},
	}

	links := newTestCollector(session).Collect(context.Background(), CollectorOptions{MaxResults: 5})

	if len(links) != 5 {
		t.Fatalf("collected %d links, want exactly 5", len(links))
	}
	// One scan overshoots the target; the excess must be trimmed, not kept.
	if links[4] != placeLink(5) {
		t.Errorf("links[4] = %q, want %q", links[4], placeLink(5))
	}
}

func TestCollectStopsOnStagnation(t *testing.T) {
	session := newFakeSession()
	session.linkBatches = [][]string{
		{placeLink(1), placeLink(2)},
		{}, // nothing new, ever again
	}

	links := newTestCollector(session).Collect(context.Background(), CollectorOptions{MaxResults: 100})

	if len(links) != 2 {
		t.Fatalf("collected %d links, want 2", len(links))
	}
	// Five stagnant scans after the productive one: one batch per scan.
	wantScans := 1 + stagnationLimit
	if session.scan != wantScans {
		t.Errorf("session scanned %d times, want %d", session.scan, wantScans)
	}
}

func TestCollectStopsAtScrollCeiling(t *testing.T) {
	session := newFakeSession()
	// Every scan yields one fresh link so stagnation never triggers.
	for i := 1; i <= 10; i++ {
		session.linkBatches = append(session.linkBatches, []string{placeLink(i)})
	}

	links := newTestCollector(session).Collect(context.Background(), CollectorOptions{
		MaxScrollAttempts: 3,
	})

	// Initial scan plus three scroll attempts.
	if len(links) != 4 {
		t.Errorf("collected %d links, want 4", len(links))
	}
}

func TestCollectHonorsCancellation(t *testing.T) {
	session := newFakeSession()
	session.linkBatches = [][]string{{placeLink(1)}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	links := newTestCollector(session).Collect(ctx, CollectorOptions{})
	if len(links) != 0 {
		t.Errorf("collected %d links on a cancelled context, want 0", len(links))
	}
}

func TestCollectIgnoresNonPlaceLinks(t *testing.T) {
	session := newFakeSession()
	session.linkBatches = [][]string{
		{
			"https://www.google.com/maps/help",
			placeLink(1),
			"https://www.google.com/maps/search/cafes",
		},
		{},
	}

	links := newTestCollector(session).Collect(context.Background(), CollectorOptions{})
	if len(links) != 1 || links[0] != placeLink(1) {
		t.Errorf("links = %v, want only the place link", links)
	}
}
