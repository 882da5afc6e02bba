package config

// Selector cascades for Google Maps pages. Each list is ordered most
// specific first; the extractor takes the first selector that yields a
// non-empty match. Google ships several markup variants (A/B tests,
// locales), so no single selector is authoritative.

// Search page
const (
	SearchBox    = "input[id='searchboxinput']"
	SearchButton = "button[id='searchbox-searchbutton']"
	ResultsPanel = "div[role='main']"
	PlaceTitle   = "h1.DUwDvf"
)

// BusinessLinkSelectors locate result items in the listing feed. The
// collector keeps the first cascade that returns anything and reuses it
// for the remainder of the scan.
var BusinessLinkSelectors = []string{
	"a[href*='/maps/place/']",
	"div[role='main'] a[data-value='Directions']",
	"a[aria-label][href*='maps']",
	".Nv2PK a[href*='/maps/place/']",
}

// ResultsPanelSelectors locate the scrollable results container.
var ResultsPanelSelectors = []string{
	"div[role='feed']",
	"div[role='main']",
	".m6QErb",
	".siAUzd",
	"#pane",
}

// MoreResultsSelectors locate a "more results" control when Google
// renders paginated instead of infinite-scroll results.
var MoreResultsSelectors = []string{
	"button[aria-label='Next page']",
	"span.HlvSq",
}

// Detail page field cascades.
var (
	NameSelectors = []string{
		"h1.DUwDvf",
		"h1[data-attrid='title']",
		"h1.x3AX1-LfntMc-header-title-title",
		"h1",
		".x3AX1-LfntMc-header-title-title",
	}

	CategorySelectors = []string{
		"button[jsaction*='category']",
		".DkEaL",
		".W4Efsd:first-child .W4Efsd",
		"button[data-value='Directions'] + div .W4Efsd",
	}

	AddressSelectors = []string{
		"button[data-item-id='address']",
		".Io6YTe",
		"button[data-item-id='address'] .Io6YTe",
		".rogA2c .Io6YTe",
	}

	PhoneSelectors = []string{
		"button[data-item-id*='phone']",
		".rogA2c[data-item-id*='phone']",
		"button[aria-label*='phone'] .Io6YTe",
		"a[href^='tel:']",
	}

	WebsiteSelectors = []string{
		"a[data-item-id='authority']",
		"a[aria-label*='website']",
		".CsEnBe a[href*='http']",
		"a[href*='http']:not([href*='google.com']):not([href*='maps'])",
	}

	RatingSelectors = []string{
		".MW4etd",
		".ceNzKf",
		"span.MW4etd",
		".F7nice span",
	}

	ReviewCountSelectors = []string{
		".UY7F9",
		"button[aria-label*='reviews'] .UY7F9",
		".F7nice .UY7F9",
		"span.UY7F9",
	}

	HoursSelectors = []string{
		".t39EBf",
		"[data-item-id='oh'] .t39EBf",
		".OqCZI .t39EBf",
		".eXlrNe .t39EBf",
	}

	PriceRangeSelectors = []string{
		".mgr77e",
		"[aria-label*='Price'] .mgr77e",
		".RWPxGd .mgr77e",
	}
)

// ConsentButtonSelectors dismiss the cookie consent interstitial that
// Google shows on fresh sessions in some regions.
var ConsentButtonSelectors = []string{
	"button[aria-label='Accept all']",
	"button[aria-label='I agree']",
	"button.VfPpkd-LgbsSe-OWXEXe-k8QpJ",
}
