package services

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/miekg/dns"

	"gmaps-scraper/utils"
)

// allowedTLDs are the top-level domains a business website is expected
// to live under. Anything else is treated as a tracking or junk link.
var allowedTLDs = map[string]struct{}{
	"com": {}, "net": {}, "org": {}, "io": {}, "co": {}, "biz": {},
	"info": {}, "shop": {}, "store": {}, "online": {}, "site": {},
	"us": {}, "uk": {}, "ca": {}, "au": {}, "de": {}, "fr": {}, "es": {},
	"it": {}, "nl": {}, "ch": {}, "at": {}, "in": {}, "jp": {}, "br": {},
	"mx": {}, "eu": {},
}

// aggregatorHosts are directory and social platforms whose links show up
// in the website slot but never identify the business's own site.
var aggregatorHosts = []string{
	"facebook.com", "instagram.com", "twitter.com", "linkedin.com",
	"yelp.com", "tripadvisor.com", "foursquare.com", "doordash.com",
	"ubereats.com", "grubhub.com", "opentable.com", "booking.com",
	"google.com", "goo.gl", "youtube.com", "wa.me", "whatsapp.com",
}

// MXChecker reports whether a domain can receive mail; used as a cheap
// liveness signal for a candidate website domain.
type MXChecker func(domain string) bool

// WebsiteValidator is a post-scrape heuristic that decides whether an
// extracted website URL plausibly belongs to the named business. It is
// deliberately decoupled from the extraction pipeline.
type WebsiteValidator struct {
	logger  *utils.Logger
	checkMX MXChecker // nil disables the DNS check
}

// NewWebsiteValidator creates a validator without the DNS liveness
// check; use WithMXCheck to enable it.
func NewWebsiteValidator(logger *utils.Logger) *WebsiteValidator {
	return &WebsiteValidator{logger: logger}
}

// WithMXCheck installs an MX lookup. Pass LookupMX for real DNS.
func (v *WebsiteValidator) WithMXCheck(check MXChecker) *WebsiteValidator {
	v.checkMX = check
	return v
}

// Validate returns a cleaned absolute URL when the website passes the
// heuristics, or "" when it should be discarded. The input record is
// never modified; callers decide what to do with a rejection.
func (v *WebsiteValidator) Validate(rawURL, businessName string) string {
	cleaned := unwrapGoogleRedirect(strings.TrimSpace(rawURL))
	if cleaned == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(cleaned), "http") {
		cleaned = "https://" + strings.TrimLeft(cleaned, "/")
	}

	parsed, err := url.Parse(cleaned)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}
	host := strings.ToLower(strings.TrimPrefix(parsed.Hostname(), "www."))

	for _, agg := range aggregatorHosts {
		if host == agg || strings.HasSuffix(host, "."+agg) {
			v.logger.Debug("[validator] %s rejected: aggregator host", host)
			return ""
		}
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return ""
	}
	if _, ok := allowedTLDs[labels[len(labels)-1]]; !ok {
		v.logger.Debug("[validator] %s rejected: TLD not allowed", host)
		return ""
	}

	if !nameMatchesDomain(businessName, host) {
		v.logger.Debug("[validator] %s rejected: no similarity to %q", host, businessName)
		return ""
	}

	if v.checkMX != nil && !v.checkMX(host) {
		v.logger.Debug("[validator] %s rejected: no MX records", host)
		return ""
	}

	return cleaned
}

// nameMatchesDomain checks whether any significant token of the
// business name (4+ letters) appears in the domain. Names without a
// significant token cannot be compared and pass by default.
func nameMatchesDomain(name, host string) bool {
	domain := strings.Map(keepAlnum, host)

	significant := false
	for _, token := range strings.FieldsFunc(strings.ToLower(name), isSeparator) {
		token = strings.Map(keepAlnum, token)
		if len(token) < 4 {
			continue
		}
		significant = true
		if strings.Contains(domain, token) {
			return true
		}
	}
	return !significant
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func keepAlnum(r rune) rune {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return unicode.ToLower(r)
	}
	return -1
}

// unwrapGoogleRedirect resolves the tracking wrapper Google puts around
// external website links.
func unwrapGoogleRedirect(raw string) string {
	if !strings.HasPrefix(raw, "https://www.google.com/url?") {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if target := parsed.Query().Get("q"); target != "" {
		return target
	}
	return raw
}

// LookupMX queries public resolvers for MX records on the domain.
func LookupMX(domain string) bool {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeMX)
	msg.RecursionDesired = true

	client := new(dns.Client)
	for _, server := range []string{"8.8.8.8:53", "1.1.1.1:53"} {
		resp, _, err := client.Exchange(msg, server)
		if err == nil && resp != nil && resp.Rcode == dns.RcodeSuccess && len(resp.Answer) > 0 {
			return true
		}
	}
	return false
}
