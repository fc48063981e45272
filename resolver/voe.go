// Package resolver implements hoster resolvers that turn stream pages into direct media URLs.
package resolver

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/mo"
	"github.com/spf13/viper"

	"github.com/sapphirebluet/Movix/key"
	"github.com/sapphirebluet/Movix/log"
	"github.com/sapphirebluet/Movix/network"
	"github.com/sapphirebluet/Movix/obfuscate"
	"github.com/sapphirebluet/Movix/streaming"
)

// defaultMaxRedirects bounds the client-redirect chase when no bound is configured.
const defaultMaxRedirects = 5

// baitPatterns are placeholder/sample-video fingerprints hosters plant as decoys.
// A decoded candidate matching any of them is rejected in favor of the next one.
var baitPatterns = []string{"bigbuckbunny", "test-videos.co.uk", "sample-videos.com"}

// redirectPatterns match the three equivalent textual forms of the
// script-based client redirect assignment hoster pages use.
var redirectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`window\.location\.href\s*=\s*['"]([^'"]+)['"]`),
	regexp.MustCompile(`window\.location\s*=\s*['"]([^'"]+)['"]`),
	regexp.MustCompile(`location\.href\s*=\s*['"]([^'"]+)['"]`),
}

// fallbackPattern scans for bare media URLs when no obfuscated block decodes.
var fallbackPattern = regexp.MustCompile(`(https?://[^\s"']+\.(?:mp4|m3u8)[^\s"']*)`)

// Voe resolves VOE-style hoster pages.
type Voe struct {
	fetch        func(url string) (body string, status int, err error)
	maxRedirects int
}

// NewVoe returns a resolver using the fingerprinted network client and the
// configured client-redirect bound.
func NewVoe() *Voe {
	redirects := viper.GetInt(key.StreamingMaxRedirects)
	if redirects <= 0 {
		redirects = defaultMaxRedirects
	}

	return &Voe{
		fetch:        network.FetchPage,
		maxRedirects: redirects,
	}
}

func (v *Voe) Name() string {
	return "voe"
}

// CanHandle matches the hoster's known domains by substring.
func (v *Voe) CanHandle(url string) bool {
	return strings.Contains(url, "voe.sx") || strings.Contains(url, "voe.")
}

// Resolve follows the hoster's client-side redirect indirection, then scans
// the landing page for an obfuscated stream payload.
func (v *Voe) Resolve(url string) (string, error) {
	currentURL := url

	for i := 0; i < v.maxRedirects; i++ {
		html, _, err := v.fetch(currentURL)
		if err != nil {
			return "", streaming.NetworkErr("fetch %s: %v", currentURL, err)
		}

		if redirect, ok := extractRedirect(html).Get(); ok {
			currentURL = resolveRedirectURL(currentURL, redirect)
			log.Debugf("voe: following client redirect to %s", currentURL)
			continue
		}

		streamURL, err := extractStreamURL(html)
		if err != nil {
			return "", err
		}
		if u, ok := streamURL.Get(); ok {
			return u, nil
		}

		break
	}

	return "", streaming.NotFoundErr("failed to extract stream URL from %s", url)
}

// extractRedirect finds a script-based client redirect target in the page body.
func extractRedirect(html string) mo.Option[string] {
	for _, re := range redirectPatterns {
		if m := re.FindStringSubmatch(html); m != nil {
			return mo.Some(m[1])
		}
	}
	return mo.None[string]()
}

// resolveRedirectURL resolves a redirect target against the current URL.
// Absolute targets pass through, protocol-relative ones inherit https, and
// path-relative ones are joined to the current scheme and host.
func resolveRedirectURL(baseURL, redirect string) string {
	switch {
	case strings.HasPrefix(redirect, "//"):
		return "https:" + redirect
	case strings.HasPrefix(redirect, "http"):
		return redirect
	default:
		schemeEnd := strings.Index(baseURL, "://")
		if schemeEnd < 0 {
			return redirect
		}
		rest := baseURL[schemeEnd+3:]
		hostEnd := strings.Index(rest, "/")
		if hostEnd < 0 {
			hostEnd = len(rest)
		}
		return baseURL[:schemeEnd] + "://" + rest[:hostEnd] + redirect
	}
}

// extractStreamURL scans JSON script blocks for an obfuscated payload holding
// the direct URL. Bait candidates do not terminate the scan; the next block
// is tried, and a raw media-URL regex is the last resort. An unparseable
// page surfaces as a parse error unless the raw fallback still hits.
func extractStreamURL(html string) (mo.Option[string], error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		if m := fallbackPattern.FindStringSubmatch(html); m != nil && !isBait(m[1]) {
			return mo.Some(m[1]), nil
		}
		return mo.None[string](), streaming.ParseErr("parse hoster page: %v", err)
	}

	var found string
	doc.Find(`script[type="application/json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		decoded, ok := obfuscate.Decode(strings.TrimSpace(sel.Text())).Get()
		if !ok {
			return true
		}

		obj, ok := decoded.(map[string]any)
		if !ok {
			return true
		}

		candidate := stringField(obj, "direct_access_url")
		if candidate == "" {
			candidate = stringField(obj, "source")
		}
		if candidate == "" || isBait(candidate) {
			return true
		}

		found = candidate
		return false
	})
	if found != "" {
		return mo.Some(found), nil
	}

	if m := fallbackPattern.FindStringSubmatch(html); m != nil && !isBait(m[1]) {
		return mo.Some(m[1]), nil
	}
	return mo.None[string](), nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// isBait reports whether a candidate matches a known placeholder pattern.
func isBait(url string) bool {
	lower := strings.ToLower(url)
	for _, p := range baitPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
